package observable

import (
	"sync"
)

// Cancel stops a sink. Calling it more than once is a no-op.
type Cancel func()

// Value is a value with synchronous change observers. Unlike broadcast.Hub it
// has no queues: Set calls every observer on the caller's goroutine, in
// registration order, after the new value is stored. Concurrent Set calls are
// delivered in the order they were stored.
type Value[T any] struct {
	// notifyMu serializes store and fan-out; mu guards the fields below.
	notifyMu sync.Mutex

	mu     sync.RWMutex
	value  T
	nextID uint64
	sinks  []sink[T]
}

type sink[T any] struct {
	id uint64
	fn func(T)
}

// New creates a Value holding initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set stores x and notifies every observer with it before returning.
// Observers may call Get, OnChange or Cancel. Calling Set or Sink on the same
// Value from an observer deadlocks.
func (v *Value[T]) Set(x T) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	v.value = x
	sinks := make([]sink[T], len(v.sinks))
	copy(sinks, v.sinks)
	v.mu.Unlock()

	for _, s := range sinks {
		s.fn(x)
	}
}

// Sink calls fn with the current value immediately and then with every
// subsequent value. No value set concurrently reaches fn before the current one.
func (v *Value[T]) Sink(fn func(T)) Cancel {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	current := v.value
	cancel := v.add(fn)
	v.mu.Unlock()

	fn(current)
	return cancel
}

// OnChange calls fn with every subsequent value, skipping the current one.
func (v *Value[T]) OnChange(fn func(T)) Cancel {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.add(fn)
}

// Observers returns the number of registered observers.
func (v *Value[T]) Observers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.sinks)
}

// add must be called with mu held.
func (v *Value[T]) add(fn func(T)) Cancel {
	v.nextID++
	id := v.nextID
	v.sinks = append(v.sinks, sink[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { v.remove(id) })
	}
}

func (v *Value[T]) remove(id uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, s := range v.sinks {
		if s.id == id {
			v.sinks = append(v.sinks[:i:i], v.sinks[i+1:]...)
			return
		}
	}
}

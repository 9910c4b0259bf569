package broadcast

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Subscription is an ordered, closable sequence of values delivered by a Hub.
// It has exactly one producer (the hub) and is meant to be consumed by a single
// reader. The buffer is unbounded, so a slow reader never blocks Set.
type Subscription[T any] struct {
	id uuid.UUID

	mu       sync.Mutex
	queue    []T
	finished bool

	notify chan struct{}
	done   chan struct{}

	// release unregisters the subscription from its hub. Nil for detached subscriptions.
	release func(uuid.UUID)
	stop    func() bool
}

func newSubscription[T any](id uuid.UUID, release func(uuid.UUID)) *Subscription[T] {
	return &Subscription[T]{
		id:      id,
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		release: release,
	}
}

// finishedSubscription returns a subscription that yields nothing.
func finishedSubscription[T any]() *Subscription[T] {
	s := newSubscription[T](uuid.New(), nil)
	s.finish(false)
	return s
}

// ID returns the identifier the hub registered the subscription under.
func (s *Subscription[T]) ID() uuid.UUID {
	return s.id
}

// Done returns a channel that is closed once the subscription is finished.
// Values buffered before a hub-initiated finish may still be read with Next.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// Next blocks until the next value is available and returns it.
// It returns ErrSubscriptionClosed once the subscription is finished and
// drained, or the context error if ctx is done first.
func (s *Subscription[T]) Next(ctx context.Context) (T, error) {
	var zero T
	for {
		s.mu.Lock()
		if len(s.queue) > 0 {
			v := s.queue[0]
			s.queue[0] = zero
			s.queue = s.queue[1:]
			s.mu.Unlock()
			return v, nil
		}
		finished := s.finished
		s.mu.Unlock()

		if finished {
			return zero, ErrSubscriptionClosed
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-s.notify:
		case <-s.done:
		}
	}
}

// Receive returns a channel that emits the subscription's values in order.
// The channel is closed when the subscription finishes or ctx is cancelled.
func (s *Subscription[T]) Receive(ctx context.Context) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for {
			v, err := s.Next(ctx)
			if err != nil {
				return
			}
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Close stops the subscription, drops pending values and removes it from the hub.
// Safe to call multiple times and concurrently with Hub.Set.
func (s *Subscription[T]) Close() error {
	if !s.finish(true) {
		return nil
	}
	if s.release != nil {
		s.release(s.id)
	}
	return nil
}

// push enqueues v. Returns false if the subscription is already finished.
func (s *Subscription[T]) push(v T) bool {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return false
	}
	s.queue = append(s.queue, v)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
	return true
}

// finish marks the subscription as finished. When drop is true the pending
// values are discarded. Reports whether this call performed the transition.
func (s *Subscription[T]) finish(drop bool) bool {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return false
	}
	s.finished = true
	if drop {
		s.queue = nil
	}
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	close(s.done)
	return true
}

// closeOnDone ties the subscription lifetime to ctx.
func (s *Subscription[T]) closeOnDone(ctx context.Context) {
	if ctx.Done() == nil {
		return
	}
	stop := context.AfterFunc(ctx, func() { _ = s.Close() })

	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		stop()
		return
	}
	s.stop = stop
	s.mu.Unlock()
}

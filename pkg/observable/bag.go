package observable

import "sync"

// Bag collects cancel functions so an owner can drop all of its observers at once.
type Bag struct {
	mu      sync.Mutex
	cancels []Cancel
}

// Add stores c. Nil is ignored.
func (b *Bag) Add(c Cancel) {
	if c == nil {
		return
	}
	b.mu.Lock()
	b.cancels = append(b.cancels, c)
	b.mu.Unlock()
}

// CancelAll runs and forgets every stored cancel function.
func (b *Bag) CancelAll() {
	b.mu.Lock()
	cancels := b.cancels
	b.cancels = nil
	b.mu.Unlock()

	for _, c := range cancels {
		c()
	}
}

// Len returns the number of stored cancel functions.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.cancels)
}

package observable

import (
	"context"

	"github.com/dmitrymomot/streamhub/pkg/broadcast"
)

// Stream adapts v to a queued subscription so a consumer on another
// goroutine never blocks Set. With withCurrent the current value is queued
// first. The observer is removed once the subscription finishes, either by
// Close or when ctx is done.
func Stream[T any](ctx context.Context, v *Value[T], withCurrent bool) *broadcast.Subscription[T] {
	hub := broadcast.NewHub(v.Get())
	sub := hub.Subscribe(ctx)

	var cancel Cancel
	if withCurrent {
		cancel = v.Sink(hub.Set)
	} else {
		cancel = v.OnChange(hub.Set)
	}

	go func() {
		<-sub.Done()
		cancel()
		_ = hub.Close()
	}()
	return sub
}

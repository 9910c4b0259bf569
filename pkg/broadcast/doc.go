// Package broadcast provides a generic value hub: a concurrency-safe holder of a
// single current value that pushes every change to any number of independent
// subscriptions.
//
// # Architecture
//
// The package defines two types:
//   - Hub: owns the current value and the registry of live subscriptions
//   - Subscription: an ordered, unbounded, closable queue of delivered values
//
// Every hub operation (Get, Set, Subscribe, unsubscribe, Close) runs under one
// mutex, so all operations are totally ordered. Each subscription observes the
// values passed to Set in exactly that order, starting from the moment it was
// registered. The mutex is only held for the state transition itself, never
// while a consumer processes a value.
//
// # Usage
//
//	hub := broadcast.NewHub(0)
//	defer hub.Close()
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	// Receive the current value first, then every update.
//	sub := hub.Subscribe(ctx, broadcast.WithCurrentValue())
//	defer sub.Close()
//
//	go func() {
//		for v := range sub.Receive(ctx) {
//			fmt.Println("value:", v)
//		}
//	}()
//
//	hub.Set(1)
//	hub.Set(2)
//	fmt.Println(hub.Get()) // 2
//
// # Slow Consumers
//
// Each subscription buffers without bound. A slow consumer never blocks Set and
// never affects what other subscriptions receive. Payloads are expected to be
// small snapshots; there is no flow control.
//
// # Lifecycle
//
// A subscription ends when the first of these happens:
//   - its Close method is called (pending values are dropped)
//   - the context passed to Subscribe is done (same as Close)
//   - the hub is closed (pending values can still be drained)
//
// Closing is idempotent and safe to race with Set; a Set that finds a closed
// subscription simply skips it. After Hub.Close, Set is a no-op, TrySet returns
// ErrHubClosed and Subscribe returns an already finished subscription whose
// Next reports ErrSubscriptionClosed.
//
// # Thread Safety
//
// All exported methods are safe for concurrent use. A Subscription is intended
// for one reader; Next called from several goroutines splits the sequence
// between them.
package broadcast

// Package streamreader ties the lifetime of stream consumers to an owner.
//
// A consumer (a view model, a websocket session, a request scope) adds each
// source it listens to and later disposes all of them with one call, so no
// callback outlives its owner and no subscription is leaked.
//
//	readers := streamreader.New(streamreader.WithLogger(log))
//	defer readers.Close()
//
//	streamreader.Add(readers, hub.Subscribe(ctx), func(ctx context.Context, m model.Model) error {
//		return render(ctx, m)
//	})
//
// Values of one source are handled strictly one at a time and in order.
// Different sources are read by different goroutines and do not wait for each other.
package streamreader

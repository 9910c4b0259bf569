// Package server runs an HTTP handler with production timeouts and graceful
// shutdown.
//
// A Server is created from functional options or from an env-tagged Config:
//
//	cfg := server.DefaultConfig()
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
// Run adapts the server to errgroup so it stops together with the rest of
// the process:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	if err := g.Wait(); err != nil {
//		log.Error("exited", logger.Error(err))
//	}
//
// Stop waits up to the shutdown timeout for in-flight requests. Long-lived
// streams such as server-sent events should watch the request context and
// clear their own write deadline.
package server

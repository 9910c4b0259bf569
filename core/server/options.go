package server

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net"
	"time"
)

// Option configures a Server.
type Option func(*Server)

// WithTLS serves HTTPS using the given configuration.
func WithTLS(config *tls.Config) Option {
	return func(s *Server) {
		s.tlsConfig = config
	}
}

// WithLogger sets the logger for lifecycle events and http.Server errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithShutdownTimeout bounds how long Stop waits for active requests.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.shutdown = timeout
	}
}

// WithReadTimeout sets http.Server.ReadTimeout.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = timeout
	}
}

// WithWriteTimeout sets http.Server.WriteTimeout. Streaming handlers must
// extend their own write deadline.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.writeTimeout = timeout
	}
}

// WithIdleTimeout sets http.Server.IdleTimeout.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.idleTimeout = timeout
	}
}

// WithMaxHeaderBytes sets http.Server.MaxHeaderBytes.
func WithMaxHeaderBytes(n int) Option {
	return func(s *Server) {
		s.maxHeaderBytes = n
	}
}

// WithBaseContext derives every request context from ctx. Values survive
// but cancellation does not, so in-flight requests finish during Stop.
func WithBaseContext(ctx context.Context) Option {
	return func(s *Server) {
		base := context.WithoutCancel(ctx)
		s.baseContext = func(net.Listener) context.Context { return base }
	}
}

// WithOnShutdown registers f to run when Stop begins. Use it to end
// long-lived streams, which Shutdown does not interrupt.
func WithOnShutdown(f func()) Option {
	return func(s *Server) {
		if f != nil {
			s.onShutdown = append(s.onShutdown, f)
		}
	}
}

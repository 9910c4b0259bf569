package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/streamhub/core/logger"
)

// Server runs an http.Server and shuts it down gracefully.
// Safe for concurrent use.
type Server struct {
	mu             sync.Mutex
	addr           string
	server         *http.Server
	listener       net.Listener
	logger         *slog.Logger
	shutdown       time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
	maxHeaderBytes int
	tlsConfig      *tls.Config
	baseContext    func(net.Listener) context.Context
	onShutdown     []func()
}

// New creates a server bound to addr. Nothing is listened on until Start.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:           addr,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdown:       DefaultShutdownTimeout,
		readTimeout:    DefaultReadTimeout,
		writeTimeout:   DefaultWriteTimeout,
		idleTimeout:    DefaultIdleTimeout,
		maxHeaderBytes: DefaultMaxHeaderBytes,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start listens on the configured address and serves handler until the
// context is cancelled, Stop is called or serving fails. On cancellation the
// server is stopped gracefully before Start returns ctx.Err(), or the
// shutdown error if stopping failed. A context that is already done is
// returned without listening.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.server != nil {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrListen, err)
	}
	if s.tlsConfig != nil {
		ln = tls.NewListener(ln, s.tlsConfig)
	}

	srv := &http.Server{
		Handler:        handler,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		BaseContext:    s.baseContext,
		ErrorLog:       slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	for _, f := range s.onShutdown {
		srv.RegisterOnShutdown(f)
	}
	s.server = srv
	s.listener = ln
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "server started",
		logger.Component("http"),
		slog.String("addr", ln.Addr().String()),
		slog.Bool("tls", s.tlsConfig != nil))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.reset(srv)
		if !ok {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrServe, err)
	case <-ctx.Done():
		stopErr := s.Stop()
		<-errCh
		if stopErr != nil {
			return stopErr
		}
		return ctx.Err()
	}
}

// Stop gracefully shuts the server down within the shutdown timeout.
// It is a no-op when the server is not running.
func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	s.logger.Info("server shutting down", logger.Component("http"), slog.Duration("timeout", s.shutdown))

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	start := time.Now()
	err := srv.Shutdown(ctx)
	s.reset(srv)

	if err != nil {
		s.logger.Error("server shutdown failed", logger.Component("http"), logger.Error(err))
		return fmt.Errorf("%w: %w", ErrShutdown, err)
	}

	s.logger.Info("server stopped", logger.Component("http"), logger.Elapsed(start))
	return nil
}

// Run returns a function suitable for errgroup.Group.Go. The function serves
// until ctx is cancelled, then stops the server and returns nil. Listen,
// serve and shutdown failures are returned.
//
// Example:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	return g.Wait()
func (s *Server) Run(ctx context.Context, handler http.Handler) func() error {
	return func() error {
		err := s.Start(ctx, handler)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	}
}

// Addr returns the address the server listens on, or the configured address
// before Start. With ":0" this reports the port picked by the kernel.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Running reports whether the server is serving.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.server != nil
}

func (s *Server) reset(srv *http.Server) {
	s.mu.Lock()
	if s.server == srv {
		s.server = nil
		s.listener = nil
	}
	s.mu.Unlock()
}

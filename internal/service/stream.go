package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/streamhub/core/logger"
	"github.com/dmitrymomot/streamhub/internal/model"
	"github.com/dmitrymomot/streamhub/pkg/broadcast"
)

// StreamService exposes the model through a broadcast hub.
type StreamService interface {
	// Model returns the current model.
	Model(ctx context.Context) model.Model
	// SetModel replaces the model and notifies every stream.
	SetModel(ctx context.Context, m model.Model) error
	// ModelStream subscribes to model updates. The current model is not replayed.
	ModelStream(ctx context.Context) *broadcast.Subscription[model.Model]
}

// HubService implements StreamService on top of broadcast.Hub.
type HubService struct {
	hub    *broadcast.Hub[model.Model]
	logger *slog.Logger
}

// Option configures a HubService.
type Option func(*options)

type options struct {
	initial model.Model
	logger  *slog.Logger
}

// WithInitialModel overrides the zero model the service starts with.
func WithInitialModel(m model.Model) Option {
	return func(o *options) {
		o.initial = m
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewHubService creates a hub-backed StreamService.
func NewHubService(opts ...Option) *HubService {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &HubService{
		hub:    broadcast.NewHub(o.initial, broadcast.WithLogger(o.logger)),
		logger: o.logger,
	}
}

func (s *HubService) Model(context.Context) model.Model {
	return s.hub.Get()
}

func (s *HubService) SetModel(ctx context.Context, m model.Model) error {
	if err := s.hub.TrySet(m); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "model updated",
		logger.Value(m.Value),
		logger.Subscribers(s.hub.Len()))
	return nil
}

func (s *HubService) ModelStream(ctx context.Context) *broadcast.Subscription[model.Model] {
	return s.hub.Subscribe(ctx)
}

// Subscribe exposes the yield-current-value variant of ModelStream.
func (s *HubService) Subscribe(ctx context.Context, opts ...broadcast.SubscribeOption) *broadcast.Subscription[model.Model] {
	return s.hub.Subscribe(ctx, opts...)
}

// Subscribers returns the number of open model streams.
func (s *HubService) Subscribers() int {
	return s.hub.Len()
}

// Close finishes every open model stream.
func (s *HubService) Close() error {
	return s.hub.Close()
}

// Healthcheck fails once the service has been closed.
func (s *HubService) Healthcheck(context.Context) error {
	if s.hub.Closed() {
		return broadcast.ErrHubClosed
	}
	return nil
}

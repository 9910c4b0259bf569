package broadcast

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Hub owns a single value of type T and broadcasts every change to its live
// subscriptions. All operations are serialized by one mutex that is never held
// while a subscriber consumes a value.
//
// Example:
//
//	hub := broadcast.NewHub(0)
//	defer hub.Close()
//
//	sub := hub.Subscribe(ctx, broadcast.WithCurrentValue())
//	defer sub.Close()
//
//	hub.Set(1)
//	v, err := sub.Next(ctx) // 0, then 1
type Hub[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[uuid.UUID]*Subscription[T]
	closed bool
	logger *slog.Logger
}

// HubOption configures a Hub.
type HubOption func(*hubOptions)

type hubOptions struct {
	logger *slog.Logger
}

// WithLogger configures structured logging for hub lifecycle events.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLogger(logger *slog.Logger) HubOption {
	return func(o *hubOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// SubscribeOption configures a single Subscribe call.
type SubscribeOption func(*subscribeOptions)

type subscribeOptions struct {
	currentValue bool
}

// WithCurrentValue makes the hub enqueue its current value as the first item
// of the new subscription, before any value delivered by a later Set.
func WithCurrentValue() SubscribeOption {
	return func(o *subscribeOptions) {
		o.currentValue = true
	}
}

// YieldCurrentValue is WithCurrentValue driven by a flag.
func YieldCurrentValue(yield bool) SubscribeOption {
	return func(o *subscribeOptions) {
		o.currentValue = yield
	}
}

// NewHub creates a hub holding initial.
func NewHub[T any](initial T, opts ...HubOption) *Hub[T] {
	o := hubOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Hub[T]{
		value:  initial,
		subs:   make(map[uuid.UUID]*Subscription[T]),
		logger: o.logger,
	}
}

// Get returns the current value.
func (h *Hub[T]) Get() T {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.value
}

// Set replaces the current value and enqueues it into every live subscription.
// It is a no-op once the hub is closed.
func (h *Hub[T]) Set(v T) {
	_ = h.TrySet(v)
}

// TrySet behaves like Set but reports ErrHubClosed when the hub is closed.
func (h *Hub[T]) TrySet(v T) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHubClosed
	}

	h.value = v
	for id, sub := range h.subs {
		if !sub.push(v) {
			// Closed by its consumer; the pending unregister is a no-op after this.
			delete(h.subs, id)
		}
	}
	return nil
}

// Subscribe registers a new subscription. The subscription is closed when ctx
// is done, when its Close method is called or when the hub is closed,
// whichever happens first. On a closed hub it returns a finished subscription.
func (h *Hub[T]) Subscribe(ctx context.Context, opts ...SubscribeOption) *Subscription[T] {
	var o subscribeOptions
	for _, opt := range opts {
		opt(&o)
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return finishedSubscription[T]()
	}

	sub := newSubscription[T](uuid.New(), h.unsubscribe)
	if o.currentValue {
		sub.push(h.value)
	}
	h.subs[sub.id] = sub
	count := len(h.subs)
	h.mu.Unlock()

	h.logger.DebugContext(ctx, "subscription opened",
		slog.String("subscription_id", sub.id.String()),
		slog.Int("subscriptions", count),
		slog.Bool("current_value", o.currentValue))

	sub.closeOnDone(ctx)
	return sub
}

// Len returns the number of live subscriptions.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Closed reports whether Close has been called.
func (h *Hub[T]) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// Close finishes every live subscription and rejects further updates.
// Subscribers may still drain values buffered before Close.
// Calling Close more than once is a no-op.
func (h *Hub[T]) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	subs := h.subs
	h.subs = make(map[uuid.UUID]*Subscription[T])
	h.mu.Unlock()

	for _, sub := range subs {
		sub.finish(false)
	}

	h.logger.Debug("hub closed", slog.Int("subscriptions", len(subs)))
	return nil
}

func (h *Hub[T]) unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	_, ok := h.subs[id]
	delete(h.subs, id)
	count := len(h.subs)
	h.mu.Unlock()

	if ok {
		h.logger.Debug("subscription closed",
			slog.String("subscription_id", id.String()),
			slog.Int("subscriptions", count))
	}
}

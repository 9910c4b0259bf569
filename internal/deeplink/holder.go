package deeplink

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/streamhub/core/logger"
	"github.com/dmitrymomot/streamhub/pkg/broadcast"
)

// DefaultClearAfter is how long a handled link stays current. Clearing lets the
// same link be handled again.
const DefaultClearAfter = time.Second

// Holder keeps the most recently handled deep link and publishes changes to it.
// URLs received before Ready are postponed; only the latest one is kept.
type Holder struct {
	mu         sync.Mutex
	ready      bool
	postponed  string
	generation uint64
	timer      *time.Timer
	closed     bool

	clearAfter time.Duration
	current    *broadcast.Hub[*Link]
	logger     *slog.Logger
}

// HolderOption configures a Holder.
type HolderOption func(*Holder)

// WithClearAfter sets how long a handled link stays current. Zero disables clearing.
func WithClearAfter(d time.Duration) HolderOption {
	return func(h *Holder) {
		if d >= 0 {
			h.clearAfter = d
		}
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) HolderOption {
	return func(h *Holder) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHolder creates a holder that postpones links until Ready is called.
func NewHolder(opts ...HolderOption) *Holder {
	h := &Holder{
		clearAfter: DefaultClearAfter,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.current = broadcast.NewHub[*Link](nil, broadcast.WithLogger(h.logger))
	return h
}

// Ready marks the holder as able to handle links and handles a postponed URL,
// if any. A Handle call racing with Ready is applied after the postponed URL.
func (h *Holder) Ready() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.ready = true
	raw := h.postponed
	h.postponed = ""
	if raw == "" {
		return nil
	}
	return h.handleLocked(raw)
}

// Handle parses raw and makes it the current link. Before Ready the URL is
// stored and handled later. An invalid URL clears the current link and
// returns the parse error.
func (h *Holder) Handle(raw string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.handleLocked(raw)
}

func (h *Holder) handleLocked(raw string) error {
	if h.closed {
		return ErrHolderClosed
	}
	if !h.ready {
		h.postponed = raw
		h.logger.Debug("deep link postponed", slog.String("url", raw))
		return nil
	}

	h.generation++
	h.stopTimer()

	link, err := Parse(raw)
	if err != nil {
		h.logger.Warn("deep link rejected", slog.String("url", raw), logger.Error(err))
		if h.current.Get() != nil {
			h.current.Set(nil)
		}
		return err
	}

	h.current.Set(&link)
	h.logger.Info("deep link handled", slog.String("url", link.String()))

	if h.clearAfter > 0 {
		gen := h.generation
		h.timer = time.AfterFunc(h.clearAfter, func() { h.clear(gen) })
	}
	return nil
}

// stopTimer must be called with mu held.
func (h *Holder) stopTimer() {
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

// Current returns the current link, if any.
func (h *Holder) Current() (Link, bool) {
	l := h.current.Get()
	if l == nil {
		return Link{}, false
	}
	return *l, true
}

// Subscribe streams current-link changes; nil means the link was cleared.
func (h *Holder) Subscribe(ctx context.Context, opts ...broadcast.SubscribeOption) *broadcast.Subscription[*Link] {
	return h.current.Subscribe(ctx, opts...)
}

// Close stops the clear timer and finishes every subscription.
func (h *Holder) Close() error {
	h.mu.Lock()
	h.closed = true
	h.stopTimer()
	h.mu.Unlock()

	return h.current.Close()
}

func (h *Holder) clear(gen uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// A newer link was handled meanwhile; its own timer clears it.
	if gen != h.generation || h.closed {
		return
	}
	h.timer = nil
	h.current.Set(nil)
	h.logger.Debug("deep link cleared")
}

// Healthcheck fails once the holder has been closed.
func (h *Holder) Healthcheck(context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHolderClosed
	}
	return nil
}

package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/streamhub/core/handler"
)

// DefaultSSEKeepAlive is the default interval of keep-alive comments.
const DefaultSSEKeepAlive = 30 * time.Second

// ErrStreamingUnsupported is returned when the response writer cannot flush.
var ErrStreamingUnsupported = errors.New("response: streaming unsupported")

type sseConfig struct {
	eventName string
	eventID   string
	idGen     func(data any) string
	reconnect time.Duration
	keepAlive time.Duration
	onError   func(context.Context, error)
}

// EventOption configures a server-sent events response.
type EventOption func(*sseConfig)

// WithEventName sets the event field of every event.
func WithEventName(name string) EventOption {
	return func(c *sseConfig) {
		c.eventName = name
	}
}

// WithEventID sets a fixed id for every event.
func WithEventID(id string) EventOption {
	return func(c *sseConfig) {
		c.eventID = id
	}
}

// WithEventIDGenerator derives each event id from its data. It overrides WithEventID.
func WithEventIDGenerator(fn func(data any) string) EventOption {
	return func(c *sseConfig) {
		c.idGen = fn
	}
}

// WithSequentialIDs numbers events 1, 2, 3... within one stream.
func WithSequentialIDs() EventOption {
	return func(c *sseConfig) {
		var seq uint64
		c.idGen = func(any) string {
			seq++
			return strconv.FormatUint(seq, 10)
		}
	}
}

// WithReconnectTime sends a retry field asking clients to wait d before reconnecting.
func WithReconnectTime(d time.Duration) EventOption {
	return func(c *sseConfig) {
		c.reconnect = d
	}
}

// WithKeepAlive sets the interval of keep-alive comments. Zero disables them.
func WithKeepAlive(d time.Duration) EventOption {
	return func(c *sseConfig) {
		c.keepAlive = d
	}
}

// WithoutKeepAlive disables keep-alive comments.
func WithoutKeepAlive() EventOption {
	return WithKeepAlive(0)
}

// WithSSEErrorHandler receives write failures. The stream ends after one.
func WithSSEErrorHandler(fn func(context.Context, error)) EventOption {
	return func(c *sseConfig) {
		c.onError = fn
	}
}

// SSE streams every value received from events as a server-sent event.
// Values are written as JSON unless they are strings or byte slices.
// The stream ends when events is closed or the request context is done.
// The server write deadline is lifted for the duration of the stream.
//
// Options are applied once per response, so stateful options such as
// WithSequentialIDs must be passed to a fresh SSE call for each request.
func SSE[T any](events <-chan T, opts ...EventOption) handler.Response {
	cfg := &sseConfig{keepAlive: DefaultSSEKeepAlive}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		flusher, ok := w.(http.Flusher)
		if !ok {
			return ErrStreamingUnsupported
		}
		ctx := r.Context()

		fail := func(err error) error {
			if cfg.onError != nil {
				cfg.onError(ctx, err)
			}
			return nil
		}

		_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		if _, err := io.WriteString(w, ": connected\n\n"); err != nil {
			return fail(fmt.Errorf("write connection message: %w", err))
		}
		if cfg.reconnect > 0 {
			if _, err := fmt.Fprintf(w, "retry: %d\n\n", cfg.reconnect.Milliseconds()); err != nil {
				return fail(fmt.Errorf("write retry: %w", err))
			}
		}
		flusher.Flush()

		var (
			ticker    *time.Ticker
			keepAlive <-chan time.Time
		)
		if cfg.keepAlive > 0 {
			ticker = time.NewTicker(cfg.keepAlive)
			defer ticker.Stop()
			keepAlive = ticker.C
		}

		for {
			select {
			case <-ctx.Done():
				return nil

			case <-keepAlive:
				if _, err := io.WriteString(w, ": keepalive\n\n"); err != nil {
					return fail(fmt.Errorf("write keepalive: %w", err))
				}
				flusher.Flush()

			case data, ok := <-events:
				if !ok {
					return nil
				}
				if ticker != nil {
					ticker.Reset(cfg.keepAlive)
				}
				if err := writeEvent(w, cfg, data); err != nil {
					return fail(fmt.Errorf("write event: %w", err))
				}
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w io.Writer, cfg *sseConfig, data any) error {
	var payload []byte
	switch v := data.(type) {
	case string:
		payload = []byte(v)
	case []byte:
		payload = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		payload = b
	}

	if cfg.eventName != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", cfg.eventName); err != nil {
			return err
		}
	}
	id := cfg.eventID
	if cfg.idGen != nil {
		id = cfg.idGen(data)
	}
	if id != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", id); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}

package response

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/streamhub/core/handler"
)

type wsConfig struct {
	upgrader     websocket.Upgrader
	header       http.Header
	onConnect    func(context.Context, *websocket.Conn) error
	onDisconnect func(context.Context, *websocket.Conn)
	onError      func(context.Context, error)
}

// WebSocketOption configures a WebSocket response.
type WebSocketOption func(*wsConfig)

func WithWSReadBuffer(size int) WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.ReadBufferSize = size
	}
}

func WithWSWriteBuffer(size int) WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.WriteBufferSize = size
	}
}

func WithWSHandshakeTimeout(d time.Duration) WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.HandshakeTimeout = d
	}
}

// WithWSOriginCheck sets the origin policy. Nil keeps the same-origin default.
func WithWSOriginCheck(fn func(r *http.Request) bool) WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.CheckOrigin = fn
	}
}

func WithWSUpgradeHeaders(header http.Header) WebSocketOption {
	return func(c *wsConfig) {
		c.header = header
	}
}

// WithWSOnConnect runs fn after the upgrade. An error closes the connection
// before the message handler starts.
func WithWSOnConnect(fn func(context.Context, *websocket.Conn) error) WebSocketOption {
	return func(c *wsConfig) {
		c.onConnect = fn
	}
}

// WithWSOnDisconnect runs fn after the connection is closed.
func WithWSOnDisconnect(fn func(context.Context, *websocket.Conn)) WebSocketOption {
	return func(c *wsConfig) {
		c.onDisconnect = fn
	}
}

// WithWSErrorHandler receives upgrade, connect and handler errors.
func WithWSErrorHandler(fn func(context.Context, error)) WebSocketOption {
	return func(c *wsConfig) {
		c.onError = fn
	}
}

// WebSocket upgrades the request and runs messageHandler on the connection
// with the request context. The connection is closed when it returns.
// A failed upgrade has already been answered by the upgrader and is only
// reported to the error handler.
func WebSocket(messageHandler func(context.Context, *websocket.Conn) error, opts ...WebSocketOption) handler.Response {
	cfg := &wsConfig{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		ctx := r.Context()
		report := func(err error) {
			if err != nil && cfg.onError != nil {
				cfg.onError(ctx, err)
			}
		}

		conn, err := cfg.upgrader.Upgrade(w, r, cfg.header)
		if err != nil {
			report(err)
			return nil
		}
		defer func() {
			_ = conn.Close()
			if cfg.onDisconnect != nil {
				cfg.onDisconnect(ctx, conn)
			}
		}()

		if cfg.onConnect != nil {
			if err := cfg.onConnect(ctx, conn); err != nil {
				report(err)
				return nil
			}
		}

		report(messageHandler(ctx, conn))
		return nil
	}
}

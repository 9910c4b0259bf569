package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/streamhub/core/handler"
	"github.com/dmitrymomot/streamhub/core/logger"
	"github.com/dmitrymomot/streamhub/core/response"
	"github.com/dmitrymomot/streamhub/internal/model"
	"github.com/dmitrymomot/streamhub/pkg/broadcast"
)

const (
	// DefaultKeepAlive is the interval of SSE keep-alive comments.
	DefaultKeepAlive = response.DefaultSSEKeepAlive

	wsWriteTimeout = 10 * time.Second
	wsPongTimeout  = 60 * time.Second
	wsPingPeriod   = wsPongTimeout * 9 / 10
)

// EventModel is the SSE event name of model updates.
const EventModel = "model"

// modelEvents streams the model as server-sent events. The current value is
// sent first unless the query has current=false.
func (a *API) modelEvents(ctx *Context) handler.Response {
	withCurrent, err := boolQuery(ctx.Request(), "current", true)
	if err != nil {
		return response.Error(err)
	}
	return a.events(func(ctx context.Context) *broadcast.Subscription[model.Model] {
		return a.models.Subscribe(ctx, broadcast.YieldCurrentValue(withCurrent))
	})
}

// events streams the subscription opened by subscribe until the client
// leaves, the source finishes or Shutdown is called.
func (a *API) events(subscribe func(context.Context) *broadcast.Subscription[model.Model]) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		ctx, cancel := a.streamContext(r)
		defer cancel()

		sub := subscribe(ctx)
		defer sub.Close()

		id := logger.SubscriptionID(sub.ID().String())
		a.logger.DebugContext(ctx, "event stream opened", id)
		defer a.logger.DebugContext(ctx, "event stream closed", id)

		return response.SSE(sub.Receive(ctx),
			response.WithEventName(EventModel),
			response.WithSequentialIDs(),
			response.WithKeepAlive(a.keepAlive),
			response.WithSSEErrorHandler(func(ctx context.Context, err error) {
				a.logger.DebugContext(ctx, "event stream write failed", id, logger.Error(err))
			}),
		)(w, r.WithContext(ctx))
	}
}

// modelSocket pushes every model as a JSON text message and applies
// {"value": n} messages sent by the client.
func (a *API) modelSocket(*Context) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		ctx, cancel := a.streamContext(r)
		defer cancel()
		return response.WebSocket(a.serveSocket, a.socketOpts...)(w, r.WithContext(ctx))
	}
}

func (a *API) serveSocket(ctx context.Context, conn *websocket.Conn) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub := a.models.Subscribe(ctx, broadcast.WithCurrentValue())
	defer sub.Close()

	id := logger.SubscriptionID(sub.ID().String())
	a.logger.DebugContext(ctx, "websocket opened", id)
	defer a.logger.DebugContext(ctx, "websocket closed", id)

	go func() {
		defer cancel()
		a.readSocket(ctx, conn)
	}()

	a.writeSocket(ctx, conn, sub)
	return nil
}

func (a *API) readSocket(ctx context.Context, conn *websocket.Conn) {
	conn.SetReadLimit(maxBodyBytes)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	})

	for {
		var req setModelRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				a.logger.DebugContext(ctx, "websocket read failed", logger.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsPongTimeout))

		m, err := req.model()
		if err != nil {
			continue
		}
		if err := a.setModel(ctx, m); err != nil {
			a.logger.WarnContext(ctx, "websocket set failed", logger.Error(err))
			return
		}
	}
}

func (a *API) writeSocket(ctx context.Context, conn *websocket.Conn, sub *broadcast.Subscription[model.Model]) {
	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	values := sub.Receive(ctx)
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(wsWriteTimeout))
			return

		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				return
			}

		case m, ok := <-values:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(wsWriteTimeout))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(m); err != nil {
				return
			}
		}
	}
}

package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/streamhub/core/handler"
	"github.com/dmitrymomot/streamhub/core/health"
	"github.com/dmitrymomot/streamhub/core/logger"
	"github.com/dmitrymomot/streamhub/core/response"
	"github.com/dmitrymomot/streamhub/internal/deeplink"
	"github.com/dmitrymomot/streamhub/internal/model"
	"github.com/dmitrymomot/streamhub/internal/navigation"
	"github.com/dmitrymomot/streamhub/internal/service"
	"github.com/dmitrymomot/streamhub/pkg/broadcast"
)

// ModelStore is the model source served by the API.
type ModelStore interface {
	Model(ctx context.Context) model.Model
	SetModel(ctx context.Context, m model.Model) error
	Subscribe(ctx context.Context, opts ...broadcast.SubscribeOption) *broadcast.Subscription[model.Model]
}

// API serves the model, deep link and navigation endpoints.
type API struct {
	models ModelStore
	values service.ObservableService
	links  *deeplink.Holder
	router *navigation.Router

	logger      *slog.Logger
	keepAlive   time.Duration
	originCheck func(r *http.Request) bool
	checks      []health.Check
	socketOpts  []response.WebSocketOption

	// ctx is cancelled by Shutdown to end open streams.
	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures the API.
type Option func(*API)

// WithLogger sets the logger for requests and streams.
func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithKeepAlive sets the interval of SSE keep-alive comments. Zero disables them.
func WithKeepAlive(d time.Duration) Option {
	return func(a *API) {
		a.keepAlive = d
	}
}

// WithOriginCheck sets the WebSocket origin policy. By default only
// same-origin upgrades are accepted.
func WithOriginCheck(fn func(r *http.Request) bool) Option {
	return func(a *API) {
		a.originCheck = fn
	}
}

// WithReadinessChecks adds dependency checks to GET /ready.
func WithReadinessChecks(checks ...health.Check) Option {
	return func(a *API) {
		a.checks = append(a.checks, checks...)
	}
}

// New creates the API. models backs /api/model, values backs /api/combine.
func New(models ModelStore, values service.ObservableService, links *deeplink.Holder, router *navigation.Router, opts ...Option) *API {
	a := &API{
		models:    models,
		values:    values,
		links:     links,
		router:    router,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		keepAlive: DefaultKeepAlive,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.socketOpts = []response.WebSocketOption{
		response.WithWSReadBuffer(1024),
		response.WithWSWriteBuffer(1024),
		response.WithWSHandshakeTimeout(10 * time.Second),
		response.WithWSOriginCheck(a.originCheck),
		response.WithWSErrorHandler(func(ctx context.Context, err error) {
			a.logger.DebugContext(ctx, "websocket failed", logger.Error(err))
		}),
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	return a
}

// Handler returns the routed HTTP handler.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(a.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/live", a.handle(health.Liveness[*Context]))
	r.Get("/ready", a.handle(health.Readiness[*Context](a.logger, a.checks...)))

	r.Route("/api", func(r chi.Router) {
		r.Route("/model", func(r chi.Router) {
			r.Get("/", a.handle(a.getModel))
			r.Put("/", a.handle(a.putModel))
			r.Get("/events", a.handle(a.modelEvents))
			r.Get("/ws", a.handle(a.modelSocket))
		})
		r.Route("/combine", func(r chi.Router) {
			r.Get("/model", a.handle(a.getCombineModel))
			r.Put("/model", a.handle(a.putCombineModel))
			r.Get("/events", a.handle(a.combineEvents))
		})
		r.Route("/deeplinks", func(r chi.Router) {
			r.Post("/", a.handle(a.postDeepLink))
			r.Get("/current", a.handle(a.currentDeepLink))
			r.Get("/qr", a.handle(a.deepLinkQR))
		})
		r.Route("/navigation", func(r chi.Router) {
			r.Get("/", a.handle(a.getNavigation))
			r.Put("/", a.handle(a.putNavigation))
			r.Delete("/modal", a.handle(a.dismissModal))
			r.Post("/stack", a.handle(a.pushStack))
			r.Delete("/stack", a.handle(a.popStack))
		})
	})

	r.NotFound(a.handle(func(*Context) handler.Response { return response.Error(response.ErrNotFound) }))
	r.MethodNotAllowed(a.handle(func(*Context) handler.Response { return response.Error(response.ErrMethodNotAllowed) }))

	return r
}

// Shutdown ends every open event stream and WebSocket. Requests that arrive
// later still work. Pass it to server.WithOnShutdown.
func (a *API) Shutdown() {
	a.cancel()
}

// streamContext is cancelled when either the request ends or Shutdown is called.
func (a *API) streamContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(r.Context())
	stop := context.AfterFunc(a.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

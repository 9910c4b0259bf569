package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/streamhub/core/handler"
	"github.com/dmitrymomot/streamhub/core/logger"
	"github.com/dmitrymomot/streamhub/core/response"
)

// maxBodyBytes bounds JSON request bodies and WebSocket messages.
const maxBodyBytes = 1 << 16

func (a *API) handle(fn handler.HandlerFunc[*Context]) http.HandlerFunc {
	return handler.Adapt(newContext, a.handleError, fn)
}

// handleError renders err as JSON. Errors that are not an HTTPError are
// unexpected and logged.
func (a *API) handleError(ctx *Context, err error) {
	var httpErr response.HTTPError
	if !errors.As(err, &httpErr) {
		r := ctx.Request()
		a.logger.ErrorContext(ctx, "request failed",
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			slog.String("request_id", middleware.GetReqID(ctx)),
			logger.Error(err))
	}
	response.JSONErrorHandler(ctx, err)
}

func (a *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		a.logger.DebugContext(r.Context(), "request",
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.StatusCode(status),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			logger.Elapsed(start))
	})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return response.ErrBadRequest.WithError(fmt.Errorf("decode body: %w", err))
	}
	return nil
}

// boolQuery parses the query parameter name, returning def when it is absent.
func boolQuery(r *http.Request, name string, def bool) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, response.ErrBadRequest.WithError(fmt.Errorf("%s: %w", name, err))
	}
	return b, nil
}

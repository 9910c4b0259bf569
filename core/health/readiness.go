package health

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/streamhub/core/handler"
	"github.com/dmitrymomot/streamhub/core/logger"
	"github.com/dmitrymomot/streamhub/core/response"
)

// Check reports whether a dependency can serve requests.
type Check func(context.Context) error

// Readiness runs every check in order. It answers "READY" when all pass.
// The first failure is logged and returned as response.ErrServiceUnavailable
// for the error handler to render.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				if log != nil {
					log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				}
				return response.Error(response.ErrServiceUnavailable.WithError(err))
			}
		}
		return response.String("READY")
	}
}

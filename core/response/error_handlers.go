package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/streamhub/core/handler"
)

// statusCoder is implemented by errors that carry their own HTTP status.
type statusCoder interface {
	StatusCode() int
}

// AsHTTPError converts err to an HTTPError. An HTTPError in the chain is
// returned as is; an error with a StatusCode method maps to the matching
// predefined error; anything else becomes a 500.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCoder
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = ErrInternalServerError
	}
	return base.WithError(err)
}

// ErrorHandler renders errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := AsHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler renders errors as {"code": ..., "message": ...} bodies.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := AsHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}

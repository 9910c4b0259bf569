package handler

import (
	"errors"
	"net/http"
)

// Response renders an HTTP response: headers, status and body.
// A returned error is passed to the ErrorHandler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a request handler over a custom context type.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler handles errors during request processing.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps handlers to add cross-cutting functionality.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// ErrNilResponse is passed to the error handler when a handler returns no response.
var ErrNilResponse = errors.New("nil response")

// Chain wraps fn with mws. The first middleware is the outermost.
func Chain[C Context](fn HandlerFunc[C], mws ...Middleware[C]) HandlerFunc[C] {
	for i := len(mws) - 1; i >= 0; i-- {
		fn = mws[i](fn)
	}
	return fn
}

// Adapt turns fn into an http.HandlerFunc so it can be mounted on any
// standard router. newCtx builds the context for each request; errors from
// the handler or its response go to onErr.
func Adapt[C Context](
	newCtx func(w http.ResponseWriter, r *http.Request) C,
	onErr ErrorHandler[C],
	fn HandlerFunc[C],
	mws ...Middleware[C],
) http.HandlerFunc {
	fn = Chain(fn, mws...)
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := newCtx(w, r)

		response := fn(ctx)
		if response == nil {
			onErr(ctx, ErrNilResponse)
			return
		}
		if err := response(ctx.ResponseWriter(), ctx.Request()); err != nil {
			onErr(ctx, err)
		}
	}
}

package response

import (
	"net/http"

	"github.com/dmitrymomot/streamhub/core/handler"
)

// Render executes resp for ctx. A rendering error becomes a plain 500.
func Render(ctx handler.Context, resp handler.Response) {
	if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
		http.Error(ctx.ResponseWriter(), err.Error(), http.StatusInternalServerError)
	}
}

// String creates a text/plain response with 200 OK status.
func String(content string) handler.Response {
	return StringWithStatus(content, http.StatusOK)
}

// StringWithStatus creates a text/plain response with a custom status code.
// Zero means 200 OK.
func StringWithStatus(content string, status int) handler.Response {
	return BytesWithStatus([]byte(content), "text/plain; charset=utf-8", status)
}

// Bytes creates a response with a custom content type and 200 OK status.
func Bytes(content []byte, contentType string) handler.Response {
	return BytesWithStatus(content, contentType, http.StatusOK)
}

// BytesWithStatus creates a response with a custom content type and status code.
func BytesWithStatus(content []byte, contentType string, status int) handler.Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if len(content) == 0 {
			return nil
		}
		_, err := w.Write(content)
		return err
	}
}

// NoContent creates a 204 No Content response.
func NoContent() handler.Response {
	return Status(http.StatusNoContent)
}

// Status creates an empty response with the given status code.
func Status(code int) handler.Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		if code == 0 {
			code = http.StatusOK
		}
		w.WriteHeader(code)
		return nil
	}
}

// Error returns a response that fails with err, leaving the rendering to
// the error handler.
func Error(err error) handler.Response {
	return func(http.ResponseWriter, *http.Request) error {
		return err
	}
}

// WithHeaders sets headers before rendering resp.
func WithHeaders(resp handler.Response, headers map[string]string) handler.Response {
	if resp == nil || len(headers) == 0 {
		return resp
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		return resp(w, r)
	}
}

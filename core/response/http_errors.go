package response

import (
	"maps"
	"net/http"
)

// HTTPError is an error with an HTTP status, rendered as a JSON body.
type HTTPError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status of the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of e with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy of e with details merged into its own.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	merged := maps.Clone(e.Details)
	if merged == nil {
		merged = make(map[string]any, len(details))
	}
	maps.Copy(merged, details)
	e.Details = merged
	return e
}

// WithError returns a copy of e with err recorded as the cause.
func (e HTTPError) WithError(err error) HTTPError {
	return e.WithDetails(map[string]any{"cause": err.Error()})
}

func newHTTPError(status int, code string) HTTPError {
	return HTTPError{Status: status, Code: code, Message: http.StatusText(status)}
}

var (
	ErrBadRequest            = newHTTPError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized          = newHTTPError(http.StatusUnauthorized, "unauthorized")
	ErrForbidden             = newHTTPError(http.StatusForbidden, "forbidden")
	ErrNotFound              = newHTTPError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed      = newHTTPError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrConflict              = newHTTPError(http.StatusConflict, "conflict")
	ErrRequestEntityTooLarge = newHTTPError(http.StatusRequestEntityTooLarge, "request_entity_too_large")
	ErrUnsupportedMediaType  = newHTTPError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	ErrUnprocessableEntity   = newHTTPError(http.StatusUnprocessableEntity, "unprocessable_entity")
	ErrTooManyRequests       = newHTTPError(http.StatusTooManyRequests, "too_many_requests")

	ErrInternalServerError = newHTTPError(http.StatusInternalServerError, "internal_server_error")
	ErrNotImplemented      = newHTTPError(http.StatusNotImplemented, "not_implemented")
	ErrServiceUnavailable  = newHTTPError(http.StatusServiceUnavailable, "service_unavailable")
)

var httpErrorsByStatus = map[int]HTTPError{
	http.StatusBadRequest:            ErrBadRequest,
	http.StatusUnauthorized:          ErrUnauthorized,
	http.StatusForbidden:             ErrForbidden,
	http.StatusNotFound:              ErrNotFound,
	http.StatusMethodNotAllowed:      ErrMethodNotAllowed,
	http.StatusConflict:              ErrConflict,
	http.StatusRequestEntityTooLarge: ErrRequestEntityTooLarge,
	http.StatusUnsupportedMediaType:  ErrUnsupportedMediaType,
	http.StatusUnprocessableEntity:   ErrUnprocessableEntity,
	http.StatusTooManyRequests:       ErrTooManyRequests,
	http.StatusInternalServerError:   ErrInternalServerError,
	http.StatusNotImplemented:        ErrNotImplemented,
	http.StatusServiceUnavailable:    ErrServiceUnavailable,
}

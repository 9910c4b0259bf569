package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/streamhub/core/response"
)

type conflictError struct{}

func (conflictError) Error() string   { return "already taken" }
func (conflictError) StatusCode() int { return http.StatusConflict }

type teapotError struct{}

func (teapotError) Error() string   { return "teapot" }
func (teapotError) StatusCode() int { return http.StatusTeapot }

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
		cause  any
	}{
		{"http error as is", response.ErrNotFound, http.StatusNotFound, "not_found", nil},
		{"wrapped http error", fmt.Errorf("load: %w", response.ErrBadRequest), http.StatusBadRequest, "bad_request", nil},
		{"status coder", fmt.Errorf("claim: %w", conflictError{}), http.StatusConflict, "conflict", "claim: already taken"},
		{"unknown status", teapotError{}, http.StatusInternalServerError, "internal_server_error", "teapot"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_server_error", "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := response.AsHTTPError(tt.err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.cause, got.Details["cause"])
		})
	}
}

func TestHTTPError_WithDetails(t *testing.T) {
	t.Parallel()

	base := response.ErrUnprocessableEntity.WithDetails(map[string]any{"field": "value"})
	withCause := base.WithError(errors.New("required"))

	assert.Equal(t, map[string]any{"field": "value"}, base.Details)
	assert.Equal(t, map[string]any{"field": "value", "cause": "required"}, withCause.Details)
	assert.Nil(t, response.ErrUnprocessableEntity.Details)
}

func TestJSONErrorHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ctx := newTestContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	response.JSONErrorHandler(ctx, response.ErrServiceUnavailable.WithMessage("hub closed"))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "service_unavailable", body["code"])
	assert.Equal(t, "hub closed", body["message"])
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ctx := newTestContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	response.ErrorHandler(ctx, response.ErrMethodNotAllowed)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method Not Allowed", rec.Body.String())
}

package response_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/streamhub/core/response"
)

type testContext struct {
	context.Context
	w http.ResponseWriter
	r *http.Request
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{Context: r.Context(), w: w, r: r}
}

func (c *testContext) Request() *http.Request              { return c.r }
func (c *testContext) ResponseWriter() http.ResponseWriter { return c.w }
func (c *testContext) Param(string) string                 { return "" }
func (c *testContext) SetValue(any, any)                   {}

func TestPlainResponses(t *testing.T) {
	t.Parallel()

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, response.String("ALIVE")(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "ALIVE", rec.Body.String())
	})

	t.Run("string with zero status", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, response.StringWithStatus("x", 0)(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bytes", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, response.Bytes([]byte{1, 2}, "image/png")(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, []byte{1, 2}, rec.Body.Bytes())
	})

	t.Run("no content", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, response.NoContent()(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("with headers", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		resp := response.WithHeaders(response.String("ok"), map[string]string{"X-Deep-Link": "demoapp://?screen=combine"})
		require.NoError(t, resp(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, "demoapp://?screen=combine", rec.Header().Get("X-Deep-Link"))
		assert.Equal(t, "ok", rec.Body.String())
	})
}

func TestJSONWithStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		v      any
		status int
		want   int
		body   string
	}{
		{"explicit status", map[string]int{"value": 1}, http.StatusAccepted, http.StatusAccepted, "{\"value\":1}\n"},
		{"zero status with data", []int{1}, 0, http.StatusOK, "[1]\n"},
		{"zero status without data", nil, 0, http.StatusNoContent, ""},
		{"not modified has no body", "x", http.StatusNotModified, http.StatusNotModified, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			require.NoError(t, response.JSONWithStatus(tt.v, tt.status)(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		})
	}
}

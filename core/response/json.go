package response

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/streamhub/core/handler"
)

// JSON creates an application/json response with 200 OK status.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus creates an application/json response with a custom status
// code. Zero means 200, or 204 when v is nil. 204 and 304 carry no body.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if status == 0 {
			status = http.StatusOK
			if v == nil {
				status = http.StatusNoContent
			}
		}
		w.WriteHeader(status)

		switch status {
		case http.StatusNoContent, http.StatusNotModified:
			return nil
		}
		return json.NewEncoder(w).Encode(v)
	}
}

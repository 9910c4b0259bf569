package health

import (
	"github.com/dmitrymomot/streamhub/core/handler"
	"github.com/dmitrymomot/streamhub/core/response"
)

// Liveness reports that the process is running. It always answers 200 OK
// with "ALIVE" and checks no dependencies.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// NoContent answers 204 without a body. Suited to high-frequency pings.
func NoContent[C handler.Context](C) handler.Response {
	return response.NoContent()
}

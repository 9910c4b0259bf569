// Package handler defines request handlers over a custom context type.
//
// A HandlerFunc returns a Response instead of writing to the
// http.ResponseWriter itself, so rendering and error handling stay in one
// place:
//
//	func getModel(ctx *httpapi.Context) handler.Response {
//		return response.JSON(models.Model(ctx))
//	}
//
// Adapt mounts such handlers on a standard router:
//
//	r.Get("/api/model", handler.Adapt(newContext, response.JSONErrorHandler[*httpapi.Context], getModel))
//
// Middleware wraps HandlerFunc values and is applied by Chain, outermost first.
package handler

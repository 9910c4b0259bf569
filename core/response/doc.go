// Package response builds handler.Response values: plain text, bytes, JSON,
// server-sent events, WebSocket sessions and structured HTTP errors.
//
//	func getModel(ctx *httpapi.Context) handler.Response {
//		if closed {
//			return response.Error(response.ErrServiceUnavailable)
//		}
//		return response.JSON(model)
//	}
//
// Errors returned by a response reach the error handler. JSONErrorHandler
// renders an HTTPError as is and maps any other error through its
// StatusCode method, defaulting to 500:
//
//	{"code": "not_found", "message": "Not Found", "details": {"cause": "..."}}
//
// SSE takes a typed channel and ends when the channel is closed or the
// request context is done:
//
//	return response.SSE(sub.Receive(ctx),
//		response.WithEventName("model"),
//		response.WithSequentialIDs(),
//	)
package response

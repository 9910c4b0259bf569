// Package httpapi exposes the model hub, the observable model, the deep link
// holder and the navigation router over HTTP.
//
// Routes:
//
//	GET    /live
//	GET    /ready                   503 once the model hub or deep link holder is closed
//	GET    /api/model               current model
//	PUT    /api/model               {"value": n}
//	GET    /api/model/events        server-sent events, ?current=false skips the current value
//	GET    /api/model/ws            WebSocket, pushes models and accepts {"value": n}
//	GET    /api/combine/model       observable model
//	PUT    /api/combine/model       {"value": n}, observers run before the response
//	GET    /api/combine/events      server-sent events of the observable model
//	POST   /api/deeplinks           {"url": "demoapp://?screen=..."}
//	GET    /api/deeplinks/current
//	GET    /api/deeplinks/qr        ?screen=..&id=..&size=.. PNG, format=datauri for JSON
//	GET    /api/navigation
//	PUT    /api/navigation          {"tab": "combine"}
//	DELETE /api/navigation/modal
//	POST   /api/navigation/stack    {"kind": "demo", "value": "1"}
//	DELETE /api/navigation/stack    pops one screen, ?all=true pops to root
//
// Errors are JSON bodies of the form {"code": "...", "message": "..."}.
//
// Streams end when the client disconnects, when the model hub closes, or
// when Shutdown is called:
//
//	api := httpapi.New(models, values, holder, router, httpapi.WithLogger(log))
//	srv := server.New(":8080", server.WithOnShutdown(api.Shutdown))
package httpapi

// Package health provides liveness and readiness handlers.
//
// Liveness only proves the process answers HTTP. Readiness runs dependency
// checks and fails with 503 as soon as one of them errors:
//
//	r.Get("/live", handler.Adapt(newContext, onErr, health.Liveness[*Context]))
//	r.Get("/ready", handler.Adapt(newContext, onErr, health.Readiness[*Context](log,
//		models.Healthcheck,
//		links.Healthcheck,
//	)))
package health

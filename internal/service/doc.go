// Package service owns the shared model and publishes its changes in two styles:
// HubService through per-subscriber streams (package broadcast), ValueService
// through synchronous observers (package observable).
package service

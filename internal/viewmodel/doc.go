// Package viewmodel contains the consumers of the model services: one view
// model per propagation style. Both take their service through Inject, honour
// only the first injection and refresh their shown model from the service
// whenever it reports a change.
package viewmodel

// Package deeplink encodes, parses and holds the app's deep links.
//
// Links use the demoapp scheme with the destination in the query:
//
//	demoapp://?screen=async_stream
//	demoapp://?screen=screen/sheet&id=31241512
//
// A Holder receives raw URLs (for example from the HTTP API), postpones them
// until the consumer is ready, and publishes the current link through a
// broadcast hub so navigation can react to it.
package deeplink

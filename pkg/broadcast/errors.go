package broadcast

import "errors"

var (
	// ErrHubClosed is returned by operations that require an open hub.
	ErrHubClosed = errors.New("broadcast: hub is closed")

	// ErrSubscriptionClosed is returned by Next once a subscription is finished
	// and every buffered value has been consumed.
	ErrSubscriptionClosed = errors.New("broadcast: subscription is closed")
)

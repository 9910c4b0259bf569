package streamreader

import "errors"

// ErrCallbackPanicked wraps a panic recovered from a reader callback.
var ErrCallbackPanicked = errors.New("streamreader: callback panicked")

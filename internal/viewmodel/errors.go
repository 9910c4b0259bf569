package viewmodel

import "errors"

// ErrNotInjected is returned when a view model is used before Inject.
var ErrNotInjected = errors.New("viewmodel: service not injected")

package deeplink

import "errors"

var (
	ErrInvalidURL    = errors.New("deeplink: invalid url")
	ErrEmptyQuery    = errors.New("deeplink: url has no query")
	ErrMissingScreen = errors.New("deeplink: missing screen")
	ErrUnknownScreen = errors.New("deeplink: unknown screen")
	ErrMissingID     = errors.New("deeplink: missing id")
	ErrHolderClosed  = errors.New("deeplink: holder is closed")
)

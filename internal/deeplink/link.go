package deeplink

import (
	"fmt"
	"net/url"
	"strings"
)

// Scheme is the URL scheme the app registers for deep links.
const Scheme = "demoapp"

// Query keys.
const (
	KeyScreen = "screen"
	KeyID     = "id"
)

// Screen is a deep-link destination.
type Screen string

const (
	ScreenAsyncStream Screen = "async_stream"
	ScreenCombine     Screen = "combine"
	ScreenNavigation  Screen = "navigation"
	ScreenFullScreen  Screen = "screen/fullscreen"
	ScreenSheet       Screen = "screen/sheet"
)

// Valid reports whether s is a known screen.
func (s Screen) Valid() bool {
	switch s {
	case ScreenAsyncStream, ScreenCombine, ScreenNavigation, ScreenFullScreen, ScreenSheet:
		return true
	}
	return false
}

// NeedsID reports whether links to s must carry an id.
func (s Screen) NeedsID() bool {
	return s == ScreenFullScreen || s == ScreenSheet
}

// Link is a parsed deep link.
type Link struct {
	Screen Screen
	ID     string
}

// TabAsyncStream links to the stream demo tab.
func TabAsyncStream() Link { return Link{Screen: ScreenAsyncStream} }

// TabCombine links to the observer demo tab.
func TabCombine() Link { return Link{Screen: ScreenCombine} }

// TabNavigation links to the navigation demo tab.
func TabNavigation() Link { return Link{Screen: ScreenNavigation} }

// FullScreen links to a demo screen presented full screen.
func FullScreen(id string) Link { return Link{Screen: ScreenFullScreen, ID: id} }

// Sheet links to a demo screen presented as a sheet.
func Sheet(id string) Link { return Link{Screen: ScreenSheet, ID: id} }

// String encodes l as demoapp://?screen=<screen>[&id=<id>].
func (l Link) String() string {
	var b strings.Builder
	b.WriteString(Scheme)
	b.WriteString("://?")
	b.WriteString(KeyScreen)
	b.WriteByte('=')
	b.WriteString(escape(string(l.Screen)))
	if l.ID != "" {
		b.WriteByte('&')
		b.WriteString(KeyID)
		b.WriteByte('=')
		b.WriteString(escape(l.ID))
	}
	return b.String()
}

// Equal compares links by their encoded form.
func (l Link) Equal(other Link) bool {
	return l.String() == other.String()
}

// Parse decodes a deep-link URL. The scheme is not checked.
func Parse(raw string) (Link, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Link{}, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return Link{}, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if len(query) == 0 {
		return Link{}, ErrEmptyQuery
	}

	if !query.Has(KeyScreen) {
		return Link{}, ErrMissingScreen
	}
	screen := Screen(query.Get(KeyScreen))
	if !screen.Valid() {
		return Link{}, fmt.Errorf("%w: %q", ErrUnknownScreen, screen)
	}

	link := Link{Screen: screen}
	if screen.NeedsID() {
		if !query.Has(KeyID) {
			return Link{}, fmt.Errorf("%w: %s", ErrMissingID, screen)
		}
		link.ID = query.Get(KeyID)
	}
	return link, nil
}

// escape query-escapes s but keeps '/' readable, as screen names contain it.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "%2F", "/")
}

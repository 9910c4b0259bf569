package navigation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrymomot/streamhub/internal/deeplink"
	"github.com/dmitrymomot/streamhub/pkg/broadcast"
	"github.com/dmitrymomot/streamhub/pkg/streamreader"
)

// Tab is a top-level section of the app.
type Tab string

const (
	TabAsyncStream Tab = "async_stream"
	TabCombine     Tab = "combine"
	TabNavigation  Tab = "navigation"
)

// Tabs lists the available tabs in display order.
var Tabs = []Tab{TabAsyncStream, TabCombine, TabNavigation}

// Title returns the tab's display name.
func (t Tab) Title() string {
	switch t {
	case TabAsyncStream:
		return "Async Stream"
	case TabCombine:
		return "Combine"
	case TabNavigation:
		return "Navigation"
	}
	return string(t)
}

// Presentation is how a modal screen is shown.
type Presentation string

const (
	PresentSheet      Presentation = "sheet"
	PresentFullScreen Presentation = "fullscreen"
)

// Modal is a screen presented over the selected tab.
type Modal struct {
	Presentation Presentation `json:"presentation"`
	ID           string       `json:"id"`
}

// StackKind names a screen that can be pushed on the navigation stack.
type StackKind string

const (
	StackDemo        StackKind = "demo"
	StackAsyncStream StackKind = "async_stream"
	StackCombine     StackKind = "combine"
)

// StackScreen is one entry of the navigation stack.
type StackScreen struct {
	Kind  StackKind `json:"kind"`
	Value string    `json:"value,omitempty"`
}

// ID identifies the screen within the stack, e.g. "demoScreen_3".
func (s StackScreen) ID() string {
	switch s.Kind {
	case StackDemo:
		return "demoScreen_" + s.Value
	case StackAsyncStream:
		return "asyncStreamScreen_" + s.Value
	case StackCombine:
		return "combineScreen_" + s.Value
	}
	return string(s.Kind)
}

func (s StackScreen) valid() bool {
	switch s.Kind {
	case StackDemo, StackAsyncStream, StackCombine:
		return true
	}
	return false
}

// State is the navigation snapshot published by Router.
// Path is shared between subscribers and must not be modified.
type State struct {
	Tab   Tab           `json:"tab"`
	Modal *Modal        `json:"modal,omitempty"`
	Path  []StackScreen `json:"path"`
}

var (
	// ErrUnroutable is returned for links the router has no destination for.
	ErrUnroutable = errors.New("navigation: link has no destination")
	// ErrInvalidStackScreen is returned when pushing a screen of unknown kind.
	ErrInvalidStackScreen = errors.New("navigation: invalid stack screen")
)

// Router holds the navigation state and applies deep links to it.
type Router struct {
	// mu serializes read-modify-write updates of state.
	mu    sync.Mutex
	state *broadcast.Hub[State]
}

// NewRouter starts on the first tab with nothing presented.
func NewRouter() *Router {
	return &Router{state: broadcast.NewHub(State{Tab: Tabs[0]})}
}

// State returns the current navigation state.
func (r *Router) State() State {
	return r.state.Get()
}

// Select switches to tab and dismisses any modal. The stack is kept.
func (r *Router) Select(tab Tab) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state.Get()
	r.state.Set(State{Tab: tab, Path: s.Path})
}

// Dismiss closes the presented modal, if any.
func (r *Router) Dismiss() {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state.Get()
	if s.Modal == nil {
		return
	}
	r.state.Set(State{Tab: s.Tab, Path: s.Path})
}

// Push appends screen to the navigation stack.
func (r *Router) Push(screen StackScreen) error {
	if !screen.valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStackScreen, screen.Kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state.Get()
	s.Path = append(slices.Clip(s.Path), screen)
	r.state.Set(s)
	return nil
}

// Pop removes the top screen of the stack. It reports false when the stack
// is already empty.
func (r *Router) Pop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state.Get()
	if len(s.Path) == 0 {
		return false
	}
	if len(s.Path) == 1 {
		s.Path = nil
	} else {
		s.Path = slices.Clone(s.Path[:len(s.Path)-1])
	}
	r.state.Set(s)
	return true
}

// PopToRoot empties the stack.
func (r *Router) PopToRoot() {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state.Get()
	if len(s.Path) == 0 {
		return
	}
	s.Path = nil
	r.state.Set(s)
}

// Apply routes link: tab links select a tab, screen links present a modal on
// the current tab.
func (r *Router) Apply(link deeplink.Link) error {
	switch link.Screen {
	case deeplink.ScreenAsyncStream:
		r.Select(TabAsyncStream)
	case deeplink.ScreenCombine:
		r.Select(TabCombine)
	case deeplink.ScreenNavigation:
		r.Select(TabNavigation)
	case deeplink.ScreenSheet:
		r.present(Modal{Presentation: PresentSheet, ID: link.ID})
	case deeplink.ScreenFullScreen:
		r.present(Modal{Presentation: PresentFullScreen, ID: link.ID})
	default:
		return ErrUnroutable
	}
	return nil
}

// Follow applies every link handled by holder until readers is disposed.
func (r *Router) Follow(readers *streamreader.Readers, holder *deeplink.Holder) {
	streamreader.Add(readers, holder.Subscribe(context.Background()),
		func(_ context.Context, link *deeplink.Link) error {
			// Cleared links keep the current screen.
			if link == nil {
				return nil
			}
			return r.Apply(*link)
		})
}

// Subscribe streams navigation state changes.
func (r *Router) Subscribe(ctx context.Context, opts ...broadcast.SubscribeOption) *broadcast.Subscription[State] {
	return r.state.Subscribe(ctx, opts...)
}

// Close finishes every state subscription.
func (r *Router) Close() error {
	return r.state.Close()
}

func (r *Router) present(m Modal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state.Get()
	r.state.Set(State{Tab: s.Tab, Modal: &m, Path: s.Path})
}

package httpapi

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrymomot/streamhub/core/handler"
	"github.com/dmitrymomot/streamhub/core/response"
	"github.com/dmitrymomot/streamhub/internal/navigation"
)

type navigationResponse struct {
	Tab   navigation.Tab    `json:"tab"`
	Title string            `json:"title"`
	Modal *navigation.Modal `json:"modal,omitempty"`
	Path  []stackEntry      `json:"path"`
	Tabs  []navigation.Tab  `json:"tabs"`
}

type stackEntry struct {
	navigation.StackScreen
	ID string `json:"id"`
}

type selectTabRequest struct {
	Tab navigation.Tab `json:"tab"`
}

type pushRequest struct {
	Kind  navigation.StackKind `json:"kind"`
	Value string               `json:"value"`
}

func (a *API) navigationState() navigationResponse {
	s := a.router.State()
	path := make([]stackEntry, 0, len(s.Path))
	for _, screen := range s.Path {
		path = append(path, stackEntry{StackScreen: screen, ID: screen.ID()})
	}
	return navigationResponse{
		Tab:   s.Tab,
		Title: s.Tab.Title(),
		Modal: s.Modal,
		Path:  path,
		Tabs:  navigation.Tabs,
	}
}

func (a *API) getNavigation(*Context) handler.Response {
	return response.JSON(a.navigationState())
}

func (a *API) putNavigation(ctx *Context) handler.Response {
	var req selectTabRequest
	if err := decodeJSON(ctx.Request(), &req); err != nil {
		return response.Error(err)
	}
	if !slices.Contains(navigation.Tabs, req.Tab) {
		return response.Error(response.ErrUnprocessableEntity.WithError(fmt.Errorf("unknown tab %q", req.Tab)))
	}

	a.router.Select(req.Tab)
	return response.JSON(a.navigationState())
}

func (a *API) dismissModal(*Context) handler.Response {
	a.router.Dismiss()
	return response.JSON(a.navigationState())
}

func (a *API) pushStack(ctx *Context) handler.Response {
	var req pushRequest
	if err := decodeJSON(ctx.Request(), &req); err != nil {
		return response.Error(err)
	}

	err := a.router.Push(navigation.StackScreen{Kind: req.Kind, Value: req.Value})
	if errors.Is(err, navigation.ErrInvalidStackScreen) {
		return response.Error(response.ErrUnprocessableEntity.WithError(err))
	}
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(a.navigationState())
}

// popStack removes the top screen, or every screen with ?all=true.
func (a *API) popStack(ctx *Context) handler.Response {
	all, err := boolQuery(ctx.Request(), "all", false)
	if err != nil {
		return response.Error(err)
	}

	if all {
		a.router.PopToRoot()
	} else if !a.router.Pop() {
		return response.Error(response.ErrConflict.WithMessage("navigation stack is empty"))
	}
	return response.JSON(a.navigationState())
}

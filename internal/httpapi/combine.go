package httpapi

import (
	"context"

	"github.com/dmitrymomot/streamhub/core/handler"
	"github.com/dmitrymomot/streamhub/core/response"
	"github.com/dmitrymomot/streamhub/internal/model"
	"github.com/dmitrymomot/streamhub/pkg/broadcast"
	"github.com/dmitrymomot/streamhub/pkg/observable"
)

// The combine endpoints serve the observable-backed model. Writes notify
// observers before the response is sent.

func (a *API) getCombineModel(*Context) handler.Response {
	return response.JSON(a.values.Model())
}

func (a *API) putCombineModel(ctx *Context) handler.Response {
	var req setModelRequest
	if err := decodeJSON(ctx.Request(), &req); err != nil {
		return response.Error(err)
	}
	m, err := req.model()
	if err != nil {
		return response.Error(err)
	}

	a.values.SetModel(m)
	return response.JSON(m)
}

func (a *API) combineEvents(ctx *Context) handler.Response {
	withCurrent, err := boolQuery(ctx.Request(), "current", true)
	if err != nil {
		return response.Error(err)
	}
	return a.events(func(ctx context.Context) *broadcast.Subscription[model.Model] {
		return observable.Stream(ctx, a.values.Observable(), withCurrent)
	})
}

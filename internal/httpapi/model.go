package httpapi

import (
	"context"
	"errors"

	"github.com/dmitrymomot/streamhub/core/handler"
	"github.com/dmitrymomot/streamhub/core/response"
	"github.com/dmitrymomot/streamhub/internal/model"
	"github.com/dmitrymomot/streamhub/pkg/broadcast"
)

type setModelRequest struct {
	Value *int `json:"value"`
}

func (req setModelRequest) model() (model.Model, error) {
	if req.Value == nil {
		return model.Model{}, response.ErrUnprocessableEntity.WithError(errors.New("value is required"))
	}
	return model.New(*req.Value), nil
}

func (a *API) getModel(ctx *Context) handler.Response {
	return response.JSON(a.models.Model(ctx))
}

func (a *API) putModel(ctx *Context) handler.Response {
	var req setModelRequest
	if err := decodeJSON(ctx.Request(), &req); err != nil {
		return response.Error(err)
	}
	m, err := req.model()
	if err != nil {
		return response.Error(err)
	}

	if err := a.setModel(ctx, m); err != nil {
		return response.Error(err)
	}
	return response.JSON(m)
}

func (a *API) setModel(ctx context.Context, m model.Model) error {
	err := a.models.SetModel(ctx, m)
	if errors.Is(err, broadcast.ErrHubClosed) {
		return response.ErrServiceUnavailable.WithError(err)
	}
	return err
}

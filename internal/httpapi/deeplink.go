package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/streamhub/core/handler"
	"github.com/dmitrymomot/streamhub/core/response"
	"github.com/dmitrymomot/streamhub/internal/deeplink"
	"github.com/dmitrymomot/streamhub/pkg/qrcode"
)

type deepLinkRequest struct {
	URL string `json:"url"`
}

type deepLinkResponse struct {
	URL    string          `json:"url"`
	Screen deeplink.Screen `json:"screen"`
	ID     string          `json:"id,omitempty"`
}

type qrResponse struct {
	URL     string `json:"url"`
	DataURI string `json:"data_uri"`
}

func newDeepLinkResponse(l deeplink.Link) deepLinkResponse {
	return deepLinkResponse{URL: l.String(), Screen: l.Screen, ID: l.ID}
}

// postDeepLink hands a URL to the holder. 202 means it was accepted; the
// holder may still postpone it until the app is ready.
func (a *API) postDeepLink(ctx *Context) handler.Response {
	var req deepLinkRequest
	if err := decodeJSON(ctx.Request(), &req); err != nil {
		return response.Error(err)
	}
	if req.URL == "" {
		return response.Error(response.ErrUnprocessableEntity.WithError(errors.New("url is required")))
	}

	if err := a.links.Handle(req.URL); err != nil {
		return response.Error(deepLinkError(err))
	}
	return response.JSONWithStatus(map[string]string{"url": req.URL}, http.StatusAccepted)
}

func (a *API) currentDeepLink(*Context) handler.Response {
	l, ok := a.links.Current()
	if !ok {
		return response.Error(response.ErrNotFound.WithError(errors.New("no current deep link")))
	}
	return response.JSON(newDeepLinkResponse(l))
}

// deepLinkQR renders the link built from the screen and id query parameters
// as a QR code. The optional size parameter sets the image edge in pixels.
// format=datauri answers JSON with a base64 data URI instead of a PNG.
func (a *API) deepLinkQR(ctx *Context) handler.Response {
	q := ctx.Request().URL.Query()

	link, err := deeplink.Parse(deeplink.Link{
		Screen: deeplink.Screen(q.Get("screen")),
		ID:     q.Get("id"),
	}.String())
	if err != nil {
		return response.Error(deepLinkError(err))
	}

	size := qrcode.DefaultSize
	if v := q.Get("size"); v != "" {
		if size, err = strconv.Atoi(v); err != nil {
			return response.Error(response.ErrBadRequest.WithError(fmt.Errorf("size: %w", err)))
		}
	}

	headers := map[string]string{"X-Deep-Link": link.String()}
	switch format := q.Get("format"); format {
	case "", "png":
		png, err := qrcode.Generate(link.String(), size)
		if err != nil {
			return response.Error(qrError(err))
		}
		headers["Content-Length"] = strconv.Itoa(len(png))
		return response.WithHeaders(response.Bytes(png, "image/png"), headers)

	case "datauri":
		uri, err := qrcode.GenerateBase64Image(link.String(), size)
		if err != nil {
			return response.Error(qrError(err))
		}
		return response.WithHeaders(response.JSON(qrResponse{URL: link.String(), DataURI: uri}), headers)

	default:
		return response.Error(response.ErrBadRequest.WithError(fmt.Errorf("unknown format %q", format)))
	}
}

func qrError(err error) error {
	if errors.Is(err, qrcode.ErrInvalidSize) {
		return response.ErrBadRequest.WithError(err)
	}
	return err
}

func deepLinkError(err error) error {
	switch {
	case errors.Is(err, deeplink.ErrHolderClosed):
		return response.ErrServiceUnavailable.WithError(err)
	case errors.Is(err, deeplink.ErrInvalidURL),
		errors.Is(err, deeplink.ErrEmptyQuery),
		errors.Is(err, deeplink.ErrMissingScreen),
		errors.Is(err, deeplink.ErrUnknownScreen),
		errors.Is(err, deeplink.ErrMissingID):
		return response.ErrUnprocessableEntity.WithError(err)
	}
	return err
}

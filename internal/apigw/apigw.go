// Package apigw adapts API Gateway proxy events to the api router.
package apigw

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/items/api"
)

// Handler serves API Gateway REST (v1) and HTTP (v2) proxy events.
type Handler struct {
	router   *api.Router
	logger   *slog.Logger
	basePath string
}

// NewHandler creates a new Handler. basePath, when set, is stripped from
// incoming paths (e.g. a custom-domain mapping like "/v1").
func NewHandler(router *api.Router, logger *slog.Logger, basePath string) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		router:   router,
		logger:   logger,
		basePath: strings.TrimSuffix(basePath, "/"),
	}
}

// Handle processes a REST API proxy event. It never returns an error:
// every failure is rendered as an HTTP response so API Gateway does not
// replace it with a generic 502.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, ok := h.decodeBody(event.Body, event.IsBase64Encoded, event.RequestContext.RequestID)
	var resp api.Response
	if ok {
		resp = h.router.Dispatch(ctx, api.Request{
			Method: event.HTTPMethod,
			Path:   h.stripBase(event.Path),
			Body:   body,
		})
	} else {
		resp = api.FormatError(invalidBody(), "")
	}

	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}, nil
}

// HandleV2 processes an HTTP API (payload format 2.0) event.
func (h *Handler) HandleV2(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	body, ok := h.decodeBody(event.Body, event.IsBase64Encoded, event.RequestContext.RequestID)
	var resp api.Response
	if ok {
		resp = h.router.Dispatch(ctx, api.Request{
			Method: event.RequestContext.HTTP.Method,
			Path:   h.stripBase(event.RawPath),
			Body:   body,
		})
	} else {
		resp = api.FormatError(invalidBody(), "")
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}, nil
}

// decodeBody returns the raw request body, decoding base64 when API Gateway
// marked it as binary.
func (h *Handler) decodeBody(body string, isBase64 bool, requestID string) ([]byte, bool) {
	if !isBase64 {
		return []byte(body), true
	}
	decoded, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		h.logger.Warn("invalid base64 request body",
			"requestID", requestID,
			"error", err,
		)
		return nil, false
	}
	return decoded, true
}

func (h *Handler) stripBase(path string) string {
	if h.basePath == "" {
		return path
	}
	if rest, ok := strings.CutPrefix(path, h.basePath); ok && (rest == "" || rest[0] == '/') {
		return rest
	}
	return path
}

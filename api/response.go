package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jacentio/items/item"
)

// Request is an ingress-neutral HTTP request.
type Request struct {
	Method string
	Path   string
	Body   []byte
}

// Response is an ingress-neutral HTTP response.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Error kinds reported in the "error" field of error bodies.
const (
	KindValidation       = "ValidationError"
	KindNotFound         = "NotFound"
	KindRouteNotFound    = "RouteNotFound"
	KindMethodNotAllowed = "MethodNotAllowed"
	KindInternal         = "InternalError"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details []item.FieldError `json:"details,omitempty"`
	ErrorID string            `json:"errorId,omitempty"`
}

const contentTypeJSON = "application/json"

// internalBody is written when a response body cannot be encoded.
var internalBody = []byte(`{"error":"InternalError","message":"internal server error"}`)

// JSON renders v as a JSON response with the given status.
func JSON(status int, v any) Response {
	body, err := json.Marshal(v)
	if err != nil {
		return Response{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": contentTypeJSON},
			Body:       internalBody,
		}
	}
	return Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": contentTypeJSON},
		Body:       body,
	}
}

// NoContent renders an empty 204 response.
func NoContent() Response {
	return Response{StatusCode: http.StatusNoContent, Headers: map[string]string{}}
}

// IsInternal reports whether err is rendered as a 500.
func IsInternal(err error) bool {
	var (
		verr *item.ValidationError
		nf   *item.NotFoundError
		re   *RouteError
	)
	return !errors.As(err, &verr) && !errors.As(err, &nf) && !errors.As(err, &re)
}

// FormatError renders err as an error response. errorID is reported only
// for internal errors, whose message never includes err's text.
func FormatError(err error, errorID string) Response {
	var (
		verr *item.ValidationError
		nf   *item.NotFoundError
		re   *RouteError
	)
	switch {
	case errors.As(err, &verr):
		return JSON(http.StatusBadRequest, ErrorBody{
			Error:   KindValidation,
			Message: "invalid item payload",
			Details: verr.Fields,
		})
	case errors.As(err, &nf):
		return JSON(http.StatusNotFound, ErrorBody{
			Error:   KindNotFound,
			Message: fmt.Sprintf("item %q not found", nf.ID),
		})
	case errors.As(err, &re):
		if len(re.Allowed) > 0 {
			resp := JSON(http.StatusMethodNotAllowed, ErrorBody{
				Error:   KindMethodNotAllowed,
				Message: fmt.Sprintf("method %s not allowed on %s", re.Method, re.Path),
			})
			resp.Headers["Allow"] = strings.Join(re.Allowed, ", ")
			return resp
		}
		return JSON(http.StatusNotFound, ErrorBody{
			Error:   KindRouteNotFound,
			Message: fmt.Sprintf("no route for %s %s", re.Method, re.Path),
		})
	default:
		return JSON(http.StatusInternalServerError, ErrorBody{
			Error:   KindInternal,
			Message: "internal server error",
			ErrorID: errorID,
		})
	}
}

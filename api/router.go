package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jacentio/items/item"
)

// Operation names the handler a request was routed to.
type Operation string

const (
	OpCreate Operation = "create"
	OpGet    Operation = "get"
	OpList   Operation = "list"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"

	// OpNone is reported for requests that matched no handler.
	OpNone Operation = "none"
)

// collectionPath is the resource root.
const collectionPath = "/items"

var (
	collectionMethods = map[string]Operation{
		http.MethodGet:  OpList,
		http.MethodPost: OpCreate,
	}
	memberMethods = map[string]Operation{
		http.MethodGet:    OpGet,
		http.MethodPut:    OpUpdate,
		http.MethodDelete: OpDelete,
	}
)

// RouteError reports a request no handler accepts. Allowed is empty when the
// path itself is unknown, and lists the supported methods otherwise.
type RouteError struct {
	Method  string
	Path    string
	Allowed []string
}

func (e *RouteError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("items: method %s not allowed on %s", e.Method, e.Path)
	}
	return fmt.Sprintf("items: no route for %s %s", e.Method, e.Path)
}

// Route resolves method and path to an operation and, for member paths, the
// item id.
func Route(method, path string) (Operation, string, error) {
	method = strings.ToUpper(method)
	rest, ok := strings.CutPrefix(path, collectionPath)
	if !ok {
		return OpNone, "", &RouteError{Method: method, Path: path}
	}

	var (
		id      string
		methods map[string]Operation
	)
	switch {
	case rest == "" || rest == "/":
		methods = collectionMethods
	case strings.HasPrefix(rest, "/"):
		segment := strings.TrimSuffix(rest[1:], "/")
		if segment == "" || strings.Contains(segment, "/") {
			return OpNone, "", &RouteError{Method: method, Path: path}
		}
		unescaped, err := url.PathUnescape(segment)
		if err != nil || unescaped == "" {
			return OpNone, "", &RouteError{Method: method, Path: path}
		}
		id = unescaped
		methods = memberMethods
	default:
		// e.g. "/itemsfoo"
		return OpNone, "", &RouteError{Method: method, Path: path}
	}

	op, ok := methods[method]
	if !ok {
		return OpNone, "", &RouteError{Method: method, Path: path, Allowed: allowed(methods)}
	}
	return op, id, nil
}

func allowed(methods map[string]Operation) []string {
	out := make([]string, 0, len(methods))
	for _, m := range []string{http.MethodDelete, http.MethodGet, http.MethodPost, http.MethodPut} {
		if _, ok := methods[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Router dispatches requests to a Service and formats the outcome.
type Router struct {
	svc     *Service
	logger  *slog.Logger
	metrics *Metrics
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithRouterLogger sets the router logger.
func WithRouterLogger(logger *slog.Logger) RouterOption {
	return func(r *Router) { r.logger = logger }
}

// WithMetrics records every dispatched request in m.
func WithMetrics(m *Metrics) RouterOption {
	return func(r *Router) { r.metrics = m }
}

// NewRouter creates a Router for svc.
func NewRouter(svc *Service, opts ...RouterOption) *Router {
	r := &Router{svc: svc}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Dispatch handles a single request. It never fails: every error is
// rendered as an error response.
func (r *Router) Dispatch(ctx context.Context, req Request) Response {
	start := time.Now()

	op, id, err := Route(req.Method, req.Path)
	var resp Response
	if err != nil {
		resp = r.fail(ctx, op, req, err)
	} else {
		resp = r.invoke(ctx, op, id, req)
	}

	r.logger.DebugContext(ctx, "request handled",
		"method", req.Method,
		"path", req.Path,
		"operation", op,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	if r.metrics != nil {
		r.metrics.observe(op, resp.StatusCode, time.Since(start))
	}
	return resp
}

func (r *Router) invoke(ctx context.Context, op Operation, id string, req Request) Response {
	switch op {
	case OpList:
		items, err := r.svc.List(ctx)
		if err != nil {
			return r.fail(ctx, op, req, err)
		}
		return JSON(http.StatusOK, items)

	case OpGet:
		it, err := r.svc.Get(ctx, id)
		if err != nil {
			return r.fail(ctx, op, req, err)
		}
		return JSON(http.StatusOK, it)

	case OpCreate, OpUpdate:
		payload, err := item.DecodePayload(req.Body)
		if err != nil {
			return r.fail(ctx, op, req, err)
		}
		if op == OpCreate {
			it, err := r.svc.Create(ctx, payload)
			if err != nil {
				return r.fail(ctx, op, req, err)
			}
			return JSON(http.StatusCreated, it)
		}
		it, err := r.svc.Update(ctx, id, payload)
		if err != nil {
			return r.fail(ctx, op, req, err)
		}
		return JSON(http.StatusOK, it)

	case OpDelete:
		if err := r.svc.Delete(ctx, id); err != nil {
			return r.fail(ctx, op, req, err)
		}
		return NoContent()
	}

	return r.fail(ctx, op, req, &RouteError{Method: req.Method, Path: req.Path})
}

// fail formats err. Internal errors are logged with an opaque id that is
// also returned to the client.
func (r *Router) fail(ctx context.Context, op Operation, req Request, err error) Response {
	if !IsInternal(err) {
		return FormatError(err, "")
	}
	errorID := uuid.NewString()
	r.logger.ErrorContext(ctx, "request failed",
		"errorId", errorID,
		"operation", op,
		"method", req.Method,
		"path", req.Path,
		"error", err,
	)
	return FormatError(err, errorID)
}

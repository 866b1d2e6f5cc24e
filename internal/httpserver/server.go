// Package httpserver serves the items router over plain HTTP for local
// development and container deployments.
package httpserver

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jacentio/items/api"
	"github.com/jacentio/items/item"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

// New returns a chi mux serving the items routes plus /healthz and /metrics.
func New(router *api.Router, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	items := itemsHandler(router, logger)
	r.Handle("/items", items)
	r.Handle("/items/*", items)

	// Unknown paths and methods get the same JSON error bodies as item routes.
	r.NotFound(items.ServeHTTP)
	r.MethodNotAllowed(items.ServeHTTP)
	return r
}

// itemsHandler forwards a request to the router and writes its response.
func itemsHandler(router *api.Router, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			reason := "could not read request body"
			if errors.As(err, &tooLarge) {
				reason = "request body too large"
			}
			logger.Warn("failed to read request body",
				"requestID", middleware.GetReqID(r.Context()),
				"error", err,
			)
			write(w, api.FormatError(&item.ValidationError{Fields: []item.FieldError{
				{Field: "body", Reason: reason},
			}}, ""))
			return
		}

		write(w, router.Dispatch(r.Context(), api.Request{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Body:   body,
		}))
	})
}

func write(w http.ResponseWriter, resp api.Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body)
	}
}

// NewServer returns an *http.Server with production-ready timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

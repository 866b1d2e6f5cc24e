package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects request counts and latencies per operation and status.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "items",
			Name:      "requests_total",
			Help:      "Requests handled, by operation and status code.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "items",
			Name:      "request_duration_seconds",
			Help:      "Request handling latency, by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) observe(op Operation, status int, d time.Duration) {
	m.requests.WithLabelValues(string(op), strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(string(op)).Observe(d.Seconds())
}

// Package metrics provides Prometheus instrumentation for the relay.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the relay.
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	UpstreamCounter  *prometheus.CounterVec
	UpstreamDuration prometheus.Histogram

	registry *prometheus.Registry
}

// New creates the relay collectors and registers them on the given registry.
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		RequestCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bancheck_http_requests_total",
			Help: "Total HTTP requests served, by method, route and status code.",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bancheck_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		UpstreamCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bancheck_upstream_requests_total",
			Help: "Total upstream Garena calls, by outcome.",
		}, []string{"outcome"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bancheck_upstream_request_duration_seconds",
			Help:    "Upstream Garena call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		registry: registry,
	}

	collectors := []prometheus.Collector{
		m.RequestCounter,
		m.RequestDuration,
		m.UpstreamCounter,
		m.UpstreamDuration,
	}
	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	return m, nil
}

// RecordRequest records one served HTTP request.
func (m *Metrics) RecordRequest(method, path string, status int, seconds float64) {
	m.RequestCounter.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordUpstreamRequest records one upstream Garena call.
func (m *Metrics) RecordUpstreamRequest(outcome string, seconds float64) {
	m.UpstreamCounter.WithLabelValues(outcome).Inc()
	m.UpstreamDuration.Observe(seconds)
}

// Handler returns the exposition endpoint for the underlying registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware returns a gin middleware that records request counts and
// latency. The route template is used as the path label so unmatched
// requests cannot blow up label cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start).Seconds())
	}
}

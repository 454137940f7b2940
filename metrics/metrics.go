// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  prometheus.Histogram
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "boardcamp_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "boardcamp_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	c.registry.MustRegister(c.requests, c.latency)
	return c
}

// RecordRequest counts one handled request.
func (c *Collector) RecordRequest(method, route string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.Observe(elapsed.Seconds())
}

// Handler serves the /metrics endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

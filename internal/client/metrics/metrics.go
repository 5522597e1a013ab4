// Package metrics records Prometheus metrics of the catalog API transport.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives one observation per finished HTTP exchange. status is
// the HTTP status code, or 0 when no response was received.
type Recorder interface {
	ObserveRequest(operation string, status int, d time.Duration)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gophcatalog_api_requests_total",
			Help: "Catalog API requests by operation and status class.",
		}, []string{"operation", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gophcatalog_api_request_duration_seconds",
			Help:    "Catalog API request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	reg.MustRegister(c.requests, c.latency)

	return c
}

func (c *Collector) ObserveRequest(operation string, status int, d time.Duration) {
	c.requests.WithLabelValues(operation, StatusClass(status)).Inc()
	c.latency.WithLabelValues(operation).Observe(d.Seconds())
}

// StatusClass maps a status code to its label: "2xx", "4xx", ... or "error"
// when no response was received.
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}

type nopRecorder struct{}

func (nopRecorder) ObserveRequest(string, int, time.Duration) {}

// Nop returns a Recorder that drops observations.
func Nop() Recorder { return nopRecorder{} }

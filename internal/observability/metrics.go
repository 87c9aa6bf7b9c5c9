// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Fetch metrics
	FetchRequests *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec

	// Load cycle metrics
	LoadCycles         *prometheus.CounterVec
	LoadCycleDuration  prometheus.Histogram
	ValidationFailures *prometheus.CounterVec
	LastPublished      prometheus.Gauge

	// Live feed metrics
	LiveSubscribers prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "brubeckscan"
	}

	return &Metrics{
		// Fetch metrics
		FetchRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "requests_total",
			Help:      "Total number of endpoint requests by category and outcome",
		}, []string{"category", "outcome"}),
		FetchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "request_duration_seconds",
			Help:      "Endpoint request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"category"}),

		// Load cycle metrics
		LoadCycles: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "load_cycles_total",
			Help:      "Total number of load cycles by outcome",
		}, []string{"outcome"}),
		LoadCycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "load_cycle_duration_seconds",
			Help:      "Load cycle duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "validation_failures_total",
			Help:      "Total number of rejected addresses by reason",
		}, []string{"reason"}),
		LastPublished: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "last_published_timestamp",
			Help:      "Unix timestamp of the most recently published record",
		}),

		// Live feed metrics
		LiveSubscribers: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "subscribers",
			Help:      "Current number of live feed subscribers",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordFetch records one settled endpoint request.
func RecordFetch(category, outcome string, seconds float64) {
	DefaultMetrics.FetchRequests.WithLabelValues(category, outcome).Inc()
	DefaultMetrics.FetchDuration.WithLabelValues(category).Observe(seconds)
}

// RecordLoadCycle records a settled load cycle.
func RecordLoadCycle(outcome string, seconds float64) {
	DefaultMetrics.LoadCycles.WithLabelValues(outcome).Inc()
	DefaultMetrics.LoadCycleDuration.Observe(seconds)
}

// RecordValidationFailure records a rejected address.
func RecordValidationFailure(reason string) {
	DefaultMetrics.ValidationFailures.WithLabelValues(reason).Inc()
}

// RecordPublished marks when the displayed record last changed.
func RecordPublished(unixSeconds float64) {
	DefaultMetrics.LastPublished.Set(unixSeconds)
}

// SetLiveSubscribers updates the live feed subscriber gauge.
func SetLiveSubscribers(n int) {
	DefaultMetrics.LiveSubscribers.Set(float64(n))
}

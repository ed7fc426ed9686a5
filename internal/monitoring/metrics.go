// Package monitoring collects Prometheus metrics for HTTP traffic and
// module execution.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors. Each Metrics instance owns its
// registry, so tests can create them freely.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Module execution metrics
	ModuleRuns     *prometheus.CounterVec
	ModuleDuration *prometheus.HistogramVec

	// Document store metrics
	DocumentsSaved prometheus.Counter

	// Pipeline state
	PipelineReady prometheus.Gauge

	startTime time.Time
	Uptime    prometheus.GaugeFunc
}

// NewMetrics creates a metrics collector with its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry:  registry,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inkwell_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ModuleRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_module_runs_total",
				Help: "Module executions by outcome (ok, error, skipped)",
			},
			[]string{"module", "status"},
		),
		ModuleDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inkwell_module_duration_seconds",
				Help:    "Module execution duration in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"module"},
		),
		DocumentsSaved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "inkwell_documents_saved_total",
				Help: "Documents saved through the API",
			},
		),
		PipelineReady: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "inkwell_pipeline_ready",
				Help: "Whether the pipeline completed initialization",
			},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "inkwell_uptime_seconds",
			Help: "Process uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// ModuleRun records one module execution outcome. Implements the
// pipeline's Observer.
func (m *Metrics) ModuleRun(module, status string, duration time.Duration) {
	m.ModuleRuns.WithLabelValues(module, status).Inc()
	if status != "skipped" {
		m.ModuleDuration.WithLabelValues(module).Observe(duration.Seconds())
	}
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler returns the /metrics endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

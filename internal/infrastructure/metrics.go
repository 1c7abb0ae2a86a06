package infrastructure

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	AnalysisRunsTotal *prometheus.CounterVec
	AnalysisDuration  prometheus.Histogram
}

// NewMetrics creates a metrics registry with the application collectors plus
// the standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "invctl",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "invctl",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		AnalysisRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "invctl",
			Name:      "analysis_runs_total",
			Help:      "Completed analysis runs by mode and outcome.",
		}, []string{"mode", "outcome"}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "invctl",
			Name:      "analysis_run_duration_seconds",
			Help:      "End-to-end analysis run latency.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// ObserveRun records one analysis run.
func (m *Metrics) ObserveRun(mode string, success bool, seconds float64) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	m.AnalysisRunsTotal.WithLabelValues(mode, outcome).Inc()
	if success {
		m.AnalysisDuration.Observe(seconds)
	}
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

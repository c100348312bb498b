package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the variant
// lifecycle and the HTTP surface.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	generationTotal *prometheus.CounterVec
	solverLatency   prometheus.Observer
	commitTotal     *prometheus.CounterVec
	exportTotal     *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors. The session gauge
// is fed by the provided callback so the store stays the single source of
// truth.
func NewMetricsService(activeSessions func() float64) *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	generationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "variant_generation_total",
		Help: "Variant generation attempts by outcome",
	}, []string{"outcome"})

	solverLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_request_duration_seconds",
		Help:    "Latency of solver generation round-trips",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	commitTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "variant_commit_total",
		Help: "Variant commit attempts by outcome",
	}, []string{"outcome"})

	exportTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "grid_export_total",
		Help: "Grid export attempts by format and outcome",
	}, []string{"format", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	collectors := []prometheus.Collector{
		requestDuration, requestTotal, generationTotal, solverLatency, commitTotal, exportTotal, goroutines,
	}
	if activeSessions != nil {
		collectors = append(collectors, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "variant_sessions_active",
			Help: "Variant sessions currently held in memory",
		}, activeSessions))
	}
	registry.MustRegister(collectors...)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		generationTotal: generationTotal,
		solverLatency:   solverLatency,
		commitTotal:     commitTotal,
		exportTotal:     exportTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveGeneration records a generation attempt and solver latency.
func (m *MetricsService) ObserveGeneration(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.generationTotal.WithLabelValues(outcome).Inc()
	m.solverLatency.Observe(duration.Seconds())
}

// ObserveCommit records a commit attempt.
func (m *MetricsService) ObserveCommit(outcome string) {
	if m == nil {
		return
	}
	m.commitTotal.WithLabelValues(outcome).Inc()
}

// ObserveExport records an export attempt.
func (m *MetricsService) ObserveExport(format, outcome string) {
	if m == nil {
		return
	}
	m.exportTotal.WithLabelValues(format, outcome).Inc()
}

package api

import (
	"net/http"
	"time"

	"hypotest/domain/stattest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the API. Each instance owns its
// registry so that servers in tests do not collide.
type Metrics struct {
	registry      *prometheus.Registry
	runsTotal     *prometheus.CounterVec
	rowsProcessed prometheus.Counter
	runDuration   *prometheus.HistogramVec
	httpRequests  *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hypotest",
			Name:      "runs_total",
			Help:      "Test runs by kind and terminal status.",
		}, []string{"kind", "status"}),
		rowsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hypotest",
			Name:      "rows_processed_total",
			Help:      "Input rows read by test runs.",
		}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hypotest",
			Name:      "run_duration_seconds",
			Help:      "Wall time of test runs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"kind"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hypotest",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}
	m.registry.MustRegister(m.runsTotal, m.rowsProcessed, m.runDuration, m.httpRequests)
	return m
}

// ObserveRun records a finished run
func (m *Metrics) ObserveRun(kind stattest.Kind, status stattest.RunStatus, rows int64, elapsed time.Duration) {
	m.runsTotal.WithLabelValues(string(kind), string(status)).Inc()
	m.rowsProcessed.Add(float64(rows))
	m.runDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

// Handler serves the /metrics scrape endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

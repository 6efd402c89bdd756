package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the report pipeline.
type Metrics struct {
	FetchRequests *prometheus.CounterVec   // labels: source={usace,swpa}, outcome={success,network_error,parse_error}
	FetchDuration *prometheus.HistogramVec // labels: source
	RowsDropped   *prometheus.CounterVec   // labels: source
	CacheLookups  *prometheus.CounterVec   // labels: key, result={hit,refresh,stale}
	ReportsServed *prometheus.CounterVec   // labels: endpoint, code
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.RowsDropped,
		m.CacheLookups,
		m.ReportsServed,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lake_report",
			Name:      "fetch_requests_total",
			Help:      "Upstream report fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lake_report",
			Name:      "fetch_duration_seconds",
			Help:      "Upstream fetch-and-parse duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lake_report",
			Name:      "rows_dropped_total",
			Help:      "Report data rows dropped for unparseable required fields.",
		}, []string{"source"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lake_report",
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by key and result.",
		}, []string{"key", "result"}),
		ReportsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lake_report",
			Name:      "reports_served_total",
			Help:      "API responses by endpoint and status code.",
		}, []string{"endpoint", "code"}),
	}
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors used across the service
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	CacheHits           *prometheus.CounterVec
	CacheMisses         *prometheus.CounterVec
	IngestRows          *prometheus.CounterVec
}

// NewMetrics registers and returns the service collectors
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursehub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "coursehub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursehub",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Cache hits by key namespace.",
		}, []string{"namespace"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursehub",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Cache misses by key namespace.",
		}, []string{"namespace"}),
		IngestRows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursehub",
			Subsystem: "ingest",
			Name:      "rows_total",
			Help:      "CSV ingestion rows by outcome.",
		}, []string{"outcome"}),
	}
}

// NewDefaultMetrics registers the collectors on the default registry
func NewDefaultMetrics() *Metrics {
	return NewMetrics(prometheus.DefaultRegisterer)
}

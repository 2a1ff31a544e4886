package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route template and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carcatalog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carcatalog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	// CarOperationsTotal counts record store operations issued by the query service.
	CarOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carcatalog_car_operations_total",
			Help: "Total number of car store operations",
		},
		[]string{"operation", "status"},
	)
	// SeedImportsTotal counts seed import runs by outcome (imported, skipped, failed).
	SeedImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carcatalog_seed_imports_total",
			Help: "Total number of seed import runs",
		},
		[]string{"result"},
	)
)

// ObserveOperation records the outcome of a store operation
func ObserveOperation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	CarOperationsTotal.WithLabelValues(operation, status).Inc()
}

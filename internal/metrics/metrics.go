// Package metrics provides Prometheus metrics for the schema API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "interface_compiler"

var (
	// HTTPRequestsTotal tracks inbound HTTP requests by route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of inbound HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration tracks inbound HTTP request latency
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of inbound HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	// GenerationsTotal tracks schema generation attempts by outcome
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "requests_total",
			Help:      "Total number of schema generation requests by outcome",
		},
		[]string{"provider", "outcome"},
	)

	// GenerationDuration tracks the latency of the LLM provider call
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "provider_duration_seconds",
			Help:      "Duration of LLM provider calls in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider"},
	)

	// StoreOperationsTotal tracks schema store operations by result
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of schema store operations",
		},
		[]string{"operation", "result"},
	)

	// StoreOperationDuration tracks schema store latency
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duration of schema store operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// ObserveStoreOperation records the result and latency of a store call.
func ObserveStoreOperation(operation, result string, elapsed time.Duration) {
	StoreOperationsTotal.WithLabelValues(operation, result).Inc()
	StoreOperationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveGeneration records a generation outcome and provider latency.
func ObserveGeneration(provider, outcome string, elapsed time.Duration) {
	GenerationsTotal.WithLabelValues(provider, outcome).Inc()
	if elapsed > 0 {
		GenerationDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
	}
}

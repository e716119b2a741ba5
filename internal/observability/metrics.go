// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the application.
package observability

import (
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tontinehub_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// JoinAttempts counts join operations by outcome (success or the
	// specific rejection code).
	JoinAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tontinehub_join_attempts_total",
		Help: "Total number of tontine join attempts by outcome",
	}, []string{"outcome"})

	// TontinesCreated counts successfully created tontines by frequency.
	TontinesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tontinehub_tontines_created_total",
		Help: "Total number of tontines created by frequency",
	}, []string{"frequency"})

	// ScheduleComputations counts collection schedule derivations.
	ScheduleComputations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tontinehub_schedule_computations_total",
		Help: "Total number of collection schedule computations",
	})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tontinehub_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// InitMetrics creates the Fiber Prometheus middleware for HTTP metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

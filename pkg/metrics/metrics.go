package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// entity write counters
	EntityWriteCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_write_count",
			Help: "Total number of create/update/delete operations per entity",
		},
		[]string{"entity", "operation"}, // entity: schedule, budget, user
	)
)

// RecordHTTPRequestDuration records one request's latency.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementEntityWrite increments the write counter for an entity.
func IncrementEntityWrite(entity, operation string) {
	EntityWriteCount.WithLabelValues(entity, operation).Inc()
}

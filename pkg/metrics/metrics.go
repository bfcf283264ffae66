package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orgdesk_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// EntityWrites counts create/update/delete operations per entity and outcome.
	EntityWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgdesk_entity_writes_total",
			Help: "Total number of entity write operations",
		},
		[]string{"entity", "operation", "result"},
	)

	// CascadeDeletedUsers tracks users removed by organization cascade deletes.
	CascadeDeletedUsers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orgdesk_cascade_deleted_users_total",
			Help: "Users removed because their organization was deleted",
		},
	)
)

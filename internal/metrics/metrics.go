package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "isstracker_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"backend"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "isstracker_cache_misses_total",
			Help: "Total number of cache misses (absent or expired)",
		},
		[]string{"backend"},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "isstracker_memory_cache_entries",
			Help: "Current number of entries held by the in-process cache",
		},
	)

	// ExternalRequests - запросы к внешним API, result: success / failure / rejected
	ExternalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "isstracker_external_requests_total",
			Help: "Total number of requests to external space APIs",
		},
		[]string{"api", "result"},
	)

	ExternalRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "isstracker_external_request_duration_seconds",
			Help:    "Duration of requests to external space APIs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"api"},
	)

	LaunchSyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "isstracker_launch_sync_runs_total",
			Help: "Total number of launch synchronization passes",
		},
		[]string{"result"},
	)

	// LaunchSyncRecords - action: created / updated / skipped
	LaunchSyncRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "isstracker_launch_sync_records_total",
			Help: "Launch records processed by synchronization",
		},
		[]string{"action"},
	)

	StatisticsSnapshots = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "isstracker_statistics_snapshots_total",
			Help: "Daily statistics snapshot writes",
		},
		[]string{"result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "isstracker_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

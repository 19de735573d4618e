package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registered against the default registry so tests and the server share one
// set of collectors.
var (
	// Sync coordinator metrics
	SyncAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stocksync_sync_attempts_total",
			Help: "Total number of remote catalog sync attempts",
		},
	)
	SyncSkips = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stocksync_sync_skips_total",
			Help: "Total number of refreshes answered from the local store without a fetch",
		},
	)
	SyncFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocksync_sync_failures_total",
			Help: "Total number of sync attempts absorbed as cache-serving failures",
		},
		[]string{"reason"},
	)
	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stocksync_catalog_fetch_duration_seconds",
			Help:    "Duration of remote catalog fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Record store metrics
	ItemOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocksync_item_operations_total",
			Help: "Total number of record store mutations",
		},
		[]string{"operation"},
	)
	ItemsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stocksync_items",
			Help: "Current number of records in the local store",
		},
	)

	// Connectivity signal (advisory, UI messaging only)
	OnlineGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stocksync_source_online",
			Help: "1 when the last catalog fetch succeeded, 0 otherwise",
		},
	)
)

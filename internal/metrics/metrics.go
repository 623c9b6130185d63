// Package metrics holds the Prometheus collectors for the trending, cache and oracle paths.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TrendingRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newspulse_trending_refresh_duration_seconds",
			Help:    "Duration of trending snapshot rebuilds in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	TrendingRefreshFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newspulse_trending_refresh_failures_total",
			Help: "Total number of failed trending snapshot rebuilds",
		},
	)

	TrendingSnapshotArticles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newspulse_trending_snapshot_articles",
			Help: "Number of articles in the current trending snapshot",
		},
	)

	TrendingSnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newspulse_trending_snapshot_version",
			Help: "Version of the currently published trending snapshot",
		},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newspulse_cache_requests_total",
			Help: "Cache lookups by namespace and result",
		},
		[]string{"namespace", "result"}, // "hit", "miss", "error"
	)

	OracleCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newspulse_oracle_calls_total",
			Help: "Language model calls by operation and outcome",
		},
		[]string{"operation", "outcome"}, // "ok", "error"
	)

	EventsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newspulse_events_recorded_total",
			Help: "User interaction events appended, by kind",
		},
		[]string{"kind"},
	)
)

const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultError = "error"

	OutcomeOK    = "ok"
	OutcomeError = "error"
)

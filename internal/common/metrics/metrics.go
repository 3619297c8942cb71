// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ThemesScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_themes_scored_total",
			Help: "Total number of themes scored, by outcome",
		},
		[]string{"outcome"},
	)

	BatchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_batch_item_failures_total",
			Help: "Per-item failures during batch operations, by error code",
		},
		[]string{"operation", "error_code"},
	)

	ScoringDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "engine_scoring_duration_seconds",
			Help: "Duration of scoring operations in seconds",
		},
		[]string{"operation"},
	)

	HistoryEntriesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_history_entries_written_total",
			Help: "Total number of score history entries appended",
		},
	)

	HistoryEntriesPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_history_entries_purged_total",
			Help: "Total number of score history entries removed by retention cleanup",
		},
	)
)

// internal/history/tracker.go
package history

import (
	"context"
	"time"

	"monetization-engine/internal/common/logger"
	"monetization-engine/internal/common/metrics"
	"monetization-engine/internal/common/validation"
	"monetization-engine/internal/models"
	"monetization-engine/internal/store"
)

// Tracker appends score snapshots to the per-theme history log and derives
// aggregate statistics from it. All persistence goes through the HistoryStore
// port; the tracker itself holds no state.
type Tracker struct {
	store  store.HistoryStore
	logger logger.Logger
}

func NewTracker(s store.HistoryStore, log logger.Logger) *Tracker {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Tracker{store: s, logger: log}
}

// Record appends one snapshot with the current timestamp.
func (t *Tracker) Record(ctx context.Context, themeID string, score float64, factors models.MonetizationFactors, metadata map[string]interface{}) (models.ScoreHistoryEntry, error) {
	if err := validation.ValidateThemeID(themeID); err != nil {
		return models.ScoreHistoryEntry{}, err
	}

	entry, err := t.store.Append(ctx, models.ScoreHistoryEntry{
		ThemeID:   themeID,
		Score:     score,
		Factors:   factors,
		Metadata:  metadata,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return models.ScoreHistoryEntry{}, err
	}

	metrics.HistoryEntriesWritten.Inc()
	t.logger.Debug("score history entry recorded", map[string]interface{}{
		"themeId": themeID,
		"score":   score,
	})
	return entry, nil
}

// Recent returns the entries from the last sinceDays days, most recent first.
func (t *Tracker) Recent(ctx context.Context, themeID string, sinceDays int) ([]models.ScoreHistoryEntry, error) {
	if err := validation.ValidateThemeID(themeID); err != nil {
		return nil, err
	}
	return t.store.Query(ctx, themeID, store.HistoryQuery{SinceDays: sinceDays})
}

// Statistics aggregates a theme's full history. Empty history yields the
// zero-valued statistics with nil current/first/last, not an error.
func (t *Tracker) Statistics(ctx context.Context, themeID string) (models.ScoreStatistics, error) {
	if err := validation.ValidateThemeID(themeID); err != nil {
		return models.ScoreStatistics{}, err
	}

	entries, err := t.store.Query(ctx, themeID, store.HistoryQuery{})
	if err != nil {
		return models.ScoreStatistics{}, err
	}
	return computeStatistics(entries), nil
}

// Cleanup deletes entries older than retentionDays and returns the count
// removed. Nothing qualifying is not an error.
func (t *Tracker) Cleanup(ctx context.Context, retentionDays int) (int, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	removed, err := t.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		metrics.HistoryEntriesPurged.Add(float64(removed))
		t.logger.Info("score history cleaned up", map[string]interface{}{
			"retentionDays": retentionDays,
			"removed":       removed,
		})
	}
	return removed, nil
}

// BatchRecordItem is one (themeId, score, factors) tuple for RecordBatch.
type BatchRecordItem struct {
	ThemeID  string
	Score    float64
	Factors  models.MonetizationFactors
	Metadata map[string]interface{}
}

// BatchRecordResult reports the per-item outcome of a batch append. One
// item's failure never blocks the others.
type BatchRecordResult struct {
	Entries []models.ScoreHistoryEntry
	Errors  map[string]error
}

// RecordBatch appends one snapshot per item, isolating failures per item.
func (t *Tracker) RecordBatch(ctx context.Context, items []BatchRecordItem) BatchRecordResult {
	result := BatchRecordResult{
		Entries: make([]models.ScoreHistoryEntry, 0, len(items)),
		Errors:  map[string]error{},
	}
	for _, item := range items {
		entry, err := t.Record(ctx, item.ThemeID, item.Score, item.Factors, item.Metadata)
		if err != nil {
			result.Errors[item.ThemeID] = err
			t.logger.Warn("batch history append failed for theme", map[string]interface{}{
				"themeId": item.ThemeID,
				"error":   err,
			})
			continue
		}
		result.Entries = append(result.Entries, entry)
	}
	return result
}

// StatisticsBatch computes statistics per theme ID. Themes whose history
// query fails are reported in the error map and skipped.
func (t *Tracker) StatisticsBatch(ctx context.Context, themeIDs []string) (map[string]models.ScoreStatistics, map[string]error) {
	stats := make(map[string]models.ScoreStatistics, len(themeIDs))
	errs := map[string]error{}
	for _, id := range themeIDs {
		s, err := t.Statistics(ctx, id)
		if err != nil {
			errs[id] = err
			continue
		}
		stats[id] = s
	}
	return stats, errs
}

// computeStatistics expects entries ordered most recent first, as the store
// returns them.
func computeStatistics(entries []models.ScoreHistoryEntry) models.ScoreStatistics {
	if len(entries) == 0 {
		return models.ScoreStatistics{}
	}

	current := entries[0].Score
	min := entries[0].Score
	max := entries[0].Score
	var sum float64
	first := entries[0].Timestamp
	last := entries[0].Timestamp

	for _, e := range entries {
		sum += e.Score
		if e.Score < min {
			min = e.Score
		}
		if e.Score > max {
			max = e.Score
		}
		if e.Timestamp.Before(first) {
			first = e.Timestamp
		}
		if e.Timestamp.After(last) {
			last = e.Timestamp
		}
	}

	return models.ScoreStatistics{
		Current:       &current,
		Average:       sum / float64(len(entries)),
		Min:           min,
		Max:           max,
		TotalEntries:  len(entries),
		FirstRecorded: &first,
		LastRecorded:  &last,
	}
}

// internal/store/ports.go
package store

import (
	"context"
	"time"

	"monetization-engine/internal/models"
)

// The engine consumes its collaborators through these narrow, data-shape-only
// ports. Adapters in this package back them with Postgres, Redis and
// Elasticsearch; the engine itself never depends on a concrete store.

// ThemeReader fetches theme records.
type ThemeReader interface {
	Get(ctx context.Context, themeID string) (models.Theme, error)
	GetMany(ctx context.Context, filter models.ThemeFilter) ([]models.Theme, error)
}

// ThemeWriter persists the score an engine run produced. Only the score and
// factor fields are written; everything else on the theme is owned elsewhere.
type ThemeWriter interface {
	UpdateScore(ctx context.Context, themeID string, score float64, factors models.MonetizationFactors) error
}

// TrendReader fetches the raw signal rows for a theme.
type TrendReader interface {
	GetForTheme(ctx context.Context, themeID string, query models.TrendQuery) ([]models.TrendData, error)
}

// HistoryQuery selects score history rows. SinceDays of 0 means no time
// bound; Limit of 0 means no row cap.
type HistoryQuery struct {
	SinceDays int
	Limit     int
}

// HistoryStore is the append-only score history log. Entries are immutable;
// DeleteOlderThan is the only removal path.
type HistoryStore interface {
	Append(ctx context.Context, entry models.ScoreHistoryEntry) (models.ScoreHistoryEntry, error)
	Query(ctx context.Context, themeID string, query HistoryQuery) ([]models.ScoreHistoryEntry, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

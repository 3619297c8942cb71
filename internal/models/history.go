// internal/models/history.go
package models

import "time"

// ScoreHistoryEntry is one append-only snapshot of a theme's score. Entries
// are immutable once recorded; retention cleanup is the only deletion path.
type ScoreHistoryEntry struct {
	ID        string                 `json:"id"`
	ThemeID   string                 `json:"themeId"`
	Score     float64                `json:"score"`
	Factors   MonetizationFactors    `json:"factors"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// ScoreStatistics aggregates a theme's score history. On empty history
// Current, FirstRecorded and LastRecorded are nil and the numeric fields are
// zero; that is a valid result, not an error.
type ScoreStatistics struct {
	Current       *float64   `json:"current"`
	Average       float64    `json:"average"`
	Min           float64    `json:"min"`
	Max           float64    `json:"max"`
	TotalEntries  int        `json:"totalEntries"`
	FirstRecorded *time.Time `json:"firstRecorded"`
	LastRecorded  *time.Time `json:"lastRecorded"`
}

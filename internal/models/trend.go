// internal/models/trend.go
package models

import "time"

// TrendData is one time-stamped signal sample for a theme. Entries arrive
// unordered; the engine treats a theme's list as a sample to average.
type TrendData struct {
	ThemeID      string    `json:"themeId"`
	Source       string    `json:"source"`
	SearchVolume float64   `json:"searchVolume"`
	GrowthRate   float64   `json:"growthRate"`
	Timestamp    time.Time `json:"timestamp"`
}

// TrendQuery selects the trend rows returned for a theme.
type TrendQuery struct {
	SinceDays int    `json:"sinceDays,omitempty"`
	Source    string `json:"source,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

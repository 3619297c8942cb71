// internal/models/theme.go
package models

// CompetitionLevel describes how crowded a theme's market is.
type CompetitionLevel string

const (
	CompetitionLow    CompetitionLevel = "low"
	CompetitionMedium CompetitionLevel = "medium"
	CompetitionHigh   CompetitionLevel = "high"
)

// TechnicalDifficulty describes the skill level required to build a theme.
type TechnicalDifficulty string

const (
	DifficultyBeginner     TechnicalDifficulty = "beginner"
	DifficultyIntermediate TechnicalDifficulty = "intermediate"
	DifficultyAdvanced     TechnicalDifficulty = "advanced"
)

// EstimatedRevenue is the expected monthly revenue band for a theme.
type EstimatedRevenue struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DataSource records where a theme's signal data comes from.
type DataSource struct {
	Source      string `json:"source"`
	URL         string `json:"url,omitempty"`
	LastFetched string `json:"lastFetched,omitempty"`
}

// Theme is a product idea candidate read from the external store. The engine
// never mutates a Theme in place; scoring produces an updated copy.
type Theme struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	Category            string               `json:"category"`
	Description         string               `json:"description,omitempty"`
	MarketSize          float64              `json:"marketSize"`
	CompetitionLevel    CompetitionLevel     `json:"competitionLevel"`
	TechnicalDifficulty TechnicalDifficulty  `json:"technicalDifficulty"`
	EstimatedRevenue    EstimatedRevenue     `json:"estimatedRevenue"`
	DataSources         []DataSource         `json:"dataSources"`
	MonetizationScore   *float64             `json:"monetizationScore,omitempty"`
	MonetizationFactors *MonetizationFactors `json:"monetizationFactors,omitempty"`
	CreatedAt           string               `json:"createdAt,omitempty"`
	UpdatedAt           string               `json:"updatedAt,omitempty"`
}

// ThemeFilter is the opaque pass-through criteria for listing themes. The
// engine hands it to the store adapter without interpreting it.
type ThemeFilter struct {
	Category            string               `json:"category,omitempty"`
	CompetitionLevel    *CompetitionLevel    `json:"competitionLevel,omitempty"`
	TechnicalDifficulty *TechnicalDifficulty `json:"technicalDifficulty,omitempty"`
	MinScore            *float64             `json:"minScore,omitempty"`
	MaxScore            *float64             `json:"maxScore,omitempty"`
	MinMarketSize       *float64             `json:"minMarketSize,omitempty"`
	MaxMarketSize       *float64             `json:"maxMarketSize,omitempty"`
	SortBy              string               `json:"sortBy,omitempty"`
	SortOrder           string               `json:"sortOrder,omitempty"`
	Offset              int                  `json:"offset,omitempty"`
	Limit               int                  `json:"limit,omitempty"`
}

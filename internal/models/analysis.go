// internal/models/analysis.go
package models

// TrendDirection classifies score movement against the most recent
// historical entry.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// FactorAttribution names the factors driving a score. MostImproved and
// MostDeclined are nil when there is no previous entry or when no factor
// moved past the reporting threshold.
type FactorAttribution struct {
	Strongest    string  `json:"strongest"`
	Weakest      string  `json:"weakest"`
	MostImproved *string `json:"mostImproved,omitempty"`
	MostDeclined *string `json:"mostDeclined,omitempty"`
}

// ScoreAnalysis is the derived trend report for a theme. PreviousScore is nil
// when the theme has no history.
type ScoreAnalysis struct {
	CurrentScore     float64           `json:"currentScore"`
	PreviousScore    *float64          `json:"previousScore,omitempty"`
	Trend            TrendDirection    `json:"trend"`
	ChangePercentage float64           `json:"changePercentage"`
	Volatility       float64           `json:"volatility"`
	Confidence       float64           `json:"confidence"`
	Factors          FactorAttribution `json:"factors"`
}

// internal/models/revenue.go
package models

// Timeframe is the projection window for revenue scenarios.
type Timeframe string

const (
	TimeframeMonth   Timeframe = "month"
	TimeframeQuarter Timeframe = "quarter"
	TimeframeYear    Timeframe = "year"
)

// ScenarioSet carries one value per projection scenario. The invariant
// Conservative <= Realistic <= Optimistic holds whenever the configured
// multipliers preserve that ordering.
type ScenarioSet struct {
	Conservative float64 `json:"conservative"`
	Realistic    float64 `json:"realistic"`
	Optimistic   float64 `json:"optimistic"`
}

// Assumption documents one input to a revenue projection.
type Assumption struct {
	Factor     string  `json:"factor"`
	Value      float64 `json:"value"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// RevenueProjection is the scenario forecast for a single timeframe.
type RevenueProjection struct {
	ThemeID     string       `json:"themeId"`
	Timeframe   Timeframe    `json:"timeframe"`
	Scenarios   ScenarioSet  `json:"scenarios"`
	Assumptions []Assumption `json:"assumptions"`
}

// Milestone is one step on the revenue timeline. Months are the adjusted
// earliest/latest estimates from MVP start.
type Milestone struct {
	Name         string  `json:"name"`
	MonthsMin    float64 `json:"monthsMin"`
	MonthsMax    float64 `json:"monthsMax"`
	TargetAmount float64 `json:"targetAmount"`
}

// RevenueTimeline lays out the milestone schedule for a theme.
type RevenueTimeline struct {
	ThemeID    string      `json:"themeId"`
	Milestones []Milestone `json:"milestones"`
}

// MonthlyProjection is one month of a growth curve.
type MonthlyProjection struct {
	Month   int         `json:"month"`
	Revenue ScenarioSet `json:"revenue"`
}

// RevenueGrowthProjection is the multi-month compound growth curve with
// plateauing. PlateauRevenue holds each scenario's value at its plateau month,
// or at the final requested month when the window is shorter.
type RevenueGrowthProjection struct {
	ThemeID            string              `json:"themeId"`
	MonthlyProjections []MonthlyProjection `json:"monthlyProjections"`
	TotalProjection    ScenarioSet         `json:"totalProjection"`
	PeakMonth          int                 `json:"peakMonth"`
	PlateauRevenue     ScenarioSet         `json:"plateauRevenue"`
}

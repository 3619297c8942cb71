// internal/models/insight.go
package models

// RiskImpact grades how badly a risk can hurt monetization.
type RiskImpact string

const (
	RiskImpactLow    RiskImpact = "low"
	RiskImpactMedium RiskImpact = "medium"
	RiskImpactHigh   RiskImpact = "high"
)

// OpportunityPotential grades the upside of an opportunity.
type OpportunityPotential string

const (
	PotentialLow    OpportunityPotential = "low"
	PotentialMedium OpportunityPotential = "medium"
	PotentialHigh   OpportunityPotential = "high"
)

// RiskFactor is one rule-triggered risk with its mitigation advice.
// Probability is expressed in percent.
type RiskFactor struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Impact      RiskImpact `json:"impact"`
	Probability float64    `json:"probability"`
	Mitigation  string     `json:"mitigation"`
}

// Opportunity is one rule-triggered upside with a rough capture window.
type Opportunity struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Potential   OpportunityPotential `json:"potential"`
	Timeframe   string               `json:"timeframe"`
}

// InsightReport is the qualitative risk/opportunity classification of a theme.
// A theme can trigger zero to many of either.
type InsightReport struct {
	ThemeID       string        `json:"themeId"`
	Risks         []RiskFactor  `json:"risks"`
	Opportunities []Opportunity `json:"opportunities"`
}

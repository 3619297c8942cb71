// internal/engine/insight/analyzer.go
package insight

import (
	"monetization-engine/internal/models"
)

// Thresholds for the rule set. Each rule evaluates independently; a theme may
// trigger any number of risks and opportunities.
const (
	smallMarketThreshold = 500_000
	largeMarketThreshold = 1_000_000

	lowScoreThreshold  = 50.0
	highScoreThreshold = 80.0

	lowWillingnessThreshold  = 40.0
	highWillingnessThreshold = 70.0
)

// Analyze classifies a theme into qualitative risks and opportunities from
// its current attributes alone. No state, no I/O.
func Analyze(theme models.Theme) models.InsightReport {
	return models.InsightReport{
		ThemeID:       theme.ID,
		Risks:         collectRisks(theme),
		Opportunities: collectOpportunities(theme),
	}
}

func collectRisks(theme models.Theme) []models.RiskFactor {
	risks := []models.RiskFactor{}

	if theme.CompetitionLevel == models.CompetitionHigh {
		risks = append(risks, models.RiskFactor{
			Name:        "High competition",
			Description: "The market is crowded; differentiation will be hard to sustain",
			Impact:      models.RiskImpactHigh,
			Probability: 80,
			Mitigation:  "Target a narrow niche and differentiate on a single sharp use case",
		})
	}
	if theme.TechnicalDifficulty == models.DifficultyAdvanced {
		risks = append(risks, models.RiskFactor{
			Name:        "High technical difficulty",
			Description: "Advanced build raises time-to-market and maintenance burden",
			Impact:      models.RiskImpactMedium,
			Probability: 70,
			Mitigation:  "Cut the MVP to the smallest technically simple slice and iterate",
		})
	}
	if theme.MarketSize < smallMarketThreshold {
		risks = append(risks, models.RiskFactor{
			Name:        "Small market",
			Description: "The addressable market may be too small to sustain growth",
			Impact:      models.RiskImpactMedium,
			Probability: 60,
			Mitigation:  "Validate willingness to pay early and plan adjacent-market expansion",
		})
	}
	if theme.MonetizationScore != nil && *theme.MonetizationScore < lowScoreThreshold {
		risks = append(risks, models.RiskFactor{
			Name:        "Weak monetization outlook",
			Description: "The composite monetization score is below viability range",
			Impact:      models.RiskImpactHigh,
			Probability: 75,
			Mitigation:  "Rework pricing and revenue model before committing build effort",
		})
	}
	if f := theme.MonetizationFactors; f != nil && f.PaymentWillingness < lowWillingnessThreshold {
		risks = append(risks, models.RiskFactor{
			Name:        "Low payment willingness",
			Description: "Signals suggest users are unlikely to pay at current positioning",
			Impact:      models.RiskImpactHigh,
			Probability: 70,
			Mitigation:  "Test paid pre-orders or a paywalled beta to confirm demand",
		})
	}
	return risks
}

func collectOpportunities(theme models.Theme) []models.Opportunity {
	opportunities := []models.Opportunity{}

	if theme.CompetitionLevel == models.CompetitionLow {
		opportunities = append(opportunities, models.Opportunity{
			Name:        "Blue ocean market",
			Description: "Low competition leaves room to define the category",
			Potential:   models.PotentialHigh,
			Timeframe:   "6-12 months",
		})
	}
	if theme.MonetizationScore != nil && *theme.MonetizationScore >= highScoreThreshold {
		opportunities = append(opportunities, models.Opportunity{
			Name:        "Strong monetization outlook",
			Description: "The composite score puts this theme in the top revenue tier",
			Potential:   models.PotentialHigh,
			Timeframe:   "3-6 months",
		})
	}
	if theme.MarketSize >= largeMarketThreshold {
		opportunities = append(opportunities, models.Opportunity{
			Name:        "Large addressable market",
			Description: "Market size supports meaningful scale even at modest share",
			Potential:   models.PotentialMedium,
			Timeframe:   "12-24 months",
		})
	}
	if theme.TechnicalDifficulty == models.DifficultyBeginner {
		opportunities = append(opportunities, models.Opportunity{
			Name:        "Fast MVP",
			Description: "Beginner-level build allows shipping and validating quickly",
			Potential:   models.PotentialMedium,
			Timeframe:   "1-3 months",
		})
	}
	if f := theme.MonetizationFactors; f != nil && f.PaymentWillingness >= highWillingnessThreshold {
		opportunities = append(opportunities, models.Opportunity{
			Name:        "High payment willingness",
			Description: "Signals show users ready to pay for a solution",
			Potential:   models.PotentialHigh,
			Timeframe:   "3-9 months",
		})
	}
	return opportunities
}

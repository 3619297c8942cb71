// internal/engine/revenue/projector.go
package revenue

import (
	"math"

	"monetization-engine/internal/common/logger"
	"monetization-engine/internal/models"
)

// Scenario multipliers applied to the adjusted base revenue. Overridable
// per call through ProjectionOptions.
const (
	DefaultConservativeMultiplier = 0.3
	DefaultRealisticMultiplier    = 0.7
	DefaultOptimisticMultiplier   = 1.5
)

var timeMultipliers = map[models.Timeframe]float64{
	models.TimeframeMonth:   1,
	models.TimeframeQuarter: 3,
	models.TimeframeYear:    12,
}

var competitionMultipliers = map[models.CompetitionLevel]float64{
	models.CompetitionLow:    1.2,
	models.CompetitionMedium: 1.0,
	models.CompetitionHigh:   0.8,
}

var difficultyMultipliers = map[models.TechnicalDifficulty]float64{
	models.DifficultyBeginner:     1.1,
	models.DifficultyIntermediate: 1.0,
	models.DifficultyAdvanced:     0.9,
}

// ProjectionOptions overrides the scenario multipliers for one call. Nil
// fields keep the defaults.
type ProjectionOptions struct {
	ConservativeMultiplier *float64
	RealisticMultiplier    *float64
	OptimisticMultiplier   *float64
}

// Projector computes revenue scenarios, milestone timelines and growth
// curves from a scored theme. Pure computation, no I/O.
type Projector struct {
	logger logger.Logger
}

func NewProjector(log logger.Logger) *Projector {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Projector{logger: log}
}

// BaseRevenue is the midpoint of the theme's estimated revenue band.
func BaseRevenue(theme models.Theme) float64 {
	return (theme.EstimatedRevenue.Min + theme.EstimatedRevenue.Max) / 2
}

// MarketAdjustmentFactor combines market size, score, competition, difficulty
// and (when available) the payment willingness and lifetime value factors
// into one multiplier on the base revenue.
func MarketAdjustmentFactor(theme models.Theme) float64 {
	marketFactor := math.Min(2, theme.MarketSize/1_000_000)

	score := 50.0
	if theme.MonetizationScore != nil {
		score = *theme.MonetizationScore
	}
	scoreFactor := score / 100

	competitionFactor := lookupMultiplier(competitionMultipliers, theme.CompetitionLevel)
	difficultyFactor := lookupMultiplier(difficultyMultipliers, theme.TechnicalDifficulty)

	factorAdjustment := 1.0
	if f := theme.MonetizationFactors; f != nil {
		factorAdjustment = (1 + (f.PaymentWillingness-50)/200) * (1 + (f.CustomerLifetimeValue-50)/300)
	}

	return marketFactor * scoreFactor * competitionFactor * difficultyFactor * factorAdjustment
}

// Project computes the three revenue scenarios for the timeframe together
// with the assumption list behind them.
func (p *Projector) Project(theme models.Theme, timeframe models.Timeframe, opts *ProjectionOptions) models.RevenueProjection {
	base := BaseRevenue(theme)
	adjustment := MarketAdjustmentFactor(theme)

	timeMultiplier, ok := timeMultipliers[timeframe]
	if !ok {
		timeframe = models.TimeframeMonth
		timeMultiplier = 1
	}

	conservative, realistic, optimistic := scenarioMultipliers(opts)

	scenario := func(multiplier float64) float64 {
		return math.Round(base * multiplier * adjustment * timeMultiplier)
	}

	projection := models.RevenueProjection{
		ThemeID:   theme.ID,
		Timeframe: timeframe,
		Scenarios: models.ScenarioSet{
			Conservative: scenario(conservative),
			Realistic:    scenario(realistic),
			Optimistic:   scenario(optimistic),
		},
		Assumptions: buildAssumptions(theme, adjustment),
	}

	p.logger.Debug("revenue projected", map[string]interface{}{
		"themeId":   theme.ID,
		"timeframe": timeframe,
		"realistic": projection.Scenarios.Realistic,
	})
	return projection
}

func scenarioMultipliers(opts *ProjectionOptions) (conservative, realistic, optimistic float64) {
	conservative = DefaultConservativeMultiplier
	realistic = DefaultRealisticMultiplier
	optimistic = DefaultOptimisticMultiplier
	if opts == nil {
		return
	}
	if opts.ConservativeMultiplier != nil {
		conservative = *opts.ConservativeMultiplier
	}
	if opts.RealisticMultiplier != nil {
		realistic = *opts.RealisticMultiplier
	}
	if opts.OptimisticMultiplier != nil {
		optimistic = *opts.OptimisticMultiplier
	}
	return
}

// buildAssumptions documents every input to the projection with a fixed
// confidence weight and a human-readable source label.
func buildAssumptions(theme models.Theme, adjustment float64) []models.Assumption {
	score := 50.0
	if theme.MonetizationScore != nil {
		score = *theme.MonetizationScore
	}

	assumptions := []models.Assumption{
		{
			Factor:     "marketSize",
			Value:      theme.MarketSize,
			Confidence: 70,
			Source:     "Estimated total addressable market",
		},
		{
			Factor:     "monetizationScore",
			Value:      score,
			Confidence: 85,
			Source:     "Weighted monetization score",
		},
		{
			Factor:     "competitionLevel",
			Value:      lookupMultiplier(competitionMultipliers, theme.CompetitionLevel),
			Confidence: 75,
			Source:     "Competition level multiplier",
		},
		{
			Factor:     "technicalDifficulty",
			Value:      lookupMultiplier(difficultyMultipliers, theme.TechnicalDifficulty),
			Confidence: 75,
			Source:     "Technical difficulty multiplier",
		},
		{
			Factor:     "marketAdjustment",
			Value:      adjustment,
			Confidence: 60,
			Source:     "Combined market adjustment factor",
		},
	}

	if f := theme.MonetizationFactors; f != nil {
		assumptions = append(assumptions,
			models.Assumption{
				Factor:     "paymentWillingness",
				Value:      f.PaymentWillingness,
				Confidence: 65,
				Source:     "Payment willingness factor",
			},
			models.Assumption{
				Factor:     "customerLifetimeValue",
				Value:      f.CustomerLifetimeValue,
				Confidence: 65,
				Source:     "Customer lifetime value factor",
			},
		)
	}
	return assumptions
}

func lookupMultiplier[K comparable](table map[K]float64, key K) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return 1.0
}

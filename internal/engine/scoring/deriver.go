// internal/engine/scoring/deriver.go
package scoring

import (
	"math"

	"monetization-engine/internal/common/logger"
	"monetization-engine/internal/models"
)

// competitionFactorValues maps a theme's qualitative competition level to
// the 0-100 competition factor.
var competitionFactorValues = map[models.CompetitionLevel]float64{
	models.CompetitionLow:    20,
	models.CompetitionMedium: 50,
	models.CompetitionHigh:   80,
}

// difficultyFactorValues maps technical difficulty to the acquisition cost
// factor: harder builds mean costlier customer acquisition.
var difficultyFactorValues = map[models.TechnicalDifficulty]float64{
	models.DifficultyBeginner:     30,
	models.DifficultyIntermediate: 50,
	models.DifficultyAdvanced:     70,
}

// Deriver turns a theme's static attributes and optional trend signals into
// the six monetization factors.
type Deriver struct {
	calculator *Calculator
	logger     logger.Logger
}

func NewDeriver(calculator *Calculator, log logger.Logger) *Deriver {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Deriver{calculator: calculator, logger: log}
}

// DeriveFactors computes the factor set for a theme. trendData may be empty;
// the payment willingness factor then stays at the default and market size
// is not trend adjusted. The result is clamped to valid ranges.
func (d *Deriver) DeriveFactors(theme models.Theme, trendData []models.TrendData) models.MonetizationFactors {
	factors := models.MonetizationFactors{
		MarketSize:              math.Min(100, theme.MarketSize/1_000_000*10),
		CompetitionLevel:        lookupCompetition(theme.CompetitionLevel),
		CustomerAcquisitionCost: lookupDifficulty(theme.TechnicalDifficulty),
		RevenueModels:           math.Min(100, float64(len(theme.DataSources))*20),
		CustomerLifetimeValue:   (theme.EstimatedRevenue.Min + theme.EstimatedRevenue.Max) / 2000,
		PaymentWillingness:      DefaultFactorValue,
	}

	if len(trendData) > 0 {
		avgVolume, avgGrowth := averageTrend(trendData)
		factors.PaymentWillingness = math.Min(100, avgVolume/10000*50+math.Max(0, avgGrowth)*2)

		if avgGrowth > 10 {
			factors.MarketSize = math.Min(100, factors.MarketSize*1.2)
		} else if avgGrowth < -10 {
			factors.MarketSize *= 0.8
		}
	}

	return ClampFactors(factors)
}

// UpdateThemeWithScore returns a copy of the theme with the derived factors
// and the weighted score populated. The source theme is not mutated.
func (d *Deriver) UpdateThemeWithScore(theme models.Theme, trendData []models.TrendData, weights *WeightInput) models.Theme {
	factors := d.DeriveFactors(theme, trendData)
	score := d.calculator.ScoreNormalized(factors, weights)

	updated := theme
	updated.MonetizationScore = &score
	updated.MonetizationFactors = &factors

	d.logger.Debug("theme scored", map[string]interface{}{
		"themeId": theme.ID,
		"score":   score,
	})
	return updated
}

func lookupCompetition(level models.CompetitionLevel) float64 {
	if v, ok := competitionFactorValues[level]; ok {
		return v
	}
	return DefaultFactorValue
}

func lookupDifficulty(difficulty models.TechnicalDifficulty) float64 {
	if v, ok := difficultyFactorValues[difficulty]; ok {
		return v
	}
	return DefaultFactorValue
}

func averageTrend(trendData []models.TrendData) (avgVolume, avgGrowth float64) {
	for _, td := range trendData {
		avgVolume += td.SearchVolume
		avgGrowth += td.GrowthRate
	}
	n := float64(len(trendData))
	return avgVolume / n, avgGrowth / n
}

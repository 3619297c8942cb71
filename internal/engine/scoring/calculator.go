// internal/engine/scoring/calculator.go
package scoring

import (
	"math"

	"monetization-engine/internal/common/logger"
	"monetization-engine/internal/models"
)

// invertedFactors are scored as (100 - value): a higher raw value means a
// worse monetization outlook.
var invertedFactors = map[string]bool{
	models.FactorCompetitionLevel:        true,
	models.FactorCustomerAcquisitionCost: true,
}

// Calculator computes weighted monetization scores. It is pure: identical
// inputs always produce identical outputs.
type Calculator struct {
	decimals int
	logger   logger.Logger
}

// NewCalculator creates a Calculator rounding scores to the given number of
// decimal places. Negative decimals fall back to 0.
func NewCalculator(decimals int, log logger.Logger) *Calculator {
	if decimals < 0 {
		decimals = 0
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Calculator{decimals: decimals, logger: log}
}

// CalculateScore normalizes both inputs and returns the weighted score in
// [0,100]. weights may be nil to use the defaults.
func (c *Calculator) CalculateScore(factors *FactorInput, weights *WeightInput) float64 {
	f := NormalizeFactors(factors)
	w := c.normalizeWeights(weights)

	var score float64
	for _, name := range models.FactorNames {
		score += w.Value(name) * effectiveValue(name, f)
	}
	return c.round(score)
}

// ScoreNormalized computes the weighted score for an already normalized
// factor set. Used by callers that derive factors themselves.
func (c *Calculator) ScoreNormalized(f models.MonetizationFactors, weights *WeightInput) float64 {
	w := c.normalizeWeights(weights)

	var score float64
	for _, name := range models.FactorNames {
		score += w.Value(name) * effectiveValue(name, f)
	}
	return c.round(score)
}

// CalculateBreakdown returns the unsummed per-factor contributions. The
// rounded sum of the breakdown equals CalculateScore for the same inputs.
func (c *Calculator) CalculateBreakdown(factors *FactorInput, weights *WeightInput) map[string]float64 {
	f := NormalizeFactors(factors)
	w := c.normalizeWeights(weights)

	breakdown := make(map[string]float64, len(models.FactorNames))
	for _, name := range models.FactorNames {
		breakdown[name] = w.Value(name) * effectiveValue(name, f)
	}
	return breakdown
}

func (c *Calculator) normalizeWeights(weights *WeightInput) models.MonetizationWeights {
	w, rescaled := NormalizeWeights(weights)
	if rescaled {
		c.logger.Warn("weights did not sum to 1.0, rescaled proportionally", map[string]interface{}{
			"correctedSum": w.Sum(),
		})
	}
	return w
}

func (c *Calculator) round(v float64) float64 {
	pow := math.Pow(10, float64(c.decimals))
	return math.Round(v*pow) / pow
}

func effectiveValue(name string, f models.MonetizationFactors) float64 {
	v := f.Value(name)
	if invertedFactors[name] {
		return 100 - v
	}
	return v
}

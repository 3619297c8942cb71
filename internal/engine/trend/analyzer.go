// internal/engine/trend/analyzer.go
package trend

import (
	"math"
	"sort"

	"monetization-engine/internal/models"
)

const (
	// stableBandPercent is the |change%| below which the trend reads stable.
	stableBandPercent = 2.0

	// volatilityWindow bounds how many historical scores feed the
	// volatility sample alongside the current score.
	volatilityWindow = 10

	// attributionThreshold is the minimum per-factor delta before a factor
	// is reported as most improved or most declined.
	attributionThreshold = 1.0
)

// Analyze compares the current score and factors against history and returns
// the trend report. It degrades gracefully on empty history: previous score
// nil, trend stable, attribution from the current factors alone.
func Analyze(currentScore float64, currentFactors models.MonetizationFactors, history []models.ScoreHistoryEntry) models.ScoreAnalysis {
	sorted := make([]models.ScoreHistoryEntry, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	analysis := models.ScoreAnalysis{
		CurrentScore: currentScore,
		Trend:        models.TrendStable,
	}

	var previous *models.ScoreHistoryEntry
	if len(sorted) > 0 {
		previous = &sorted[0]
		prevScore := previous.Score
		analysis.PreviousScore = &prevScore

		if prevScore > 0 {
			analysis.ChangePercentage = (currentScore - prevScore) / prevScore * 100
		}
		switch {
		case math.Abs(analysis.ChangePercentage) < stableBandPercent:
			analysis.Trend = models.TrendStable
		case analysis.ChangePercentage > 0:
			analysis.Trend = models.TrendIncreasing
		default:
			analysis.Trend = models.TrendDecreasing
		}
	}

	sample := volatilitySample(currentScore, sorted)
	analysis.Volatility = math.Min(100, populationStdDev(sample))

	base := math.Min(100, float64(len(sample))/volatilityWindow*100)
	analysis.Confidence = math.Max(0, base-analysis.Volatility*0.5)

	analysis.Factors = attributeFactors(currentFactors, previous)
	return analysis
}

// volatilitySample takes up to volatilityWindow most recent historical scores
// plus the current one. sorted must be most recent first.
func volatilitySample(currentScore float64, sorted []models.ScoreHistoryEntry) []float64 {
	n := len(sorted)
	if n > volatilityWindow {
		n = volatilityWindow
	}
	sample := make([]float64, 0, n+1)
	for _, e := range sorted[:n] {
		sample = append(sample, e.Score)
	}
	return append(sample, currentScore)
}

func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

func attributeFactors(current models.MonetizationFactors, previous *models.ScoreHistoryEntry) models.FactorAttribution {
	attribution := models.FactorAttribution{
		Strongest: models.FactorNames[0],
		Weakest:   models.FactorNames[0],
	}
	for _, name := range models.FactorNames[1:] {
		if current.Value(name) > current.Value(attribution.Strongest) {
			attribution.Strongest = name
		}
		if current.Value(name) < current.Value(attribution.Weakest) {
			attribution.Weakest = name
		}
	}

	if previous == nil {
		return attribution
	}

	improved := models.FactorNames[0]
	declined := models.FactorNames[0]
	deltaOf := func(name string) float64 {
		return current.Value(name) - previous.Factors.Value(name)
	}
	for _, name := range models.FactorNames[1:] {
		if deltaOf(name) > deltaOf(improved) {
			improved = name
		}
		if deltaOf(name) < deltaOf(declined) {
			declined = name
		}
	}

	if deltaOf(improved) > attributionThreshold {
		attribution.MostImproved = &improved
	}
	if deltaOf(declined) < -attributionThreshold {
		attribution.MostDeclined = &declined
	}
	return attribution
}

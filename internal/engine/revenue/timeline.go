// internal/engine/revenue/timeline.go
package revenue

import (
	"math"

	"monetization-engine/internal/models"
)

// Milestone targets in currency units. The first-revenue amount is derived
// from the realistic monthly projection instead.
const (
	milestone10KTarget  = 10_000
	milestone100KTarget = 100_000
)

// Base milestone month ranges before difficulty/competition adjustment.
var baseMilestones = []struct {
	name      string
	monthsMin float64
	monthsMax float64
}{
	{"MVP to first revenue", 2, 4},
	{"First revenue to 10K", 6, 12},
	{"10K to 100K", 12, 24},
}

var timelineDifficultyAdjustments = map[models.TechnicalDifficulty]float64{
	models.DifficultyBeginner:     0.8,
	models.DifficultyIntermediate: 1.0,
	models.DifficultyAdvanced:     1.3,
}

var timelineCompetitionAdjustments = map[models.CompetitionLevel]float64{
	models.CompetitionLow:    0.9,
	models.CompetitionMedium: 1.0,
	models.CompetitionHigh:   1.2,
}

// Timeline lays out the milestone schedule for a theme. Month ranges scale
// with how hard the build is and how crowded the market is; the
// first-revenue target is 10% of the realistic monthly projection.
func (p *Projector) Timeline(theme models.Theme) models.RevenueTimeline {
	adjustment := lookupMultiplier(timelineDifficultyAdjustments, theme.TechnicalDifficulty) *
		lookupMultiplier(timelineCompetitionAdjustments, theme.CompetitionLevel)

	monthly := p.Project(theme, models.TimeframeMonth, nil)
	firstRevenueTarget := math.Round(monthly.Scenarios.Realistic * 0.1)

	targets := []float64{firstRevenueTarget, milestone10KTarget, milestone100KTarget}

	milestones := make([]models.Milestone, 0, len(baseMilestones))
	for i, base := range baseMilestones {
		milestones = append(milestones, models.Milestone{
			Name:         base.name,
			MonthsMin:    roundTo(base.monthsMin*adjustment, 1),
			MonthsMax:    roundTo(base.monthsMax*adjustment, 1),
			TargetAmount: targets[i],
		})
	}

	return models.RevenueTimeline{
		ThemeID:    theme.ID,
		Milestones: milestones,
	}
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

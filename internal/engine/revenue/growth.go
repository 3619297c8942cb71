// internal/engine/revenue/growth.go
package revenue

import (
	"math"

	"monetization-engine/internal/models"
)

// growthPattern fixes one scenario's compounding behavior: monthly growth
// until the plateau month, flat afterwards.
type growthPattern struct {
	monthlyGrowthRate float64
	plateauMonth      int
}

// The three growth patterns form a closed set iterated explicitly; there is
// no lookup by scenario name.
var (
	conservativeGrowth = growthPattern{monthlyGrowthRate: 0.05, plateauMonth: 18}
	realisticGrowth    = growthPattern{monthlyGrowthRate: 0.10, plateauMonth: 24}
	optimisticGrowth   = growthPattern{monthlyGrowthRate: 0.20, plateauMonth: 36}
)

// ProjectGrowth computes the month-by-month revenue curve over the requested
// window. Each scenario compounds from its monthly projection until its
// plateau month, then holds flat.
func (p *Projector) ProjectGrowth(theme models.Theme, months int) models.RevenueGrowthProjection {
	if months < 1 {
		months = 1
	}

	base := p.Project(theme, models.TimeframeMonth, nil).Scenarios

	projection := models.RevenueGrowthProjection{
		ThemeID:            theme.ID,
		MonthlyProjections: make([]models.MonthlyProjection, 0, months),
	}

	for month := 1; month <= months; month++ {
		revenue := models.ScenarioSet{
			Conservative: grownRevenue(base.Conservative, conservativeGrowth, month),
			Realistic:    grownRevenue(base.Realistic, realisticGrowth, month),
			Optimistic:   grownRevenue(base.Optimistic, optimisticGrowth, month),
		}
		projection.MonthlyProjections = append(projection.MonthlyProjections, models.MonthlyProjection{
			Month:   month,
			Revenue: revenue,
		})

		projection.TotalProjection.Conservative += revenue.Conservative
		projection.TotalProjection.Realistic += revenue.Realistic
		projection.TotalProjection.Optimistic += revenue.Optimistic
	}

	projection.PeakMonth = realisticGrowth.plateauMonth
	if months < projection.PeakMonth {
		projection.PeakMonth = months
	}

	projection.PlateauRevenue = models.ScenarioSet{
		Conservative: grownRevenue(base.Conservative, conservativeGrowth, min(conservativeGrowth.plateauMonth, months)),
		Realistic:    grownRevenue(base.Realistic, realisticGrowth, min(realisticGrowth.plateauMonth, months)),
		Optimistic:   grownRevenue(base.Optimistic, optimisticGrowth, min(optimisticGrowth.plateauMonth, months)),
	}
	return projection
}

// grownRevenue compounds the base monthly revenue up to the pattern's
// plateau month, then holds it flat.
func grownRevenue(baseMonthly float64, pattern growthPattern, month int) float64 {
	effectiveMonth := month
	if effectiveMonth > pattern.plateauMonth {
		effectiveMonth = pattern.plateauMonth
	}
	return math.Round(baseMonthly * math.Pow(1+pattern.monthlyGrowthRate, float64(effectiveMonth-1)))
}

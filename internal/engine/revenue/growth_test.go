// internal/engine/revenue/growth_test.go
package revenue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monetization-engine/internal/common/logger"
)

func TestProjectGrowthCompounding(t *testing.T) {
	p := NewProjector(logger.NewNoOpLogger())

	projection := p.ProjectGrowth(neutralTheme(), 3)

	assert.Equal(t, "theme-1", projection.ThemeID)
	require.Len(t, projection.MonthlyProjections, 3)

	// Month 1 equals the monthly scenario projections.
	m1 := projection.MonthlyProjections[0]
	assert.Equal(t, 1, m1.Month)
	assert.Equal(t, 600.0, m1.Revenue.Conservative)
	assert.Equal(t, 1400.0, m1.Revenue.Realistic)
	assert.Equal(t, 3000.0, m1.Revenue.Optimistic)

	// Month 2 compounds one step: 5%, 10%, 20%.
	m2 := projection.MonthlyProjections[1]
	assert.Equal(t, 630.0, m2.Revenue.Conservative)
	assert.Equal(t, 1540.0, m2.Revenue.Realistic)
	assert.Equal(t, 3600.0, m2.Revenue.Optimistic)

	// Month 3: base * (1+rate)^2, rounded.
	m3 := projection.MonthlyProjections[2]
	assert.Equal(t, math.Round(600*math.Pow(1.05, 2)), m3.Revenue.Conservative)
	assert.Equal(t, 1694.0, m3.Revenue.Realistic)
	assert.Equal(t, 4320.0, m3.Revenue.Optimistic)
}

func TestProjectGrowthTotals(t *testing.T) {
	p := NewProjector(logger.NewNoOpLogger())

	projection := p.ProjectGrowth(neutralTheme(), 6)

	var wantConservative, wantRealistic, wantOptimistic float64
	for _, m := range projection.MonthlyProjections {
		wantConservative += m.Revenue.Conservative
		wantRealistic += m.Revenue.Realistic
		wantOptimistic += m.Revenue.Optimistic
	}
	assert.Equal(t, wantConservative, projection.TotalProjection.Conservative)
	assert.Equal(t, wantRealistic, projection.TotalProjection.Realistic)
	assert.Equal(t, wantOptimistic, projection.TotalProjection.Optimistic)
}

func TestProjectGrowthPlateaus(t *testing.T) {
	p := NewProjector(logger.NewNoOpLogger())

	projection := p.ProjectGrowth(neutralTheme(), 40)
	require.Len(t, projection.MonthlyProjections, 40)

	monthly := projection.MonthlyProjections

	// Conservative holds flat from month 18 on.
	assert.Equal(t, monthly[17].Revenue.Conservative, monthly[18].Revenue.Conservative)
	assert.Equal(t, monthly[17].Revenue.Conservative, monthly[39].Revenue.Conservative)
	assert.Less(t, monthly[16].Revenue.Conservative, monthly[17].Revenue.Conservative)

	// Realistic from month 24, optimistic from month 36.
	assert.Equal(t, monthly[23].Revenue.Realistic, monthly[39].Revenue.Realistic)
	assert.Less(t, monthly[22].Revenue.Realistic, monthly[23].Revenue.Realistic)
	assert.Equal(t, monthly[35].Revenue.Optimistic, monthly[39].Revenue.Optimistic)
	assert.Less(t, monthly[34].Revenue.Optimistic, monthly[35].Revenue.Optimistic)

	// Plateau revenue matches each scenario's flat value.
	assert.Equal(t, monthly[17].Revenue.Conservative, projection.PlateauRevenue.Conservative)
	assert.Equal(t, monthly[23].Revenue.Realistic, projection.PlateauRevenue.Realistic)
	assert.Equal(t, monthly[35].Revenue.Optimistic, projection.PlateauRevenue.Optimistic)
}

func TestProjectGrowthPeakMonth(t *testing.T) {
	p := NewProjector(logger.NewNoOpLogger())

	tests := []struct {
		months   int
		wantPeak int
	}{
		{6, 6},
		{24, 24},
		{40, 24},
	}

	for _, tt := range tests {
		projection := p.ProjectGrowth(neutralTheme(), tt.months)
		assert.Equal(t, tt.wantPeak, projection.PeakMonth)
	}
}

func TestProjectGrowthShortWindow(t *testing.T) {
	p := NewProjector(logger.NewNoOpLogger())

	projection := p.ProjectGrowth(neutralTheme(), 12)

	// Window ends before any plateau: PlateauRevenue is the final month.
	last := projection.MonthlyProjections[11].Revenue
	assert.Equal(t, last.Conservative, projection.PlateauRevenue.Conservative)
	assert.Equal(t, last.Realistic, projection.PlateauRevenue.Realistic)
	assert.Equal(t, last.Optimistic, projection.PlateauRevenue.Optimistic)
}

func TestProjectGrowthClampsMonths(t *testing.T) {
	p := NewProjector(logger.NewNoOpLogger())

	projection := p.ProjectGrowth(neutralTheme(), 0)

	require.Len(t, projection.MonthlyProjections, 1)
	assert.Equal(t, 1, projection.PeakMonth)
}

// internal/engine/scoring/deriver_test.go
package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monetization-engine/internal/common/logger"
	"monetization-engine/internal/models"
)

func testDeriver() *Deriver {
	return NewDeriver(NewCalculator(0, logger.NewNoOpLogger()), logger.NewNoOpLogger())
}

func sampleTheme() models.Theme {
	return models.Theme{
		ID:                  "theme-1",
		Name:                "AI Resume Builder",
		MarketSize:          5_000_000,
		CompetitionLevel:    models.CompetitionMedium,
		TechnicalDifficulty: models.DifficultyIntermediate,
		DataSources:         []models.DataSource{{Source: "reddit"}, {Source: "github"}, {Source: "producthunt"}},
		EstimatedRevenue:    models.EstimatedRevenue{Min: 20000, Max: 80000},
	}
}

func TestDeriveFactorsWithoutTrends(t *testing.T) {
	factors := testDeriver().DeriveFactors(sampleTheme(), nil)

	assert.Equal(t, 50.0, factors.MarketSize)              // 5M/1M*10
	assert.Equal(t, 50.0, factors.CompetitionLevel)        // medium
	assert.Equal(t, 50.0, factors.CustomerAcquisitionCost) // intermediate
	assert.Equal(t, 60.0, factors.RevenueModels)           // 3 sources * 20
	assert.Equal(t, 50.0, factors.CustomerLifetimeValue)   // (20000+80000)/2000
	assert.Equal(t, DefaultFactorValue, factors.PaymentWillingness)
}

func TestDeriveFactorsCapping(t *testing.T) {
	theme := sampleTheme()
	theme.MarketSize = 50_000_000
	theme.DataSources = make([]models.DataSource, 8)
	theme.EstimatedRevenue = models.EstimatedRevenue{Min: 200000, Max: 400000}

	factors := testDeriver().DeriveFactors(theme, nil)

	assert.Equal(t, 100.0, factors.MarketSize)
	assert.Equal(t, 100.0, factors.RevenueModels)
	// CLV formula yields 300 before clamping.
	assert.Equal(t, 100.0, factors.CustomerLifetimeValue)
}

func TestDeriveFactorsCategoricalMappings(t *testing.T) {
	tests := []struct {
		name        string
		competition models.CompetitionLevel
		difficulty  models.TechnicalDifficulty
		wantComp    float64
		wantCAC     float64
	}{
		{"low/beginner", models.CompetitionLow, models.DifficultyBeginner, 20, 30},
		{"medium/intermediate", models.CompetitionMedium, models.DifficultyIntermediate, 50, 50},
		{"high/advanced", models.CompetitionHigh, models.DifficultyAdvanced, 80, 70},
		{"unknown values default", models.CompetitionLevel("unknown"), models.TechnicalDifficulty("unknown"), 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme := sampleTheme()
			theme.CompetitionLevel = tt.competition
			theme.TechnicalDifficulty = tt.difficulty

			factors := testDeriver().DeriveFactors(theme, nil)
			assert.Equal(t, tt.wantComp, factors.CompetitionLevel)
			assert.Equal(t, tt.wantCAC, factors.CustomerAcquisitionCost)
		})
	}
}

func TestDeriveFactorsWithTrends(t *testing.T) {
	now := time.Now()
	trends := []models.TrendData{
		{ThemeID: "theme-1", SearchVolume: 8000, GrowthRate: 5, Timestamp: now},
		{ThemeID: "theme-1", SearchVolume: 12000, GrowthRate: 15, Timestamp: now},
	}

	factors := testDeriver().DeriveFactors(sampleTheme(), trends)

	// avgVolume 10000, avgGrowth 10: 10000/10000*50 + 10*2 = 70.
	assert.Equal(t, 70.0, factors.PaymentWillingness)
	// avgGrowth exactly 10 does not trigger the growth boost.
	assert.Equal(t, 50.0, factors.MarketSize)
}

func TestDeriveFactorsTrendAdjustsMarketSize(t *testing.T) {
	now := time.Now()

	t.Run("strong growth boosts market size", func(t *testing.T) {
		trends := []models.TrendData{{SearchVolume: 1000, GrowthRate: 25, Timestamp: now}}
		factors := testDeriver().DeriveFactors(sampleTheme(), trends)
		assert.Equal(t, 60.0, factors.MarketSize) // 50 * 1.2
	})

	t.Run("decline shrinks market size", func(t *testing.T) {
		trends := []models.TrendData{{SearchVolume: 1000, GrowthRate: -25, Timestamp: now}}
		factors := testDeriver().DeriveFactors(sampleTheme(), trends)
		assert.Equal(t, 40.0, factors.MarketSize) // 50 * 0.8
	})

	t.Run("negative growth never raises payment willingness", func(t *testing.T) {
		trends := []models.TrendData{{SearchVolume: 4000, GrowthRate: -25, Timestamp: now}}
		factors := testDeriver().DeriveFactors(sampleTheme(), trends)
		assert.Equal(t, 20.0, factors.PaymentWillingness) // 4000/10000*50, no growth term
	})
}

func TestUpdateThemeWithScore(t *testing.T) {
	theme := sampleTheme()

	updated := testDeriver().UpdateThemeWithScore(theme, nil, nil)

	require.NotNil(t, updated.MonetizationScore)
	require.NotNil(t, updated.MonetizationFactors)
	assert.GreaterOrEqual(t, *updated.MonetizationScore, 0.0)
	assert.LessOrEqual(t, *updated.MonetizationScore, 100.0)

	// Source theme stays untouched.
	assert.Nil(t, theme.MonetizationScore)
	assert.Nil(t, theme.MonetizationFactors)
}

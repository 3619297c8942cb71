// internal/engine/scoring/normalizer.go
package scoring

import (
	"math"

	"monetization-engine/internal/models"
)

const (
	// DefaultFactorValue substitutes for any factor missing at the boundary.
	DefaultFactorValue = 50.0

	// weightSumTolerance is the allowed deviation of a weight set's sum
	// from 1.0 before rescaling kicks in.
	weightSumTolerance = 1e-3
)

// DefaultWeights returns the shipped weight set. The six values sum to 1.0.
func DefaultWeights() models.MonetizationWeights {
	return models.MonetizationWeights{
		MarketSize:              0.25,
		PaymentWillingness:      0.20,
		CompetitionLevel:        0.15,
		RevenueModels:           0.15,
		CustomerAcquisitionCost: 0.15,
		CustomerLifetimeValue:   0.10,
	}
}

// FactorInput is a partial factor set as supplied by callers. Nil fields mean
// "not provided" and normalize to DefaultFactorValue. Raw partial input never
// crosses past NormalizeFactors.
type FactorInput struct {
	MarketSize              *float64 `json:"marketSize,omitempty"`
	PaymentWillingness      *float64 `json:"paymentWillingness,omitempty"`
	CompetitionLevel        *float64 `json:"competitionLevel,omitempty"`
	RevenueModels           *float64 `json:"revenueModels,omitempty"`
	CustomerAcquisitionCost *float64 `json:"customerAcquisitionCost,omitempty"`
	CustomerLifetimeValue   *float64 `json:"customerLifetimeValue,omitempty"`
}

// WeightInput is a partial weight set. Nil fields fall back to the default
// weight for that factor.
type WeightInput struct {
	MarketSize              *float64 `json:"marketSize,omitempty"`
	PaymentWillingness      *float64 `json:"paymentWillingness,omitempty"`
	CompetitionLevel        *float64 `json:"competitionLevel,omitempty"`
	RevenueModels           *float64 `json:"revenueModels,omitempty"`
	CustomerAcquisitionCost *float64 `json:"customerAcquisitionCost,omitempty"`
	CustomerLifetimeValue   *float64 `json:"customerLifetimeValue,omitempty"`
}

// NormalizeFactors clamps each present field to [0,100] and fills missing
// fields with DefaultFactorValue. It never fails.
func NormalizeFactors(input *FactorInput) models.MonetizationFactors {
	if input == nil {
		input = &FactorInput{}
	}
	return models.MonetizationFactors{
		MarketSize:              clampOrDefault(input.MarketSize),
		PaymentWillingness:      clampOrDefault(input.PaymentWillingness),
		CompetitionLevel:        clampOrDefault(input.CompetitionLevel),
		RevenueModels:           clampOrDefault(input.RevenueModels),
		CustomerAcquisitionCost: clampOrDefault(input.CustomerAcquisitionCost),
		CustomerLifetimeValue:   clampOrDefault(input.CustomerLifetimeValue),
	}
}

// ClampFactors re-clamps an already complete factor set to [0,100].
func ClampFactors(f models.MonetizationFactors) models.MonetizationFactors {
	return models.MonetizationFactors{
		MarketSize:              clamp(f.MarketSize),
		PaymentWillingness:      clamp(f.PaymentWillingness),
		CompetitionLevel:        clamp(f.CompetitionLevel),
		RevenueModels:           clamp(f.RevenueModels),
		CustomerAcquisitionCost: clamp(f.CustomerAcquisitionCost),
		CustomerLifetimeValue:   clamp(f.CustomerLifetimeValue),
	}
}

// NormalizeWeights merges the supplied partial weights over the defaults and
// rescales the merged set by 1/sum when its sum strays from 1.0 by more than
// the tolerance. The returned bool reports whether rescaling happened, so
// callers can surface a warning. A degenerate all-zero set falls back to the
// defaults instead of dividing by zero. It never fails.
func NormalizeWeights(input *WeightInput) (models.MonetizationWeights, bool) {
	defaults := DefaultWeights()
	merged := defaults
	if input != nil {
		if input.MarketSize != nil {
			merged.MarketSize = *input.MarketSize
		}
		if input.PaymentWillingness != nil {
			merged.PaymentWillingness = *input.PaymentWillingness
		}
		if input.CompetitionLevel != nil {
			merged.CompetitionLevel = *input.CompetitionLevel
		}
		if input.RevenueModels != nil {
			merged.RevenueModels = *input.RevenueModels
		}
		if input.CustomerAcquisitionCost != nil {
			merged.CustomerAcquisitionCost = *input.CustomerAcquisitionCost
		}
		if input.CustomerLifetimeValue != nil {
			merged.CustomerLifetimeValue = *input.CustomerLifetimeValue
		}
	}

	sum := merged.Sum()
	if math.Abs(sum-1.0) <= weightSumTolerance {
		return merged, false
	}
	if sum <= 0 {
		return defaults, true
	}

	scale := 1.0 / sum
	merged.MarketSize *= scale
	merged.PaymentWillingness *= scale
	merged.CompetitionLevel *= scale
	merged.RevenueModels *= scale
	merged.CustomerAcquisitionCost *= scale
	merged.CustomerLifetimeValue *= scale
	return merged, true
}

func clampOrDefault(v *float64) float64 {
	if v == nil {
		return DefaultFactorValue
	}
	return clamp(*v)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

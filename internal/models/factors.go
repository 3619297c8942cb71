// internal/models/factors.go
package models

// Factor names used across scoring, breakdowns and attribution. FactorNames
// fixes the iteration order so that score breakdowns and assumption lists are
// deterministic.
const (
	FactorMarketSize              = "marketSize"
	FactorPaymentWillingness      = "paymentWillingness"
	FactorCompetitionLevel        = "competitionLevel"
	FactorRevenueModels           = "revenueModels"
	FactorCustomerAcquisitionCost = "customerAcquisitionCost"
	FactorCustomerLifetimeValue   = "customerLifetimeValue"
)

var FactorNames = []string{
	FactorMarketSize,
	FactorPaymentWillingness,
	FactorCompetitionLevel,
	FactorRevenueModels,
	FactorCustomerAcquisitionCost,
	FactorCustomerLifetimeValue,
}

// MonetizationFactors holds the six scoring inputs, each in [0,100] once
// normalized. CompetitionLevel and CustomerAcquisitionCost are inverted
// factors: a higher value worsens the score.
type MonetizationFactors struct {
	MarketSize              float64 `json:"marketSize"`
	PaymentWillingness      float64 `json:"paymentWillingness"`
	CompetitionLevel        float64 `json:"competitionLevel"`
	RevenueModels           float64 `json:"revenueModels"`
	CustomerAcquisitionCost float64 `json:"customerAcquisitionCost"`
	CustomerLifetimeValue   float64 `json:"customerLifetimeValue"`
}

// Value returns the factor by name. Unknown names return 0.
func (f MonetizationFactors) Value(name string) float64 {
	switch name {
	case FactorMarketSize:
		return f.MarketSize
	case FactorPaymentWillingness:
		return f.PaymentWillingness
	case FactorCompetitionLevel:
		return f.CompetitionLevel
	case FactorRevenueModels:
		return f.RevenueModels
	case FactorCustomerAcquisitionCost:
		return f.CustomerAcquisitionCost
	case FactorCustomerLifetimeValue:
		return f.CustomerLifetimeValue
	}
	return 0
}

// MonetizationWeights holds the relative importance of each factor. A valid
// weight set sums to 1.0 within 1e-3.
type MonetizationWeights struct {
	MarketSize              float64 `json:"marketSize"`
	PaymentWillingness      float64 `json:"paymentWillingness"`
	CompetitionLevel        float64 `json:"competitionLevel"`
	RevenueModels           float64 `json:"revenueModels"`
	CustomerAcquisitionCost float64 `json:"customerAcquisitionCost"`
	CustomerLifetimeValue   float64 `json:"customerLifetimeValue"`
}

// Value returns the weight by factor name. Unknown names return 0.
func (w MonetizationWeights) Value(name string) float64 {
	switch name {
	case FactorMarketSize:
		return w.MarketSize
	case FactorPaymentWillingness:
		return w.PaymentWillingness
	case FactorCompetitionLevel:
		return w.CompetitionLevel
	case FactorRevenueModels:
		return w.RevenueModels
	case FactorCustomerAcquisitionCost:
		return w.CustomerAcquisitionCost
	case FactorCustomerLifetimeValue:
		return w.CustomerLifetimeValue
	}
	return 0
}

// Sum returns the total of all six weights.
func (w MonetizationWeights) Sum() float64 {
	return w.MarketSize + w.PaymentWillingness + w.CompetitionLevel +
		w.RevenueModels + w.CustomerAcquisitionCost + w.CustomerLifetimeValue
}

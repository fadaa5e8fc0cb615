package ledger

import "math"

// Valuation extends a Position with figures that need a live market price.
// All money fields are cents.
type Valuation struct {
	Shares           float64
	AverageCost      float64
	MarketPrice      int64
	MarketValue      int64
	CostBasis        int64
	RealizedProfit   int64
	UnrealizedProfit int64
	TotalProfit      int64
	GainLossPct      float64
}

// Valuate prices a position at marketPrice. An empty position values to zero
// with no unrealized profit; realized profit carries over regardless.
func (p Position) Valuate(marketPrice int64) Valuation {
	v := Valuation{
		Shares:         p.Shares,
		AverageCost:    p.AverageCost,
		MarketPrice:    marketPrice,
		RealizedProfit: p.RealizedProfit,
	}

	if p.Shares > 0 {
		v.MarketValue = int64(math.Round(p.Shares * float64(marketPrice)))
		v.CostBasis = int64(math.Round(p.Shares * p.AverageCost))
		v.UnrealizedProfit = v.MarketValue - v.CostBasis
		if v.CostBasis != 0 {
			v.GainLossPct = float64(v.UnrealizedProfit) / float64(v.CostBasis) * 100
		}
	}

	v.TotalProfit = v.RealizedProfit + v.UnrealizedProfit
	return v
}

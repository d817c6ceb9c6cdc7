// Package risk converts a stop distance into a contract count under fixed
// account-size and risk-percent assumptions.
package risk

import (
	"math"

	"github.com/shopspring/decimal"
)

// Sizer holds the immutable sizing inputs threaded through the pipeline.
type Sizer struct {
	AccountSize float64
	RiskPercent float64
	PointValue  float64
	ClampMin    float64
	ClampMax    float64
}

// Sized is the deterministic result of sizing one signal.
type Sized struct {
	StopDistance float64 // points, clamped to [ClampMin, ClampMax]
	Contracts    int
	RiskAmount   float64 // dollars, rounded to cents
}

// Size clamps the stop distance and floors the contract count, never below
// one contract. Money math runs in decimal so boundary cases (a stop of
// exactly ClampMin/ClampMax, exact divisions) have no float ambiguity.
func (s Sizer) Size(entry, stop float64) Sized {
	dist := decimal.NewFromFloat(math.Abs(entry - stop))
	min := decimal.NewFromFloat(s.ClampMin)
	max := decimal.NewFromFloat(s.ClampMax)
	if dist.LessThan(min) {
		dist = min
	}
	if dist.GreaterThan(max) {
		dist = max
	}

	riskAmount := decimal.NewFromFloat(s.AccountSize).Mul(decimal.NewFromFloat(s.RiskPercent))
	perContract := dist.Mul(decimal.NewFromFloat(s.PointValue))

	contracts := int64(1)
	if perContract.IsPositive() {
		contracts = riskAmount.Div(perContract).Floor().IntPart()
		if contracts < 1 {
			contracts = 1
		}
	}

	distF, _ := dist.Float64()
	riskF, _ := riskAmount.Round(2).Float64()
	return Sized{
		StopDistance: distF,
		Contracts:    int(contracts),
		RiskAmount:   riskF,
	}
}

package engine

import (
	"github.com/shopspring/decimal"

	"margin-desk/internal/config"
)

// SolveResult is the output of a target-margin cost inversion: the
// highest pre-VAT unit cost that still reaches the target margin, and
// the per-order profit at exactly that cost.
type SolveResult struct {
	MaxUnitCost int64 `json:"MaxUnitCost"`
	Profit      int64 `json:"Profit"`
}

// solve inverts the margin formula for a given fixed-cost total F:
//
//	maxCost = floor((sellPrice - F - target/100 * supplyPrice) / VAT)
//	profit  = sellPrice - (round(maxCost * VAT) + F)
//
// maxCost is the pre-VAT purchase price; the landed cost a buyer pays is
// maxCost * VAT, which is what ComputeMargin expects as unit cost.
func solve(sellPrice int64, targetMarginPct float64, fixed decimal.Decimal, clampZero bool) SolveResult {
	sell := decimal.NewFromInt(sellPrice)
	supply := sell.Div(VAT)
	target := decimal.NewFromFloat(targetMarginPct).Div(hundred)

	maxCost := sell.Sub(fixed).Sub(target.Mul(supply)).Div(VAT).Floor()
	if clampZero && maxCost.IsNegative() {
		maxCost = decimal.Zero
	}
	profit := sell.Sub(roundWon(maxCost.Mul(VAT)).Add(fixed))

	return SolveResult{
		MaxUnitCost: maxCost.IntPart(),
		Profit:      profit.IntPart(),
	}
}

// SolveCostAccurate finds the maximum per-unit cost for a full per-order
// solve: logistics, return handling, packaging and gift costs are scaled
// by quantity. A negative MaxUnitCost is returned as-is; it signals that
// the target margin is infeasible at this sell price and the caller must
// surface that rather than hide it.
func SolveCostAccurate(sellPrice int64, targetMarginPct float64, quantity int64, cfg *config.Config) (SolveResult, error) {
	if sellPrice < 0 || quantity <= 0 {
		return SolveResult{}, ErrInvalidInput
	}
	c := components(decimal.NewFromInt(sellPrice), cfg, true)
	qty := decimal.NewFromInt(quantity)
	fixed := c.fee.Add(c.ad).Add(c.etc).
		Add(c.inOut.Add(c.pickup).Add(c.restock).Add(c.returnCost).Add(c.packaging).Add(c.gift).Mul(qty))
	return solve(sellPrice, targetMarginPct, fixed, false), nil
}

// SolveCostQuick is the lightweight live-preview variant: fixed costs
// are taken flat (not scaled by quantity) and a negative result is
// clamped to zero. The clamp is lossy; an infeasible target margin shows
// up as max cost 0 instead of a negative signal.
func SolveCostQuick(sellPrice int64, targetMarginPct float64, cfg *config.Config) (SolveResult, error) {
	if sellPrice < 0 {
		return SolveResult{}, ErrInvalidInput
	}
	c := components(decimal.NewFromInt(sellPrice), cfg, true)
	fixed := c.fee.Add(c.ad).Add(c.inOut).Add(c.pickup).Add(c.restock).
		Add(c.returnCost).Add(c.etc).Add(c.packaging).Add(c.gift)
	return solve(sellPrice, targetMarginPct, fixed, true), nil
}

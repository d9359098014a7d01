package engine

import (
	"errors"

	"github.com/shopspring/decimal"

	"margin-desk/internal/config"
)

// ErrInvalidInput marks numeric input that cannot be interpreted
// (negative sell price, non-positive quantity, negative unit cost).
// Callers surface it locally; it never terminates the session.
var ErrInvalidInput = errors.New("invalid numeric input")

// VAT is the fixed value-added-tax multiplier of this pricing domain
// (10% VAT, so every VAT-bearing cost component is scaled by 1.1).
var VAT = decimal.New(11, -1)

var hundred = decimal.New(100, 0)

// Breakdown is the full per-order result of a margin calculation.
// Money components are rounded to whole currency units (round half to
// even); ratios carry two decimals.
type Breakdown struct {
	SellPrice     int64   `json:"SellPrice"`
	Quantity      int64   `json:"Quantity"`
	UnitCostTotal int64   `json:"UnitCostTotal"`
	Fee           int64   `json:"Fee"`
	Ad            int64   `json:"Ad"`
	InOut         int64   `json:"InOut"`
	ReturnCost    int64   `json:"ReturnCost"`
	Etc           int64   `json:"Etc"`
	Packaging     int64   `json:"Packaging"`
	Gift          int64   `json:"Gift"`
	TotalCost     int64   `json:"TotalCost"`
	SupplyPrice   float64 `json:"SupplyPrice"` // pre-VAT sell price, unrounded
	Profit        int64   `json:"Profit"`
	MarginProfit  int64   `json:"MarginProfit"` // profit excluding ad spend and return cost

	MarginRatio    float64 `json:"MarginRatio"`    // margin profit / supply price * 100
	MinMarginRatio float64 `json:"MinMarginRatio"` // profit / supply price * 100
	ROI            float64 `json:"ROI"`            // profit / unit cost total * 100
	ROIMargin      float64 `json:"ROIMargin"`      // margin profit / unit cost total * 100
	ROAS           float64 `json:"ROAS"`           // sell price / (profit + ad) * 100
}

// roundWon rounds a money amount to whole currency units, half to even.
func roundWon(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(0)
}

// pctOf returns amount * rate / 100.
func pctOf(amount decimal.Decimal, rate float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(rate)).Div(hundred)
}

// ratio returns num / den * 100 rounded to two decimals, or 0 when the
// denominator is zero. Division by zero is a policy result here, never
// an error: a zero-cost or zero-price row simply has no meaningful ratio.
func ratio(num, den decimal.Decimal) float64 {
	if den.IsZero() {
		return 0
	}
	return num.Div(den).Mul(hundred).RoundBank(2).InexactFloat64()
}

// costComponents holds the per-unit VAT-adjusted cost parts shared by
// ComputeMargin and the cost solvers. Each part is already rounded.
type costComponents struct {
	fee        decimal.Decimal
	ad         decimal.Decimal
	inOut      decimal.Decimal
	pickup     decimal.Decimal
	restock    decimal.Decimal
	returnCost decimal.Decimal
	etc        decimal.Decimal
	packaging  decimal.Decimal
	gift       decimal.Decimal
}

// components computes every cost part for one unit at the given sell
// price. The etc component is the one place the domain is inconsistent
// about VAT: the per-order detail path computes it VAT-exclusive, the
// cost solvers VAT-inclusive. Both conventions are kept behind
// etcIncludesVAT; see DESIGN.md for which call sites use which.
func components(sellPrice decimal.Decimal, cfg *config.Config, etcIncludesVAT bool) costComponents {
	etc := pctOf(sellPrice, cfg.EtcRate)
	if etcIncludesVAT {
		etc = etc.Mul(VAT)
	}
	return costComponents{
		fee:        roundWon(pctOf(sellPrice, cfg.FeeRate).Mul(VAT)),
		ad:         roundWon(pctOf(sellPrice, cfg.AdRate).Mul(VAT)),
		inOut:      roundWon(decimal.NewFromFloat(cfg.InOutCost).Mul(VAT)),
		pickup:     roundWon(decimal.NewFromFloat(cfg.PickupCost).Mul(VAT)),
		restock:    roundWon(decimal.NewFromFloat(cfg.RestockCost).Mul(VAT)),
		returnCost: roundWon(pctOf(decimal.NewFromFloat(cfg.PickupCost+cfg.RestockCost), cfg.ReturnRate).Mul(VAT)),
		etc:        roundWon(etc),
		packaging:  roundWon(decimal.NewFromFloat(cfg.PackagingCost).Mul(VAT)),
		gift:       roundWon(decimal.NewFromFloat(cfg.GiftCost).Mul(VAT)),
	}
}

// ComputeMargin calculates the full cost/profit breakdown for one order.
// sellPrice is the VAT-inclusive sell price, unitCost the landed cost per
// unit (already converted to local currency). The function is pure: same
// inputs always produce the same Breakdown.
func ComputeMargin(sellPrice, quantity int64, unitCost decimal.Decimal, cfg *config.Config, etcIncludesVAT bool) (Breakdown, error) {
	if sellPrice < 0 || quantity <= 0 || unitCost.IsNegative() {
		return Breakdown{}, ErrInvalidInput
	}

	sell := decimal.NewFromInt(sellPrice)
	c := components(sell, cfg, etcIncludesVAT)

	unitCostTotal := roundWon(unitCost.Mul(decimal.NewFromInt(quantity)))
	totalCost := unitCostTotal.
		Add(c.fee).Add(c.ad).Add(c.inOut).Add(c.returnCost).
		Add(c.etc).Add(c.packaging).Add(c.gift)

	supply := sell.Div(VAT)
	profit := sell.Sub(totalCost)
	marginProfit := sell.Sub(unitCostTotal.Add(c.fee).Add(c.inOut).Add(c.packaging).Add(c.gift))

	return Breakdown{
		SellPrice:     sellPrice,
		Quantity:      quantity,
		UnitCostTotal: unitCostTotal.IntPart(),
		Fee:           c.fee.IntPart(),
		Ad:            c.ad.IntPart(),
		InOut:         c.inOut.IntPart(),
		ReturnCost:    c.returnCost.IntPart(),
		Etc:           c.etc.IntPart(),
		Packaging:     c.packaging.IntPart(),
		Gift:          c.gift.IntPart(),
		TotalCost:     totalCost.IntPart(),
		SupplyPrice:   supply.InexactFloat64(),
		Profit:        profit.IntPart(),
		MarginProfit:  marginProfit.IntPart(),

		MarginRatio:    ratio(marginProfit, supply),
		MinMarginRatio: ratio(profit, supply),
		ROI:            ratio(profit, unitCostTotal),
		ROIMargin:      ratio(marginProfit, unitCostTotal),
		ROAS:           ratio(sell, profit.Add(c.ad)),
	}, nil
}

// UnitCostFromForeign converts a foreign-currency unit price to local
// currency using the configured exchange rate.
func UnitCostFromForeign(foreignUnitPrice float64, cfg *config.Config) (decimal.Decimal, error) {
	if foreignUnitPrice < 0 || cfg.ExchangeRate <= 0 {
		return decimal.Zero, ErrInvalidInput
	}
	return decimal.NewFromFloat(foreignUnitPrice).Mul(decimal.NewFromFloat(cfg.ExchangeRate)), nil
}

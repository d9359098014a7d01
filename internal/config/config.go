package config

// Config holds the global fee/cost assumptions every margin calculation
// runs against (in-memory representation). Persistence is handled by the
// internal/db package; handlers must pass a snapshot (Clone) into the
// engine so an in-flight calculation never observes a concurrent save.
type Config struct {
	FeeRate       float64 `json:"fee_rate"`       // platform commission, % of sell price
	AdRate        float64 `json:"ad_rate"`        // advertising spend, % of sell price
	InOutCost     float64 `json:"inout_cost"`     // inbound/outbound logistics, currency per unit
	PickupCost    float64 `json:"pickup_cost"`    // return pickup, currency per unit
	RestockCost   float64 `json:"restock_cost"`   // return restocking, currency per unit
	ReturnRate    float64 `json:"return_rate"`    // fraction of orders returned, %
	EtcRate       float64 `json:"etc_rate"`       // miscellaneous costs, % of sell price
	ExchangeRate  float64 `json:"exchange_rate"`  // foreign currency -> local currency
	PackagingCost float64 `json:"packaging_cost"` // currency per unit
	GiftCost      float64 `json:"gift_cost"`      // currency per unit
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		FeeRate:      10.8,
		ExchangeRate: 180,
	}
}

// Clone returns an independent copy for per-request snapshot semantics.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Normalize clamps every field to its documented invariant: rates and
// per-unit costs are non-negative, the exchange rate is strictly positive.
func (c *Config) Normalize() {
	clamp := func(v *float64) {
		if *v < 0 {
			*v = 0
		}
	}
	clamp(&c.FeeRate)
	clamp(&c.AdRate)
	clamp(&c.InOutCost)
	clamp(&c.PickupCost)
	clamp(&c.RestockCost)
	clamp(&c.ReturnRate)
	clamp(&c.EtcRate)
	clamp(&c.PackagingCost)
	clamp(&c.GiftCost)
	if c.ReturnRate > 100 {
		c.ReturnRate = 100
	}
	if c.ExchangeRate <= 0 {
		c.ExchangeRate = Default().ExchangeRate
	}
}

// Package pricing implements the resale pricing decision core: choosing a
// target delivered price from competitor statistics, splitting it into item
// price plus shipping charge, enforcing the profitability safety floor, and
// estimating net payout for the evidence trail.
//
// Every function in this package is pure: plain data in, plain data out, no
// I/O and no shared state. Callers may price arbitrarily many products in
// parallel with no coordination.
package pricing

import (
	"errors"
	"fmt"
)

// Mode selects the delivered-price strategy.
type Mode string

const (
	ModeMarketMatch Mode = "market-match"
	ModeFastSale    Mode = "fast-sale"
	ModeMaxMargin   Mode = "max-margin"
)

// LowPricePolicy decides what happens when a listing cannot compete at the
// target price point.
type LowPricePolicy string

const (
	// FlagOnly returns the computed numbers and leaves the skip decision
	// to the caller.
	FlagOnly LowPricePolicy = "FLAG_ONLY"
	// AutoSkip marks the decision so the caller must not create a listing.
	AutoSkip LowPricePolicy = "AUTO_SKIP"
)

// Business constants preserved from the production system. Both are business
// decisions, not derived values; do not re-tune them in code.
const (
	// RetailFallbackPercent discounts a retail reference price when no
	// marketplace comps exist to validate it.
	RetailFallbackPercent = 60
	// SoldStrengthThreshold is the minimum completed-sale sample count for
	// sold-comparable medians to participate in pricing.
	SoldStrengthThreshold = 5
)

// FreeShipPolicy controls the free-shipping subsidy in the price splitter.
type FreeShipPolicy struct {
	Allow           bool  `json:"allow" yaml:"allow"`
	MaxSubsidyCents int64 `json:"maxSubsidyCents" yaml:"max_subsidy_cents"`
}

// Settings is the immutable per-call strategy configuration. Construct one
// per pricing decision; never share a mutated copy between calls.
type Settings struct {
	Mode                     Mode           `json:"mode" yaml:"mode"`
	ShippingCostEstimateCent int64          `json:"shippingCostEstimateCents" yaml:"shipping_cost_estimate_cents"`
	MinItemPriceCents        int64          `json:"minItemPriceCents" yaml:"min_item_price_cents"`
	UndercutCents            int64          `json:"undercutCents" yaml:"undercut_cents"`
	FreeShip                 FreeShipPolicy `json:"freeShip" yaml:"free_ship"`
	LowPrice                 LowPricePolicy `json:"lowPrice" yaml:"low_price"`
}

// FloorInputs parameterizes the safety floor and the profit estimator.
// All fields are immutable per call.
type FloorInputs struct {
	MinNetPayoutCents        int64   `json:"minNetPayoutCents" yaml:"min_net_payout_cents"`
	FeeRate                  float64 `json:"feeRate" yaml:"fee_rate"`
	FixedFeeCents            int64   `json:"fixedFeeCents" yaml:"fixed_fee_cents"`
	ShippingCostEstimateCent int64   `json:"shippingCostEstimateCents" yaml:"shipping_cost_estimate_cents"`
	ReserveRate              float64 `json:"reserveRate" yaml:"reserve_rate"`
	MinReserveCents          int64   `json:"minReserveCents" yaml:"min_reserve_cents"`
}

// ErrFloorUnreachable reports a fee model whose combined rates consume the
// entire delivered price, making any minimum payout impossible. This is a
// misconfiguration, distinct from the normal "no pricing data" outcome.
var ErrFloorUnreachable = errors.New("pricing: fee rate plus reserve rate leaves no margin, floor is unreachable")

// Validate rejects impossible configurations once at the boundary, so the
// internal stages can assume well-formed inputs.
func (s Settings) Validate() error {
	switch s.Mode {
	case ModeMarketMatch, ModeFastSale, ModeMaxMargin:
	default:
		return fmt.Errorf("pricing: unknown mode %q", s.Mode)
	}
	switch s.LowPrice {
	case FlagOnly, AutoSkip:
	default:
		return fmt.Errorf("pricing: unknown low-price policy %q", s.LowPrice)
	}
	if s.ShippingCostEstimateCent < 0 {
		return fmt.Errorf("pricing: negative shipping cost estimate %d", s.ShippingCostEstimateCent)
	}
	if s.MinItemPriceCents < 0 {
		return fmt.Errorf("pricing: negative minimum item price %d", s.MinItemPriceCents)
	}
	if s.UndercutCents < 0 {
		return fmt.Errorf("pricing: negative undercut %d", s.UndercutCents)
	}
	if s.FreeShip.MaxSubsidyCents < 0 {
		return fmt.Errorf("pricing: negative max subsidy %d", s.FreeShip.MaxSubsidyCents)
	}
	return nil
}

// Validate rejects fee models that can never produce the required payout.
func (f FloorInputs) Validate() error {
	if f.FeeRate < 0 || f.ReserveRate < 0 {
		return fmt.Errorf("pricing: negative rate in fee model (fee=%v reserve=%v)", f.FeeRate, f.ReserveRate)
	}
	if f.FeeRate+f.ReserveRate >= 1 || f.FeeRate >= 1 {
		return ErrFloorUnreachable
	}
	if f.MinNetPayoutCents < 0 || f.FixedFeeCents < 0 || f.ShippingCostEstimateCent < 0 || f.MinReserveCents < 0 {
		return fmt.Errorf("pricing: negative cents value in floor inputs")
	}
	return nil
}

package pricing

import "github.com/shopspring/decimal"

// ProfitEstimate is the read-only payout audit for one delivered price.
// It never participates in the pricing decision; it exists for the evidence
// trail and for operator review.
type ProfitEstimate struct {
	DeliveredCents  int64    `json:"deliveredCents"`
	FeeCents        int64    `json:"feeCents"`
	FixedFeeCents   int64    `json:"fixedFeeCents"`
	ShippingCents   int64    `json:"shippingCents"`
	ReserveCents    int64    `json:"reserveCents"`
	NetPayoutCents  int64    `json:"netPayoutCents"`
	ProfitCents     *int64   `json:"profitCents,omitempty"`
	MarginPercent   *float64 `json:"marginPercent,omitempty"`
	CostOfGoodsCent *int64   `json:"costOfGoodsCents,omitempty"`
}

// EstimateProfit reports fees, shipping, reserve, and net payout for a
// delivered price. When costOfGoodsCents is non-nil it also reports profit
// and margin relative to the delivered price.
func EstimateProfit(deliveredCents int64, f FloorInputs, costOfGoodsCents *int64) ProfitEstimate {
	b := breakdownAt(deliveredCents, f)
	est := ProfitEstimate{
		DeliveredCents: b.DeliveredCents,
		FeeCents:       b.FeeCents,
		FixedFeeCents:  b.FixedFeeCents,
		ShippingCents:  b.ShippingCents,
		ReserveCents:   b.ReserveCents,
		NetPayoutCents: b.NetPayoutCents,
	}

	if costOfGoodsCents != nil {
		cost := *costOfGoodsCents
		profit := b.NetPayoutCents - cost
		est.ProfitCents = &profit
		est.CostOfGoodsCent = &cost
		if deliveredCents > 0 {
			margin, _ := decimal.NewFromInt(profit).
				Div(decimal.NewFromInt(deliveredCents)).
				Mul(decimal.NewFromInt(100)).
				Round(2).Float64()
			est.MarginPercent = &margin
		}
	}
	return est
}

package pricing

import "github.com/shopspring/decimal"

// FloorBreakdown itemizes every deduction at a given delivered price.
type FloorBreakdown struct {
	DeliveredCents int64 `json:"deliveredCents"`
	FeeCents       int64 `json:"feeCents"`
	FixedFeeCents  int64 `json:"fixedFeeCents"`
	ShippingCents  int64 `json:"shippingCents"`
	ReserveCents   int64 `json:"reserveCents"`
	NetPayoutCents int64 `json:"netPayoutCents"`
}

// FloorResult is the computed safety floor with its deduction breakdown.
type FloorResult struct {
	MinDeliveredCents int64          `json:"minDeliveredCents"`
	Breakdown         FloorBreakdown `json:"breakdown"`
}

// EnforceResult reports whether the floor overrode a proposed price.
type EnforceResult struct {
	MinDeliveredCents int64          `json:"minDeliveredCents"`
	Breakdown         FloorBreakdown `json:"breakdown"`
	FloorWasBinding   bool           `json:"floorWasBinding"`
	UpliftCents       int64          `json:"upliftCents"`
	UpliftPercent     float64        `json:"upliftPercent"`
}

// ComputeSafetyFloor solves for the minimum delivered price that still nets
// the required payout after fees, shipping cost, and the returns reserve.
//
// The reserve is max(proportional, fixed minimum), so the floor is the larger
// of the two closed-form candidates:
//
//	delivered * (1 - feeRate - reserveRate) >= minNet + fixedFee + shipping
//	delivered * (1 - feeRate)               >= minNet + fixedFee + shipping + minReserve
//
// Taking the max guarantees the constraint under either reserve regime.
// Returns ErrFloorUnreachable when the combined rates make any payout
// impossible.
func ComputeSafetyFloor(f FloorInputs) (FloorResult, error) {
	if err := f.Validate(); err != nil {
		return FloorResult{}, err
	}

	base := decimal.NewFromInt(f.MinNetPayoutCents + f.FixedFeeCents + f.ShippingCostEstimateCent)
	one := decimal.NewFromInt(1)

	proportional := base.
		Div(one.Sub(decimal.NewFromFloat(f.FeeRate)).Sub(decimal.NewFromFloat(f.ReserveRate)))
	fixed := base.Add(decimal.NewFromInt(f.MinReserveCents)).
		Div(one.Sub(decimal.NewFromFloat(f.FeeRate)))

	floor := proportional.Ceil().IntPart()
	if fb := fixed.Ceil().IntPart(); fb > floor {
		floor = fb
	}

	// Cent rounding of the fee and reserve at the floor can shave the net
	// below the target by a cent; nudge up until the breakdown proves out.
	// Each added cent grows the net by at least (1 - feeRate - reserveRate),
	// so this converges immediately in practice.
	breakdown := breakdownAt(floor, f)
	for breakdown.NetPayoutCents < f.MinNetPayoutCents {
		floor++
		breakdown = breakdownAt(floor, f)
	}

	return FloorResult{MinDeliveredCents: floor, Breakdown: breakdown}, nil
}

// EnforceSafetyFloor clamps a proposed delivered price up to the safety
// floor. Applying it twice to its own output is a no-op.
func EnforceSafetyFloor(proposedCents int64, f FloorInputs) (EnforceResult, error) {
	fl, err := ComputeSafetyFloor(f)
	if err != nil {
		return EnforceResult{}, err
	}

	res := EnforceResult{
		MinDeliveredCents: fl.MinDeliveredCents,
		Breakdown:         fl.Breakdown,
	}
	if proposedCents >= fl.MinDeliveredCents {
		res.MinDeliveredCents = proposedCents
		res.Breakdown = breakdownAt(proposedCents, f)
		return res, nil
	}

	res.FloorWasBinding = true
	res.UpliftCents = fl.MinDeliveredCents - proposedCents
	if proposedCents > 0 {
		res.UpliftPercent = float64(res.UpliftCents) / float64(proposedCents) * 100
	} else {
		res.UpliftPercent = 100
	}
	return res, nil
}

// breakdownAt itemizes the deductions for a delivered price. The
// proportional fee and reserve are rounded half away from zero to whole
// cents at this final step only.
func breakdownAt(deliveredCents int64, f FloorInputs) FloorBreakdown {
	delivered := decimal.NewFromInt(deliveredCents)

	fee := delivered.Mul(decimal.NewFromFloat(f.FeeRate)).Round(0).IntPart()
	reserve := delivered.Mul(decimal.NewFromFloat(f.ReserveRate)).Round(0).IntPart()
	if reserve < f.MinReserveCents {
		reserve = f.MinReserveCents
	}

	return FloorBreakdown{
		DeliveredCents: deliveredCents,
		FeeCents:       fee,
		FixedFeeCents:  f.FixedFeeCents,
		ShippingCents:  f.ShippingCostEstimateCent,
		ReserveCents:   reserve,
		NetPayoutCents: deliveredCents - fee - f.FixedFeeCents - f.ShippingCostEstimateCent - reserve,
	}
}

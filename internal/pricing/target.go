package pricing

import "github.com/shopspring/decimal"

// Warning labels carried on pricing results. These are normal outcomes, not
// errors; callers branch on them to skip, flag, or proceed degraded.
const (
	WarnNoEBayComps        = "noEbayComps"
	WarnUsingRetailFB      = "usingRetailFallback"
	WarnNoPricingData      = "noPricingData"
	WarnCannotCompete      = "cannotCompete"
	WarnFloorOverrodePrice = "safetyFloorOverride"
)

// TargetInputs carries the signals available to the delivered-price
// calculator. Nil pointers mean "no signal", never zero.
type TargetInputs struct {
	Mode Mode

	// Active marketplace (eBay) statistics.
	ActiveFloorCents  *int64
	ActiveMedianCents *int64

	// Completed-sale comparables: a stronger signal than active listings
	// once the sample is large enough.
	SoldMedianCents *int64
	SoldCount       int

	// Retail reference prices for the no-comps fallback.
	AmazonCents  *int64
	WalmartCents *int64

	UndercutCents int64

	// MinDeliveredCents is the safety-floor-derived minimum; fast-sale
	// clamps its undercut against it.
	MinDeliveredCents int64
}

// TargetResult is the delivered-price calculator output. TargetCents == 0
// with the noPricingData warning is a valid "cannot price" result the caller
// must check for, not an error.
type TargetResult struct {
	TargetCents  int64    `json:"targetCents"`
	FallbackUsed bool     `json:"fallbackUsed"`
	SoldStrong   bool     `json:"soldStrong"`
	Warnings     []string `json:"warnings,omitempty"`
}

// CalculateTargetDelivered chooses the target delivered price for a strategy
// mode from whatever signals exist, falling back to a discounted retail
// reference when the marketplace is silent.
func CalculateTargetDelivered(in TargetInputs) TargetResult {
	res := TargetResult{
		SoldStrong: in.SoldMedianCents != nil && in.SoldCount >= SoldStrengthThreshold,
	}

	target, resolved := targetForMode(in, res.SoldStrong)
	if resolved {
		res.TargetCents = target
		return res
	}

	// The retail fallback requires the active marketplace to be fully
	// silent: a mode can leave the target unresolved while one active
	// statistic is still present, and a present signal must never be
	// bypassed for a retail guess.
	if in.ActiveFloorCents != nil || in.ActiveMedianCents != nil {
		res.Warnings = append(res.Warnings, WarnNoPricingData)
		return res
	}

	// No marketplace signal: fall back to a deliberate discount off the
	// lower retail reference. The discount reflects the absence of real
	// marketplace validation, not a computed margin.
	if retail := lowerRetail(in.AmazonCents, in.WalmartCents); retail != nil {
		res.TargetCents = percentOfCents(*retail, RetailFallbackPercent)
		res.FallbackUsed = true
		res.Warnings = append(res.Warnings, WarnNoEBayComps, WarnUsingRetailFB)
		return res
	}

	res.Warnings = append(res.Warnings, WarnNoPricingData)
	return res
}

// targetForMode applies the per-mode policy. The second return reports
// whether any signal resolved a target at all.
func targetForMode(in TargetInputs, soldStrong bool) (int64, bool) {
	switch in.Mode {
	case ModeMarketMatch:
		if soldStrong {
			switch {
			case in.SoldMedianCents != nil && in.ActiveFloorCents != nil:
				return minCents(*in.SoldMedianCents, *in.ActiveFloorCents), true
			case in.SoldMedianCents != nil:
				return *in.SoldMedianCents, true
			case in.ActiveFloorCents != nil:
				return *in.ActiveFloorCents, true
			}
			return 0, false
		}
		if in.ActiveFloorCents != nil {
			return *in.ActiveFloorCents, true
		}
		return 0, false

	case ModeFastSale:
		if in.ActiveFloorCents == nil {
			return 0, false
		}
		target := *in.ActiveFloorCents - in.UndercutCents
		// Never price below sustainability, even to move inventory fast.
		if target < in.MinDeliveredCents {
			target = in.MinDeliveredCents
		}
		return target, true

	case ModeMaxMargin:
		if soldStrong {
			switch {
			case in.ActiveMedianCents != nil && in.SoldMedianCents != nil:
				return minCents(*in.ActiveMedianCents, *in.SoldMedianCents), true
			case in.SoldMedianCents != nil:
				return *in.SoldMedianCents, true
			case in.ActiveMedianCents != nil:
				return *in.ActiveMedianCents, true
			}
			return 0, false
		}
		if in.ActiveMedianCents != nil {
			return *in.ActiveMedianCents, true
		}
		return 0, false
	}
	return 0, false
}

func lowerRetail(amazon, walmart *int64) *int64 {
	switch {
	case amazon != nil && walmart != nil:
		lower := minCents(*amazon, *walmart)
		return &lower
	case amazon != nil:
		return amazon
	case walmart != nil:
		return walmart
	}
	return nil
}

// percentOfCents computes pct% of an amount, rounded half away from zero at
// the final step only.
func percentOfCents(cents int64, pct int64) int64 {
	d := decimal.NewFromInt(cents).
		Mul(decimal.NewFromInt(pct)).
		Div(decimal.NewFromInt(100))
	return d.Round(0).IntPart()
}

func minCents(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

package pricing

import (
	"time"

	"github.com/google/uuid"

	"github.com/crosslist/pricer/internal/comps"
)

// DecisionInputs gathers everything one pricing decision consumes: the
// identity being priced, the aggregated competitor statistics, the strategy
// settings, and the fee model. All fields are read-only to the pipeline.
type DecisionInputs struct {
	IdentityHash string
	Stats        comps.Stats

	// Completed-sale comparables supplied by the caller.
	SoldMedianCents *int64
	SoldCount       int

	// Retail reference prices for the fallback path.
	AmazonCents  *int64
	WalmartCents *int64

	// Optional acquisition cost for the profit audit.
	CostOfGoodsCents *int64

	Settings Settings
	Floor    FloorInputs
}

// Evidence is the audit record for one pricing decision: every intermediate
// amount, which strategy fired, and whether a floor or subsidy was binding.
// It is produced fresh per call and never mutated after return.
type Evidence struct {
	DecisionID   string    `json:"decisionId"`
	CreatedAt    time.Time `json:"createdAt"`
	IdentityHash string    `json:"identityHash,omitempty"`

	Mode Mode `json:"mode"`

	ActiveFloorCents  *int64 `json:"activeFloorCents"`
	ActiveMedianCents *int64 `json:"activeMedianCents"`
	ActiveCompCount   int    `json:"activeCompCount"`

	Target   TargetResult   `json:"target"`
	Enforced EnforceResult  `json:"floor"`
	Split    SplitResult    `json:"split"`
	Profit   ProfitEstimate `json:"profit"`

	// Final listable numbers after every policy has been applied.
	DeliveredCents int64 `json:"deliveredCents"`
	ItemCents      int64 `json:"itemCents"`
	ShipCents      int64 `json:"shipCents"`

	Warnings []string `json:"warnings,omitempty"`
}

// Decide runs the full pricing pipeline: safety floor → delivered target →
// floor enforcement → item/shipping split → profit audit. The floor is
// enforced on the delivered target before splitting, so the split invariant
// (item + shipping == delivered) holds on the final numbers.
//
// A zero-target "cannot price" outcome is a valid result: the evidence will
// carry the noPricingData warning and zeroed amounts, and no floor uplift is
// applied to it.
func Decide(in DecisionInputs) (Evidence, error) {
	if err := in.Settings.Validate(); err != nil {
		return Evidence{}, err
	}

	floor, err := ComputeSafetyFloor(in.Floor)
	if err != nil {
		return Evidence{}, err
	}

	active := in.Stats.ForSource(comps.SourceEBay)

	target := CalculateTargetDelivered(TargetInputs{
		Mode:              in.Settings.Mode,
		ActiveFloorCents:  active.FloorCents,
		ActiveMedianCents: activeMedian(active),
		SoldMedianCents:   in.SoldMedianCents,
		SoldCount:         in.SoldCount,
		AmazonCents:       in.AmazonCents,
		WalmartCents:      in.WalmartCents,
		UndercutCents:     in.Settings.UndercutCents,
		MinDeliveredCents: floor.MinDeliveredCents,
	})

	ev := Evidence{
		DecisionID:        uuid.NewString(),
		CreatedAt:         time.Now().UTC(),
		IdentityHash:      in.IdentityHash,
		Mode:              in.Settings.Mode,
		ActiveFloorCents:  active.FloorCents,
		ActiveMedianCents: activeMedian(active),
		ActiveCompCount:   active.Count,
		Target:            target,
	}
	ev.Warnings = append(ev.Warnings, target.Warnings...)

	if target.TargetCents == 0 {
		// Cannot price. Keep the floor in evidence so reviewers can see
		// what the listing would have had to clear.
		ev.Enforced = EnforceResult{
			MinDeliveredCents: floor.MinDeliveredCents,
			Breakdown:         floor.Breakdown,
		}
		return ev, nil
	}

	enforced, err := EnforceSafetyFloor(target.TargetCents, in.Floor)
	if err != nil {
		return Evidence{}, err
	}
	ev.Enforced = enforced
	if enforced.FloorWasBinding {
		ev.Warnings = append(ev.Warnings, WarnFloorOverrodePrice)
	}

	delivered := enforced.MinDeliveredCents
	split := SplitDeliveredPrice(delivered, in.Settings)
	ev.Split = split
	ev.Warnings = append(ev.Warnings, split.Warnings...)

	ev.DeliveredCents = delivered
	ev.ItemCents = split.ItemCents
	ev.ShipCents = split.ShipCents
	ev.Profit = EstimateProfit(delivered, in.Floor, in.CostOfGoodsCents)
	return ev, nil
}

// activeMedian returns the active median as a nil-able signal: a source with
// no in-stock comps has no median signal even though the raw statistic
// degenerates to zero.
func activeMedian(s comps.SourceStats) *int64 {
	if s.Count == 0 {
		return nil
	}
	m := s.MedianCents
	return &m
}

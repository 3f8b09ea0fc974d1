package pricing

import (
	"slices"
	"testing"
)

func cents(v int64) *int64 { return &v }

func TestTarget_MarketMatch_StrongSoldTakesMinOfSoldAndFloor(t *testing.T) {
	res := CalculateTargetDelivered(TargetInputs{
		Mode:             ModeMarketMatch,
		ActiveFloorCents: cents(2500),
		SoldMedianCents:  cents(2200),
		SoldCount:        7,
	})

	if !res.SoldStrong {
		t.Fatal("expected soldStrong with 7 samples")
	}
	if res.TargetCents != 2200 {
		t.Fatalf("target = %d, want 2200", res.TargetCents)
	}
}

func TestTarget_MarketMatch_WeakSoldUsesActiveFloor(t *testing.T) {
	res := CalculateTargetDelivered(TargetInputs{
		Mode:             ModeMarketMatch,
		ActiveFloorCents: cents(2500),
		SoldMedianCents:  cents(2200),
		SoldCount:        4,
	})

	if res.SoldStrong {
		t.Fatal("4 samples must not be a strong sold signal")
	}
	if res.TargetCents != 2500 {
		t.Fatalf("target = %d, want 2500", res.TargetCents)
	}
}

func TestTarget_MarketMatch_StrongSoldWithoutActiveUsesSold(t *testing.T) {
	res := CalculateTargetDelivered(TargetInputs{
		Mode:            ModeMarketMatch,
		SoldMedianCents: cents(1800),
		SoldCount:       5,
	})

	if res.TargetCents != 1800 {
		t.Fatalf("target = %d, want 1800", res.TargetCents)
	}
	if res.FallbackUsed {
		t.Fatal("sold median is a real signal, fallback must not fire")
	}
}

func TestTarget_FastSale_UndercutClampedToMinDelivered(t *testing.T) {
	// Active floor $12.00, undercut $5.00, min delivered $10.99: the naive
	// $7.00 target is clamped up to $10.99.
	res := CalculateTargetDelivered(TargetInputs{
		Mode:              ModeFastSale,
		ActiveFloorCents:  cents(1200),
		UndercutCents:     500,
		MinDeliveredCents: 1099,
	})

	if res.TargetCents != 1099 {
		t.Fatalf("target = %d, want 1099", res.TargetCents)
	}
}

func TestTarget_FastSale_UndercutAboveMinStays(t *testing.T) {
	res := CalculateTargetDelivered(TargetInputs{
		Mode:              ModeFastSale,
		ActiveFloorCents:  cents(5000),
		UndercutCents:     300,
		MinDeliveredCents: 1099,
	})

	if res.TargetCents != 4700 {
		t.Fatalf("target = %d, want 4700", res.TargetCents)
	}
}

func TestTarget_MaxMargin_StrongSoldTakesMinOfMedians(t *testing.T) {
	res := CalculateTargetDelivered(TargetInputs{
		Mode:              ModeMaxMargin,
		ActiveMedianCents: cents(3100),
		SoldMedianCents:   cents(2900),
		SoldCount:         9,
	})

	if res.TargetCents != 2900 {
		t.Fatalf("target = %d, want 2900", res.TargetCents)
	}
}

func TestTarget_MaxMargin_WeakSoldUsesActiveMedian(t *testing.T) {
	res := CalculateTargetDelivered(TargetInputs{
		Mode:              ModeMaxMargin,
		ActiveMedianCents: cents(3100),
	})

	if res.TargetCents != 3100 {
		t.Fatalf("target = %d, want 3100", res.TargetCents)
	}
}

func TestTarget_RetailFallback_UsesLowerReferenceAt60Percent(t *testing.T) {
	// No active comps, Amazon $29.95, Walmart $27.95: fallback is 60% of
	// the lower reference.
	res := CalculateTargetDelivered(TargetInputs{
		Mode:         ModeMarketMatch,
		AmazonCents:  cents(2995),
		WalmartCents: cents(2795),
	})

	if res.TargetCents != 1677 {
		t.Fatalf("target = %d, want 1677 (2795 * 0.60)", res.TargetCents)
	}
	if !res.FallbackUsed {
		t.Fatal("fallbackUsed must be set")
	}
	if !slices.Contains(res.Warnings, WarnNoEBayComps) || !slices.Contains(res.Warnings, WarnUsingRetailFB) {
		t.Fatalf("missing fallback warnings, got %v", res.Warnings)
	}
}

func TestTarget_PresentActiveSignalBlocksRetailFallback(t *testing.T) {
	// Max-margin cannot resolve from a floor alone, but an active signal
	// exists: the result is "cannot price", not a retail guess.
	res := CalculateTargetDelivered(TargetInputs{
		Mode:             ModeMaxMargin,
		ActiveFloorCents: cents(1200),
		AmazonCents:      cents(2995),
		WalmartCents:     cents(2795),
	})

	if res.TargetCents != 0 {
		t.Fatalf("target = %d, want 0", res.TargetCents)
	}
	if res.FallbackUsed {
		t.Fatal("fallback must not fire while an active signal is present")
	}
	if !slices.Contains(res.Warnings, WarnNoPricingData) {
		t.Fatalf("missing noPricingData warning, got %v", res.Warnings)
	}
}

func TestTarget_NoSignalAtAllIsAValidZeroResult(t *testing.T) {
	res := CalculateTargetDelivered(TargetInputs{Mode: ModeMaxMargin})

	if res.TargetCents != 0 {
		t.Fatalf("target = %d, want 0", res.TargetCents)
	}
	if !slices.Contains(res.Warnings, WarnNoPricingData) {
		t.Fatalf("missing noPricingData warning, got %v", res.Warnings)
	}
	if res.FallbackUsed {
		t.Fatal("no retail reference, fallback must not be reported")
	}
}

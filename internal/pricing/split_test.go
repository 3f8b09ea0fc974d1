package pricing

import (
	"slices"
	"testing"
)

func splitSettings() Settings {
	return Settings{
		Mode:                     ModeMarketMatch,
		ShippingCostEstimateCent: 600,
		MinItemPriceCents:        500,
		FreeShip:                 FreeShipPolicy{Allow: true, MaxSubsidyCents: 800},
		LowPrice:                 FlagOnly,
	}
}

func assertSplitInvariant(t *testing.T, target int64, res SplitResult) {
	t.Helper()
	if res.ItemCents+res.ShipCents != target {
		t.Fatalf("item %d + ship %d != target %d", res.ItemCents, res.ShipCents, target)
	}
	if res.ItemCents < 0 || res.ShipCents < 0 {
		t.Fatalf("negative amount in split: %+v", res)
	}
}

func TestSplit_NaiveSplitAboveMinItem(t *testing.T) {
	res := SplitDeliveredPrice(5130, splitSettings())

	assertSplitInvariant(t, 5130, res)
	if res.ItemCents != 4530 || res.ShipCents != 600 {
		t.Fatalf("got item %d ship %d, want 4530/600", res.ItemCents, res.ShipCents)
	}
	if res.FreeShipApplied || !res.CanCompete || res.SkipListing {
		t.Fatalf("unexpected flags: %+v", res)
	}
}

func TestSplit_DiscountedRetailDeliveredTarget(t *testing.T) {
	// A $57.00 + $5.99 shipping retail comp discounted 10% yields a $56.69
	// delivered target; with a $6.00 shipping estimate the buyer sees
	// $50.69 + $6.00.
	res := SplitDeliveredPrice(5669, splitSettings())

	assertSplitInvariant(t, 5669, res)
	if res.ItemCents != 5069 || res.ShipCents != 600 {
		t.Fatalf("got item %d ship %d, want 5069/600", res.ItemCents, res.ShipCents)
	}
}

func TestSplit_ExactlyMinItemCanCompete(t *testing.T) {
	// target - shipping == min item price exactly.
	res := SplitDeliveredPrice(1100, splitSettings())

	assertSplitInvariant(t, 1100, res)
	if !res.CanCompete {
		t.Fatal("boundary at min item price must compete")
	}
	if res.ItemCents != 500 || res.ShipCents != 600 {
		t.Fatalf("got item %d ship %d, want 500/600", res.ItemCents, res.ShipCents)
	}
}

func TestSplit_OneCentBelowMinTriggersSubsidy(t *testing.T) {
	res := SplitDeliveredPrice(1099, splitSettings())

	assertSplitInvariant(t, 1099, res)
	if !res.FreeShipApplied {
		t.Fatal("one cent below min item must attempt the subsidy")
	}
	if res.ItemCents != 1099 || res.ShipCents != 0 {
		t.Fatalf("got item %d ship %d, want 1099/0", res.ItemCents, res.ShipCents)
	}
	if res.SubsidyCents != 600 {
		t.Fatalf("subsidy = %d, want full shipping estimate 600", res.SubsidyCents)
	}
	if !res.CanCompete {
		t.Fatal("subsidized listing within cap must compete")
	}
}

func TestSplit_SubsidyOverCapCannotCompete(t *testing.T) {
	s := splitSettings()
	s.FreeShip.MaxSubsidyCents = 300

	res := SplitDeliveredPrice(1099, s)

	assertSplitInvariant(t, 1099, res)
	if res.CanCompete {
		t.Fatal("subsidy 600 over cap 300 must not compete")
	}
	if !slices.Contains(res.Warnings, WarnCannotCompete) {
		t.Fatalf("missing cannotCompete warning, got %v", res.Warnings)
	}
	if res.SkipListing {
		t.Fatal("FLAG_ONLY must leave the skip decision to the caller")
	}
	// Flagged numbers: item clamped to min, shipping takes the remainder.
	if res.ItemCents != 500 || res.ShipCents != 599 {
		t.Fatalf("got item %d ship %d, want 500/599", res.ItemCents, res.ShipCents)
	}
}

func TestSplit_FreeShippingDisallowedCannotCompete(t *testing.T) {
	s := splitSettings()
	s.FreeShip.Allow = false

	res := SplitDeliveredPrice(1099, s)

	assertSplitInvariant(t, 1099, res)
	if res.CanCompete {
		t.Fatal("below min item without free shipping must not compete")
	}
	if res.FreeShipApplied {
		t.Fatal("free shipping must not be applied when disallowed")
	}
}

func TestSplit_AutoSkipSetsSkipListing(t *testing.T) {
	s := splitSettings()
	s.FreeShip.Allow = false
	s.LowPrice = AutoSkip

	res := SplitDeliveredPrice(1099, s)

	if !res.SkipListing {
		t.Fatal("AUTO_SKIP must set skipListing when the listing cannot compete")
	}
}

func TestSplit_TargetBelowMinItemNeverGoesNegative(t *testing.T) {
	// Even full free shipping cannot lift the item to the minimum.
	res := SplitDeliveredPrice(300, splitSettings())

	assertSplitInvariant(t, 300, res)
	if res.CanCompete {
		t.Fatal("target below min item price must not compete")
	}
	if res.ItemCents != 300 || res.ShipCents != 0 {
		t.Fatalf("got item %d ship %d, want 300/0", res.ItemCents, res.ShipCents)
	}
}

func TestSplit_InvariantHoldsAcrossSweep(t *testing.T) {
	for _, policy := range []LowPricePolicy{FlagOnly, AutoSkip} {
		for _, allow := range []bool{true, false} {
			s := splitSettings()
			s.LowPrice = policy
			s.FreeShip.Allow = allow
			for target := int64(0); target <= 2500; target += 7 {
				res := SplitDeliveredPrice(target, s)
				assertSplitInvariant(t, target, res)
			}
		}
	}
}

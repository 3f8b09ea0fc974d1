package pricing

// SplitResult is the price splitter output.
//
// Invariant: ItemCents + ShipCents == the target delivered price passed in,
// for every outcome including the cannot-compete paths.
type SplitResult struct {
	ItemCents       int64    `json:"itemCents"`
	ShipCents       int64    `json:"shipCents"`
	FreeShipApplied bool     `json:"freeShipApplied"`
	SubsidyCents    int64    `json:"subsidyCents"`
	CanCompete      bool     `json:"canCompete"`
	SkipListing     bool     `json:"skipListing"`
	Warnings        []string `json:"warnings,omitempty"`
}

// SplitDeliveredPrice converts a target delivered price into an item price
// plus shipping charge under the free-shipping and minimum-item-price policy.
//
// The naive split charges the full shipping estimate. When that pushes the
// item below the minimum item price and free shipping is allowed, the seller
// absorbs the shipping cost instead (subsidy), capped by the policy. A
// listing whose required subsidy exceeds the cap, or that cannot reach the
// minimum item price at all, cannot compete at this price point.
func SplitDeliveredPrice(targetCents int64, s Settings) SplitResult {
	res := SplitResult{CanCompete: true}

	naiveItem := targetCents - s.ShippingCostEstimateCent
	if naiveItem >= s.MinItemPriceCents {
		res.ItemCents = naiveItem
		res.ShipCents = s.ShippingCostEstimateCent
		return res
	}

	if s.FreeShip.Allow && targetCents >= s.MinItemPriceCents {
		// Seller absorbs the full shipping cost; the buyer sees free
		// shipping and the whole target lands on the item price.
		subsidy := s.ShippingCostEstimateCent
		if subsidy <= s.FreeShip.MaxSubsidyCents {
			res.ItemCents = targetCents
			res.ShipCents = 0
			res.FreeShipApplied = true
			res.SubsidyCents = subsidy
			return res
		}
	}

	res.CanCompete = false
	res.Warnings = append(res.Warnings, WarnCannotCompete)
	if s.LowPrice == AutoSkip {
		res.SkipListing = true
	}

	// Still return numbers for FLAG_ONLY callers: item clamped up toward
	// the minimum item price, shipping charge taking the remainder so the
	// split invariant holds. The item never exceeds the target and the
	// shipping charge never goes negative.
	item := s.MinItemPriceCents
	if item > targetCents {
		item = targetCents
	}
	res.ItemCents = item
	res.ShipCents = targetCents - item
	return res
}

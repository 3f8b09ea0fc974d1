// Package seed bootstraps first-run defaults so a fresh checkout can price
// something without hand-writing configuration.
package seed

import (
	"errors"
	"fmt"
	"os"
)

// defaultProfilesYAML is the starter strategy set: a market-match default,
// a clearance profile for moving stale inventory, and a margin profile for
// uncontested listings. Operators are expected to tune it.
const defaultProfilesYAML = `default: standard

profiles:
  standard:
    settings:
      mode: market-match
      shipping_cost_estimate_cents: 600
      min_item_price_cents: 500
      undercut_cents: 0
      free_ship:
        allow: true
        max_subsidy_cents: 800
      low_price: FLAG_ONLY
    floor:
      min_net_payout_cents: 499
      fee_rate: 0.16
      fixed_fee_cents: 30
      shipping_cost_estimate_cents: 600
      reserve_rate: 0.03
      min_reserve_cents: 50

  clearance:
    settings:
      mode: fast-sale
      shipping_cost_estimate_cents: 600
      min_item_price_cents: 300
      undercut_cents: 500
      free_ship:
        allow: true
        max_subsidy_cents: 600
      low_price: AUTO_SKIP
    floor:
      min_net_payout_cents: 199
      fee_rate: 0.16
      fixed_fee_cents: 30
      shipping_cost_estimate_cents: 600
      reserve_rate: 0.03
      min_reserve_cents: 50

  margin:
    settings:
      mode: max-margin
      shipping_cost_estimate_cents: 600
      min_item_price_cents: 500
      undercut_cents: 0
      free_ship:
        allow: false
        max_subsidy_cents: 0
      low_price: FLAG_ONLY
    floor:
      min_net_payout_cents: 799
      fee_rate: 0.16
      fixed_fee_cents: 30
      shipping_cost_estimate_cents: 600
      reserve_rate: 0.03
      min_reserve_cents: 50
`

// EnsureProfiles writes the starter profiles file when none exists yet.
// An existing file is never touched. Reports whether a file was created.
func EnsureProfiles(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat profiles file: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultProfilesYAML), 0o644); err != nil {
		return false, fmt.Errorf("write starter profiles file: %w", err)
	}
	return true, nil
}

// Package comps models competitor price observations and aggregates them
// into the per-source statistics consumed by pricing policy.
package comps

import "sort"

// Source identifies where a competitor observation came from.
type Source string

const (
	SourceEBay    Source = "ebay"
	SourceAmazon  Source = "amazon"
	SourceWalmart Source = "walmart"
	SourceOther   Source = "other"
)

// Observation is a single competitor price record. Observations are consumed
// as-is and never persisted by this package; they only live long enough to be
// aggregated for one pricing decision.
type Observation struct {
	Source         Source `json:"source"`
	ItemCents      int64  `json:"itemCents"`
	ShipCents      int64  `json:"shipCents"`
	DeliveredCents int64  `json:"deliveredCents"`
	InStock        bool   `json:"inStock"`
	Title          string `json:"title"`
	URL            string `json:"url,omitempty"`
	Seller         string `json:"seller,omitempty"`
}

// Delivered returns the all-in buyer price for the observation, preferring
// the precomputed field when the provider filled it in.
func (o Observation) Delivered() int64 {
	if o.DeliveredCents > 0 {
		return o.DeliveredCents
	}
	return o.ItemCents + o.ShipCents
}

// SourceStats summarizes the in-stock observations of one source.
//
// FloorCents is nil when the source has no in-stock observations: callers
// must treat nil as "no signal", never as zero. MedianCents of an empty set
// is 0 by convention — a degenerate value, distinct from the floor's nil, so
// the two absent-data shapes stay unambiguous.
type SourceStats struct {
	FloorCents  *int64 `json:"floorCents"`
	MedianCents int64  `json:"medianCents"`
	Count       int    `json:"count"`
}

// Stats holds aggregated statistics keyed by source.
type Stats map[Source]SourceStats

// ForSource returns the stats for a source, or a zero SourceStats (nil floor,
// zero median) when the source was never observed.
func (s Stats) ForSource(src Source) SourceStats {
	if st, ok := s[src]; ok {
		return st
	}
	return SourceStats{}
}

// Aggregate computes per-source floor and median over the in-stock
// observations. Out-of-stock observations carry no pricing signal and are
// dropped before any statistic is taken.
func Aggregate(observations []Observation) Stats {
	bySource := make(map[Source][]int64)
	for _, o := range observations {
		if !o.InStock {
			continue
		}
		bySource[o.Source] = append(bySource[o.Source], o.Delivered())
	}

	stats := make(Stats, len(bySource))
	for src, delivered := range bySource {
		sort.Slice(delivered, func(i, j int) bool { return delivered[i] < delivered[j] })
		floor := delivered[0]
		stats[src] = SourceStats{
			FloorCents:  &floor,
			MedianCents: medianCents(delivered),
			Count:       len(delivered),
		}
	}
	return stats
}

// medianCents takes the median of ascending-sorted cents. Even-length inputs
// average the two middle elements, rounded to the nearest cent (half up).
// The empty median is 0 by convention.
func medianCents(sorted []int64) int64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	sum := sorted[n/2-1] + sorted[n/2]
	med := sum / 2
	if sum%2 != 0 {
		med++
	}
	return med
}

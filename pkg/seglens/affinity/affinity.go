// Package affinity measures which segments gravitate to which products and
// how concentrated they are relative to their overall prevalence.
package affinity

import (
	"sort"

	"github.com/cognicore/seglens/pkg/seglens/catalog"
	"github.com/cognicore/seglens/pkg/seglens/config"
	"github.com/cognicore/seglens/pkg/seglens/patterns"
	"github.com/cognicore/seglens/pkg/seglens/review"
	"github.com/cognicore/seglens/pkg/seglens/segment"
)

// Flag marks over/under-indexing against the concentration thresholds.
type Flag string

const (
	FlagOverIndexed  Flag = "over_indexed"
	FlagUnderIndexed Flag = "under_indexed"
	FlagNeutral      Flag = ""
)

// Entry is one (product, segment) affinity measurement.
type Entry struct {
	Label string         `json:"label"`
	Layer patterns.Layer `json:"layer"`

	Count          int     `json:"count"`
	ShareOfProduct float64 `json:"share_of_product_pct"`
	// Concentration is share-of-product divided by the segment's overall
	// share; 0 when the overall share is undefined.
	Concentration float64 `json:"concentration_index"`
	Flag          Flag    `json:"flag,omitempty"`
}

// Analyze computes, for each category with at least one review, the segments
// present in it, their share of that category, and their concentration index.
// Entries per category are sorted descending by share-of-product.
func Analyze(tagged []review.Tagged, profiles []*segment.Profile, th config.Thresholds) map[catalog.Category][]Entry {
	totalReviews := len(tagged)
	if totalReviews == 0 {
		return map[catalog.Category][]Entry{}
	}

	categoryTotals := make(map[catalog.Category]int)
	for _, rev := range tagged {
		if rev.Category != catalog.None {
			categoryTotals[rev.Category]++
		}
	}

	out := make(map[catalog.Category][]Entry, len(categoryTotals))
	for cat, catTotal := range categoryTotals {
		var entries []Entry
		for _, prof := range profiles {
			count := 0
			for _, rev := range prof.Reviews {
				if rev.Category == cat {
					count++
				}
			}
			if count == 0 {
				continue
			}

			share := float64(count) / float64(catTotal)
			overall := float64(prof.Count) / float64(totalReviews)

			entry := Entry{
				Label:          prof.Label,
				Layer:          prof.Layer,
				Count:          count,
				ShareOfProduct: segment.Round1(100 * share),
			}
			if overall > 0 {
				entry.Concentration = segment.Round2(share / overall)
			}
			switch {
			case entry.Concentration > th.OverIndex:
				entry.Flag = FlagOverIndexed
			case entry.Concentration > 0 && entry.Concentration < th.UnderIndex:
				entry.Flag = FlagUnderIndexed
			}
			entries = append(entries, entry)
		}

		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].ShareOfProduct > entries[j].ShareOfProduct
		})
		out[cat] = entries
	}
	return out
}

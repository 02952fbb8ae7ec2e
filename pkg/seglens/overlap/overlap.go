// Package overlap enumerates identity×motivation label pairs and computes
// their co-occurrence statistics.
package overlap

import (
	"sort"

	"github.com/cognicore/seglens/pkg/seglens/catalog"
	"github.com/cognicore/seglens/pkg/seglens/patterns"
	"github.com/cognicore/seglens/pkg/seglens/review"
	"github.com/cognicore/seglens/pkg/seglens/saleslink"
	"github.com/cognicore/seglens/pkg/seglens/segment"
)

// Record is one non-empty (identity-label, motivation-label) intersection.
type Record struct {
	IdentityLabel   string `json:"identity_label"`
	MotivationLabel string `json:"motivation_label"`

	Count           int     `json:"count"`
	PctOfIdentity   float64 `json:"pct_of_identity"`
	PctOfMotivation float64 `json:"pct_of_motivation"`
	AvgRating       float64 `json:"avg_rating"`

	ByCategory map[catalog.Category]int `json:"by_category"`

	Sales *saleslink.Rollup `json:"sales"`
}

// Analyze walks the full identity×motivation pair space over the tagged set.
// Pairs with no matching reviews are dropped (the space is sparse); the rest
// are returned sorted descending by match count. When a linker is supplied
// each record carries a pair-scoped sales rollup.
func Analyze(tagged []review.Tagged, tables *patterns.Tables, linker *saleslink.Linker) []*Record {
	idTotals := labelTotals(tagged, patterns.LayerIdentity)
	motTotals := labelTotals(tagged, patterns.LayerMotivation)

	var records []*Record
	for _, idLabel := range tables.Identity.Labels() {
		for _, motLabel := range tables.Motivation.Labels() {
			var members []review.Tagged
			for _, rev := range tagged {
				if hasLabel(rev.IdentitySegments, idLabel) && hasLabel(rev.MotivationSegments, motLabel) {
					members = append(members, rev)
				}
			}
			if len(members) == 0 {
				continue
			}

			rec := &Record{
				IdentityLabel:   idLabel,
				MotivationLabel: motLabel,
				Count:           len(members),
				ByCategory:      make(map[catalog.Category]int),
			}
			if total := idTotals[idLabel]; total > 0 {
				rec.PctOfIdentity = segment.Round1(100 * float64(len(members)) / float64(total))
			}
			if total := motTotals[motLabel]; total > 0 {
				rec.PctOfMotivation = segment.Round1(100 * float64(len(members)) / float64(total))
			}
			rec.AvgRating, _ = segment.RatingStats(members)
			for _, rev := range members {
				if rev.Category != catalog.None {
					rec.ByCategory[rev.Category]++
				}
			}
			if linker != nil {
				rec.Sales = linker.Rollup(members)
			}
			records = append(records, rec)
		}
	}

	// Largest intersections first; the enumeration order above makes ties
	// deterministic.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Count > records[j].Count
	})
	return records
}

func labelTotals(tagged []review.Tagged, layer patterns.Layer) map[string]int {
	totals := make(map[string]int)
	for _, rev := range tagged {
		labels := rev.IdentitySegments
		if layer == patterns.LayerMotivation {
			labels = rev.MotivationSegments
		}
		for _, label := range labels {
			totals[label]++
		}
	}
	return totals
}

func hasLabel(labels []string, want string) bool {
	for _, l := range labels {
		if l == want {
			return true
		}
	}
	return false
}

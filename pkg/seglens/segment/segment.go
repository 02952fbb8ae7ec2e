// Package segment groups tagged reviews by matched segment label and derives
// per-label statistics, rankings, quotes, and sales rollups.
package segment

import (
	"sort"

	"github.com/cognicore/seglens/pkg/seglens/catalog"
	"github.com/cognicore/seglens/pkg/seglens/config"
	"github.com/cognicore/seglens/pkg/seglens/patterns"
	"github.com/cognicore/seglens/pkg/seglens/review"
	"github.com/cognicore/seglens/pkg/seglens/saleslink"
)

// CategoryBreakdown is a per-product slice of a segment.
type CategoryBreakdown struct {
	Reviews       int     `json:"reviews"`
	LinkedRevenue float64 `json:"linked_revenue"`
}

// PatternCount ranks one sub-pattern within a segment.
type PatternCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Profile is the full derived view of one segment label.
type Profile struct {
	Label string         `json:"label"`
	Layer patterns.Layer `json:"layer"`

	// Reviews is the member list; a review appears under every label it
	// matched (fan-out, not a partition). Excluded from the serialized
	// artifact, which carries derived statistics only.
	Reviews []review.Tagged `json:"-"`

	Count         int     `json:"count"`
	Share         float64 `json:"share_pct"`
	AvgRating     float64 `json:"avg_rating"`
	FiveStarShare float64 `json:"five_star_share_pct"`

	ByCategory map[catalog.Category]*CategoryBreakdown `json:"by_category"`

	TopPains           []PatternCount `json:"top_pains"`
	TopBenefits        []PatternCount `json:"top_benefits"`
	TopTransformations []PatternCount `json:"top_transformations"`

	Quotes []string `json:"quotes"`

	Sales *saleslink.Rollup `json:"sales"`
}

// Builder derives segment profiles from the tagged review set.
type Builder struct {
	tables *patterns.Tables
	th     config.Thresholds
}

// NewBuilder creates a builder over the given tables and thresholds.
func NewBuilder(tables *patterns.Tables, th config.Thresholds) *Builder {
	return &Builder{tables: tables, th: th}
}

// Build groups the tagged reviews by matched label across both segment
// layers, in declaration order, skipping labels no review matched. When a
// linker is supplied, each profile gets a sales rollup and per-category
// revenue attribution.
func (b *Builder) Build(tagged []review.Tagged, linker *saleslink.Linker) []*Profile {
	var profiles []*Profile
	profiles = append(profiles, b.buildLayer(tagged, patterns.LayerIdentity, linker)...)
	profiles = append(profiles, b.buildLayer(tagged, patterns.LayerMotivation, linker)...)
	return profiles
}

func (b *Builder) buildLayer(tagged []review.Tagged, layer patterns.Layer, linker *saleslink.Linker) []*Profile {
	set := b.tables.SegmentSet(layer)
	total := len(tagged)

	var profiles []*Profile
	for _, label := range set.Labels() {
		var members []review.Tagged
		for _, rev := range tagged {
			if hasLabel(segmentLabels(rev, layer), label) {
				members = append(members, rev)
			}
		}
		if len(members) == 0 {
			continue
		}
		profiles = append(profiles, b.buildProfile(label, layer, members, total, linker))
	}
	return profiles
}

func (b *Builder) buildProfile(label string, layer patterns.Layer, members []review.Tagged, total int, linker *saleslink.Linker) *Profile {
	p := &Profile{
		Label:      label,
		Layer:      layer,
		Reviews:    members,
		Count:      len(members),
		ByCategory: make(map[catalog.Category]*CategoryBreakdown),
	}

	if total > 0 {
		p.Share = Round1(100 * float64(len(members)) / float64(total))
	}
	p.AvgRating, p.FiveStarShare = RatingStats(members)

	for _, rev := range members {
		if rev.Category == catalog.None {
			continue
		}
		bd := p.ByCategory[rev.Category]
		if bd == nil {
			bd = &CategoryBreakdown{}
			p.ByCategory[rev.Category] = bd
		}
		bd.Reviews++
	}

	p.TopPains = b.topPatterns(members, b.tables.Pains, pains)
	p.TopBenefits = b.topPatterns(members, b.tables.Benefits, benefits)
	p.TopTransformations = b.topPatterns(members, b.tables.Transformations, transformations)

	p.Quotes = SelectQuotes(members, b.th)

	if linker != nil {
		p.Sales = linker.Rollup(members)
		for cat, revenue := range p.Sales.CategoryRevenue {
			bd := p.ByCategory[cat]
			if bd == nil {
				bd = &CategoryBreakdown{}
				p.ByCategory[cat] = bd
			}
			bd.LinkedRevenue = revenue
		}
	}

	return p
}

// labelAccessor picks one secondary label set off a tagged review.
type labelAccessor func(review.Tagged) []string

func pains(r review.Tagged) []string           { return r.Pains }
func benefits(r review.Tagged) []string        { return r.Benefits }
func transformations(r review.Tagged) []string { return r.Transformations }

// topPatterns counts member reviews per sub-pattern, drops zero counts, sorts
// descending by count with declaration order as the tie break, and truncates.
func (b *Builder) topPatterns(members []review.Tagged, set *patterns.Set, get labelAccessor) []PatternCount {
	counts := make(map[string]int)
	for _, rev := range members {
		for _, label := range get(rev) {
			counts[label]++
		}
	}

	var ranked []PatternCount
	for _, label := range set.Labels() {
		if c := counts[label]; c > 0 {
			ranked = append(ranked, PatternCount{Label: label, Count: c})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if limit := b.th.TopPatterns; limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func segmentLabels(rev review.Tagged, layer patterns.Layer) []string {
	if layer == patterns.LayerIdentity {
		return rev.IdentitySegments
	}
	return rev.MotivationSegments
}

func hasLabel(labels []string, want string) bool {
	for _, l := range labels {
		if l == want {
			return true
		}
	}
	return false
}

// Package saleslink joins reviewer identities against the ledger aggregates
// and produces revenue/behavior rollups.
package saleslink

import (
	"sort"

	"github.com/cognicore/seglens/pkg/seglens/catalog"
	"github.com/cognicore/seglens/pkg/seglens/identity"
	"github.com/cognicore/seglens/pkg/seglens/ledger"
	"github.com/cognicore/seglens/pkg/seglens/review"
)

// GeoStat is a per-location customer rollup.
type GeoStat struct {
	Customers int     `json:"customers"`
	Revenue   float64 `json:"revenue"`
}

// Rollup aggregates order/profile data across a set of linked reviewers.
// All ratios carry defined zero values when denominators are empty.
type Rollup struct {
	ReviewerCount int     `json:"reviewer_count"`
	LinkedCount   int     `json:"linked_count"`
	LinkRate      float64 `json:"link_rate_pct"`

	NetRevenue   float64 `json:"net_revenue"`
	GrossRevenue float64 `json:"gross_revenue"`
	OrderLines   int     `json:"order_lines"`

	// RepeatBuyers counts linked identities whose first and last transaction
	// dates differ. Date-span approximation, not distinct order sessions.
	RepeatBuyers        int `json:"repeat_buyers"`
	MultiCategoryBuyers int `json:"multi_category_buyers"`
	DiscountUsers       int `json:"discount_users"`

	AvgLifetimeValue float64 `json:"avg_lifetime_value"`
	AvgOrderValue    float64 `json:"avg_order_value"`

	CategoryRevenue map[catalog.Category]float64 `json:"category_revenue"`
	Countries       map[string]*GeoStat          `json:"countries"`
	Regions         map[string]*GeoStat          `json:"regions"`
}

// Linker looks up ledger aggregates by identity key.
type Linker struct {
	orders   map[string]*ledger.OrderAggregate
	profiles map[string]*ledger.ProfileAggregate
}

// NewLinker wraps the two aggregate maps. The maps are read-only from here on.
func NewLinker(orders map[string]*ledger.OrderAggregate, profiles map[string]*ledger.ProfileAggregate) *Linker {
	return &Linker{orders: orders, profiles: profiles}
}

// Order returns the order aggregate for a key.
func (l *Linker) Order(key string) (*ledger.OrderAggregate, bool) {
	agg, ok := l.orders[key]
	return agg, ok
}

// Profile returns the profile aggregate for a key.
func (l *Linker) Profile(key string) (*ledger.ProfileAggregate, bool) {
	agg, ok := l.profiles[key]
	return agg, ok
}

// ReviewerKeys returns the distinct non-sentinel identity keys behind a
// review set, sorted for deterministic iteration.
func ReviewerKeys(reviews []review.Tagged) []string {
	seen := make(map[string]struct{}, len(reviews))
	var keys []string
	for _, rev := range reviews {
		if identity.IsNone(rev.Key) {
			continue
		}
		if _, ok := seen[rev.Key]; ok {
			continue
		}
		seen[rev.Key] = struct{}{}
		keys = append(keys, rev.Key)
	}
	sort.Strings(keys)
	return keys
}

// Rollup links a review set's authors to the ledgers and aggregates across
// the linked identities. An identity is linked when either ledger knows it.
func (l *Linker) Rollup(reviews []review.Tagged) *Rollup {
	r := &Rollup{
		CategoryRevenue: make(map[catalog.Category]float64),
		Countries:       make(map[string]*GeoStat),
		Regions:         make(map[string]*GeoStat),
	}

	keys := ReviewerKeys(reviews)
	r.ReviewerCount = len(keys)

	for _, key := range keys {
		order, hasOrder := l.orders[key]
		profile, hasProfile := l.profiles[key]
		if !hasOrder && !hasProfile {
			continue
		}
		r.LinkedCount++

		if hasOrder {
			r.NetRevenue += order.NetSales
			r.GrossRevenue += order.GrossSales
			r.OrderLines += order.OrderLines
			if order.RepeatBuyer() {
				r.RepeatBuyers++
			}
			if len(order.CombinableCategories()) > 1 {
				r.MultiCategoryBuyers++
			}
			if len(order.DiscountCodes) > 0 {
				r.DiscountUsers++
			}
			for cat, spend := range order.CategorySpend {
				r.CategoryRevenue[cat] += spend
			}
		}

		if hasProfile {
			revenue := 0.0
			if hasOrder {
				revenue = order.NetSales
			}
			if profile.Country != "" {
				geo := r.Countries[profile.Country]
				if geo == nil {
					geo = &GeoStat{}
					r.Countries[profile.Country] = geo
				}
				geo.Customers++
				geo.Revenue += revenue
				if profile.Region != "" {
					key := profile.Country + "/" + profile.Region
					reg := r.Regions[key]
					if reg == nil {
						reg = &GeoStat{}
						r.Regions[key] = reg
					}
					reg.Customers++
					reg.Revenue += revenue
				}
			}
		}
	}

	if r.ReviewerCount > 0 {
		r.LinkRate = round1(100 * float64(r.LinkedCount) / float64(r.ReviewerCount))
	}
	if r.LinkedCount > 0 {
		r.AvgLifetimeValue = round2(r.NetRevenue / float64(r.LinkedCount))
	}
	if r.OrderLines > 0 {
		r.AvgOrderValue = round2(r.NetRevenue / float64(r.OrderLines))
	}
	return r
}

// round1 rounds half-up on the tenths digit; values here are non-negative.
func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

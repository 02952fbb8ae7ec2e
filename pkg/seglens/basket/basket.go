// Package basket computes the cross-purchase matrix: which category
// combinations customers buy together, across every customer in the order
// ledger, not just reviewers.
package basket

import (
	"sort"

	"github.com/cognicore/seglens/pkg/seglens/catalog"
	"github.com/cognicore/seglens/pkg/seglens/ledger"
	"github.com/cognicore/seglens/pkg/seglens/segment"
)

// Combination is one unordered pair of categories bought by the same
// customers.
type Combination struct {
	Categories []catalog.Category `json:"categories"`
	Customers  int                `json:"customers"`
	TotalSpend float64            `json:"total_spend"`
	AvgSpend   float64            `json:"avg_spend"`
}

// Matrix is the full cross-purchase view.
type Matrix struct {
	TotalCustomers int                          `json:"total_customers"`
	Ownership      map[catalog.Category]int     `json:"ownership"`
	OwnershipPct   map[catalog.Category]float64 `json:"ownership_pct"`
	Combinations   []*Combination               `json:"combinations"`
	// ThreePlusCustomers counts customers holding three or more combinable
	// categories.
	ThreePlusCustomers int `json:"three_plus_customers"`
}

// Build walks every order aggregate. Other is excluded from combination
// sets; a customer's full net spend is attributed to each pair they hold.
// Combinations are sorted descending by customer count.
func Build(orders map[string]*ledger.OrderAggregate) *Matrix {
	m := &Matrix{
		Ownership:    make(map[catalog.Category]int),
		OwnershipPct: make(map[catalog.Category]float64),
	}

	type comboKey [2]catalog.Category
	combos := make(map[comboKey]*Combination)

	for _, agg := range orders {
		m.TotalCustomers++

		cats := agg.CombinableCategories()
		for _, c := range cats {
			m.Ownership[c]++
		}
		if len(cats) >= 3 {
			m.ThreePlusCustomers++
		}

		for i := 0; i < len(cats); i++ {
			for j := i + 1; j < len(cats); j++ {
				key := comboKey{cats[i], cats[j]}
				combo := combos[key]
				if combo == nil {
					combo = &Combination{Categories: []catalog.Category{cats[i], cats[j]}}
					combos[key] = combo
				}
				combo.Customers++
				combo.TotalSpend += agg.NetSales
			}
		}
	}

	for _, combo := range combos {
		if combo.Customers > 0 {
			combo.AvgSpend = segment.Round2(combo.TotalSpend / float64(combo.Customers))
		}
		m.Combinations = append(m.Combinations, combo)
	}

	// Customer count descending; category order breaks ties deterministically.
	sort.Slice(m.Combinations, func(i, j int) bool {
		a, b := m.Combinations[i], m.Combinations[j]
		if a.Customers != b.Customers {
			return a.Customers > b.Customers
		}
		if a.Categories[0] != b.Categories[0] {
			return a.Categories[0] < b.Categories[0]
		}
		return a.Categories[1] < b.Categories[1]
	})

	if m.TotalCustomers > 0 {
		for cat, count := range m.Ownership {
			m.OwnershipPct[cat] = segment.Round1(100 * float64(count) / float64(m.TotalCustomers))
		}
	}
	return m
}

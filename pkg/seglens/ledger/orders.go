package ledger

import (
	"time"

	"github.com/cognicore/seglens/pkg/seglens/catalog"
	"github.com/cognicore/seglens/pkg/seglens/identity"
)

// OrderAggregate is the running per-identity fold of the order ledger.
// Created on the first row for a key, mutated by every subsequent row,
// never deleted during a run.
type OrderAggregate struct {
	Key           string
	NetSales      float64
	GrossSales    float64
	OrderLines    int
	Categories    map[catalog.Category]struct{}
	CategorySpend map[catalog.Category]float64
	CategoryQty   map[catalog.Category]int
	DiscountCodes map[string]struct{}
	FirstDate     time.Time
	LastDate      time.Time
}

func newOrderAggregate(key string) *OrderAggregate {
	return &OrderAggregate{
		Key:           key,
		Categories:    make(map[catalog.Category]struct{}),
		CategorySpend: make(map[catalog.Category]float64),
		CategoryQty:   make(map[catalog.Category]int),
		DiscountCodes: make(map[string]struct{}),
	}
}

// CombinableCategories returns the purchased categories that participate in
// category-set combinatorics (Other excluded), in catalog display order.
func (a *OrderAggregate) CombinableCategories() []catalog.Category {
	var out []catalog.Category
	for _, c := range catalog.Purchasable {
		if _, ok := a.Categories[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// RepeatBuyer reports whether the aggregate spans more than one transaction
// date. This is a date-span approximation: a single order logged across
// adjacent dates also qualifies.
func (a *OrderAggregate) RepeatBuyer() bool {
	return !a.FirstDate.IsZero() && !a.LastDate.IsZero() && !a.FirstDate.Equal(a.LastDate)
}

// OrderAggregator folds order records into per-identity aggregates.
type OrderAggregator struct {
	byKey    map[string]*OrderAggregate
	counters Counters
}

// NewOrderAggregator creates an empty order aggregator.
func NewOrderAggregator() *OrderAggregator {
	return &OrderAggregator{byKey: make(map[string]*OrderAggregate)}
}

// Fold applies one record. Rows without a usable identity or with a
// non-positive quantity are skipped and counted. Rows whose category cannot
// be resolved still fold into the generic totals but not into per-category
// accounting.
func (g *OrderAggregator) Fold(rec OrderRecord) {
	g.counters.RowsSeen++

	key := identity.Normalize(rec.Email)
	if identity.IsNone(key) || rec.Quantity <= 0 {
		g.counters.RowsSkipped++
		return
	}

	agg, ok := g.byKey[key]
	if !ok {
		agg = newOrderAggregate(key)
		g.byKey[key] = agg
	}

	agg.NetSales += rec.NetAmount
	agg.GrossSales += rec.GrossAmount
	agg.OrderLines++

	if cat := catalog.Map(rec.ProductRaw); cat != catalog.None {
		agg.Categories[cat] = struct{}{}
		agg.CategorySpend[cat] += rec.NetAmount
		agg.CategoryQty[cat] += rec.Quantity
	}

	if rec.DiscountCode != "" {
		agg.DiscountCodes[rec.DiscountCode] = struct{}{}
	}

	if !rec.Date.IsZero() {
		if agg.FirstDate.IsZero() || rec.Date.Before(agg.FirstDate) {
			agg.FirstDate = rec.Date
		}
		if agg.LastDate.IsZero() || rec.Date.After(agg.LastDate) {
			agg.LastDate = rec.Date
		}
	}

	g.counters.RowsFolded++
}

// Consume drains a source through Fold, one record at a time.
func (g *OrderAggregator) Consume(src OrderSource) error {
	for {
		rec, ok, err := src.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		g.Fold(rec)
	}
}

// Get looks up the aggregate for an identity key.
func (g *OrderAggregator) Get(key string) (*OrderAggregate, bool) {
	agg, ok := g.byKey[key]
	return agg, ok
}

// Aggregates returns the key→aggregate map. After hand-off the map is treated
// as read-only by downstream consumers.
func (g *OrderAggregator) Aggregates() map[string]*OrderAggregate {
	return g.byKey
}

// Counters returns the running row counts.
func (g *OrderAggregator) Counters() Counters {
	return g.counters
}

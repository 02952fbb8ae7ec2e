package ledger

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/cognicore/seglens/pkg/seglens/catalog"
)

func day(s string) time.Time {
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestOrderFold(t *testing.T) {
	// Three rows for one identity: two Clogs lines at $10, one Sneakers at $20,
	// on D1 < D2 < D3.
	rows := []OrderRecord{
		{Email: "a@x.com", ProductRaw: "classic-clog", Quantity: 1, NetAmount: 10, GrossAmount: 12, Date: day("2024-01-05")},
		{Email: "A@X.com ", ProductRaw: "clogs", Quantity: 1, NetAmount: 10, GrossAmount: 12, Date: day("2024-02-10")},
		{Email: `"a@x.com"`, ProductRaw: "everyday-sneaker", Quantity: 1, NetAmount: 20, GrossAmount: 24, Date: day("2024-03-15")},
	}

	agg := NewOrderAggregator()
	for _, rec := range rows {
		agg.Fold(rec)
	}

	got, ok := agg.Get("a@x.com")
	if !ok {
		t.Fatal("aggregate missing for a@x.com")
	}
	if got.NetSales != 40 {
		t.Errorf("NetSales = %v, want 40", got.NetSales)
	}
	if got.OrderLines != 3 {
		t.Errorf("OrderLines = %d, want 3", got.OrderLines)
	}
	wantCats := map[catalog.Category]struct{}{catalog.Clogs: {}, catalog.Sneakers: {}}
	if !reflect.DeepEqual(got.Categories, wantCats) {
		t.Errorf("Categories = %v, want %v", got.Categories, wantCats)
	}
	if !got.FirstDate.Equal(day("2024-01-05")) {
		t.Errorf("FirstDate = %v", got.FirstDate)
	}
	if !got.LastDate.Equal(day("2024-03-15")) {
		t.Errorf("LastDate = %v", got.LastDate)
	}
	if got.CategorySpend[catalog.Clogs] != 20 || got.CategorySpend[catalog.Sneakers] != 20 {
		t.Errorf("CategorySpend = %v", got.CategorySpend)
	}

	c := agg.Counters()
	if c.RowsSeen != 3 || c.RowsFolded != 3 || c.RowsSkipped != 0 {
		t.Errorf("counters = %+v", c)
	}
}

func TestOrderFoldPermutationInvariant(t *testing.T) {
	base := []OrderRecord{
		{Email: "a@x.com", ProductRaw: "classic-clog", Quantity: 2, NetAmount: 10.5, GrossAmount: 12, Date: day("2024-01-05"), DiscountCode: "SAVE10"},
		{Email: "a@x.com", ProductRaw: "arch-insole", Quantity: 1, NetAmount: 7.25, GrossAmount: 8, Date: day("2024-06-01")},
		{Email: "a@x.com", ProductRaw: "everyday-sneaker", Quantity: 1, NetAmount: 20, GrossAmount: 24, Date: day("2023-12-31")},
		{Email: "a@x.com", ProductRaw: "gift-card", Quantity: 1, NetAmount: 25, GrossAmount: 25, Date: day("2024-03-03")},
	}

	fold := func(rows []OrderRecord) *OrderAggregate {
		agg := NewOrderAggregator()
		for _, rec := range rows {
			agg.Fold(rec)
		}
		out, _ := agg.Get("a@x.com")
		return out
	}

	want := fold(base)
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]OrderRecord, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := fold(shuffled)
		if got.NetSales != want.NetSales || got.OrderLines != want.OrderLines {
			t.Fatalf("totals differ under permutation: %+v vs %+v", got, want)
		}
		if !reflect.DeepEqual(got.Categories, want.Categories) {
			t.Fatalf("category sets differ under permutation")
		}
		if !got.FirstDate.Equal(want.FirstDate) || !got.LastDate.Equal(want.LastDate) {
			t.Fatalf("date bounds differ under permutation")
		}
		if !reflect.DeepEqual(got.DiscountCodes, want.DiscountCodes) {
			t.Fatalf("discount sets differ under permutation")
		}
	}
}

func TestOrderFoldSkipPolicy(t *testing.T) {
	agg := NewOrderAggregator()
	agg.Fold(OrderRecord{Email: "", ProductRaw: "clogs", Quantity: 1, NetAmount: 5})
	agg.Fold(OrderRecord{Email: "a@x.com", ProductRaw: "clogs", Quantity: 0, NetAmount: 5})
	agg.Fold(OrderRecord{Email: "a@x.com", ProductRaw: "clogs", Quantity: -2, NetAmount: 5})

	c := agg.Counters()
	if c.RowsSkipped != 3 || c.RowsFolded != 0 {
		t.Errorf("counters = %+v, want 3 skipped", c)
	}
	if len(agg.Aggregates()) != 0 {
		t.Error("skipped rows must not create aggregates")
	}
}

func TestOrderFoldUnresolvedCategory(t *testing.T) {
	// Empty product: generic totals fold, per-category accounting does not.
	agg := NewOrderAggregator()
	agg.Fold(OrderRecord{Email: "a@x.com", ProductRaw: "", Quantity: 1, NetAmount: 15, Date: day("2024-01-01")})

	got, ok := agg.Get("a@x.com")
	if !ok {
		t.Fatal("aggregate missing")
	}
	if got.NetSales != 15 || got.OrderLines != 1 {
		t.Errorf("generic totals = %v/%d", got.NetSales, got.OrderLines)
	}
	if len(got.Categories) != 0 {
		t.Errorf("Categories = %v, want empty", got.Categories)
	}
}

func TestRepeatBuyer(t *testing.T) {
	single := &OrderAggregate{FirstDate: day("2024-01-01"), LastDate: day("2024-01-01")}
	if single.RepeatBuyer() {
		t.Error("same-day aggregate is not a repeat buyer")
	}
	span := &OrderAggregate{FirstDate: day("2024-01-01"), LastDate: day("2024-05-01")}
	if !span.RepeatBuyer() {
		t.Error("multi-date aggregate is a repeat buyer")
	}
	if (&OrderAggregate{}).RepeatBuyer() {
		t.Error("dateless aggregate is not a repeat buyer")
	}
}

func TestCombinableCategories(t *testing.T) {
	agg := newOrderAggregate("a@x.com")
	agg.Categories[catalog.Other] = struct{}{}
	agg.Categories[catalog.Sneakers] = struct{}{}
	agg.Categories[catalog.Clogs] = struct{}{}

	got := agg.CombinableCategories()
	want := []catalog.Category{catalog.Clogs, catalog.Sneakers}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CombinableCategories = %v, want %v", got, want)
	}
}

package overlap

import (
	"testing"

	"github.com/cognicore/seglens/pkg/seglens/catalog"
	"github.com/cognicore/seglens/pkg/seglens/ledger"
	"github.com/cognicore/seglens/pkg/seglens/patterns"
	"github.com/cognicore/seglens/pkg/seglens/review"
	"github.com/cognicore/seglens/pkg/seglens/saleslink"
)

func taggedFixture() []review.Tagged {
	return []review.Tagged{
		{Key: "a@x.com", Rating: 5, Category: catalog.Clogs,
			IdentitySegments: []string{"healthcare_worker"}, MotivationSegments: []string{"comfort_seeker"}},
		{Key: "b@y.com", Rating: 4, Category: catalog.Clogs,
			IdentitySegments: []string{"healthcare_worker"}, MotivationSegments: []string{"comfort_seeker"}},
		{Key: "c@z.com", Rating: 3, Category: catalog.Sneakers,
			IdentitySegments: []string{"healthcare_worker"}, MotivationSegments: []string{"comfort_seeker"}},
		{Key: "d@w.com", Rating: 5,
			IdentitySegments: []string{"healthcare_worker"}, MotivationSegments: []string{"pain_relief"}},
		{Key: "e@v.com", Rating: 2, Category: catalog.Clogs,
			IdentitySegments: []string{"teacher"}, MotivationSegments: []string{"comfort_seeker"}},
	}
}

func TestAnalyze(t *testing.T) {
	tables := patterns.Defaults()

	records := Analyze(taggedFixture(), tables, nil)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3 non-empty intersections", len(records))
	}

	top := records[0]
	if top.IdentityLabel != "healthcare_worker" || top.MotivationLabel != "comfort_seeker" {
		t.Fatalf("top pair = %s × %s", top.IdentityLabel, top.MotivationLabel)
	}
	if top.Count != 3 {
		t.Errorf("Count = %d, want 3", top.Count)
	}
	// healthcare_worker appears in 4 reviews, comfort_seeker in 4.
	if top.PctOfIdentity != 75.0 {
		t.Errorf("PctOfIdentity = %v, want 75.0", top.PctOfIdentity)
	}
	if top.PctOfMotivation != 75.0 {
		t.Errorf("PctOfMotivation = %v, want 75.0", top.PctOfMotivation)
	}
	if top.AvgRating != 4.0 {
		t.Errorf("AvgRating = %v, want (5+4+3)/3", top.AvgRating)
	}
	if top.ByCategory[catalog.Clogs] != 2 || top.ByCategory[catalog.Sneakers] != 1 {
		t.Errorf("ByCategory = %v", top.ByCategory)
	}
	if top.Sales != nil {
		t.Error("Sales must be nil without a linker")
	}
}

func TestAnalyzeTieOrder(t *testing.T) {
	tables := patterns.Defaults()

	// Both count-1 pairs tie; enumeration order (identity declaration order,
	// then motivation declaration order) must hold under the stable sort.
	records := Analyze(taggedFixture(), tables, nil)
	if records[1].IdentityLabel != "healthcare_worker" || records[1].MotivationLabel != "pain_relief" {
		t.Errorf("records[1] = %s × %s", records[1].IdentityLabel, records[1].MotivationLabel)
	}
	if records[2].IdentityLabel != "teacher" || records[2].MotivationLabel != "comfort_seeker" {
		t.Errorf("records[2] = %s × %s", records[2].IdentityLabel, records[2].MotivationLabel)
	}
}

func TestAnalyzeDeterminism(t *testing.T) {
	tables := patterns.Defaults()

	first := Analyze(taggedFixture(), tables, nil)
	for i := 0; i < 10; i++ {
		again := Analyze(taggedFixture(), tables, nil)
		if len(again) != len(first) {
			t.Fatalf("run %d: %d records, want %d", i, len(again), len(first))
		}
		for j := range first {
			if first[j].IdentityLabel != again[j].IdentityLabel ||
				first[j].MotivationLabel != again[j].MotivationLabel ||
				first[j].Count != again[j].Count {
				t.Fatalf("run %d: record %d differs", i, j)
			}
		}
	}
}

func TestAnalyzeWithLinker(t *testing.T) {
	tables := patterns.Defaults()

	orders := ledger.NewOrderAggregator()
	orders.Fold(ledger.OrderRecord{Email: "a@x.com", ProductRaw: "clogs", Quantity: 1, NetAmount: 80})
	linker := saleslink.NewLinker(orders.Aggregates(), map[string]*ledger.ProfileAggregate{})

	records := Analyze(taggedFixture(), tables, linker)
	top := records[0]
	if top.Sales == nil {
		t.Fatal("Sales missing with linker supplied")
	}
	if top.Sales.LinkedCount != 1 || top.Sales.NetRevenue != 80 {
		t.Errorf("Sales = %+v", top.Sales)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	tables := patterns.Defaults()
	if records := Analyze(nil, tables, nil); len(records) != 0 {
		t.Errorf("got %d records for empty input", len(records))
	}
}

package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/seglens/pkg/seglens/overlap"
	"github.com/cognicore/seglens/pkg/seglens/patterns"
	"github.com/cognicore/seglens/pkg/seglens/report"
	"github.com/cognicore/seglens/pkg/seglens/saleslink"
	"github.com/cognicore/seglens/pkg/seglens/segment"
	"github.com/cognicore/seglens/pkg/seglens/store"
)

func openTest(t *testing.T) store.Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport(id string, at time.Time) *report.Report {
	r := report.New(at)
	r.RunID = id
	r.Counters.ReviewsTagged = 12
	r.Segments = []*segment.Profile{
		{
			Label:     "healthcare_worker",
			Layer:     patterns.LayerIdentity,
			Count:     8,
			Share:     66.7,
			AvgRating: 4.5,
			Sales:     &saleslink.Rollup{NetRevenue: 540},
		},
		{
			Label: "comfort_seeker",
			Layer: patterns.LayerMotivation,
			Count: 4,
			Share: 33.3,
		},
	}
	r.Overlaps = []*overlap.Record{
		{IdentityLabel: "healthcare_worker", MotivationLabel: "comfort_seeker", Count: 3},
	}
	return r
}

func TestSaveAndGetReport(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := s.SaveReport(ctx, sampleReport("01HRUNA", at)); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.GetReport(ctx, "01HRUNA")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("saved report not found")
	}
	if got.Counters.ReviewsTagged != 12 {
		t.Errorf("ReviewsTagged = %d, want 12", got.Counters.ReviewsTagged)
	}
	if len(got.Segments) != 2 || got.Segments[0].Label != "healthcare_worker" {
		t.Errorf("Segments round-trip broken: %+v", got.Segments)
	}
	if got.Segments[0].Sales == nil || got.Segments[0].Sales.NetRevenue != 540 {
		t.Errorf("Sales round-trip broken: %+v", got.Segments[0].Sales)
	}
	if len(got.Overlaps) != 1 || got.Overlaps[0].Count != 3 {
		t.Errorf("Overlaps round-trip broken: %+v", got.Overlaps)
	}

	if _, ok, _ := s.GetReport(ctx, "missing"); ok {
		t.Error("unknown run ID must report not found")
	}
}

func TestSaveReportReplaces(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := s.SaveReport(ctx, sampleReport("01HRUNA", at)); err != nil {
		t.Fatal(err)
	}

	updated := sampleReport("01HRUNA", at)
	updated.Counters.ReviewsTagged = 20
	if err := s.SaveReport(ctx, updated); err != nil {
		t.Fatal(err)
	}

	got, _, err := s.GetReport(ctx, "01HRUNA")
	if err != nil {
		t.Fatal(err)
	}
	if got.Counters.ReviewsTagged != 20 {
		t.Errorf("ReviewsTagged = %d after replace, want 20", got.Counters.ReviewsTagged)
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("got %d runs after replace, want 1", len(runs))
	}
}

func TestListRuns(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ids := []string{"01HOLD0", "01HMID0", "01HNEW0"}
	for i, id := range ids {
		if err := s.SaveReport(ctx, sampleReport(id, base.AddDate(0, 0, i))); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	if runs[0].RunID != "01HNEW0" || runs[2].RunID != "01HOLD0" {
		t.Errorf("runs not newest-first: %v", runs)
	}
	if runs[0].Segments != 2 || runs[0].Overlaps != 1 || runs[0].ReviewsTagged != 12 {
		t.Errorf("summary columns wrong: %+v", runs[0])
	}
	if !runs[0].GeneratedAt.Equal(base.AddDate(0, 0, 2)) {
		t.Errorf("GeneratedAt = %v", runs[0].GeneratedAt)
	}

	limited, err := s.ListRuns(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].RunID != "01HNEW0" {
		t.Errorf("limit not applied: %+v", limited)
	}
}

// Package store persists completed report artifacts so successive batch runs
// can be compared and queried.
package store

import (
	"context"
	"time"

	"github.com/cognicore/seglens/pkg/seglens/report"
)

// Store is the interface for persisting and retrieving report artifacts.
type Store interface {
	Close() error

	SaveReport(ctx context.Context, r *report.Report) error
	GetReport(ctx context.Context, runID string) (*report.Report, bool, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
}

// RunSummary is the per-run row returned by ListRuns, newest first.
type RunSummary struct {
	RunID         string
	GeneratedAt   time.Time
	ReviewsTagged int
	Segments      int
	Overlaps      int
	Combinations  int
}

// Summarize derives the list row for a report.
func Summarize(r *report.Report) RunSummary {
	s := RunSummary{
		RunID:         r.RunID,
		GeneratedAt:   r.GeneratedAt,
		ReviewsTagged: r.Counters.ReviewsTagged,
		Segments:      len(r.Segments),
		Overlaps:      len(r.Overlaps),
	}
	if r.Basket != nil {
		s.Combinations = len(r.Basket.Combinations)
	}
	return s
}

// Package memstore is an in-memory implementation of store.Store for tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/seglens/pkg/seglens/report"
	"github.com/cognicore/seglens/pkg/seglens/store"
)

// Store keeps reports in a map guarded by a mutex.
type Store struct {
	mu      sync.RWMutex
	reports map[string]*report.Report
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{reports: make(map[string]*report.Report)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveReport stores a report keyed by run ID.
func (s *Store) SaveReport(ctx context.Context, r *report.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.RunID] = r
	return nil
}

// GetReport returns a stored report by run ID.
func (s *Store) GetReport(ctx context.Context, runID string) (*report.Report, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[runID]
	return r, ok, nil
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	out := make([]store.RunSummary, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, store.Summarize(r))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GeneratedAt.After(out[j].GeneratedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

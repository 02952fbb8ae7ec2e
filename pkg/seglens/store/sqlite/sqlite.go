// Package sqlite implements the report store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/seglens/pkg/seglens/report"
	"github.com/cognicore/seglens/pkg/seglens/store"
)

const timestampLayout = "2006-01-02T15:04:05Z"

// sqliteStore implements store.Store using SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes the
// schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	generated_at TEXT NOT NULL,
	reviews_tagged INTEGER NOT NULL DEFAULT 0,
	segment_count INTEGER NOT NULL DEFAULT 0,
	overlap_count INTEGER NOT NULL DEFAULT 0,
	combination_count INTEGER NOT NULL DEFAULT 0,
	report_json TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_segments (
	run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	label TEXT NOT NULL,
	layer TEXT NOT NULL,
	review_count INTEGER NOT NULL,
	share_pct REAL NOT NULL,
	avg_rating REAL NOT NULL,
	net_revenue REAL NOT NULL,
	PRIMARY KEY (run_id, label)
);

CREATE TABLE IF NOT EXISTS run_overlaps (
	run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	identity_label TEXT NOT NULL,
	motivation_label TEXT NOT NULL,
	match_count INTEGER NOT NULL,
	PRIMARY KEY (run_id, identity_label, motivation_label)
);

CREATE INDEX IF NOT EXISTS idx_runs_generated ON runs(generated_at DESC);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// SaveReport persists the artifact plus queryable summary rows in one
// transaction.
func (s *sqliteStore) SaveReport(ctx context.Context, r *report.Report) error {
	blob, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	summary := store.Summarize(r)
	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs
			(run_id, generated_at, reviews_tagged, segment_count, overlap_count, combination_count, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.GeneratedAt.UTC().Format(timestampLayout),
		summary.ReviewsTagged, summary.Segments, summary.Overlaps, summary.Combinations,
		string(blob),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, prof := range r.Segments {
		netRevenue := 0.0
		if prof.Sales != nil {
			netRevenue = prof.Sales.NetRevenue
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO run_segments
				(run_id, label, layer, review_count, share_pct, avg_rating, net_revenue)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, prof.Label, string(prof.Layer), prof.Count, prof.Share, prof.AvgRating, netRevenue,
		)
		if err != nil {
			return fmt.Errorf("insert segment %s: %w", prof.Label, err)
		}
	}

	for _, rec := range r.Overlaps {
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO run_overlaps
				(run_id, identity_label, motivation_label, match_count)
			VALUES (?, ?, ?, ?)`,
			r.RunID, rec.IdentityLabel, rec.MotivationLabel, rec.Count,
		)
		if err != nil {
			return fmt.Errorf("insert overlap: %w", err)
		}
	}

	return tx.Commit()
}

// GetReport loads a persisted artifact by run ID.
func (s *sqliteStore) GetReport(ctx context.Context, runID string) (*report.Report, bool, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		"SELECT report_json FROM runs WHERE run_id = ?", runID,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var r report.Report
	if err := json.Unmarshal([]byte(blob), &r); err != nil {
		return nil, false, fmt.Errorf("unmarshal report %s: %w", runID, err)
	}
	return &r, true, nil
}

// ListRuns returns run summaries, newest first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, generated_at, reviews_tagged, segment_count, overlap_count, combination_count
		FROM runs ORDER BY generated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.RunSummary
	for rows.Next() {
		var s store.RunSummary
		var generated string
		if err := rows.Scan(&s.RunID, &generated, &s.ReviewsTagged, &s.Segments, &s.Overlaps, &s.Combinations); err != nil {
			return nil, err
		}
		s.GeneratedAt, _ = time.Parse(timestampLayout, generated)
		out = append(out, s)
	}
	return out, rows.Err()
}

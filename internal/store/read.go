package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/turnt/internal/ir"
)

// Run is a journaled run.
type Run struct {
	Seq       int64
	ID        string
	StartedAt time.Time
	Flags     ir.RunConfig

	// FinishedAt is zero while the run is in progress or when it never
	// finished; Pass is meaningful only once it is set.
	FinishedAt time.Time
	Pass       bool
}

// ResultRecord is a journaled test result.
type ResultRecord struct {
	Index       int
	Path        string
	Env         string
	Pass        bool
	Todo        bool
	Saved       bool
	ExitCode    int
	Annotations []string
}

// Runs returns every journaled run, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, started_at, flags, finished_at, pass
		FROM runs
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			started  string
			flags    string
			finished sql.NullString
			pass     sql.NullBool
		)
		if err := rows.Scan(&r.Seq, &r.ID, &started, &flags, &finished, &pass); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse start time of run %s: %w", r.ID, err)
		}
		if finished.Valid {
			if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished.String); err != nil {
				return nil, fmt.Errorf("parse finish time of run %s: %w", r.ID, err)
			}
			r.Pass = pass.Bool
		}
		if r.Flags, err = unmarshalFlags(flags); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Results returns the results of one run in report order.
func (s *Store) Results(ctx context.Context, runID string) ([]ResultRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, path, env, pass, todo, saved, exit_code, annotations
		FROM results
		WHERE run_id = ?
		ORDER BY idx ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []ResultRecord
	for rows.Next() {
		var (
			r     ResultRecord
			notes string
		)
		if err := rows.Scan(&r.Index, &r.Path, &r.Env, &r.Pass, &r.Todo, &r.Saved, &r.ExitCode, &notes); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if r.Annotations, err = unmarshalAnnotations(notes); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// LastFailures returns the path keys of test-units whose most recent
// journaled run had at least one failing result, sorted.
//
// "Most recent" is per path: a test-unit that was not part of the latest
// run keeps the verdict of the last run that included it.
func (s *Store) LastFailures(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.path
		FROM results r
		JOIN runs ru ON ru.id = r.run_id
		WHERE ru.seq = (
			SELECT MAX(ru2.seq)
			FROM results r2
			JOIN runs ru2 ON ru2.id = r2.run_id
			WHERE r2.path = r.path
		)
		GROUP BY r.path
		HAVING MIN(r.pass) = 0
		ORDER BY r.path COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/turnt/internal/harness"
	"github.com/roach88/turnt/internal/ir"
	"github.com/roach88/turnt/internal/report"
)

// Journal appends the results of one run.
type Journal struct {
	store *Store
	runID string
}

// BeginRun records the start of a run with its flags and returns the
// journal its results are written to.
func (s *Store) BeginRun(ctx context.Context, cfg ir.RunConfig) (*Journal, error) {
	flags, err := marshalFlags(cfg)
	if err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, flags)
		VALUES (?, ?, ?)
	`, id, s.now().UTC().Format(time.RFC3339Nano), flags)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return &Journal{store: s, runID: id}, nil
}

// RunID identifies the run in the journal.
func (j *Journal) RunID() string {
	return j.runID
}

// Finish records the end of the run and its overall verdict.
func (j *Journal) Finish(ctx context.Context, pass bool) error {
	_, err := j.store.db.ExecContext(ctx, `
		UPDATE runs SET finished_at = ?, pass = ?
		WHERE id = ?
	`, j.store.now().UTC().Format(time.RFC3339Nano), pass, j.runID)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", j.runID, err)
	}
	return nil
}

// RecordResult stores one reported result. Recording the same index twice
// replaces the earlier row.
func (j *Journal) RecordResult(ctx context.Context, res harness.Result) error {
	path, err := PathKey(res.Test.Path)
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	notes, err := marshalAnnotations(report.Annotations(res))
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}

	_, err = j.store.db.ExecContext(ctx, `
		INSERT INTO results
		(run_id, idx, path, env, pass, todo, saved, exit_code, annotations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, idx) DO UPDATE SET
			path = excluded.path,
			env = excluded.env,
			pass = excluded.pass,
			todo = excluded.todo,
			saved = excluded.saved,
			exit_code = excluded.exit_code,
			annotations = excluded.annotations
	`,
		j.runID,
		res.Test.Index,
		path,
		res.Test.EnvName,
		res.Pass,
		res.Test.Todo,
		res.Saved(),
		res.ExitCode,
		notes,
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

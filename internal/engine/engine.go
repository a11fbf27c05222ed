package engine

import (
	"context"
	"io"
	"log/slog"

	"github.com/sourcegraph/conc/stream"

	"github.com/roach88/turnt/internal/harness"
	"github.com/roach88/turnt/internal/ir"
	"github.com/roach88/turnt/internal/report"
)

// Journal records results as they are emitted. Implemented by
// store.Journal.
type Journal interface {
	RecordResult(ctx context.Context, res harness.Result) error
}

// Engine runs one batch of tests.
//
// Thread-safety model:
//   - Run(): must be called from one goroutine
//   - emit(): only ever runs on one goroutine at a time, in input order
type Engine struct {
	cfg      ir.RunConfig
	exec     harness.Options
	reporter *report.Reporter
	journal  Journal
	stdout   io.Writer
	stderr   io.Writer
}

// Option configures an Engine.
type Option func(*Engine)

// WithJournal records every result in j.
func WithJournal(j Journal) Option {
	return func(e *Engine) {
		e.journal = j
	}
}

// WithHarnessOptions replaces the execution options derived from the run
// configuration. Tests use it to control capture sinks.
func WithHarnessOptions(opts harness.Options) Option {
	return func(e *Engine) {
		e.exec = opts
	}
}

// New creates an engine printing the report to stdout and diagnostics to
// stderr.
func New(cfg ir.RunConfig, stdout, stderr io.Writer, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg,
		exec:     harness.OptionsFor(cfg),
		reporter: report.New(stdout, stderr),
		stdout:   stdout,
		stderr:   stderr,
	}
	e.reporter.Quiet = cfg.DumpOnly
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes tests and reports whether all of them passed.
//
// Execution flow:
//  1. Print the plan (unless dumping or empty)
//  2. Execute each test, sequentially or on the worker pool
//  3. Emit results in input order, recording them in the journal
func (e *Engine) Run(ctx context.Context, tests []ir.Test) bool {
	e.reporter.Plan(len(tests))

	ok := true
	emit := func(res harness.Result) {
		e.reporter.Emit(res)
		if res.Err != nil && e.cfg.DumpOnly {
			slog.Error("test could not run", "test", res.Test.Name(), "error", res.Err)
		}
		if e.journal != nil {
			if err := e.journal.RecordResult(ctx, res); err != nil {
				slog.Warn("journal write failed", "test", res.Test.Name(), "error", err)
			}
		}
		ok = ok && res.Pass
	}

	if !e.cfg.Parallel {
		for _, test := range tests {
			emit(e.execute(ctx, test))
		}
		return ok
	}

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = ir.DefaultWorkers()
	}
	slog.Debug("running tests in parallel", "tests", len(tests), "workers", workers)

	s := stream.New().WithMaxGoroutines(workers)
	for _, test := range tests {
		s.Go(func() stream.Callback {
			res := e.execute(ctx, test)
			return func() { emit(res) }
		})
	}
	s.Wait()
	return ok
}

func (e *Engine) execute(ctx context.Context, test ir.Test) harness.Result {
	if e.cfg.DumpOnly {
		return harness.Dump(ctx, test, e.stdout, e.stderr)
	}
	return harness.Run(ctx, test, e.exec)
}

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/turnt/internal/compiler"
	"github.com/roach88/turnt/internal/engine"
	"github.com/roach88/turnt/internal/ir"
	"github.com/roach88/turnt/internal/store"
)

// Version is reported by --version.
var Version = "dev"

// RootOptions holds the flags of the turnt command.
type RootOptions struct {
	Save       bool
	Diff       bool
	Print      bool
	Verbose    bool
	Args       string
	Parallel   bool
	Config     string
	Envs       []string
	Workers    int
	Journal    string
	OnlyFailed bool
	LogLevel   string
}

// NewRootCommand creates the turnt command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "turnt [flags] <path>...",
		Short: "turnt - expect-style tests for command-line programs",
		Long: `Run the configured command for each test file, compare its outputs with
the saved expected outputs, and report the results in a TAP-like format.

Each test is configured by the nearest turnt.toml above it and by
directives embedded in the test file itself (CMD:, ARGS:, OUT:, RETURN:,
TODO:).

Example:
  turnt tests/*.t
  turnt --save tests/new.t
  turnt -j -e fast -e slow tests/*.t
  turnt --journal .turnt.db --only-failed tests/*.t`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTurnt(cmd, opts, args)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "", err)
	})

	f := cmd.Flags()
	f.BoolVar(&opts.Save, "save", false, "save new outputs (overwriting old)")
	f.BoolVar(&opts.Diff, "diff", false, "show a diff between the actual and expected output")
	f.BoolVarP(&opts.Print, "print", "p", false, "just show the command output (don't check anything)")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "do not suppress stderr from successful commands")
	f.StringVarP(&opts.Args, "args", "a", "", "override arguments for test commands")
	f.BoolVarP(&opts.Parallel, "parallel", "j", false, "run tests in parallel")
	f.StringVarP(&opts.Config, "config", "c", ir.DefaultConfigName, "name of the config file")
	f.StringArrayVarP(&opts.Envs, "env", "e", nil, "run only the named environment (repeatable)")
	f.IntVar(&opts.Workers, "workers", 0, "worker pool size for --parallel (0 = CPUs + 4, at most 32)")
	f.StringVar(&opts.Journal, "journal", "", "record results in this SQLite database")
	f.BoolVar(&opts.OnlyFailed, "only-failed", false, "run only tests that failed in the journal's last run (requires --journal)")
	f.StringVar(&opts.LogLevel, "log-level", DefaultLogLevel, "log level (debug|info|warn|error)")

	return cmd
}

// runConfig builds the run configuration from the parsed flags.
func (o *RootOptions) runConfig(cmd *cobra.Command) ir.RunConfig {
	cfg := ir.RunConfig{
		ConfigName:    o.Config,
		Save:          o.Save,
		ShowDiff:      o.Diff,
		DumpOnly:      o.Print,
		VerboseStderr: o.Verbose,
		Parallel:      o.Parallel,
		EnvNames:      o.Envs,
		Workers:       o.Workers,
		JournalPath:   o.Journal,
		OnlyFailed:    o.OnlyFailed,
	}
	if cmd.Flags().Changed("args") {
		args := o.Args
		cfg.ArgsOverride = &args
	}
	return cfg
}

func runTurnt(cmd *cobra.Command, opts *RootOptions, paths []string) error {
	if err := setupLogging(cmd.ErrOrStderr(), opts.LogLevel); err != nil {
		return WrapExitError(ExitCommandError, "", err)
	}

	cfg := opts.runConfig(cmd)
	if cfg.Workers < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid --workers %d: must not be negative", cfg.Workers))
	}
	if cfg.OnlyFailed && cfg.JournalPath == "" {
		return NewExitError(ExitCommandError, "--only-failed requires --journal")
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return WrapExitError(ExitCommandError, "invalid test path", err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		engineOpts []engine.Option
		journal    *store.Journal
	)
	if cfg.JournalPath != "" {
		st, err := store.Open(ctx, cfg.JournalPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing journal", "error", closeErr)
			}
		}()

		if cfg.OnlyFailed {
			paths, err = onlyFailed(ctx, st, paths)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read journal", err)
			}
		}

		journal, err = st.BeginRun(ctx, cfg)
		if err != nil {
			slog.Warn("journal unavailable, results will not be recorded", "path", cfg.JournalPath, "error", err)
		} else {
			slog.Debug("journaling run", "run", journal.RunID(), "path", cfg.JournalPath)
			engineOpts = append(engineOpts, engine.WithJournal(journal))
		}
	}

	tests, err := compiler.New(cfg).CompileAll(paths)
	if err != nil {
		return WrapExitError(ExitCommandError, "configuration error", err)
	}
	slog.Debug("tests resolved", "paths", len(paths), "tests", len(tests))

	eng := engine.New(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), engineOpts...)
	pass := eng.Run(ctx, tests)
	if journal != nil {
		if err := journal.Finish(ctx, pass); err != nil {
			slog.Warn("failed to record run outcome", "run", journal.RunID(), "error", err)
		}
	}
	if !pass {
		return &ExitError{Code: ExitFailure}
	}
	return nil
}

// onlyFailed keeps the paths whose last journaled run failed, in the
// order given.
func onlyFailed(ctx context.Context, st *store.Store, paths []string) ([]string, error) {
	if err := logPreviousRun(ctx, st); err != nil {
		return nil, err
	}
	failures, err := st.LastFailures(ctx)
	if err != nil {
		return nil, err
	}
	failed := make(map[string]bool, len(failures))
	for _, f := range failures {
		failed[f] = true
	}

	var kept []string
	for _, p := range paths {
		key, err := store.PathKey(p)
		if err != nil {
			return nil, err
		}
		if failed[key] {
			kept = append(kept, p)
		}
	}
	slog.Info("narrowed to previously failed tests", "given", len(paths), "kept", len(kept))
	return kept, nil
}

// logPreviousRun summarizes the most recent journaled run.
func logPreviousRun(ctx context.Context, st *store.Store) error {
	runs, err := st.Runs(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		slog.Info("journal has no previous run")
		return nil
	}
	last := runs[len(runs)-1]
	results, err := st.Results(ctx, last.ID)
	if err != nil {
		return err
	}
	failed := 0
	for _, r := range results {
		if !r.Pass {
			failed++
		}
	}
	slog.Info("previous run",
		"run", last.ID,
		"started", last.StartedAt,
		"finished", !last.FinishedAt.IsZero(),
		"results", len(results),
		"failed", failed,
	)
	return nil
}

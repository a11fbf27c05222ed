package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"syscall"

	"github.com/roach88/turnt/internal/ir"
)

// Shell runs every test command as `Shell -c <command>`.
const Shell = "/bin/sh"

// Options controls how tests are executed and judged.
type Options struct {
	// Save copies actual artifacts over expected ones when they differ.
	Save bool

	// ShowDiff displays a diff of every artifact pair.
	ShowDiff bool

	// Verbose copies captured stderr into the result's stdout preamble.
	Verbose bool

	// TempDir holds the capture sinks. Empty means os.TempDir().
	TempDir string

	// Namer names the capture sinks. Nil means random UUIDs.
	Namer Namer
}

// OptionsFor derives execution options from the run configuration.
func OptionsFor(cfg ir.RunConfig) Options {
	return Options{
		Save:     cfg.Save,
		ShowDiff: cfg.ShowDiff,
		Verbose:  cfg.VerboseStderr,
	}
}

func (o Options) namer() Namer {
	if o.Namer == nil {
		return uuidNamer{}
	}
	return o.Namer
}

// Run executes test and compares its outputs.
//
// Execution flow:
//  1. Allocate fresh stdout/stderr sinks (removed again on every path)
//  2. Run the command through the shell in the test's ConfigDir
//  3. Rewrite stream shorthands to the sink locations
//  4. Check the outcome against the expected artifacts
//
// The returned Result carries the verdict; harness failures are in
// Result.Err rather than a separate error.
func Run(ctx context.Context, test ir.Test, opts Options) Result {
	s, err := newSinks(opts.TempDir, opts.namer())
	if err != nil {
		return internalError(test, err)
	}
	defer s.remove()

	cmd := exec.CommandContext(ctx, Shell, "-c", test.Command)
	cmd.Dir = test.ConfigDir
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr

	slog.Debug("running test", "test", test.Name(), "command", test.Command, "dir", test.ConfigDir)
	code, err := exitCode(cmd.Run())
	if err != nil {
		return internalError(test, fmt.Errorf("run %q: %w", test.Command, err))
	}
	if err := s.close(); err != nil {
		return internalError(test, fmt.Errorf("close capture sinks: %w", err))
	}

	stderr, err := os.ReadFile(s.stderr.Name())
	if err != nil {
		return internalError(test, fmt.Errorf("read captured stderr: %w", err))
	}

	var preamble []byte
	if opts.Verbose {
		preamble = append(preamble, stderr...)
	}

	test = test.WithOutputs(rewriteStreams(test.Outputs, s.paths()))
	res := Check(ctx, test, code, stderr, opts)
	res.Stdout = append(preamble, res.Stdout...)
	return res
}

// Dump prints the command to stderr and runs it with the given streams. No
// output is compared; the test passes iff the command exits 0.
func Dump(ctx context.Context, test ir.Test, stdout, stderr io.Writer) Result {
	fmt.Fprintln(stderr, "$", test.Command)

	cmd := exec.CommandContext(ctx, Shell, "-c", test.Command)
	cmd.Dir = test.ConfigDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	code, err := exitCode(cmd.Run())
	if err != nil {
		return internalError(test, fmt.Errorf("run %q: %w", test.Command, err))
	}
	return Result{Test: test, Pass: code == 0, ExitCode: code}
}

// exitCode turns the error of exec.Cmd.Run into an exit code. A command
// killed by signal N reports -N. Only a failure to run the command at all
// remains an error.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, err
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return -int(ws.Signal()), nil
	}
	return exitErr.ExitCode(), nil
}

// rewriteStreams points stream outputs at the sink paths. File outputs are
// left alone whatever their name.
func rewriteStreams(outputs []ir.OutputFile, streams map[string]string) []ir.OutputFile {
	rewritten := make([]ir.OutputFile, len(outputs))
	for i, o := range outputs {
		if o.Stream != "" {
			o.Actual = streams[o.Stream]
		}
		rewritten[i] = o
	}
	return rewritten
}

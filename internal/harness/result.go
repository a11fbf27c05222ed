package harness

import "github.com/roach88/turnt/internal/ir"

// Result is the verdict for one test.
type Result struct {
	Test ir.Test

	// Pass is the verdict counted towards the run's exit status.
	Pass bool

	// ExitCode is the observed exit code of the command.
	ExitCode int

	// ExitMismatch is set when ExitCode differs from Test.ReturnCode. No
	// artifact was compared.
	ExitMismatch bool

	// Differing lists expected paths whose artifact exists but differs.
	Differing []string

	// Missing lists expected paths with no artifact saved yet.
	Missing []string

	// Updated lists every expected path rewritten by save mode.
	Updated []string

	// Err is an internal failure of the harness.
	Err error

	// Stdout is printed on standard output just before the report line:
	// verbose stderr and diff displays.
	Stdout []byte

	// Stderr is forwarded to diagnostic output.
	Stderr []byte
}

// Saved reports whether save mode rewrote the expected artifacts.
func (r Result) Saved() bool {
	return len(r.Updated) > 0
}

// Failed reports whether any artifact did not match.
func (r Result) Failed() bool {
	return len(r.Differing) > 0 || len(r.Missing) > 0
}

func internalError(test ir.Test, err error) Result {
	return Result{Test: test, Err: err}
}

package report

import (
	"fmt"
	"io"

	"github.com/roach88/turnt/internal/harness"
)

// Reporter writes the protocol to out and forwarded diagnostics to diag.
// It is not safe for concurrent use; results must be emitted in order by a
// single caller.
type Reporter struct {
	out  io.Writer
	diag io.Writer

	// Quiet suppresses the plan and result lines, as in dump mode.
	Quiet bool
}

// New creates a reporter.
func New(out, diag io.Writer) *Reporter {
	return &Reporter{out: out, diag: diag}
}

// Plan announces n tests. Nothing is printed for an empty run.
func (r *Reporter) Plan(n int) {
	if r.Quiet || n == 0 {
		return
	}
	fmt.Fprintln(r.out, Plan(n))
}

// Emit prints one result: its stdout preamble, its forwarded stderr and
// its result line.
func (r *Reporter) Emit(res harness.Result) {
	if len(res.Stdout) > 0 {
		r.out.Write(res.Stdout)
	}
	if len(res.Stderr) > 0 {
		r.diag.Write(res.Stderr)
	}
	if r.Quiet {
		return
	}
	fmt.Fprintln(r.out, Line(res))
}

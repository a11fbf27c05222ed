package report

import (
	"fmt"
	"strings"

	"github.com/roach88/turnt/internal/harness"
)

// Plan returns the plan line announcing n tests.
func Plan(n int) string {
	return fmt.Sprintf("1..%d", n)
}

// Line returns the result line for r.
func Line(r harness.Result) string {
	status := "ok"
	if !r.Pass {
		status = "not ok"
	}
	line := fmt.Sprintf("%s %d - %s", status, r.Test.Index, r.Test.Name())
	if notes := Annotations(r); len(notes) > 0 {
		line += " # " + strings.Join(notes, "; ")
	}
	return line
}

// Annotations lists the comments attached to a result line, in order.
//
// A todo test that fails still names what failed after the todo marker,
// so it reads "ok 1 - a.t # todo; differing: a.out" rather than a bare
// "# todo". A harness error or exit-code mismatch replaces every other
// annotation, and a save reports only the updated files.
func Annotations(r harness.Result) []string {
	if r.Err != nil {
		return []string{"error: " + oneLine(r.Err.Error())}
	}

	if r.ExitMismatch {
		note := fmt.Sprintf("exit code: %d", r.ExitCode)
		if r.Test.ReturnCode != 0 {
			note += fmt.Sprintf(", expected: %d", r.Test.ReturnCode)
		}
		return []string{note}
	}

	if r.Saved() {
		return []string{"skip: updated " + strings.Join(r.Updated, ", ")}
	}

	var notes []string
	if r.Test.Todo && r.Failed() {
		notes = append(notes, "todo")
	}
	if len(r.Differing) > 0 {
		notes = append(notes, "differing: "+strings.Join(r.Differing, ", "))
	}
	if len(r.Missing) > 0 {
		notes = append(notes, "missing: "+strings.Join(r.Missing, ", "))
	}
	return notes
}

// oneLine keeps an error message on the result line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

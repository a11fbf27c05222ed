package report

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/roach88/turnt/internal/harness"
)

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// transcript renders a plan and a mixed batch of results.
func transcript(quiet bool) (string, string) {
	var out, diag bytes.Buffer
	r := New(&out, &diag)
	r.Quiet = quiet

	saved := result(1, "a.t", true)
	saved.Missing = []string{"a.out"}
	saved.Updated = []string{"a.out"}

	verbose := result(2, "b.t", true)
	verbose.Stdout = []byte("warning: from stderr\n")

	failed := result(3, "c.t", false)
	failed.ExitMismatch = true
	failed.ExitCode = 1
	failed.Test.ReturnCode = 2
	failed.Stderr = []byte("boom\n")

	todo := result(4, "d.t", true)
	todo.Test.EnvName = "slow"
	todo.Test.Todo = true
	todo.Differing = []string{"d.out"}

	r.Plan(4)
	for _, res := range []harness.Result{saved, verbose, failed, todo} {
		r.Emit(res)
	}
	return out.String(), diag.String()
}

func TestReporter_Transcript(t *testing.T) {
	out, diag := transcript(false)

	newGolden(t).Assert(t, "transcript", []byte(out))
	assert.Equal(t, "boom\n", diag)
}

func TestReporter_QuietPrintsOnlyPassthrough(t *testing.T) {
	out, diag := transcript(true)

	newGolden(t).Assert(t, "transcript_quiet", []byte(out))
	assert.Equal(t, "boom\n", diag)
}

func TestReporter_EmptyRunHasNoPlan(t *testing.T) {
	var out, diag bytes.Buffer
	New(&out, &diag).Plan(0)
	assert.Empty(t, out.String())
}

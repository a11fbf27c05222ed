package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/turnt/internal/harness"
	"github.com/roach88/turnt/internal/ir"
)

func result(index int, path string, pass bool) harness.Result {
	return harness.Result{
		Test: ir.Test{Index: index, Path: path},
		Pass: pass,
	}
}

func TestPlan(t *testing.T) {
	assert.Equal(t, "1..1", Plan(1))
	assert.Equal(t, "1..12", Plan(12))
}

func TestLine(t *testing.T) {
	saved := result(1, "a.t", true)
	saved.Missing = []string{"a.out"}
	saved.Updated = []string{"a.out"}

	differing := result(1, "a.t", false)
	differing.Differing = []string{"a.out"}

	exitOnly := result(1, "a.t", false)
	exitOnly.ExitMismatch = true
	exitOnly.ExitCode = 1

	exitBoth := exitOnly
	exitBoth.Test.ReturnCode = 2

	todo := result(1, "a.t", true)
	todo.Test.Todo = true
	todo.Differing = []string{"a.out"}

	env := result(2, "a.t", true)
	env.Test.EnvName = "fast"

	mixed := result(3, "d/x.t", false)
	mixed.Differing = []string{"d/x.out", "d/x.err"}
	mixed.Missing = []string{"d/x.json"}

	broken := result(4, "b.t", false)
	broken.Err = errors.New("read actual output:\nno such file")

	tests := []struct {
		name string
		res  harness.Result
		want string
	}{
		{"pass", result(1, "a.t", true), "ok 1 - a.t"},
		{"saved", saved, "ok 1 - a.t # skip: updated a.out"},
		{"differing", differing, "not ok 1 - a.t # differing: a.out"},
		{"exit code", exitOnly, "not ok 1 - a.t # exit code: 1"},
		{"exit code and expected", exitBoth, "not ok 1 - a.t # exit code: 1, expected: 2"},
		{"todo", todo, "ok 1 - a.t # todo; differing: a.out"},
		{"environment", env, "ok 2 - a.t fast"},
		{"differing and missing", mixed, "not ok 3 - d/x.t # differing: d/x.out, d/x.err; missing: d/x.json"},
		{"internal error", broken, "not ok 4 - b.t # error: read actual output: no such file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Line(tt.res))
		})
	}
}

func TestAnnotations_TodoWithoutFailure(t *testing.T) {
	r := result(1, "a.t", true)
	r.Test.Todo = true
	assert.Empty(t, Annotations(r))
}

func TestAnnotations_SavedHidesDifferences(t *testing.T) {
	r := result(1, "a.t", true)
	r.Test.Todo = true
	r.Differing = []string{"a.out"}
	r.Updated = []string{"a.out", "a.err"}
	assert.Equal(t, []string{"skip: updated a.out, a.err"}, Annotations(r))
}

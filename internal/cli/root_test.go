package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/turnt/internal/testutil"
)

// execute runs the turnt command and returns its exit code and streams.
func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return GetExitCode(err), stdout.String(), stderr.String()
}

// inTree creates files in a fresh directory and makes it the working
// directory, so report lines carry short relative paths.
func inTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteTree(t, dir, files)
	t.Chdir(dir)
	return dir
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "turnt", cmd.Name())
	assert.Contains(t, cmd.Long, "TAP-like")
}

func TestFlags(t *testing.T) {
	cmd := NewRootCommand()

	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"save", "", "false"},
		{"diff", "", "false"},
		{"print", "p", "false"},
		{"verbose", "v", "false"},
		{"args", "a", ""},
		{"parallel", "j", "false"},
		{"config", "c", "turnt.toml"},
		{"env", "e", "[]"},
		{"workers", "", "0"},
		{"journal", "", ""},
		{"only-failed", "", "false"},
		{"log-level", "", "warn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.shorthand, f.Shorthand)
			assert.Equal(t, tt.def, f.DefValue)
		})
	}
}

// Scenarios 1-3: save, re-run, then change the command.
func TestScenario_SaveRerunChange(t *testing.T) {
	inTree(t, map[string]string{"a.t": "CMD: echo hi\n"})

	code, out, _ := execute(t, "--save", "a.t")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "1..1\nok 1 - a.t # skip: updated a.out\n", out)
	assert.Equal(t, "hi\n", testutil.ReadFile(t, "a.out"))

	code, out, _ = execute(t, "a.t")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "1..1\nok 1 - a.t\n", out)

	testutil.WriteTree(t, ".", map[string]string{"a.t": "CMD: echo bye\n"})
	code, out, _ = execute(t, "a.t")
	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, "1..1\nnot ok 1 - a.t # differing: a.out\n", out)
	assert.Equal(t, "hi\n", testutil.ReadFile(t, "a.out"))
}

// Scenario 4: unexpected exit code.
func TestScenario_ExitCode(t *testing.T) {
	inTree(t, map[string]string{
		"turnt.toml": "command = \"echo failing >&2; exit 1\"\nreturn_code = 2\n",
		"a.t":        "",
	})

	code, out, errOut := execute(t, "a.t")
	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, "1..1\nnot ok 1 - a.t # exit code: 1, expected: 2\n", out)
	assert.Contains(t, errOut, "failing\n")
}

// Scenario 5: todo tests report differences but do not fail the run.
func TestScenario_Todo(t *testing.T) {
	inTree(t, map[string]string{
		"turnt.toml": "command = \"echo bye\"\ntodo = true\n",
		"a.t":        "",
		"a.out":      "hi\n",
	})

	code, out, _ := execute(t, "a.t")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "1..1\nok 1 - a.t # todo; differing: a.out\n", out)
}

// Scenario 6: every default environment yields its own line.
func TestScenario_MultipleEnvironments(t *testing.T) {
	inTree(t, map[string]string{
		"turnt.toml": "[envs.one]\ncommand = \"echo same\"\n\n[envs.two]\ncommand = \"echo same\"\n\n[envs.off]\ncommand = \"false\"\ndefault = false\n",
		"a.t":        "",
		"a.out":      "same\n",
	})

	code, out, _ := execute(t, "a.t")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "1..2\nok 1 - a.t one\nok 2 - a.t two\n", out)

	// Named environments run in configuration order, default or not.
	code, out, _ = execute(t, "-e", "off", "-e", "two", "a.t")
	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, "1..2\nok 1 - a.t two\nnot ok 2 - a.t off # exit code: 1\n", out)
}

func TestRun_NumbersAcrossPaths(t *testing.T) {
	inTree(t, map[string]string{
		"turnt.toml": "command = \"cat {filename}\"\n",
		"a.t":        "a\n",
		"a.out":      "a\n",
		"sub/b.t":    "b\n",
		"sub/b.out":  "b\n",
	})

	code, out, _ := execute(t, "a.t", "sub/b.t")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "1..2\nok 1 - a.t\nok 2 - sub/b.t\n", out)
}

func TestRun_Parallel(t *testing.T) {
	files := map[string]string{"turnt.toml": "command = \"cat {filename}\"\n"}
	args := []string{"-j", "--workers", "3"}
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		files[name+".t"] = name + "\n"
		files[name+".out"] = name + "\n"
		args = append(args, name+".t")
	}
	inTree(t, files)

	code, out, _ := execute(t, args...)
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "1..5\nok 1 - a.t\nok 2 - b.t\nok 3 - c.t\nok 4 - d.t\nok 5 - e.t\n", out)
}

func TestRun_ArgsOverride(t *testing.T) {
	inTree(t, map[string]string{
		"turnt.toml": "command = \"echo {args}\"\nargs = \"config\"\n",
		"a.t":        "ARGS: directive\n",
		"a.out":      "cli\n",
		"b.t":        "",
		"b.out":      "\n",
	})

	code, out, _ := execute(t, "-a", "cli", "a.t")
	assert.Equal(t, ExitSuccess, code, out)

	code, out, _ = execute(t, "--args", "", "b.t")
	assert.Equal(t, ExitSuccess, code, out)

	code, _, _ = execute(t, "a.t")
	assert.Equal(t, ExitFailure, code, "without the override the directive wins")
}

func TestRun_CustomConfigName(t *testing.T) {
	inTree(t, map[string]string{
		"turnt.toml": "command = \"echo wrong\"\n",
		"alt.yaml":   "command: echo right\n",
		"a.t":        "",
		"a.out":      "right\n",
	})

	code, out, _ := execute(t, "-c", "alt.yaml", "a.t")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "1..1\nok 1 - a.t\n", out)
}

func TestRun_OutputFileNamedLikeStream(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		path  string
		want  string
	}{
		{
			name: "base template on stderr.t",
			files: map[string]string{
				"turnt.toml": "command = \"printf artifact > {base}; echo noise >&2\"\noutput = { res = \"{base}\" }\n",
				"stderr.t":   "",
				"stderr.res": "artifact",
			},
			path: "stderr.t",
			want: "1..1\nok 1 - stderr.t\n",
		},
		{
			name: "dot-slash stdout template",
			files: map[string]string{
				"turnt.toml": "command = \"printf artifact > stdout; echo noise\"\noutput = { out = \"./stdout\" }\n",
				"a.t":        "",
				"a.out":      "artifact",
			},
			path: "a.t",
			want: "1..1\nok 1 - a.t\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTree(t, tt.files)
			code, out, _ := execute(t, tt.path)
			assert.Equal(t, ExitSuccess, code)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRun_Print(t *testing.T) {
	inTree(t, map[string]string{"a.t": "CMD: echo shown\n"})

	code, out, errOut := execute(t, "-p", "a.t")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "shown\n", out)
	assert.Contains(t, errOut, "$ echo shown\n")
	assert.NoFileExists(t, "a.out")
}

func TestRun_VerboseAndDiff(t *testing.T) {
	inTree(t, map[string]string{
		"turnt.toml": "command = \"echo bye; echo note >&2\"\ndiff = \"turnt-no-such-diff-program\"\n",
		"a.t":        "",
		"a.out":      "hi\n",
	})

	code, out, _ := execute(t, "-v", "--diff", "a.t")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out, "note\n")
	assert.Contains(t, out, "-hi\n+bye\n")
	assert.Contains(t, out, "not ok 1 - a.t # differing: a.out\n")
}

func TestRun_NoPaths(t *testing.T) {
	inTree(t, nil)

	code, out, _ := execute(t)
	assert.Equal(t, ExitSuccess, code)
	assert.Empty(t, out)
}

func TestRun_CommandErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		args  []string
	}{
		{"missing path", nil, []string{"nope.t"}},
		{"malformed config", map[string]string{"turnt.toml": "command = [\n", "a.t": ""}, []string{"a.t"}},
		{"no command", map[string]string{"a.t": "nothing\n"}, []string{"a.t"}},
		{"bad return directive", map[string]string{"a.t": "CMD: true\nRETURN: x\n"}, []string{"a.t"}},
		{"only-failed without journal", map[string]string{"a.t": ""}, []string{"--only-failed", "a.t"}},
		{"negative workers", map[string]string{"a.t": ""}, []string{"--workers", "-1", "a.t"}},
		{"bad log level", map[string]string{"a.t": ""}, []string{"--log-level", "loud", "a.t"}},
		{"unknown flag", nil, []string{"--frobnicate"}},
		{"journal in missing dir", map[string]string{"a.t": "CMD: true\n"}, []string{"--journal", "no/such/dir/j.db", "a.t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTree(t, tt.files)
			code, out, _ := execute(t, tt.args...)
			assert.Equal(t, ExitCommandError, code)
			assert.Empty(t, out, "nothing is reported when the run cannot start")
		})
	}
}

func TestRun_JournalOnlyFailed(t *testing.T) {
	dir := inTree(t, map[string]string{
		"turnt.toml": "command = \"cat {filename}\"\n",
		"a.t":        "a\n",
		"a.out":      "stale\n",
		"b.t":        "b\n",
		"b.out":      "b\n",
	})
	journal := filepath.Join(dir, "journal.db")

	code, out, _ := execute(t, "--journal", journal, "a.t", "b.t")
	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, "1..2\nnot ok 1 - a.t # differing: a.out\nok 2 - b.t\n", out)

	code, out, errOut := execute(t, "--journal", journal, "--only-failed", "--log-level", "info", "a.t", "b.t")
	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, "1..1\nnot ok 1 - a.t # differing: a.out\n", out)
	assert.Contains(t, errOut, "previous run")

	testutil.WriteTree(t, dir, map[string]string{"a.out": "a\n"})
	code, out, _ = execute(t, "--journal", journal, "--only-failed", "a.t", "b.t")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "1..1\nok 1 - a.t\n", out)

	code, out, _ = execute(t, "--journal", journal, "--only-failed", "a.t", "b.t")
	assert.Equal(t, ExitSuccess, code)
	assert.Empty(t, out, "nothing failed last time")
}

func TestVersion(t *testing.T) {
	code, out, _ := execute(t, "--version")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "turnt version "+Version)
}

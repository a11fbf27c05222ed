package ir

import "slices"

// OutputFile pairs an expected artifact with the place its actual
// counterpart is captured.
//
// Stream is set (to StreamStdout or StreamStderr) when the output is a
// captured stream; Actual is then empty until the executor fills in the
// capture file. Otherwise Actual is the path the command writes.
type OutputFile struct {
	Expected string `json:"expected"`
	Actual   string `json:"actual,omitempty"`
	Stream   string `json:"stream,omitempty"`
}

// Test is one fully resolved unit of work: a test-unit under one
// environment.
type Test struct {
	// Index is the 1-based position in the report.
	Index int `json:"index"`

	// EnvName is empty for single-environment configurations.
	EnvName string `json:"env,omitempty"`

	Path      string `json:"path"`
	ConfigDir string `json:"config_dir"`
	Command   string `json:"command"`

	Outputs     []OutputFile `json:"outputs"`
	ReturnCode  int          `json:"return_code"`
	DiffCommand []string     `json:"diff_command"`
	Todo        bool         `json:"todo,omitempty"`
}

// Name is the label used on the report line: the path, followed by the
// environment name when there is one.
func (t Test) Name() string {
	if t.EnvName == "" {
		return t.Path
	}
	return t.Path + " " + t.EnvName
}

// WithOutputs returns a copy of the test with its output pairs replaced.
func (t Test) WithOutputs(outputs []OutputFile) Test {
	c := t
	c.Outputs = slices.Clone(outputs)
	return c
}

// ExpectedPaths lists the expected artifact paths in configuration order.
func (t Test) ExpectedPaths() []string {
	paths := make([]string, len(t.Outputs))
	for i, o := range t.Outputs {
		paths[i] = o.Expected
	}
	return paths
}

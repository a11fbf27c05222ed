package ir

import "slices"

// Stream shorthands accepted as output targets.
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)

// Defaults applied when a configuration leaves a key out.
const (
	DefaultOutBase   = "out"
	DefaultOutputKey = "out"
)

// DefaultDiffCommand is the diff invocation used for --diff display.
var DefaultDiffCommand = []string{"diff", "--new-file", "--unified"}

// Output maps one output key (the expected artifact's extension) to a
// target: either a stream shorthand or a path template.
type Output struct {
	Key    string `json:"key"`
	Target string `json:"target"`
}

// EnvironmentSpec is one named bundle of execution settings.
type EnvironmentSpec struct {
	// Name is empty for single-environment configurations.
	Name      string
	IsDefault bool

	// Command is the shell command template. Nil means unset.
	Command *string

	Outputs     []Output
	ReturnCode  int
	OutBase     string
	DiffCommand []string
	ArgsDefault string

	// OptsFile is read for directives when the test-unit is a directory.
	OptsFile string

	Binary bool
	Todo   bool
}

// NewEnvironmentSpec returns an environment with every default applied.
func NewEnvironmentSpec(name string) EnvironmentSpec {
	return EnvironmentSpec{
		Name:        name,
		IsDefault:   true,
		OutBase:     DefaultOutBase,
		DiffCommand: slices.Clone(DefaultDiffCommand),
	}
}

// clone returns a deep copy so callers can change one field safely.
func (e EnvironmentSpec) clone() EnvironmentSpec {
	c := e
	if e.Command != nil {
		cmd := *e.Command
		c.Command = &cmd
	}
	c.Outputs = slices.Clone(e.Outputs)
	c.DiffCommand = slices.Clone(e.DiffCommand)
	return c
}

// WithCommand returns a copy with the command template replaced.
func (e EnvironmentSpec) WithCommand(cmd string) EnvironmentSpec {
	c := e.clone()
	c.Command = &cmd
	return c
}

// WithOutputs returns a copy whose output mapping is exactly outputs.
func (e EnvironmentSpec) WithOutputs(outputs []Output) EnvironmentSpec {
	c := e.clone()
	c.Outputs = slices.Clone(outputs)
	return c
}

// WithArgs returns a copy with the default argument string replaced.
func (e EnvironmentSpec) WithArgs(args string) EnvironmentSpec {
	c := e.clone()
	c.ArgsDefault = args
	return c
}

// WithReturnCode returns a copy expecting a different exit code.
func (e EnvironmentSpec) WithReturnCode(code int) EnvironmentSpec {
	c := e.clone()
	c.ReturnCode = code
	return c
}

// WithTodo returns a copy with the todo flag set to todo.
func (e EnvironmentSpec) WithTodo(todo bool) EnvironmentSpec {
	c := e.clone()
	c.Todo = todo
	return c
}

// EffectiveOutputs returns the configured outputs, or the implicit
// stdout capture when none are configured.
func (e EnvironmentSpec) EffectiveOutputs() []Output {
	if len(e.Outputs) == 0 {
		return []Output{{Key: DefaultOutputKey, Target: StreamStdout}}
	}
	return slices.Clone(e.Outputs)
}

// CanonicalStream maps a shorthand to StreamStdout or StreamStderr, or
// returns "" for a path template. "-" and "2" are accepted alongside the
// names.
func CanonicalStream(target string) string {
	switch target {
	case StreamStdout, "-":
		return StreamStdout
	case StreamStderr, "2":
		return StreamStderr
	default:
		return ""
	}
}

package directive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/turnt/internal/ir"
)

// ValueError is a directive whose value cannot be interpreted. Like a
// malformed configuration it is fatal for the run.
type ValueError struct {
	Key   string
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s directive %q: %v", strings.ToUpper(e.Key), e.Value, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// Apply derives a new environment from env with the directives in text
// applied. env itself is never modified.
//
//   - CMD replaces the command template.
//   - OUT lines, when present, replace the whole output mapping.
//   - ARGS replaces the default arguments.
//   - RETURN replaces the expected exit code.
//   - TODO sets the todo flag: "true" enables it, anything else clears it.
//
// Empty values are treated as absent.
func Apply(env ir.EnvironmentSpec, text string) (ir.EnvironmentSpec, error) {
	if text == "" {
		return env, nil
	}

	if cmd, ok := ExtractSingle(text, KeyCmd); ok && cmd != "" {
		env = env.WithCommand(cmd)
	}

	if outs := Extract(text, KeyOut); len(outs) > 0 {
		outputs, err := parseOutputs(outs)
		if err != nil {
			return env, err
		}
		env = env.WithOutputs(outputs)
	}

	if args, ok := ExtractSingle(text, KeyArgs); ok && args != "" {
		env = env.WithArgs(args)
	}

	if ret, ok := ExtractSingle(text, KeyReturn); ok && strings.TrimSpace(ret) != "" {
		code, err := strconv.Atoi(strings.TrimSpace(ret))
		if err != nil {
			return env, &ValueError{Key: KeyReturn, Value: ret, Err: err}
		}
		env = env.WithReturnCode(code)
	}

	if todo, ok := ExtractSingle(text, KeyTodo); ok {
		env = env.WithTodo(strings.TrimSpace(todo) == "true")
	}

	return env, nil
}

// parseOutputs splits each OUT value into its key and target template.
func parseOutputs(values []string) ([]ir.Output, error) {
	outputs := make([]ir.Output, 0, len(values))
	for _, v := range values {
		fields := strings.Fields(v)
		if len(fields) < 2 {
			return nil, &ValueError{Key: KeyOut, Value: v, Err: fmt.Errorf("expected <key> <path>")}
		}
		key := fields[0]
		target := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v), key))
		outputs = append(outputs, ir.Output{Key: key, Target: target})
	}
	return outputs, nil
}

// ApplyArgsOverride replaces the arguments with the run-wide override, when
// there is one. It runs after Apply, so the override always wins.
func ApplyArgsOverride(env ir.EnvironmentSpec, override *string) ir.EnvironmentSpec {
	if override == nil {
		return env
	}
	return env.WithArgs(*override)
}

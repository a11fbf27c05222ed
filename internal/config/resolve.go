package config

import (
	"fmt"
	"slices"

	"mvdan.cc/sh/v3/shell"

	"github.com/roach88/turnt/internal/ir"
)

// EnvsKey is the reserved top-level key of the multi-environment shape.
const EnvsKey = "envs"

// DefaultEnvName selects a single-environment configuration by name.
const DefaultEnvName = "default"

// Resolve materializes the environments of doc selected by names.
//
// With a non-empty names filter, only environments whose name is listed are
// returned (a single-environment document answers to DefaultEnvName). With
// an empty filter, only environments whose default flag is true are
// returned. Order follows the document.
func Resolve(doc *Document, names []string) ([]ir.EnvironmentSpec, error) {
	rawEnvs, multi := doc.Data[EnvsKey]
	if !multi {
		env, err := parseEnv(doc, "", doc.Data, nil)
		if err != nil {
			return nil, err
		}
		if !selected(names, DefaultEnvName, env.IsDefault) {
			return nil, nil
		}
		return []ir.EnvironmentSpec{env}, nil
	}

	envs, err := table(rawEnvs)
	if err != nil {
		return nil, &Error{Path: doc.Path, Key: EnvsKey, Err: err}
	}

	var out []ir.EnvironmentSpec
	for _, name := range doc.Keys(envs, EnvsKey) {
		data, err := table(envs[name])
		if err != nil {
			return nil, &Error{Path: doc.Path, Env: name, Err: err}
		}
		env, err := parseEnv(doc, name, data, []string{EnvsKey, name})
		if err != nil {
			return nil, err
		}
		if selected(names, name, env.IsDefault) {
			out = append(out, env)
		}
	}
	return out, nil
}

func selected(names []string, name string, isDefault bool) bool {
	if len(names) == 0 {
		return isDefault
	}
	return slices.Contains(names, name)
}

// parseEnv builds one environment from its table. path locates the table
// in the document, for key ordering.
func parseEnv(doc *Document, name string, data map[string]any, path []string) (ir.EnvironmentSpec, error) {
	env := ir.NewEnvironmentSpec(name)
	fail := func(key string, err error) (ir.EnvironmentSpec, error) {
		return ir.EnvironmentSpec{}, &Error{Path: doc.Path, Env: name, Key: key, Err: err}
	}

	if v, ok := data["command"]; ok {
		s, err := asString(v)
		if err != nil {
			return fail("command", err)
		}
		env.Command = &s
	}

	if v, ok := data["output"]; ok {
		outputs, err := table(v)
		if err != nil {
			return fail("output", err)
		}
		for _, key := range doc.Keys(outputs, append(slices.Clone(path), "output")...) {
			target, err := asString(outputs[key])
			if err != nil {
				return fail("output."+key, err)
			}
			env.Outputs = append(env.Outputs, ir.Output{Key: key, Target: target})
		}
	}

	if v, ok := data["return_code"]; ok {
		code, err := asInt(v)
		if err != nil {
			return fail("return_code", err)
		}
		env.ReturnCode = code
	}

	if v, ok := data["diff"]; ok {
		argv, err := asCommandLine(v)
		if err != nil {
			return fail("diff", err)
		}
		env.DiffCommand = argv
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"out_base", &env.OutBase},
		{"opts_file", &env.OptsFile},
		{"args", &env.ArgsDefault},
	}
	for _, f := range strs {
		if v, ok := data[f.key]; ok {
			s, err := asString(v)
			if err != nil {
				return fail(f.key, err)
			}
			*f.dst = s
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"binary", &env.Binary},
		{"todo", &env.Todo},
		{"default", &env.IsDefault},
	}
	for _, f := range bools {
		if v, ok := data[f.key]; ok {
			b, ok := v.(bool)
			if !ok {
				return fail(f.key, fmt.Errorf("expected a boolean, got %T", v))
			}
			*f.dst = b
		}
	}

	return env, nil
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %T", v)
	}
	return s, nil
}

// asInt accepts the integer types produced by both the TOML and the YAML
// decoder.
func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case uint64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}

// asCommandLine accepts either a shell-style string, split into words, or
// an explicit list of arguments.
func asCommandLine(v any) ([]string, error) {
	switch c := v.(type) {
	case string:
		argv, err := shell.Fields(c, nil)
		if err != nil {
			return nil, fmt.Errorf("split %q: %w", c, err)
		}
		if len(argv) == 0 {
			return nil, fmt.Errorf("empty command")
		}
		return argv, nil
	case []any:
		argv := make([]string, 0, len(c))
		for i, a := range c {
			s, err := asString(a)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			argv = append(argv, s)
		}
		if len(argv) == 0 {
			return nil, fmt.Errorf("empty command")
		}
		return argv, nil
	default:
		return nil, fmt.Errorf("expected a string or list, got %T", v)
	}
}

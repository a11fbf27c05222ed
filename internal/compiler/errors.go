package compiler

import (
	"errors"
	"fmt"
)

// ErrNoCommand means an environment has no command template. It is a fatal
// misconfiguration.
var ErrNoCommand = errors.New("no command configured")

// CompileError locates a fatal problem found while resolving one test-unit
// under one environment.
type CompileError struct {
	Path string
	Env  string
	Err  error
}

func (e *CompileError) Error() string {
	if e.Env != "" {
		return fmt.Sprintf("%s (env %s): %v", e.Path, e.Env, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

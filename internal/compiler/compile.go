package compiler

import (
	"log/slog"
	"os"

	"github.com/roach88/turnt/internal/config"
	"github.com/roach88/turnt/internal/directive"
	"github.com/roach88/turnt/internal/ir"
)

// Compiler turns test-unit paths into fully resolved Tests. It combines the
// discovered configuration, the embedded directives and the run-wide
// overrides. Resolution is eager: nothing is executed.
type Compiler struct {
	cfg    ir.RunConfig
	loader *config.Loader
}

// New creates a compiler for one run.
func New(cfg ir.RunConfig) *Compiler {
	name := cfg.ConfigName
	if name == "" {
		name = ir.DefaultConfigName
	}
	return &Compiler{cfg: cfg, loader: config.NewLoader(name)}
}

// Compile resolves the test-unit at path into one Test per selected
// environment, in configuration order. Index is left zero; CompileAll
// numbers tests.
//
// Errors are fatal for the run: a malformed configuration (*config.Error),
// an unusable directive (*directive.ValueError) or a missing command
// (ErrNoCommand), wrapped in *CompileError where a test is known.
// Undecodable test content only logs a warning.
func (c *Compiler) Compile(path string) ([]ir.Test, error) {
	doc, err := c.loader.Load(path)
	if err != nil {
		return nil, err
	}
	if doc.Found() {
		slog.Debug("using configuration", "test", path, "config", doc.Path)
	} else {
		slog.Debug("no configuration file, relying on directives", "test", path, "dir", doc.Dir)
	}
	envs, err := config.Resolve(doc, c.cfg.EnvNames)
	if err != nil {
		return nil, err
	}
	if len(envs) == 0 {
		slog.Debug("no environment selected", "test", path, "envs", c.cfg.EnvNames)
	}

	info, statErr := os.Stat(path)
	isDir := statErr == nil && info.IsDir()

	tests := make([]ir.Test, 0, len(envs))
	for _, env := range envs {
		text, err := directive.ReadContents(env, path)
		if err != nil {
			slog.Warn("ignoring embedded directives", "test", path, "error", err)
			text = ""
		}

		resolved, err := directive.Apply(env, text)
		if err != nil {
			return nil, &CompileError{Path: path, Env: env.Name, Err: err}
		}
		resolved = directive.ApplyArgsOverride(resolved, c.cfg.ArgsOverride)

		cmd, err := FormatCommand(resolved, doc.Dir, path)
		if err != nil {
			return nil, &CompileError{Path: path, Env: env.Name, Err: err}
		}

		test := ir.Test{
			EnvName:     env.Name,
			Path:        path,
			ConfigDir:   doc.Dir,
			Command:     cmd,
			Outputs:     MapOutputs(resolved, path, isDir),
			ReturnCode:  resolved.ReturnCode,
			DiffCommand: resolved.DiffCommand,
			Todo:        resolved.Todo,
		}
		slog.Debug("compiled test", "test", path, "env", env.Name, "command", cmd)
		tests = append(tests, test)
	}
	return tests, nil
}

// CompileAll resolves every path in order and numbers the resulting tests
// from 1. It stops at the first fatal error.
func (c *Compiler) CompileAll(paths []string) ([]ir.Test, error) {
	var all []ir.Test
	for _, path := range paths {
		tests, err := c.Compile(path)
		if err != nil {
			return nil, err
		}
		for _, t := range tests {
			t.Index = len(all) + 1
			all = append(all, t)
		}
	}
	return all, nil
}

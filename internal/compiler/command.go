package compiler

import (
	"fmt"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/roach88/turnt/internal/ir"
)

// FormatCommand builds the shell command for the test-unit at path.
//
// The template's placeholders are replaced textually:
//
//	{filename}  path relative to configDir, shell-quoted
//	{base}      the filename's stem, shell-quoted
//	{args}      env.ArgsDefault, inserted as-is (may hold several words)
//
// "{{" and "}}" produce literal braces. A missing template is ErrNoCommand.
func FormatCommand(env ir.EnvironmentSpec, configDir, path string) (string, error) {
	if env.Command == nil {
		return "", ErrNoCommand
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve test path: %w", err)
	}
	filename, err := filepath.Rel(configDir, abs)
	if err != nil {
		return "", fmt.Errorf("relative test path: %w", err)
	}

	quotedFilename, err := quote(filename)
	if err != nil {
		return "", err
	}
	quotedBase, err := quote(stem(filepath.Base(filename)))
	if err != nil {
		return "", err
	}

	return substitute(*env.Command, map[string]string{
		"filename": quotedFilename,
		"base":     quotedBase,
		"args":     env.ArgsDefault,
	}), nil
}

// substitute replaces {name} placeholders with vars. Unknown placeholders
// are left alone.
func substitute(template string, vars map[string]string) string {
	pairs := []string{"{{", "{", "}}", "}"}
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// quote makes s safe to use as a single word in a POSIX shell command.
func quote(s string) (string, error) {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		return "", fmt.Errorf("quote %q: %w", s, err)
	}
	return q, nil
}

// stem strips the last extension from name. Leading dots do not start an
// extension, so ".hidden" is its own stem.
func stem(name string) string {
	i := strings.LastIndexByte(name, '.')
	lead := len(name) - len(strings.TrimLeft(name, "."))
	if i < lead {
		return name
	}
	return name[:i]
}

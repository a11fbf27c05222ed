package compiler

import (
	"path/filepath"

	"github.com/roach88/turnt/internal/ir"
)

// ExpectedPath locates the saved artifact for output key of the test-unit
// at path. It depends on its arguments only.
//
// For a file the artifact sits beside it, named after the file's stem:
// dir/prog.t → dir/prog.<key>. For a directory it sits inside, named after
// outBase: dir/case.t → dir/case.t/<outBase>.<key>.
func ExpectedPath(path, key, outBase string, isDir bool) string {
	if isDir {
		return filepath.Join(path, outBase+"."+key)
	}
	return filepath.Join(filepath.Dir(path), stem(filepath.Base(path))+"."+key)
}

// ActualPath resolves a path template for the test-unit at path: {filename}
// and {base} are substituted and the result is resolved against the
// test-unit's directory. The result is always a file path, even when it
// happens to read "stdout".
func ActualPath(target, path string) string {
	filename := filepath.Base(path)
	name := substitute(target, map[string]string{
		"filename": filename,
		"base":     stem(filename),
	})
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(filepath.Dir(path), name)
}

// MapOutputs pairs every output of env with its expected artifact, in
// configuration order. An environment without outputs captures stdout.
//
// Whether a target is a stream is decided here, on the raw target, and
// recorded in OutputFile.Stream.
func MapOutputs(env ir.EnvironmentSpec, path string, isDir bool) []ir.OutputFile {
	outputs := env.EffectiveOutputs()
	files := make([]ir.OutputFile, len(outputs))
	for i, o := range outputs {
		files[i] = ir.OutputFile{Expected: ExpectedPath(path, o.Key, env.OutBase, isDir)}
		if s := ir.CanonicalStream(o.Target); s != "" {
			files[i].Stream = s
		} else {
			files[i].Actual = ActualPath(o.Target, path)
		}
	}
	return files
}

package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/roach88/turnt/internal/ir"
)

// Check judges a finished command. test.Outputs must already point at
// concrete capture files.
//
// A mismatched exit code fails immediately and forwards stderr. Otherwise
// every artifact pair is compared byte for byte; in save mode any difference
// rewrites all expected artifacts of the test. The test passes when nothing
// differs, when it was saved, or when it is marked todo.
func Check(ctx context.Context, test ir.Test, code int, stderr []byte, opts Options) Result {
	res := Result{Test: test, ExitCode: code}

	if code != test.ReturnCode {
		res.ExitMismatch = true
		res.Stderr = stderr
		return res
	}

	var display bytes.Buffer
	for _, o := range test.Outputs {
		if opts.ShowDiff {
			showDiff(ctx, &display, test.DiffCommand, o.Expected, o.Actual)
		}

		actual, err := os.ReadFile(o.Actual)
		if err != nil {
			res.Err = fmt.Errorf("read actual output: %w", err)
			res.Stdout = display.Bytes()
			return res
		}

		expected, err := os.ReadFile(o.Expected)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			res.Missing = append(res.Missing, o.Expected)
		case err != nil:
			res.Err = fmt.Errorf("read expected output: %w", err)
			res.Stdout = display.Bytes()
			return res
		case !bytes.Equal(actual, expected):
			res.Differing = append(res.Differing, o.Expected)
		}
	}
	res.Stdout = display.Bytes()

	if opts.Save && res.Failed() {
		for _, o := range test.Outputs {
			if err := copyFile(o.Actual, o.Expected); err != nil {
				res.Err = fmt.Errorf("save %s: %w", o.Expected, err)
				return res
			}
		}
		res.Updated = test.ExpectedPaths()
	}

	res.Pass = !res.Failed() || res.Saved() || test.Todo
	return res
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// showDiff writes a human-readable diff of expected against actual to w.
// The diff program's exit status is ignored. When the program is not
// installed a line diff is computed in process instead.
func showDiff(ctx context.Context, w io.Writer, diffCommand []string, expected, actual string) {
	if len(diffCommand) == 0 {
		lineDiff(w, expected, actual)
		return
	}

	args := append(diffCommand[1:len(diffCommand):len(diffCommand)], expected, actual)
	cmd := exec.CommandContext(ctx, diffCommand[0], args...)
	cmd.Stdout = w
	cmd.Stderr = w

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil, errors.As(err, &exitErr):
	case errors.Is(err, exec.ErrNotFound):
		slog.Debug("diff program not found, using built-in diff", "program", diffCommand[0])
		lineDiff(w, expected, actual)
	default:
		slog.Warn("diff display failed", "command", diffCommand, "error", err)
	}
}

// lineDiff prints a unified-style line diff. A missing file reads as empty.
func lineDiff(w io.Writer, expected, actual string) {
	a, _ := os.ReadFile(expected)
	b, _ := os.ReadFile(actual)
	if bytes.Equal(a, b) {
		return
	}

	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(string(a), string(b))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	fmt.Fprintf(w, "--- %s\n+++ %s\n", expected, actual)
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			fmt.Fprintf(w, "%s%s\n", prefix, line)
		}
	}
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

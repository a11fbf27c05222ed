package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// DefaultLogLevel keeps stderr quiet unless something needs attention.
const DefaultLogLevel = "warn"

// setupLogging routes slog through a charmbracelet logger on w. The report
// owns stdout, so logs never go there.
func setupLogging(w io.Writer, level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "turnt",
		Level:           lvl,
		ReportTimestamp: false,
	})
	slog.SetDefault(slog.New(logger))
	return nil
}

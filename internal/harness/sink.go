package harness

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/roach88/turnt/internal/ir"
)

// Namer produces unique capture sink names.
type Namer interface {
	Next() string
}

type uuidNamer struct{}

func (uuidNamer) Next() string {
	return uuid.NewString()
}

// sinks holds the two temporary files a command writes its streams to.
type sinks struct {
	stdout *os.File
	stderr *os.File
}

func newSinks(dir string, namer Namer) (*sinks, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	name := namer.Next()

	stdout, err := createSink(filepath.Join(dir, "turnt-"+name+".stdout"))
	if err != nil {
		return nil, err
	}
	stderr, err := createSink(filepath.Join(dir, "turnt-"+name+".stderr"))
	if err != nil {
		stdout.Close()
		os.Remove(stdout.Name())
		return nil, err
	}
	return &sinks{stdout: stdout, stderr: stderr}, nil
}

func createSink(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create capture sink: %w", err)
	}
	return f, nil
}

// paths returns the sink locations for the stream shorthands.
func (s *sinks) paths() map[string]string {
	return map[string]string{
		ir.StreamStdout: s.stdout.Name(),
		ir.StreamStderr: s.stderr.Name(),
	}
}

// close releases the file handles. The files stay on disk.
func (s *sinks) close() error {
	return errors.Join(s.stdout.Close(), s.stderr.Close())
}

// remove closes and deletes both sinks.
func (s *sinks) remove() {
	s.close()
	os.Remove(s.stdout.Name())
	os.Remove(s.stderr.Name())
}

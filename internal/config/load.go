package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Loader finds and parses configuration files. Parsed documents are cached
// by file path, so many test-units sharing one configuration parse it once.
// Safe for concurrent use.
type Loader struct {
	name string

	mu    sync.Mutex
	cache map[string]*Document
}

// NewLoader creates a loader searching for files called name.
func NewLoader(name string) *Loader {
	return &Loader{
		name:  name,
		cache: make(map[string]*Document),
	}
}

// Load returns the configuration governing the test-unit at path.
//
// When no configuration exists on the walk, the result is an empty document
// whose Dir is the test-unit's own (absolute) parent directory. A file that
// exists but cannot be read or parsed is a *Error.
func (l *Loader) Load(path string) (*Document, error) {
	for dir := range Ancestors(path) {
		candidate := filepath.Join(dir, l.name)
		info, err := os.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		return l.parse(candidate, dir)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &Error{Message: "resolve test path", Err: err}
	}
	slog.Debug("no configuration found", "test", path, "name", l.name)
	return &Document{
		Dir:   filepath.Dir(abs),
		Data:  map[string]any{},
		order: map[string][]string{},
	}, nil
}

func (l *Loader) parse(path, dir string) (*Document, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if doc, ok := l.cache[path]; ok {
		return doc, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Message: "read configuration", Err: err}
	}
	data, order, err := decode(path, raw)
	if err != nil {
		return nil, &Error{Path: path, Message: "malformed configuration", Err: err}
	}

	doc := &Document{Path: path, Dir: dir, Data: data, order: order}
	l.cache[path] = doc
	slog.Debug("loaded configuration", "path", path)
	return doc, nil
}

// Load is a convenience wrapper for a one-off lookup without caching.
func Load(path, name string) (*Document, error) {
	return NewLoader(name).Load(path)
}

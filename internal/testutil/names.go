package testutil

import (
	"fmt"
	"sync"
)

// SequentialNames generates predictable, unique capture sink names.
//
// The production namer uses random UUIDs; tests that assert on sink paths
// swap in SequentialNames so the same run produces the same names.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequentialNames struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialNames creates a generator whose first name is prefix-0001.
// If prefix is empty, "sink" is used.
func NewSequentialNames(prefix string) *SequentialNames {
	if prefix == "" {
		prefix = "sink"
	}
	return &SequentialNames{prefix: prefix}
}

// Next returns the next name.
func (g *SequentialNames) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}

// Count returns how many names have been handed out.
func (g *SequentialNames) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

// Reset starts the sequence over.
func (g *SequentialNames) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}

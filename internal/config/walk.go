package config

import (
	"iter"
	"path/filepath"
)

// Ancestors yields the enclosing directories of path, inside out, starting
// with the immediate parent of its absolute form (never path itself). The
// walk ends at the filesystem root or right after yielding a mount point.
//
// The sequence is lazy and restartable: every range re-walks from the
// start.
func Ancestors(path string) iter.Seq[string] {
	return func(yield func(string) bool) {
		p, err := filepath.Abs(path)
		if err != nil {
			return
		}
		for {
			parent := filepath.Dir(p)
			if parent == p {
				return
			}
			p = parent

			if !yield(p) {
				return
			}
			if isMount(p) {
				return
			}
		}
	}
}

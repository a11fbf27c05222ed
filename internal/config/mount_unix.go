//go:build unix

package config

import (
	"os"
	"path/filepath"
	"syscall"
)

// isMount reports whether dir is a mount point: it lives on a different
// device than its parent, or it is its own parent.
func isMount(dir string) bool {
	info, err := os.Lstat(dir)
	if err != nil || info.Mode()&os.ModeSymlink != 0 {
		return false
	}
	parent, err := os.Lstat(filepath.Join(dir, ".."))
	if err != nil {
		return false
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	pst, pok := parent.Sys().(*syscall.Stat_t)
	if !ok || !pok {
		return false
	}
	return st.Dev != pst.Dev || st.Ino == pst.Ino
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(path string) []string {
	var dirs []string
	for d := range Ancestors(path) {
		dirs = append(dirs, d)
	}
	return dirs
}

func TestAncestors_StartsAtParent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "c.t")

	dirs := collect(path)
	require.GreaterOrEqual(t, len(dirs), 3)
	assert.Equal(t, filepath.Join(dir, "a", "b"), dirs[0])
	assert.Equal(t, filepath.Join(dir, "a"), dirs[1])
	assert.Equal(t, dir, dirs[2])
	assert.NotContains(t, dirs, path)
}

func TestAncestors_StrictlyAscending(t *testing.T) {
	dirs := collect(filepath.Join(t.TempDir(), "x", "y.t"))
	for i := 1; i < len(dirs); i++ {
		assert.Equal(t, dirs[i], filepath.Dir(dirs[i-1]))
	}
}

func TestAncestors_RelativePathIsMadeAbsolute(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	dirs := collect(filepath.Join("sub", "t.t"))
	require.NotEmpty(t, dirs)
	// TempDir may sit behind a symlink; compare after resolving the cwd
	// the same way filepath.Abs does.
	wd, err := filepath.Abs(".")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "sub"), dirs[0])
}

func TestAncestors_EndsAtRoot(t *testing.T) {
	dirs := collect("/a/b")
	require.NotEmpty(t, dirs)
	assert.Equal(t, "/a", dirs[0])
	assert.Equal(t, "/", dirs[len(dirs)-1])
}

func TestAncestors_RootHasNoAncestors(t *testing.T) {
	assert.Empty(t, collect("/"))
}

func TestAncestors_Restartable(t *testing.T) {
	seq := Ancestors(filepath.Join(t.TempDir(), "f.t"))

	var first, second []string
	for d := range seq {
		first = append(first, d)
	}
	for d := range seq {
		second = append(second, d)
	}
	assert.Equal(t, first, second)
}

func TestAncestors_StopsEarly(t *testing.T) {
	count := 0
	for range Ancestors(filepath.Join(t.TempDir(), "a", "b", "c")) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestIsMount_Root(t *testing.T) {
	assert.True(t, isMount("/"))
}

func TestAncestors_StopsAtMountPoint(t *testing.T) {
	if !isMount("/proc") {
		t.Skip("/proc is not a mount point here")
	}

	dirs := collect("/proc/turnt-none/a.t")
	assert.Equal(t, []string{"/proc/turnt-none", "/proc"}, dirs)
}

// Package testutil provides filesystem fixtures for path classification
// tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Tree builds a temp directory of files to classify and removes it with
// the test.
type Tree struct {
	t    *testing.T
	root string
}

// NewTree creates an empty fixture tree.
func NewTree(t *testing.T) *Tree {
	t.Helper()
	return &Tree{t: t, root: t.TempDir()}
}

// Root returns the tree root.
func (tr *Tree) Root() string {
	return tr.root
}

// File creates a regular file and returns its path.
func (tr *Tree) File(name string) string {
	tr.t.Helper()
	path := filepath.Join(tr.root, name)
	require.NoError(tr.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(tr.t, os.WriteFile(path, []byte("x\n"), 0o644))
	return path
}

// Exec creates an executable file and returns its path.
func (tr *Tree) Exec(name string) string {
	tr.t.Helper()
	path := tr.File(name)
	require.NoError(tr.t, os.Chmod(path, 0o755))
	return path
}

// Dir creates a directory and returns its path.
func (tr *Tree) Dir(name string) string {
	tr.t.Helper()
	path := filepath.Join(tr.root, name)
	require.NoError(tr.t, os.MkdirAll(path, 0o755))
	return path
}

// Symlink creates a symlink named name pointing at target and returns the
// link path. Skips the test where symlinks need privileges.
func (tr *Tree) Symlink(target, name string) string {
	tr.t.Helper()
	path := filepath.Join(tr.root, name)
	if err := os.Symlink(target, path); err != nil {
		tr.t.Skipf("symlinks unavailable: %v", err)
	}
	return path
}

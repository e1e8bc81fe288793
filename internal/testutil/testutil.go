// Package testutil provides shared test helpers for building markdown trees.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/notegraph/internal/storage"
)

// WriteNote creates root/rel with a short markdown body, creating parent
// directories as needed.
func WriteNote(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("# "+filepath.Base(rel)+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestVault creates a temporary directory named name holding files (paths
// relative to it) and returns it with a storage.Provider.
func TestVault(t *testing.T, name string, files ...string) (string, storage.Provider) {
	t.Helper()
	root := filepath.Join(t.TempDir(), name)
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		WriteNote(t, root, f)
	}
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return root, store
}

// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// MustWriteFiles writes files under root on fs. Keys are slash-separated paths
// relative to root; a key ending in "/" creates an empty directory.
func MustWriteFiles(t testing.TB, fs afero.Fs, root string, files map[string]string) {
	t.Helper()

	if err := fs.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", root, err)
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			if err := fs.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("failed to create %s: %v", path, err)
			}
			continue
		}
		if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create parent of %s: %v", path, err)
		}
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
}

// NewProjectFS returns an in-memory filesystem holding files under root.
func NewProjectFS(t testing.TB, root string, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	MustWriteFiles(t, fs, root, files)
	return fs
}

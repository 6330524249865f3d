// SPDX-License-Identifier: MPL-2.0

package fsprobe

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/afero"
)

func newMemProbe(t *testing.T, files ...string) *AferoProbe {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		f = filepath.FromSlash(f)
		if err := fs.MkdirAll(filepath.Dir(f), 0o755); err != nil {
			t.Fatalf("failed to create parent of %s: %v", f, err)
		}
		if err := afero.WriteFile(fs, f, []byte("module.exports = {};\n"), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", f, err)
		}
	}
	return New(fs)
}

func TestAferoProbe_IsDirIsFile(t *testing.T) {
	t.Parallel()

	p := newMemProbe(t, "/root/src/index.js")

	tests := []struct {
		path       string
		wantIsDir  bool
		wantIsFile bool
	}{
		{"/root", true, false},
		{"/root/src", true, false},
		{"/root/src/index.js", false, true},
		{"/root/missing", false, false},
	}

	for _, tt := range tests {
		path := filepath.FromSlash(tt.path)
		if got := p.IsDir(path); got != tt.wantIsDir {
			t.Errorf("IsDir(%q) = %v, want %v", tt.path, got, tt.wantIsDir)
		}
		if got := p.IsFile(path); got != tt.wantIsFile {
			t.Errorf("IsFile(%q) = %v, want %v", tt.path, got, tt.wantIsFile)
		}
	}
}

func TestAferoProbe_ReadDir(t *testing.T) {
	t.Parallel()

	p := newMemProbe(t, "/root/tests/a.js", "/root/src/index.js", "/root/package.json")

	got := p.ReadDir(filepath.FromSlash("/root"))
	want := []string{"package.json", "src", "tests"}
	if !slices.Equal(got, want) {
		t.Errorf("ReadDir() = %v, want %v", got, want)
	}

	if got := p.ReadDir(filepath.FromSlash("/nope")); got != nil {
		t.Errorf("ReadDir() on missing dir = %v, want nil", got)
	}
}

func TestAferoProbe_Exists(t *testing.T) {
	t.Parallel()

	p := newMemProbe(t, "/root/src/index.js", "/root/tests/helpers.js")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"directory", "/root/src", true},
		{"exact file", "/root/src/index.js", true},
		{"extensionless module", "/root/src/index", true},
		{"partial base name", "/root/tests/help", true},
		{"missing module", "/root/src/unknown", false},
		{"missing parent", "/root/unknown/foo/bar/baz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := p.Exists(filepath.FromSlash(tt.path)); got != tt.want {
				t.Errorf("Exists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestOS_UsesHostFilesystem(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.js"), nil, 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	p := OS()
	if !p.IsDir(dir) {
		t.Errorf("IsDir(%q) = false", dir)
	}
	if !p.Exists(filepath.Join(dir, "index")) {
		t.Errorf("Exists(index) = false, want true through parent listing")
	}
	if p.IsFile(filepath.Join(dir, "missing.js")) {
		t.Error("IsFile(missing.js) = true")
	}
}

// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestFileReader_Read(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/proj")

	tests := []struct {
		name      string
		content   *string
		want      string
		wantFound bool
	}{
		{name: "missing manifest"},
		{name: "name field", content: strPtr(`{"name": "proj", "version": "1.0.0"}`), want: "proj", wantFound: true},
		{name: "scoped name", content: strPtr(`{"name": "@scope/lib"}`), want: "@scope/lib", wantFound: true},
		{name: "no name field", content: strPtr(`{"version": "1.0.0"}`), wantFound: true},
		{name: "non-string name", content: strPtr(`{"name": 42}`), wantFound: true},
		{name: "malformed json", content: strPtr(`{"name": "proj"`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			if err := fs.MkdirAll(root, 0o755); err != nil {
				t.Fatal(err)
			}
			if tt.content != nil {
				if err := afero.WriteFile(fs, filepath.Join(root, FileName), []byte(*tt.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			got := NewFileReader(fs).Read(root)
			if got.Name != tt.want {
				t.Errorf("Name = %q, want %q", got.Name, tt.want)
			}
			if got.Found != tt.wantFound {
				t.Errorf("Found = %v, want %v", got.Found, tt.wantFound)
			}
		})
	}
}

func TestFileReader_ReadDirectoryNamedManifest(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	root := filepath.FromSlash("/proj")
	if err := fs.MkdirAll(filepath.Join(root, FileName), 0o755); err != nil {
		t.Fatal(err)
	}

	if got := NewFileReader(fs).Read(root); got.Found {
		t.Errorf("Read() = %+v, want zero Manifest for a directory", got)
	}
}

func strPtr(s string) *string { return &s }

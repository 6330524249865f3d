// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/nsalias/nsalias/internal/fsprobe"
	"github.com/nsalias/nsalias/internal/issue"
	"github.com/spf13/afero"
)

func memProbe(t *testing.T, dirs []string, files []string) *fsprobe.AferoProbe {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, d := range dirs {
		if err := fs.MkdirAll(filepath.FromSlash(d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		if err := afero.WriteFile(fs, filepath.FromSlash(f), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fsprobe.New(fs)
}

func TestNew(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	ctx, err := New(root, "", fsprobe.OS())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if string(ctx.Root) != root {
		t.Errorf("Root = %q, want %q", ctx.Root, root)
	}
	if ctx.WorkingDir != ctx.Root {
		t.Errorf("WorkingDir = %q, want root when cwd is empty", ctx.WorkingDir)
	}
}

func TestNew_MissingRoot(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing")

	_, err := New(missing, "", fsprobe.OS())
	if !errors.Is(err, ErrProjectRootNotFound) {
		t.Fatalf("New() error = %v, want ErrProjectRootNotFound", err)
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("New() error should be an *issue.ActionableError, got %T", err)
	}
	if len(ae.Suggestions) == 0 {
		t.Error("expected suggestions on the root error")
	}
}

func TestContext_Resolve(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/proj")
	cwd := filepath.FromSlash("/proj/tests")
	ctx, err := New(root, cwd, memProbe(t, []string{"/proj/tests"}, nil))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	tests := []struct {
		name    string
		resolve func(string) string
		in      string
		want    string
	}{
		{"root relative", ctx.Resolve, "src/lib", filepath.FromSlash("/proj/src/lib")},
		{"root dot relative", ctx.Resolve, "./src", filepath.FromSlash("/proj/src")},
		{"root npm", ctx.Resolve, "npm:babel", "npm:babel"},
		{"root absolute", ctx.Resolve, root, root},
		{"cwd relative", ctx.ResolveCwd, "./src/a.js", filepath.FromSlash("/proj/tests/src/a.js")},
		{"cwd parent", ctx.ResolveCwd, "../lib", filepath.FromSlash("/proj/lib")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.resolve(tt.in); got != tt.want {
				t.Errorf("resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindRoot(t *testing.T) {
	t.Parallel()

	probe := memProbe(t,
		[]string{"/work/proj/src/deep", "/work/other/x"},
		[]string{"/work/proj/package.json"},
	)

	tests := []struct {
		start string
		want  string
	}{
		{"/work/proj/src/deep", "/work/proj"},
		{"/work/proj", "/work/proj"},
		{"/work/other/x", "/work/other/x"},
	}

	for _, tt := range tests {
		got, err := FindRoot(filepath.FromSlash(tt.start), probe)
		if err != nil {
			t.Fatalf("FindRoot(%q) error: %v", tt.start, err)
		}
		want, _ := filepath.Abs(filepath.FromSlash(tt.want))
		if got != want {
			t.Errorf("FindRoot(%q) = %q, want %q", tt.start, got, want)
		}
	}
}

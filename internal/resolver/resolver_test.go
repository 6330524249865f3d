// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/nsalias/nsalias/internal/fsprobe"
	"github.com/nsalias/nsalias/internal/nsmap"
	"github.com/nsalias/nsalias/internal/project"
)

func p(s string) string { return filepath.FromSlash(s) }

// newTestProject creates an in-memory project at /root holding files (slash
// separated, relative to the filesystem root).
func newTestProject(t *testing.T, files ...string) *project.Context {
	t.Helper()

	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll(p("/root"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		if err := fs.MkdirAll(filepath.Dir(p(f)), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := afero.WriteFile(fs, p(f), []byte("module.exports = {};\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ctx, err := project.New(p("/root"), p("/root"), fsprobe.New(fs))
	if err != nil {
		t.Fatalf("project.New() error: %v", err)
	}
	return ctx
}

func TestResolve_BuiltMap(t *testing.T) {
	t.Parallel()

	ctx := newTestProject(t, "/root/src/index.js", "/root/src/lib/util.js", "/root/tests/helpers.js")
	res := nsmap.NewBuilder(ctx).Build(nsmap.Options{PackageName: "proj"})
	r := New(ctx, res.Map, "proj")

	tests := []struct {
		specifier string
		importing string
		want      string
		wantOK    bool
	}{
		{"proj/tests/helpers", "/root/src/index", "../tests/helpers", true},
		{"proj/lib/util", "/root/src/index.js", "./lib/util", true},
		{"proj/index", "/root/src/lib/util.js", "../index", true},
		{"~/lib/util", "/root/src/index.js", "./lib/util", true},
		{":lib/util", "/root/src/index.js", "./lib/util", true},
		{"~lib/util", "/root/src/index.js", "./lib/util", true},
		{"  proj/lib/util  ", "/root/src/index.js", "./lib/util", true},
		{"proj/missing", "/root/src/index.js", "", false},
		{"lodash", "/root/src/index.js", "", false},
		{"./lib/util", "/root/src/index.js", "", false},
		{"../tests/helpers", "/root/src/index.js", "", false},
		{"/root/src/lib/util", "/root/src/index.js", "", false},
		{"", "/root/src/index.js", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.specifier, func(t *testing.T) {
			t.Parallel()

			got, ok := r.Resolve(tt.specifier, p(tt.importing))
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.specifier, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolve_SignExpansionEquivalence(t *testing.T) {
	t.Parallel()

	ctx := newTestProject(t, "/root/src/index.js")
	r := New(ctx, nsmap.Map{"proj": nsmap.Single{Path: p("/root/src")}}, "proj")

	var results []Match
	for _, spec := range []string{":", "~", "proj", "~/", ":/"} {
		m, ok := r.Lookup(spec)
		if !ok {
			t.Fatalf("Lookup(%q) did not resolve", spec)
		}
		results = append(results, m)
	}
	for i, m := range results[1:] {
		if m.Path != results[0].Path {
			t.Errorf("result %d path = %q, want %q", i+1, m.Path, results[0].Path)
		}
	}
	if results[0].Path != p("/root/src") {
		t.Errorf("Path = %q, want %q", results[0].Path, p("/root/src"))
	}
}

func TestResolve_SignWithoutPackageName(t *testing.T) {
	t.Parallel()

	ctx := newTestProject(t, "/root/src/index.js")
	r := New(ctx, nsmap.Map{"src": nsmap.Single{Path: p("/root/src")}}, "")

	for _, spec := range []string{"~/src", ":src", "~"} {
		if got, ok := r.Resolve(spec, p("/root/index.js")); ok {
			t.Errorf("Resolve(%q) = %q, want unresolved", spec, got)
		}
	}
	if got, ok := r.Resolve("src/index", p("/root/index.js")); !ok || got != "./src/index" {
		t.Errorf("Resolve(src/index) = (%q, %v)", got, ok)
	}
}

func TestLookup_LongestPrefix(t *testing.T) {
	t.Parallel()

	ctx := newTestProject(t)
	r := New(ctx, nsmap.Map{
		"a":   nsmap.Single{Path: p("/x")},
		"a/b": nsmap.Single{Path: p("/y")},
	}, "")

	m, ok := r.Lookup("a/b/c")
	if !ok {
		t.Fatal("Lookup(a/b/c) did not resolve")
	}
	if m.Namespace != "a/b" || m.Path != p("/y/c") {
		t.Errorf("Lookup(a/b/c) = %+v, want namespace a/b and path /y/c", m)
	}

	m, ok = r.Lookup("a/c")
	if !ok || m.Namespace != "a" || m.Path != p("/x/c") {
		t.Errorf("Lookup(a/c) = (%+v, %v)", m, ok)
	}
}

func TestResolve_NPMTarget(t *testing.T) {
	t.Parallel()

	ctx := newTestProject(t)
	r := New(ctx, nsmap.Map{"npmAlias": nsmap.Single{Path: "npm:babel"}}, "proj")

	for _, importing := range []string{"/root/src/index.js", "/root/a/b/c/d.js", "unknown", ""} {
		got, ok := r.Resolve("npmAlias", p(importing))
		if !ok || got != "babel" {
			t.Errorf("Resolve(npmAlias) from %q = (%q, %v), want (babel, true)", importing, got, ok)
		}
	}

	if got, ok := r.Resolve("npmAlias/core", p("/root/index.js")); !ok || got != "babel/core" {
		t.Errorf("Resolve(npmAlias/core) = (%q, %v), want (babel/core, true)", got, ok)
	}
}

func TestResolve_Candidates(t *testing.T) {
	t.Parallel()

	ctx := newTestProject(t, "/b/b.js", "/root/index.js")
	r := New(ctx, nsmap.Map{
		"pkg": nsmap.Candidates{Paths: []string{p("/a"), p("/b")}},
	}, "pkg")

	m, ok := r.Lookup("pkg/b")
	if !ok {
		t.Fatal("Lookup(pkg/b) did not resolve")
	}
	if m.Path != p("/b/b") {
		t.Errorf("Path = %q, want %q", m.Path, p("/b/b"))
	}

	if _, ok := r.Lookup("pkg/nothing"); ok {
		t.Error("Lookup(pkg/nothing) should not resolve when no candidate holds the module")
	}
}

func TestResolve_FirstCandidateWins(t *testing.T) {
	t.Parallel()

	ctx := newTestProject(t, "/root/src/shared.js", "/root/lib/shared.js")
	r := New(ctx, nsmap.Map{
		"proj": nsmap.Candidates{Paths: []string{p("/root/src"), p("/root/lib")}},
	}, "proj")

	got, ok := r.Resolve("proj/shared", p("/root/index.js"))
	if !ok || got != "./src/shared" {
		t.Errorf("Resolve(proj/shared) = (%q, %v), want (./src/shared, true)", got, ok)
	}
}

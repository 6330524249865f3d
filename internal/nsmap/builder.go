// SPDX-License-Identifier: MPL-2.0

package nsmap

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/nsalias/nsalias/internal/project"
	"github.com/nsalias/nsalias/pkg/types"
)

var (
	// DefaultSources is used when Options.Sources is nil.
	DefaultSources = []string{"src"}

	// DefaultExcludes is always added to the caller's excludes.
	DefaultExcludes = []string{"node_modules"}
)

type (
	// Binding is one explicit namespace from configuration, in declaration order.
	Binding struct {
		Name  string
		Paths []string
		// List marks a value that was written as a list.
		List bool
	}

	// Options are the inputs of a map build. Sources, Includes and Excludes
	// hold raw entries; each entry may carry several comma, whitespace or
	// path-list separated names.
	Options struct {
		PackageName string
		// Sources nil means DefaultSources; an empty non-nil slice means none.
		Sources     []string
		Includes    []string
		Excludes    []string
		Namespaces  []Binding
		DisableSync bool
	}

	// Builder builds namespace maps for one project. It holds no state between
	// builds; every Build re-reads the filesystem.
	Builder struct {
		project *project.Context
		logger  *slog.Logger
	}

	// Option configures a Builder.
	Option func(*Builder)

	buildState struct {
		opts     Options
		excludes []string
		includes []string
		sources  []string
		claimed  []string
		entries  map[string]Target
		order    []string
		diags    []Diagnostic
	}
)

// WithLogger sets the logger used for debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder creates a Builder for the given project.
func NewBuilder(p *project.Context, opts ...Option) *Builder {
	b := &Builder{project: p, logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build computes the namespace map for opts.
func (b *Builder) Build(opts Options) Result {
	b.logger.Debug("start to create a namespace map", "root", b.project.Root)

	st := &buildState{opts: opts, entries: make(map[string]Target)}

	sources := opts.Sources
	if sources == nil {
		sources = DefaultSources
	}

	st.excludes = dedupe(Tokenize(append(slices.Clone(opts.Excludes), DefaultExcludes...)...))
	st.includes = dedupe(slices.DeleteFunc(Tokenize(opts.Includes...), st.isExcluded))
	st.sources = dedupe(slices.DeleteFunc(Tokenize(sources...), func(name string) bool {
		return st.isExcluded(name) || slices.Contains(st.includes, name)
	}))

	b.registerNamespaces(st)

	if len(st.includes) == 0 && !opts.DisableSync {
		st.includes = b.discoverIncludes(st)
	}

	pkg := strings.TrimSpace(opts.PackageName)
	if pkg == "" {
		if len(st.includes) > 0 || len(st.sources) > 0 {
			st.diags = append(st.diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodePackageNameMissing,
				Message:  "no package name available; include and source directories are not registered",
			})
		}
	} else {
		b.registerIncludes(st, types.NamespaceName(pkg))
		if len(st.sources) > 0 {
			st.register(pkg, Candidates{Paths: st.sources})
		}
	}

	m := b.absolutize(st)
	b.logger.Debug("the namespace map has been created", "namespaces", len(m))

	return Result{Map: m, Diagnostics: st.diags}
}

func (b *Builder) registerNamespaces(st *buildState) {
	for _, binding := range st.opts.Namespaces {
		if strings.TrimSpace(binding.Name) == "" || len(binding.Paths) == 0 || binding.Paths[0] == "" {
			continue
		}

		if binding.List {
			st.diags = append(st.diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeNamespaceListRejected,
				Message:  "a namespace must be a string",
				Path:     binding.Name,
			})
			continue
		}

		name := types.NamespaceName(binding.Name)
		if err := name.Validate(); err != nil {
			st.diags = append(st.diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeNamespaceNameInvalid,
				Message:  err.Error(),
				Path:     binding.Name,
				Cause:    err,
			})
			continue
		}

		target := binding.Paths[0]
		if i := slices.Index(st.sources, target); i >= 0 {
			st.sources = slices.Delete(st.sources, i, i+1)
		}

		if _, exists := st.entries[binding.Name]; !exists {
			st.order = append(st.order, binding.Name)
		}
		st.entries[binding.Name] = Single{Path: target}
		st.claimed = append(st.claimed, target)
	}
}

// discoverIncludes lists the immediate subdirectories of the project root that
// are neither hidden, sources, nor claimed by an explicit namespace.
func (b *Builder) discoverIncludes(st *buildState) []string {
	root := string(b.project.Root)
	b.logger.Debug("no include paths given, mapping the project root", "root", root)

	if !b.project.FS.IsDir(root) {
		b.logger.Debug("cannot list the project root", "root", root)
		st.diags = append(st.diags, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeRootScanFailed,
			Message:  "the project root could not be listed; no include directories were discovered",
			Path:     root,
		})
		return nil
	}

	var found []string
	for _, name := range b.project.FS.ReadDir(root) {
		switch {
		case strings.HasPrefix(name, "."):
		case slices.Contains(st.sources, name):
		case slices.Contains(st.claimed, name):
		case !b.project.FS.IsDir(b.project.Resolve(name)):
		default:
			found = append(found, name)
		}
	}
	return found
}

func (b *Builder) registerIncludes(st *buildState, pkg types.NamespaceName) {
	for _, dir := range st.includes {
		if st.isExcluded(dir) || slices.Contains(st.claimed, dir) {
			b.logger.Debug("directory is not in the allow list", "dir", dir)
			continue
		}
		st.register(pkg.Child(dir).String(), Single{Path: dir})
	}
}

func (st *buildState) register(name string, t Target) {
	if _, exists := st.entries[name]; exists {
		st.diags = append(st.diags, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeNamespaceShadowed,
			Message:  fmt.Sprintf("namespace %q is already bound; the automatic entry is ignored", name),
			Path:     name,
		})
		return
	}
	st.order = append(st.order, name)
	st.entries[name] = t
}

// isExcluded matches plain excludes exactly and glob excludes with doublestar.
func (st *buildState) isExcluded(name string) bool {
	for _, pattern := range st.excludes {
		if pattern == name {
			return true
		}
		if strings.ContainsAny(pattern, "*?[{") {
			if ok, err := doublestar.Match(pattern, name); err == nil && ok {
				return true
			}
		}
	}
	return false
}

func (b *Builder) absolutize(st *buildState) Map {
	m := make(Map, len(st.entries))
	for _, name := range st.order {
		switch t := st.entries[name].(type) {
		case Single:
			m[name] = Single{Path: b.project.Resolve(t.Path)}
		case Candidates:
			paths := make([]string, len(t.Paths))
			for i, p := range t.Paths {
				paths[i] = b.project.Resolve(p)
			}
			m[name] = Candidates{Paths: paths}
		}
	}
	return m
}

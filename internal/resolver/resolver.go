// SPDX-License-Identifier: MPL-2.0

// Package resolver maps import specifiers onto the namespace map and returns
// the path the importing file should use instead.
//
// Matching is by longest "/"-separated prefix. A leading ":" or "~" stands for
// the package name, so "~/index", ":index" and "<pkg>/index" are equivalent.
// Relative ("./x", "../x") and absolute specifiers are never rewritten.
package resolver

import (
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/nsalias/nsalias/internal/nsmap"
	"github.com/nsalias/nsalias/internal/project"
	"github.com/nsalias/nsalias/internal/relpath"
	"github.com/nsalias/nsalias/pkg/types"
)

type (
	// Match describes how a specifier was mapped.
	Match struct {
		// Specifier is the normalized, sign-expanded specifier.
		Specifier string
		// Namespace is the longest namespace prefix that matched.
		Namespace string
		// Target is what Namespace is bound to.
		Target nsmap.Target
		// Path is the substituted path: absolute, or "npm:<name>".
		Path string
	}

	// Resolver resolves specifiers against one namespace map. It is immutable
	// and safe for concurrent use.
	Resolver struct {
		project     *project.Context
		namespaces  nsmap.Map
		packageName string
		converter   *relpath.Converter
		logger      *slog.Logger
	}

	// Option configures a Resolver.
	Option func(*Resolver)
)

// WithLogger sets the logger used for debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Resolver. packageName is what ":" and "~" expand to; when it
// is empty sign-expanded specifiers never resolve.
func New(p *project.Context, m nsmap.Map, packageName string, opts ...Option) *Resolver {
	r := &Resolver{
		project:     p,
		namespaces:  m,
		packageName: strings.TrimSpace(packageName),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.converter = relpath.New(p, relpath.WithLogger(r.logger))
	return r
}

// Resolve returns the rewritten specifier for importingFile, or false when the
// specifier is not mapped.
func (r *Resolver) Resolve(specifier, importingFile string) (string, bool) {
	m, ok := r.Lookup(specifier)
	if !ok {
		return "", false
	}
	return r.converter.Convert(importingFile, m.Path), true
}

// Lookup finds the namespace specifier maps to and the substituted path.
func (r *Resolver) Lookup(specifier string) (Match, bool) {
	spec, ok := r.normalize(specifier)
	if !ok {
		return Match{}, false
	}

	r.logger.Debug("start to map a module alias", "specifier", spec)

	namespace, target, ok := r.longestPrefix(spec)
	if !ok {
		r.logger.Debug("module alias not found", "specifier", spec)
		return Match{}, false
	}
	rest := spec[len(namespace):]

	var resolved string
	switch t := target.(type) {
	case nsmap.Single:
		resolved = substitute(t.Path, rest)
	case nsmap.Candidates:
		resolved, ok = r.firstCandidate(t, rest)
		if !ok {
			r.logger.Debug("module not found in any candidate", "specifier", spec, "candidates", t.Paths)
			return Match{}, false
		}
	default:
		return Match{}, false
	}

	r.logger.Debug("module alias", "specifier", spec, "path", resolved)
	return Match{Specifier: spec, Namespace: namespace, Target: target, Path: resolved}, true
}

// normalize trims the specifier, switches it to forward slashes, rejects
// relative and absolute paths and expands a leading sign.
func (r *Resolver) normalize(specifier string) (string, bool) {
	spec := filepath.ToSlash(strings.TrimSpace(specifier))
	switch {
	case spec == "":
		return "", false
	case strings.HasPrefix(spec, "/"), strings.HasPrefix(spec, "."), filepath.IsAbs(spec):
		return "", false
	}

	if spec[0] == ':' || spec[0] == '~' {
		if r.packageName == "" {
			r.logger.Debug("no package name to expand the sign", "specifier", spec)
			return "", false
		}
		spec = path.Join(r.packageName, spec[1:])
	}
	return spec, true
}

func (r *Resolver) longestPrefix(spec string) (string, nsmap.Target, bool) {
	segments := strings.Split(spec, "/")
	for n := len(segments); n > 0; n-- {
		prefix := strings.Join(segments[:n], "/")
		if t, ok := r.namespaces.Get(prefix); ok {
			return prefix, t, true
		}
	}
	return "", nil, false
}

// firstCandidate returns the substituted path for the first candidate whose
// directory and substituted path both exist.
func (r *Resolver) firstCandidate(t nsmap.Candidates, rest string) (string, bool) {
	for _, candidate := range t.Paths {
		resolved := substitute(candidate, rest)
		if types.IsNPMTarget(candidate) {
			return resolved, true
		}
		if r.project.FS.Exists(candidate) && r.project.FS.Exists(resolved) {
			return resolved, true
		}
	}
	return "", false
}

// substitute replaces the matched namespace with target. rest is empty or
// starts with "/".
func substitute(target, rest string) string {
	if rest == "" {
		return target
	}
	if types.IsNPMTarget(target) {
		return target + rest
	}
	return filepath.Join(target, filepath.FromSlash(rest))
}

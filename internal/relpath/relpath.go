// SPDX-License-Identifier: MPL-2.0

// Package relpath turns a resolved module path into the relative specifier an
// importing file can use.
package relpath

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/nsalias/nsalias/internal/project"
	"github.com/nsalias/nsalias/pkg/fspath"
	"github.com/nsalias/nsalias/pkg/types"
)

// UnknownFile is the placeholder compilers pass for sources that cannot be
// traced to a file.
const UnknownFile = "unknown"

type (
	// Converter converts resolved paths for one project.
	Converter struct {
		project *project.Context
		logger  *slog.Logger
	}

	// Option configures a Converter.
	Option func(*Converter)
)

// WithLogger sets the logger used for debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Converter for p.
func New(p *project.Context, opts ...Option) *Converter {
	c := &Converter{project: p, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert is shorthand for New(p).Convert(importingFile, resolved).
func Convert(p *project.Context, importingFile, resolved string) string {
	return New(p).Convert(importingFile, resolved)
}

// Convert returns resolved relative to the directory of importingFile, with
// forward slashes and a "./" prefix unless the result climbs with "..".
//
// "npm:<name>" targets come back as "<name>". importingFile is resolved
// against the working directory and resolved against the project root. An
// empty or UnknownFile importing file relativizes against the working
// directory.
func (c *Converter) Convert(importingFile, resolved string) string {
	if types.IsNPMTarget(resolved) {
		name := strings.TrimPrefix(resolved, types.NPMPrefix)
		c.logger.Debug("module is an installed package", "package", name)
		return name
	}

	var dir types.FilesystemPath
	if importingFile == "" || importingFile == UnknownFile {
		c.logger.Debug("missing source path, using the working directory", "cwd", c.project.WorkingDir)
		dir = c.project.WorkingDir
	} else {
		dir = types.FilesystemPath(c.project.ResolveCwd(filepath.Dir(filepath.FromSlash(importingFile))))
	}

	target := types.FilesystemPath(c.project.Resolve(filepath.Clean(filepath.FromSlash(resolved))))

	rel, err := fspath.Rel(dir, target)
	if err != nil {
		c.logger.Debug("no relative path, keeping the absolute one", "from", dir, "to", target, "error", err)
		return fspath.ToSlash(target)
	}

	out := fspath.ToSlash(rel)
	switch {
	case out == ".." || strings.HasPrefix(out, "../"):
	case out == ".":
		out = "./"
	default:
		out = "./" + out
	}

	c.logger.Debug("relative path computed", "from", dir, "to", target, "relative", out)
	return out
}

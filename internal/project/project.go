// SPDX-License-Identifier: MPL-2.0

// Package project holds the per-invocation project context: the project root
// that namespace targets are resolved against, the working directory that
// importing files are resolved against, and the filesystem probe.
package project

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/nsalias/nsalias/internal/fsprobe"
	"github.com/nsalias/nsalias/internal/issue"
	"github.com/nsalias/nsalias/pkg/types"
)

// ErrProjectRootNotFound is returned when the project root is not an existing directory.
var ErrProjectRootNotFound = errors.New("project root not found")

// markerFiles identify a project root when walking upwards.
var markerFiles = []string{"package.json", "nsalias.cue", "nsalias.toml"}

// Context is immutable once created and safe to share between goroutines.
type Context struct {
	// Root is the absolute project root.
	Root types.FilesystemPath
	// WorkingDir is the absolute working directory.
	WorkingDir types.FilesystemPath
	// FS answers existence questions.
	FS fsprobe.Probe
}

// New validates root and returns a Context. Relative root and cwd are made
// absolute against the process working directory.
func New(root, cwd string, probe fsprobe.Probe) (*Context, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, rootError(root, err)
	}
	if !probe.IsDir(absRoot) {
		return nil, rootError(absRoot, fmt.Errorf("%w: %s", ErrProjectRootNotFound, absRoot))
	}

	if cwd == "" {
		cwd = absRoot
	}
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, fmt.Errorf("resolving working directory %q: %w", cwd, err)
	}

	return &Context{
		Root:       types.FilesystemPath(absRoot),
		WorkingDir: types.FilesystemPath(absCwd),
		FS:         probe,
	}, nil
}

// Resolve joins name onto the project root. Absolute and "npm:" names are
// returned unchanged.
func (c *Context) Resolve(name string) string {
	return resolveAgainst(string(c.Root), name)
}

// ResolveCwd joins name onto the working directory. Absolute and "npm:" names
// are returned unchanged.
func (c *Context) ResolveCwd(name string) string {
	return resolveAgainst(string(c.WorkingDir), name)
}

// FindRoot walks upward from start to the first directory holding a project
// marker file. It returns the cleaned absolute start when none is found.
func FindRoot(start string, probe fsprobe.Probe) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", start, err)
	}

	for dir := abs; ; {
		for _, marker := range markerFiles {
			if probe.IsFile(filepath.Join(dir, marker)) {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}

func resolveAgainst(base, name string) string {
	if types.IsNPMTarget(name) || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(base, filepath.FromSlash(name))
}

func rootError(root string, cause error) error {
	return issue.NewErrorContext().
		WithOperation("open project root").
		WithResource(root).
		WithSuggestion("Run nsalias from inside the project").
		WithSuggestion("Pass an existing directory with --root").
		Wrap(cause).
		BuildError()
}

// SPDX-License-Identifier: MPL-2.0

// Package fsprobe provides the read-only filesystem checks the namespace
// pipeline needs: directory and file tests, directory listing and the loose
// existence check used to pick between candidate source directories.
//
// Every operation is fallible underneath but never surfaces an error: a failed
// stat is "does not exist", a failed listing is "empty".
package fsprobe

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

type (
	// Probe answers existence questions about a filesystem snapshot taken at
	// call time. Implementations must not cache results between calls.
	Probe interface {
		// IsDir reports whether path exists and is a directory.
		IsDir(path string) bool
		// IsFile reports whether path exists and is a regular file.
		IsFile(path string) bool
		// ReadDir returns the entry names of path in lexical order, or nil.
		ReadDir(path string) []string
		// Exists reports whether path exists as a file or directory, or whether
		// its parent directory contains an entry whose name contains the base name
		// of path (so "src/index" matches "src/index.js").
		Exists(path string) bool
	}

	// AferoProbe implements Probe on top of an afero filesystem.
	AferoProbe struct {
		fs afero.Fs
	}
)

// New creates a Probe backed by fs.
func New(fs afero.Fs) *AferoProbe {
	return &AferoProbe{fs: fs}
}

// OS creates a Probe backed by the host filesystem.
func OS() *AferoProbe {
	return New(afero.NewOsFs())
}

// Fs returns the underlying afero filesystem.
func (p *AferoProbe) Fs() afero.Fs {
	return p.fs
}

// IsDir implements Probe.
func (p *AferoProbe) IsDir(path string) bool {
	ok, err := afero.IsDir(p.fs, path)
	return err == nil && ok
}

// IsFile implements Probe.
func (p *AferoProbe) IsFile(path string) bool {
	info, err := p.fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ReadDir implements Probe.
func (p *AferoProbe) ReadDir(path string) []string {
	entries, err := afero.ReadDir(p.fs, path)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

// Exists implements Probe.
func (p *AferoProbe) Exists(path string) bool {
	if info, err := p.fs.Stat(path); err == nil {
		return info.Mode().IsRegular() || info.IsDir()
	}

	base := filepath.Base(path)
	for _, name := range p.ReadDir(filepath.Dir(path)) {
		if strings.Contains(name, base) {
			return true
		}
	}
	return false
}

// SPDX-License-Identifier: MPL-2.0

// Package manifest reads the package manifest (package.json) of a project.
//
// Only the package name is needed: it prefixes every auto-registered namespace
// and is what the "~" and ":" shorthands expand to.
package manifest

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// FileName is the manifest file looked up in the project root.
const FileName = "package.json"

// maxManifestSize bounds how much of a manifest is read.
const maxManifestSize = 4 * 1024 * 1024

type (
	// Manifest is what the resolver needs from a package manifest.
	// The zero value means no usable manifest was found.
	Manifest struct {
		// Name is the "name" field, empty when absent.
		Name string
		// Path is the manifest file that was read.
		Path string
		// Found reports whether the manifest file existed and parsed.
		Found bool
	}

	// Reader loads the manifest of the project rooted at root.
	Reader interface {
		Read(root string) Manifest
	}

	// FileReader reads package.json from an afero filesystem.
	FileReader struct {
		fs     afero.Fs
		logger *slog.Logger
	}

	// Option configures a FileReader.
	Option func(*FileReader)
)

// WithLogger sets the logger used for debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(r *FileReader) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewFileReader creates a FileReader over fs.
func NewFileReader(fs afero.Fs, opts ...Option) *FileReader {
	r := &FileReader{fs: fs, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read implements Reader. A missing, oversized or malformed manifest yields the
// zero Manifest.
func (r *FileReader) Read(root string) Manifest {
	path := filepath.Join(root, FileName)

	info, err := r.fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		r.logger.Debug("no package manifest", "path", path)
		return Manifest{}
	}
	if info.Size() > maxManifestSize {
		r.logger.Debug("package manifest too large", "path", path, "size", info.Size())
		return Manifest{}
	}

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		r.logger.Debug("cannot read package manifest", "path", path, "error", err)
		return Manifest{}
	}
	if !gjson.ValidBytes(data) {
		r.logger.Debug("package manifest is not valid JSON", "path", path)
		return Manifest{}
	}

	m := Manifest{Path: path, Found: true}
	if name := gjson.GetBytes(data, "name"); name.Type == gjson.String {
		m.Name = name.String()
	}
	return m
}

// SPDX-License-Identifier: MPL-2.0

package nsmap

import (
	"maps"
	"slices"
)

type (
	// Target is what a namespace maps to: either a Single path or a list of
	// Candidates tried in order.
	Target interface {
		isTarget()
	}

	// Single is a namespace bound to exactly one path.
	Single struct {
		Path string
	}

	// Candidates is a namespace bound to several directories; the first one
	// that contains the requested module wins.
	Candidates struct {
		Paths []string
	}

	// Map is the namespace table keyed by exact namespace name.
	Map map[string]Target
)

func (Single) isTarget()     {}
func (Candidates) isTarget() {}

// Paths returns the paths of t in order.
func Paths(t Target) []string {
	switch t := t.(type) {
	case Single:
		return []string{t.Path}
	case Candidates:
		return slices.Clone(t.Paths)
	default:
		return nil
	}
}

// Get returns the target registered under name.
func (m Map) Get(name string) (Target, bool) {
	t, ok := m[name]
	return t, ok
}

// Names returns the namespace names in lexical order.
func (m Map) Names() []string {
	return slices.Sorted(maps.Keys(m))
}

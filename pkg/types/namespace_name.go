// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// NPMPrefix marks a namespace target that names an installed package instead of a
// directory. Targets carrying it are never made absolute or relative.
const NPMPrefix = "npm:"

// ErrInvalidNamespaceName is the sentinel error wrapped by InvalidNamespaceNameError.
var ErrInvalidNamespaceName = errors.New("invalid namespace name")

type (
	// NamespaceName is the logical name standing in for one or more physical source
	// directories (e.g. "proj", "proj/tests", "aliasPath"). Names may contain slashes.
	//
	// A name starting with "." or "/" can never be matched because such specifiers are
	// treated as relative or absolute paths, so those are rejected too.
	NamespaceName string

	// InvalidNamespaceNameError is returned when a NamespaceName is empty,
	// whitespace-only, or starts with a path marker.
	InvalidNamespaceNameError struct {
		Value  NamespaceName
		Reason string
	}
)

// String returns the string representation of the NamespaceName.
func (n NamespaceName) String() string { return string(n) }

// Validate returns nil if the name can be matched by the resolver.
func (n NamespaceName) Validate() error {
	s := string(n)
	switch {
	case strings.TrimSpace(s) == "":
		return &InvalidNamespaceNameError{Value: n, Reason: "must be non-empty"}
	case strings.HasPrefix(s, "."):
		return &InvalidNamespaceNameError{Value: n, Reason: "must not start with '.'"}
	case strings.HasPrefix(s, "/"):
		return &InvalidNamespaceNameError{Value: n, Reason: "must not start with '/'"}
	}
	return nil
}

// Child returns the sub-namespace "<n>/<segment>".
func (n NamespaceName) Child(segment string) NamespaceName {
	return NamespaceName(string(n) + "/" + segment)
}

// Error implements the error interface for InvalidNamespaceNameError.
func (e *InvalidNamespaceNameError) Error() string {
	return fmt.Sprintf("invalid namespace name %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidNamespaceName for errors.Is() compatibility.
func (e *InvalidNamespaceNameError) Unwrap() error { return ErrInvalidNamespaceName }

// IsNPMTarget reports whether target names an installed package ("npm:<name>").
func IsNPMTarget(target string) bool {
	return strings.HasPrefix(target, NPMPrefix)
}

// SPDX-License-Identifier: MPL-2.0

// Package types defines cross-cutting value types shared by the nsalias packages
// (namespace maps, the resolver, configuration and the CLI). These are foundation
// types that carry semantic meaning and validation but have no domain-specific
// dependencies.
//
// This package is a leaf dependency: it imports only the standard library.
package types

// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates configuration data against an embedded CUE schema.
//
// Both entry points follow the same flow: compile the schema, unify the user
// data with a schema definition, validate, then decode into a Go value.
// ParseAndDecode starts from CUE source; DecodeValue starts from data already
// decoded by another format (TOML) so every format shares one schema.
//
//	//go:embed nsalias_schema.cue
//	var schema []byte
//
//	res, err := cueutil.ParseAndDecode[map[string]any](
//	    schema, data, "#Config",
//	    cueutil.WithFilename("nsalias.cue"),
//	)
package cueutil

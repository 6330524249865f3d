// SPDX-License-Identifier: MPL-2.0

// Package config handles project configuration using Viper with CUE (or TOML)
// as the file format.
//
// Configuration is read from nsalias.cue, or nsalias.toml, in the project root,
// or from an explicit file. Both formats are validated against the embedded
// CUE schema (nsalias_schema.cue) before being merged into Viper, which adds
// NSALIAS_* environment overrides.
package config

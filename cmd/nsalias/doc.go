// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for nsalias.
//
// Every command is built by a newXCommand(app, flags) constructor. App is the
// composition root holding the configuration provider, the manifest reader,
// the filesystem and the output streams; commands never reach for globals.
package cmd

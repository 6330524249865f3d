// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers that lay out project fixtures for tests and
// fail the test immediately when the fixture cannot be written.
package testutil

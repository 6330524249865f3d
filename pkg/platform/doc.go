// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes operating-system names used when path handling
// differs between hosts (volume names, separators, case of drive letters).
package platform

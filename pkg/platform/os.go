// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// IsWindows reports whether the current process runs on Windows, where absolute
// paths carry a volume name and filepath.Rel can fail across drives.
func IsWindows() bool {
	return runtime.GOOS == Windows
}

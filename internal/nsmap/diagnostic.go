// SPDX-License-Identifier: MPL-2.0

package nsmap

const (
	// SeverityWarning indicates input that was ignored.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a problem that left the map incomplete.
	SeverityError Severity = "error"

	// CodeNamespaceListRejected is reported for a list-valued explicit namespace.
	CodeNamespaceListRejected = "namespace_list_rejected"
	// CodeNamespaceNameInvalid is reported for a namespace name the resolver can never match.
	CodeNamespaceNameInvalid = "namespace_name_invalid"
	// CodeNamespaceShadowed is reported when an automatic entry collides with an existing key.
	CodeNamespaceShadowed = "namespace_shadowed"
	// CodePackageNameMissing is reported when automatic entries are skipped for lack of a package name.
	CodePackageNameMissing = "package_name_missing"
	// CodeRootScanFailed is reported when the project root cannot be listed.
	CodeRootScanFailed = "root_scan_failed"
)

type (
	// Severity represents diagnostic severity.
	Severity string

	// Diagnostic is a structured build diagnostic returned to callers instead
	// of being written to an output stream.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is a machine-readable identifier (e.g., "namespace_list_rejected").
		Code string
		// Message is the human-readable description.
		Message string
		// Path is the namespace or directory concerned (optional).
		Path string
		// Cause is the underlying error (optional).
		Cause error
	}

	// Result bundles a built Map with the diagnostics produced while building it.
	Result struct {
		Map         Map
		Diagnostics []Diagnostic
	}
)

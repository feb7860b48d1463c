// SPDX-License-Identifier: MPL-2.0

package composer

const (
	// SeverityWarning indicates a recoverable composition warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal composition error diagnostic.
	SeverityError Severity = "error"
)

const (
	// CodeStaleModule marks an enabled module that no longer exists in the
	// registry of this build.
	CodeStaleModule = "stale_module_reference"
	// CodeNoProvider marks an enabled module that is in the catalog but has
	// no command provider in this build.
	CodeNoProvider = "module_not_implemented"
)

type (
	// Severity represents composition diagnostic severity.
	Severity string

	// Diagnostic represents a structured composition diagnostic that is
	// returned to callers (rather than written to stderr) for consistent
	// rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is a machine-readable identifier (e.g., "stale_module_reference").
		Code string
		// Message is the human-readable description.
		Message string
		// Module is the module name associated with this diagnostic (optional).
		Module string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}
)

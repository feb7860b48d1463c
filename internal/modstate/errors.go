// SPDX-License-Identifier: MPL-2.0

package modstate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCorrupt is the sentinel error for an unreadable or unmigratable
	// modules document. Callers must never react to it by deleting the file:
	// recovery requires explicit user action, since silent deletion would
	// destroy user customization.
	ErrCorrupt = errors.New("modules config corrupt")
	// ErrInvalidDocument is the sentinel error wrapped by InvalidDocumentError.
	ErrInvalidDocument = errors.New("invalid modules document")
)

type (
	// CorruptError is returned when the persisted document cannot be parsed
	// at all, or parses into a format no migration understands. It wraps
	// ErrCorrupt for errors.Is() compatibility and carries the offending path
	// so the user knows what to inspect.
	CorruptError struct {
		Path  string
		Cause error
	}

	// UnsupportedSchemaError is returned when the document declares a schema
	// version this binary cannot migrate. It wraps ErrCorrupt: an
	// unmigratable document is corrupt from this binary's point of view.
	UnsupportedSchemaError struct {
		Path    string
		Version string
	}

	// InvalidDocumentError is returned by Save when EnabledModules references
	// names with no ModuleStates entry. It wraps ErrInvalidDocument.
	InvalidDocumentError struct {
		MissingStates []string
	}
)

// Error implements the error interface for CorruptError.
func (e *CorruptError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("modules config at %s is corrupt: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("modules config at %s is corrupt", e.Path)
}

// Unwrap returns ErrCorrupt for errors.Is() compatibility.
func (e *CorruptError) Unwrap() error { return ErrCorrupt }

// Error implements the error interface for UnsupportedSchemaError.
func (e *UnsupportedSchemaError) Error() string {
	return fmt.Sprintf("modules config at %s has unsupported schema version %q", e.Path, e.Version)
}

// Unwrap returns ErrCorrupt for errors.Is() compatibility.
func (e *UnsupportedSchemaError) Unwrap() error { return ErrCorrupt }

// Error implements the error interface for InvalidDocumentError.
func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("enabled modules missing state entries: %s", strings.Join(e.MissingStates, ", "))
}

// Unwrap returns ErrInvalidDocument for errors.Is() compatibility.
func (e *InvalidDocumentError) Unwrap() error { return ErrInvalidDocument }

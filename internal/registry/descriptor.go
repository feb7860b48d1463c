// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidModuleName is the sentinel error wrapped by InvalidModuleNameError.
	ErrInvalidModuleName = errors.New("invalid module name")
)

type (
	// ModuleName is the stable identifier of a module (e.g., "ssh_manager").
	// It is the key under which a module's state is persisted and is never
	// renamed across versions.
	ModuleName string

	// InvalidModuleNameError is returned when a ModuleName value is empty or
	// whitespace-only. It wraps ErrInvalidModuleName for errors.Is() compatibility.
	InvalidModuleNameError struct {
		Value ModuleName
	}

	// ModuleDescriptor is the immutable, compiled-in metadata for one module:
	// its stable name, a human-readable summary, the top-level command names it
	// owns, and the external binaries it depends on.
	//
	// Command sets of distinct descriptors are disjoint by design, but the
	// composer still verifies this at runtime since the catalog evolves.
	ModuleDescriptor struct {
		// Name is the unique module identifier.
		Name ModuleName
		// Description is a human-readable summary of the module.
		Description string
		// Commands are the top-level command names the module owns, in the
		// order they attach to the command tree.
		Commands []string
		// Dependencies are external binary names the module's commands invoke.
		// Empty means the module is self-contained.
		Dependencies []string
	}
)

// String returns the string representation of the ModuleName.
func (n ModuleName) String() string { return string(n) }

// IsValid returns whether the ModuleName is valid. A valid name must be
// non-empty and not whitespace-only.
func (n ModuleName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(n)) == "" {
		return false, []error{&InvalidModuleNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidModuleNameError.
func (e *InvalidModuleNameError) Error() string {
	return fmt.Sprintf("invalid module name %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidModuleName for errors.Is() compatibility.
func (e *InvalidModuleNameError) Unwrap() error { return ErrInvalidModuleName }

// OwnsCommand reports whether the descriptor declares the given top-level
// command name.
func (d ModuleDescriptor) OwnsCommand(name string) bool {
	for _, c := range d.Commands {
		if c == name {
			return true
		}
	}
	return false
}

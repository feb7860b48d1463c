// SPDX-License-Identifier: MPL-2.0

// Package depcheck validates module external-tool dependencies. Missing
// tools are reported as warnings, never errors: a module's commands stay
// mounted and may fail at runtime, which keeps enable/disable usable on
// machines that are still being set up.
package depcheck

import (
	"fmt"
	"os/exec"

	"maxcli/internal/registry"
)

// lookPath is swapped out in tests.
var lookPath = exec.LookPath

// Warning reports a single missing external tool for a module.
type Warning struct {
	// Module is the module that declares the dependency.
	Module registry.ModuleName
	// Binary is the executable name that was not found on PATH.
	Binary string
}

// String renders the warning for CLI output.
func (w Warning) String() string {
	return fmt.Sprintf("module %q requires %q which was not found on PATH", w.Module, w.Binary)
}

// Check probes every dependency the descriptor declares and returns a warning
// per missing binary. A nil result means all dependencies resolved.
func Check(d registry.ModuleDescriptor) []Warning {
	var warnings []Warning
	for _, bin := range d.Dependencies {
		if _, err := lookPath(bin); err != nil {
			warnings = append(warnings, Warning{Module: d.Name, Binary: bin})
		}
	}
	return warnings
}

// CheckAll probes dependencies for every descriptor, preserving input order.
func CheckAll(descriptors []registry.ModuleDescriptor) []Warning {
	var warnings []Warning
	for _, d := range descriptors {
		warnings = append(warnings, Check(d)...)
	}
	return warnings
}

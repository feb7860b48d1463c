// SPDX-License-Identifier: MPL-2.0

// Package registry holds the compiled-in catalog of maxcli modules.
//
// A module is an independently toggleable functional unit (SSH management,
// Docker cleanup, GCP configuration switching, ...) that owns a set of
// top-level commands. The registry maps each module descriptor to a factory
// that produces the module's command provider, so adding a module means
// adding one descriptor and one factory entry — nothing else in the
// composition pipeline changes.
//
// The registry is purely functional over compiled-in data and performs no I/O.
package registry

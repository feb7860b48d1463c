// SPDX-License-Identifier: MPL-2.0

// Package modstate persists which maxcli modules are enabled.
//
// The on-disk record is a single JSON document under the platform config
// directory (modules.json). Every mutation follows an explicit
// load → SetEnabled → save cycle: SetEnabled is a pure function over the
// document value, and save writes the whole document atomically via a
// temp-file-then-rename so a crash mid-write never leaves a torn file.
//
// The document caches each module's description, commands, and dependencies
// as of the last write. `max modules list` displays from that cache, which
// keeps modules visible (and re-disableable) even after they are removed
// from the compiled catalog.
package modstate

// SPDX-License-Identifier: MPL-2.0

// Package composer builds the dynamic command tree from the set of enabled
// modules. Composition is all-or-nothing: a command name collision between
// two enabled modules rejects the whole tree, while stale or unimplemented
// module references are skipped with diagnostics so one bad entry cannot
// take down the rest.
package composer

// SPDX-License-Identifier: MPL-2.0

package modstate

import (
	"sort"
	"time"

	"maxcli/internal/registry"
)

// SchemaVersion is the current format version of the modules document.
const SchemaVersion = "1.0.0"

type (
	// ModuleState is the persisted per-module record: the enabled flag plus a
	// cached snapshot of the descriptor at the time the document was last
	// written. The snapshot lets the CLI display modules without consulting
	// the compiled catalog, including modules this binary no longer ships.
	ModuleState struct {
		Enabled      bool     `json:"enabled"`
		Description  string   `json:"description"`
		Commands     []string `json:"commands"`
		Dependencies []string `json:"dependencies"`
	}

	// Document is the complete persisted record of module state.
	Document struct {
		// SchemaVersion drives migration of older formats.
		SchemaVersion string `json:"schema_version"`
		// CreatedAt is set on first write and preserved verbatim afterwards.
		CreatedAt time.Time `json:"created_at"`
		// EnabledModules lists enabled module names in enable order. The
		// composer attaches command groups in this order, so it is
		// user-visible via help output.
		EnabledModules []string `json:"enabled_modules"`
		// ModuleStates maps module name to its persisted state. Invariant:
		// every name in EnabledModules has an entry here.
		ModuleStates map[string]ModuleState `json:"module_states"`
	}
)

// stateFromDescriptor snapshots a descriptor into a ModuleState.
func stateFromDescriptor(d registry.ModuleDescriptor, enabled bool) ModuleState {
	return ModuleState{
		Enabled:      enabled,
		Description:  d.Description,
		Commands:     append([]string(nil), d.Commands...),
		Dependencies: append([]string(nil), d.Dependencies...),
	}
}

// NewDocument builds a fresh document from the registry catalog with the
// given names enabled. CreatedAt is truncated to whole seconds so the
// persisted timestamp round-trips byte-identically.
func NewDocument(reg *registry.Registry, enabled []registry.ModuleName) *Document {
	enabledSet := make(map[registry.ModuleName]bool, len(enabled))
	names := make([]string, 0, len(enabled))
	for _, n := range enabled {
		enabledSet[n] = true
		names = append(names, n.String())
	}

	states := make(map[string]ModuleState)
	for _, d := range reg.All() {
		states[d.Name.String()] = stateFromDescriptor(d, enabledSet[d.Name])
	}

	return &Document{
		SchemaVersion:  SchemaVersion,
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
		EnabledModules: names,
		ModuleStates:   states,
	}
}

// Clone returns a deep copy of the document.
func (doc *Document) Clone() *Document {
	out := &Document{
		SchemaVersion:  doc.SchemaVersion,
		CreatedAt:      doc.CreatedAt,
		EnabledModules: append([]string(nil), doc.EnabledModules...),
		ModuleStates:   make(map[string]ModuleState, len(doc.ModuleStates)),
	}
	for name, state := range doc.ModuleStates {
		out.ModuleStates[name] = ModuleState{
			Enabled:      state.Enabled,
			Description:  state.Description,
			Commands:     append([]string(nil), state.Commands...),
			Dependencies: append([]string(nil), state.Dependencies...),
		}
	}
	return out
}

// IsEnabled reports whether the named module is in the enabled set.
func (doc *Document) IsEnabled(name registry.ModuleName) bool {
	for _, n := range doc.EnabledModules {
		if n == name.String() {
			return true
		}
	}
	return false
}

// KnownNames returns the union of enabled names and persisted state keys,
// sorted alphabetically. This is the display set for `max modules list`.
func (doc *Document) KnownNames() []string {
	seen := make(map[string]bool, len(doc.ModuleStates))
	for name := range doc.ModuleStates {
		seen[name] = true
	}
	for _, name := range doc.EnabledModules {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the document invariant: EnabledModules must be a subset of
// ModuleStates keys. Registry membership is deliberately not required here —
// a name enabled by an older or newer binary stays persisted and is skipped
// at composition instead.
func (doc *Document) Validate() error {
	var missing []string
	for _, name := range doc.EnabledModules {
		if _, ok := doc.ModuleStates[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &InvalidDocumentError{MissingStates: missing}
	}
	return nil
}

// SetEnabled returns an updated copy of the document with the module's
// enabled flag set. It does not persist. The descriptor refreshes the cached
// snapshot (description, commands, dependencies), and a state entry is
// created when the module has never been persisted before. Applying the same
// toggle twice yields the same document as applying it once.
func SetEnabled(doc *Document, d registry.ModuleDescriptor, enabled bool) *Document {
	out := doc.Clone()
	name := d.Name.String()

	out.ModuleStates[name] = stateFromDescriptor(d, enabled)

	idx := -1
	for i, n := range out.EnabledModules {
		if n == name {
			idx = i
			break
		}
	}
	switch {
	case enabled && idx < 0:
		out.EnabledModules = append(out.EnabledModules, name)
	case !enabled && idx >= 0:
		out.EnabledModules = append(out.EnabledModules[:idx], out.EnabledModules[idx+1:]...)
	}
	return out
}

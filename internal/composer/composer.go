// SPDX-License-Identifier: MPL-2.0

package composer

import (
	"errors"
	"fmt"
	"sort"

	"maxcli/internal/registry"

	"github.com/spf13/cobra"
)

// ErrCollision is the sentinel error wrapped by CollisionError.
var ErrCollision = errors.New("command name collision")

type (
	// CollisionError is returned when two enabled modules register the same
	// top-level command name. It names both modules so the user can pick
	// which one to disable. It wraps ErrCollision for errors.Is() compatibility.
	CollisionError struct {
		Command string
		Modules []registry.ModuleName
	}

	// Tree is a fully composed command tree. Commands appear in enabled-module
	// order, which is the order they are mounted onto the root command and the
	// order help output lists them in.
	Tree struct {
		commands []*cobra.Command
		owners   map[string]registry.ModuleName
	}

	// builder stages commands for one module during composition. It implements
	// registry.TreeBuilder.
	builder struct {
		module registry.ModuleName
		tree   *Tree
		err    *CollisionError
	}
)

// Error implements the error interface for CollisionError.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("command %q is registered by both module %q and module %q",
		e.Command, e.Modules[0], e.Modules[1])
}

// Unwrap returns ErrCollision for errors.Is() compatibility.
func (e *CollisionError) Unwrap() error { return ErrCollision }

// Commands returns the composed top-level commands in mount order.
func (t *Tree) Commands() []*cobra.Command {
	out := make([]*cobra.Command, len(t.commands))
	copy(out, t.commands)
	return out
}

// Owner returns the module that registered the named command, if any.
func (t *Tree) Owner(command string) (registry.ModuleName, bool) {
	name, ok := t.owners[command]
	return name, ok
}

// OwnedCommands returns all composed command names sorted alphabetically.
func (t *Tree) OwnedCommands() []string {
	names := make([]string, 0, len(t.owners))
	for name := range t.owners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Mount attaches the composed commands to a root command. Mount order follows
// enabled-module order so help output reflects the user's configuration.
func (t *Tree) Mount(root *cobra.Command) {
	for _, cmd := range t.commands {
		root.AddCommand(cmd)
	}
}

// Add implements registry.TreeBuilder. The first collision is recorded and
// every later Add becomes a no-op; Build turns the record into a fatal error.
func (b *builder) Add(cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		if b.err != nil {
			return
		}
		name := cmd.Name()
		if owner, taken := b.tree.owners[name]; taken {
			b.err = &CollisionError{
				Command: name,
				Modules: []registry.ModuleName{owner, b.module},
			}
			return
		}
		b.tree.owners[name] = b.module
		b.tree.commands = append(b.tree.commands, cmd)
	}
}

// Build composes a command tree from the enabled module names in order.
//
// Names that do not resolve in the registry produce a CodeStaleModule warning
// and are skipped: the persisted configuration may legitimately reference
// modules a newer or older build no longer ships. Catalog entries without a
// provider are skipped the same way under CodeNoProvider.
//
// A command name collision between two providers is fatal: Build returns a
// CollisionError and a nil tree, and none of the staged commands should be
// mounted.
func Build(reg *registry.Registry, enabled []registry.ModuleName) (*Tree, []Diagnostic, error) {
	tree := &Tree{owners: make(map[string]registry.ModuleName)}
	var diags []Diagnostic

	for _, name := range enabled {
		desc, err := reg.Get(name)
		if err != nil {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeStaleModule,
				Message:  fmt.Sprintf("enabled module %q is not available in this build; skipping", name),
				Module:   string(name),
				Cause:    err,
			})
			continue
		}

		provider, err := reg.NewProvider(desc)
		if err != nil {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeNoProvider,
				Message:  fmt.Sprintf("module %q has no commands in this build; skipping", name),
				Module:   string(name),
				Cause:    err,
			})
			continue
		}

		b := &builder{module: name, tree: tree}
		provider.Attach(b)
		if b.err != nil {
			return nil, diags, b.err
		}
	}

	return tree, diags, nil
}

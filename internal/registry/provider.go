// SPDX-License-Identifier: MPL-2.0

package registry

import "github.com/spf13/cobra"

type (
	// TreeBuilder collects top-level commands during composition. Providers
	// attach their commands through it instead of mutating the root command
	// directly, so the composer can stage the tree and reject it as a whole
	// when modules collide.
	TreeBuilder interface {
		// Add registers top-level commands owned by the attaching module.
		Add(cmds ...*cobra.Command)
	}

	// Provider is the runtime object produced by a module's factory. It
	// attaches the module's concrete command handlers to a composed tree.
	Provider interface {
		Attach(b TreeBuilder)
	}

	// ProviderFactory produces a Provider for a descriptor. Factories receive
	// the descriptor so a provider can reuse its metadata (description,
	// command names) without a second source of truth.
	ProviderFactory func(d ModuleDescriptor) Provider

	// ProviderFunc adapts a plain function to the Provider interface.
	ProviderFunc func(b TreeBuilder)
)

// Attach implements Provider for ProviderFunc.
func (f ProviderFunc) Attach(b TreeBuilder) { f(b) }

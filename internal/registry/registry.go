// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownModule is the sentinel error wrapped by UnknownModuleError.
	ErrUnknownModule = errors.New("unknown module")
	// ErrNoProvider is the sentinel error wrapped by NoProviderError.
	ErrNoProvider = errors.New("module has no command provider")
)

type (
	// UnknownModuleError is returned when a module name does not resolve in
	// the registry. It wraps ErrUnknownModule for errors.Is() compatibility.
	UnknownModuleError struct {
		Name ModuleName
	}

	// NoProviderError is returned when a descriptor exists in the catalog but
	// no factory is registered for it (a catalog-only module that is not yet
	// implemented in this binary). It wraps ErrNoProvider.
	NoProviderError struct {
		Name ModuleName
	}

	// Registry is the fixed catalog of known module descriptors plus the
	// name→factory map that produces command providers for them.
	Registry struct {
		descriptors []ModuleDescriptor
		byName      map[ModuleName]ModuleDescriptor
		factories   map[ModuleName]ProviderFactory
	}
)

// Error implements the error interface for UnknownModuleError.
func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("unknown module %q", e.Name)
}

// Unwrap returns ErrUnknownModule for errors.Is() compatibility.
func (e *UnknownModuleError) Unwrap() error { return ErrUnknownModule }

// Error implements the error interface for NoProviderError.
func (e *NoProviderError) Error() string {
	return fmt.Sprintf("module %q has no command provider in this build", e.Name)
}

// Unwrap returns ErrNoProvider for errors.Is() compatibility.
func (e *NoProviderError) Unwrap() error { return ErrNoProvider }

// New builds a registry from descriptors and their provider factories.
// Descriptors without a factory entry are catalog-only: they can be listed,
// enabled, and persisted, but composition skips them with a diagnostic.
func New(descriptors []ModuleDescriptor, factories map[ModuleName]ProviderFactory) *Registry {
	byName := make(map[ModuleName]ModuleDescriptor, len(descriptors))
	for _, d := range descriptors {
		byName[d.Name] = d
	}
	return &Registry{
		descriptors: descriptors,
		byName:      byName,
		factories:   factories,
	}
}

// All returns every known descriptor in catalog order.
func (r *Registry) All() []ModuleDescriptor {
	out := make([]ModuleDescriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Names returns all known module names sorted alphabetically.
func (r *Registry) Names() []ModuleName {
	names := make([]ModuleName, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Get resolves a descriptor by name, returning UnknownModuleError when the
// name is not in the catalog.
func (r *Registry) Get(name ModuleName) (ModuleDescriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		return ModuleDescriptor{}, &UnknownModuleError{Name: name}
	}
	return d, nil
}

// Has reports whether the name resolves in the catalog.
func (r *Registry) Has(name ModuleName) bool {
	_, ok := r.byName[name]
	return ok
}

// HasProvider reports whether the named module has a command provider in
// this build.
func (r *Registry) HasProvider(name ModuleName) bool {
	_, ok := r.factories[name]
	return ok
}

// NewProvider produces the command provider for a descriptor. The factory map
// is the single extension point through which module command implementations
// are wired into composition.
func (r *Registry) NewProvider(d ModuleDescriptor) (Provider, error) {
	factory, ok := r.factories[d.Name]
	if !ok {
		return nil, &NoProviderError{Name: d.Name}
	}
	return factory(d), nil
}

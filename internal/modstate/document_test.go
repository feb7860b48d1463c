// SPDX-License-Identifier: MPL-2.0

package modstate

import (
	"errors"
	"reflect"
	"testing"

	"maxcli/internal/registry"
)

func testReg() *registry.Registry {
	descriptors := []registry.ModuleDescriptor{
		{Name: "alpha", Description: "Alpha", Commands: []string{"a"}, Dependencies: []string{"tool-a"}},
		{Name: "beta", Description: "Beta", Commands: []string{"b"}},
		{Name: "gamma", Description: "Gamma", Commands: []string{"g"}},
	}
	return registry.New(descriptors, nil)
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(testReg(), []registry.ModuleName{"alpha", "beta"})

	if doc.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %q, want %q", doc.SchemaVersion, SchemaVersion)
	}
	if !reflect.DeepEqual(doc.EnabledModules, []string{"alpha", "beta"}) {
		t.Errorf("EnabledModules = %v", doc.EnabledModules)
	}
	if len(doc.ModuleStates) != 3 {
		t.Errorf("ModuleStates has %d entries, want 3 (full catalog)", len(doc.ModuleStates))
	}
	if !doc.ModuleStates["alpha"].Enabled {
		t.Error("alpha state should be enabled")
	}
	if doc.ModuleStates["gamma"].Enabled {
		t.Error("gamma state should be disabled")
	}
	if doc.CreatedAt.Nanosecond() != 0 {
		t.Error("CreatedAt should be truncated to whole seconds")
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("fresh document should validate: %v", err)
	}
}

func TestSetEnabled_Enable(t *testing.T) {
	reg := testReg()
	doc := NewDocument(reg, []registry.ModuleName{"alpha"})

	d, _ := reg.Get("gamma")
	out := SetEnabled(doc, d, true)

	if !out.IsEnabled("gamma") {
		t.Error("gamma should be enabled")
	}
	// Enable order is append-only
	if !reflect.DeepEqual(out.EnabledModules, []string{"alpha", "gamma"}) {
		t.Errorf("EnabledModules = %v, want [alpha gamma]", out.EnabledModules)
	}
	// The input document is untouched
	if doc.IsEnabled("gamma") {
		t.Error("SetEnabled must not mutate its input")
	}
}

func TestSetEnabled_Disable(t *testing.T) {
	reg := testReg()
	doc := NewDocument(reg, []registry.ModuleName{"alpha", "beta"})

	d, _ := reg.Get("alpha")
	out := SetEnabled(doc, d, false)

	if out.IsEnabled("alpha") {
		t.Error("alpha should be disabled")
	}
	if !reflect.DeepEqual(out.EnabledModules, []string{"beta"}) {
		t.Errorf("EnabledModules = %v, want [beta]", out.EnabledModules)
	}
	// The state entry survives disablement
	state, ok := out.ModuleStates["alpha"]
	if !ok {
		t.Fatal("disabled module should keep its state entry")
	}
	if state.Enabled {
		t.Error("state.Enabled should be false")
	}
}

func TestSetEnabled_Idempotent(t *testing.T) {
	reg := testReg()
	doc := NewDocument(reg, []registry.ModuleName{"alpha"})
	d, _ := reg.Get("alpha")

	once := SetEnabled(doc, d, true)
	twice := SetEnabled(once, d, true)

	if !reflect.DeepEqual(once.EnabledModules, twice.EnabledModules) {
		t.Errorf("enable twice changed order: %v vs %v", once.EnabledModules, twice.EnabledModules)
	}
	if !reflect.DeepEqual(once.ModuleStates, twice.ModuleStates) {
		t.Error("enable twice changed states")
	}
}

func TestSetEnabled_RefreshesSnapshot(t *testing.T) {
	reg := testReg()
	doc := NewDocument(reg, nil)

	// Simulate a stale snapshot from an older build
	doc.ModuleStates["alpha"] = ModuleState{Enabled: false, Description: "old description"}

	d, _ := reg.Get("alpha")
	out := SetEnabled(doc, d, true)

	if out.ModuleStates["alpha"].Description != "Alpha" {
		t.Errorf("snapshot description = %q, want refreshed", out.ModuleStates["alpha"].Description)
	}
}

func TestValidate_MissingState(t *testing.T) {
	doc := NewDocument(testReg(), nil)
	doc.EnabledModules = append(doc.EnabledModules, "phantom")

	err := doc.Validate()
	if !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("Validate() should return ErrInvalidDocument, got %v", err)
	}
	var invalid *InvalidDocumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("error should be *InvalidDocumentError, got %T", err)
	}
	if !reflect.DeepEqual(invalid.MissingStates, []string{"phantom"}) {
		t.Errorf("MissingStates = %v", invalid.MissingStates)
	}
}

func TestKnownNames_UnionSorted(t *testing.T) {
	doc := &Document{
		SchemaVersion:  SchemaVersion,
		EnabledModules: []string{"zeta"},
		ModuleStates: map[string]ModuleState{
			"alpha": {},
			"zeta":  {Enabled: true},
		},
	}

	names := doc.KnownNames()
	if !reflect.DeepEqual(names, []string{"alpha", "zeta"}) {
		t.Errorf("KnownNames() = %v", names)
	}
}

func TestClone_Independent(t *testing.T) {
	doc := NewDocument(testReg(), []registry.ModuleName{"alpha"})
	clone := doc.Clone()

	clone.EnabledModules[0] = "mutated"
	state := clone.ModuleStates["alpha"]
	state.Commands = append(state.Commands, "extra")
	clone.ModuleStates["alpha"] = state

	if doc.EnabledModules[0] != "alpha" {
		t.Error("Clone() shares EnabledModules backing array")
	}
	if len(doc.ModuleStates["alpha"].Commands) != 1 {
		t.Error("Clone() shares ModuleStates slices")
	}
}

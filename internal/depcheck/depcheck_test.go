// SPDX-License-Identifier: MPL-2.0

package depcheck

import (
	"errors"
	"strings"
	"testing"

	"maxcli/internal/registry"
)

func stubLookPath(t *testing.T, available ...string) {
	t.Helper()
	original := lookPath
	t.Cleanup(func() { lookPath = original })

	set := make(map[string]bool, len(available))
	for _, bin := range available {
		set[bin] = true
	}
	lookPath = func(file string) (string, error) {
		if set[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
}

func TestCheck_AllDependenciesPresent(t *testing.T) {
	stubLookPath(t, "ssh", "rsync")

	d := registry.ModuleDescriptor{
		Name:         "ssh_manager",
		Dependencies: []string{"ssh", "rsync"},
	}

	if warnings := Check(d); warnings != nil {
		t.Errorf("Check() = %v, want nil", warnings)
	}
}

func TestCheck_MissingDependency(t *testing.T) {
	stubLookPath(t, "ssh")

	d := registry.ModuleDescriptor{
		Name:         "kubernetes_manager",
		Dependencies: []string{"kubectl", "ssh"},
	}

	warnings := Check(d)
	if len(warnings) != 1 {
		t.Fatalf("Check() returned %d warnings, want 1", len(warnings))
	}
	if warnings[0].Module != "kubernetes_manager" {
		t.Errorf("warning module = %q, want kubernetes_manager", warnings[0].Module)
	}
	if warnings[0].Binary != "kubectl" {
		t.Errorf("warning binary = %q, want kubectl", warnings[0].Binary)
	}
}

func TestCheck_NoDependencies(t *testing.T) {
	stubLookPath(t)

	d := registry.ModuleDescriptor{Name: "misc_manager"}
	if warnings := Check(d); warnings != nil {
		t.Errorf("Check() = %v, want nil for a module with no dependencies", warnings)
	}
}

func TestCheckAll_PreservesOrder(t *testing.T) {
	stubLookPath(t)

	descriptors := []registry.ModuleDescriptor{
		{Name: "b_module", Dependencies: []string{"tool-b"}},
		{Name: "a_module", Dependencies: []string{"tool-a"}},
	}

	warnings := CheckAll(descriptors)
	if len(warnings) != 2 {
		t.Fatalf("CheckAll() returned %d warnings, want 2", len(warnings))
	}
	if warnings[0].Module != "b_module" || warnings[1].Module != "a_module" {
		t.Errorf("CheckAll() order = [%s, %s], want input order", warnings[0].Module, warnings[1].Module)
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Module: "gcp_manager", Binary: "gcloud"}
	s := w.String()
	if !strings.Contains(s, "gcp_manager") || !strings.Contains(s, "gcloud") {
		t.Errorf("String() should name the module and binary, got %q", s)
	}
}

// SPDX-License-Identifier: MPL-2.0

package dockermgr

import (
	"context"
	"strings"
	"testing"

	"maxcli/internal/registry"
)

func descriptor() registry.ModuleDescriptor {
	return registry.ModuleDescriptor{
		Name:         "docker_manager",
		Description:  "Docker cleanup",
		Commands:     []string{"docker"},
		Dependencies: []string{"docker"},
	}
}

func captureDocker(t *testing.T) *[][]string {
	t.Helper()
	var calls [][]string
	orig := runDocker
	runDocker = func(_ context.Context, args ...string) error {
		calls = append(calls, args)
		return nil
	}
	t.Cleanup(func() { runDocker = orig })
	return &calls
}

func TestClean_DefaultsToMinimal(t *testing.T) {
	calls := captureDocker(t)

	cmd := newDockerCmd(descriptor())
	cmd.SetArgs([]string{"clean"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("docker clean returned error: %v", err)
	}

	if len(*calls) != len(minimalSteps) {
		t.Fatalf("ran %d docker invocations, want %d", len(*calls), len(minimalSteps))
	}
	if (*calls)[0][0] != "container" {
		t.Errorf("first step = %v, want container prune", (*calls)[0])
	}
}

func TestClean_Extensive(t *testing.T) {
	calls := captureDocker(t)

	cmd := newDockerCmd(descriptor())
	cmd.SetArgs([]string{"clean", "--extensive"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("docker clean --extensive returned error: %v", err)
	}

	if len(*calls) != 1 {
		t.Fatalf("ran %d docker invocations, want 1", len(*calls))
	}
	if got := strings.Join((*calls)[0], " "); got != "system prune -af --volumes" {
		t.Errorf("extensive step = %q, want system prune", got)
	}
}

func TestPs_PassesThrough(t *testing.T) {
	calls := captureDocker(t)

	cmd := newDockerCmd(descriptor())
	cmd.SetArgs([]string{"ps"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("docker ps returned error: %v", err)
	}

	if len(*calls) != 1 || strings.Join((*calls)[0], " ") != "ps -a" {
		t.Errorf("calls = %v, want [[ps -a]]", *calls)
	}
}

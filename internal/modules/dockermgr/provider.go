// SPDX-License-Identifier: MPL-2.0

// Package dockermgr provides the docker_manager module: Docker system
// cleanup with configurable aggressiveness.
package dockermgr

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"maxcli/internal/registry"

	"github.com/spf13/cobra"
)

// runDocker is swapped out in tests. It runs a docker invocation with the
// user's terminal attached.
var runDocker = func(ctx context.Context, args ...string) error {
	c := exec.CommandContext(ctx, "docker", args...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// extensiveSteps removes every unused Docker resource.
var extensiveSteps = [][]string{
	{"system", "prune", "-af", "--volumes"},
}

// minimalSteps is the conservative cleanup: old stopped containers, dangling
// images, unused networks, and week-old build cache. Volumes and tagged
// images are never touched.
var minimalSteps = [][]string{
	{"container", "prune", "-f", "--filter", "until=24h"},
	{"image", "prune", "-f"},
	{"network", "prune", "-f"},
	{"builder", "prune", "-f", "--filter", "until=168h"},
}

// NewProvider builds the docker_manager command provider.
func NewProvider(d registry.ModuleDescriptor) registry.Provider {
	return registry.ProviderFunc(func(b registry.TreeBuilder) {
		b.Add(newDockerCmd(d))
	})
}

func newDockerCmd(d registry.ModuleDescriptor) *cobra.Command {
	dockerCmd := &cobra.Command{
		Use:   "docker",
		Short: d.Description,
	}

	var (
		extensive bool
		minimal   bool
	)
	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean up Docker resources (defaults to minimal)",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := minimalSteps
			label := "minimal"
			switch {
			case extensive:
				steps = extensiveSteps
				label = "extensive"
			case minimal:
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "No cleanup level specified, defaulting to minimal.")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Performing %s Docker cleanup...\n", label)
			for _, step := range steps {
				if err := runDocker(cmd.Context(), step...); err != nil {
					return fmt.Errorf("docker %s failed: %w", step[0], err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Docker cleanup completed.\n", label)
			return nil
		},
	}
	cleanCmd.Flags().BoolVar(&extensive, "extensive", false, "remove all unused Docker resources")
	cleanCmd.Flags().BoolVar(&minimal, "minimal", false, "conservative cleanup preserving recent items")
	cleanCmd.MarkFlagsMutuallyExclusive("extensive", "minimal")

	dockerCmd.AddCommand(cleanCmd)

	dockerCmd.AddCommand(&cobra.Command{
		Use:   "ps",
		Short: "List containers, including stopped ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocker(cmd.Context(), "ps", "-a")
		},
	})

	dockerCmd.AddCommand(&cobra.Command{
		Use:   "images",
		Short: "List local images",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocker(cmd.Context(), "images")
		},
	})

	return dockerCmd
}

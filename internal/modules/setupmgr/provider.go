// SPDX-License-Identifier: MPL-2.0

// Package setupmgr provides the setup_manager module: machine provisioning
// profiles stored as TOML and executed as shell command sequences.
package setupmgr

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"maxcli/internal/registry"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/shell"
)

// runStep is swapped out in tests.
var runStep = func(ctx context.Context, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// NewProvider builds the setup_manager command provider.
func NewProvider(d registry.ModuleDescriptor) registry.Provider {
	return registry.ProviderFunc(func(b registry.TreeBuilder) {
		b.Add(newSetupCmd(d))
	})
}

func newSetupCmd(d registry.ModuleDescriptor) *cobra.Command {
	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: d.Description,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available setup profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := LoadProfiles()
			if err != nil {
				return err
			}
			for _, name := range set.Names() {
				p, _ := set.Get(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, p.Description)
			}
			return nil
		},
	}

	var dryRun bool
	runCmd := &cobra.Command{
		Use:   "run <profile>",
		Short: "Run a setup profile's command sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := LoadProfiles()
			if err != nil {
				return err
			}
			profile, err := set.Get(args[0])
			if err != nil {
				return err
			}
			return runProfile(cmd, args[0], profile, dryRun)
		},
	}
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the commands without executing them")

	setupCmd.AddCommand(listCmd, runCmd)
	return setupCmd
}

func runProfile(cmd *cobra.Command, name string, profile Profile, dryRun bool) error {
	fmt.Fprintf(cmd.OutOrStdout(), "Running setup profile %q (%d steps)\n", name, len(profile.Commands))

	for i, line := range profile.Commands {
		fields, err := shell.Fields(line, nil)
		if err != nil {
			return fmt.Errorf("profile %q step %d has invalid shell syntax: %w", name, i+1, err)
		}
		if len(fields) == 0 {
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s\n", i+1, len(profile.Commands), line)
		if dryRun {
			continue
		}
		if err := runStep(cmd.Context(), fields[0], fields[1:]); err != nil {
			return fmt.Errorf("profile %q step %d failed: %w", name, i+1, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Setup profile %q completed.\n", name)
	return nil
}

// SPDX-License-Identifier: MPL-2.0

// Package k8smgr provides the kubernetes_manager module: kubectl context
// switching under a short command.
package k8smgr

import (
	"context"
	"fmt"
	"os/exec"

	"maxcli/internal/registry"

	"github.com/spf13/cobra"
)

// runKubectl is swapped out in tests.
var runKubectl = func(ctx context.Context, args ...string) error {
	return exec.CommandContext(ctx, "kubectl", args...).Run()
}

// NewProvider builds the kubernetes_manager command provider.
func NewProvider(d registry.ModuleDescriptor) registry.Provider {
	return registry.ProviderFunc(func(b registry.TreeBuilder) {
		b.Add(newKctxCmd(d))
	})
}

func newKctxCmd(d registry.ModuleDescriptor) *cobra.Command {
	return &cobra.Command{
		Use:   "kctx <context>",
		Short: d.Description,
		Long: `Switch the current Kubernetes context using kubectl.

Equivalent to 'kubectl config use-context <context>' with a shorter command.
The context must already exist in your kubectl configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runKubectl(cmd.Context(), "config", "use-context", args[0]); err != nil {
				return fmt.Errorf("failed to switch context to %q: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to context %q\n", args[0])
			return nil
		},
	}
}

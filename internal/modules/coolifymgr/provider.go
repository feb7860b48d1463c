// SPDX-License-Identifier: MPL-2.0

// Package coolifymgr provides the coolify_manager module: status and
// lifecycle commands for a self-hosted Coolify instance over its REST API.
package coolifymgr

import (
	"context"
	"fmt"
	"text/tabwriter"

	"maxcli/internal/config"
	"maxcli/internal/registry"

	"github.com/spf13/cobra"
)

// loadCoolifyConfig is swapped out in tests.
var loadCoolifyConfig = func(cmd *cobra.Command) (config.CoolifyConfig, error) {
	cfg, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{})
	if err != nil {
		return config.CoolifyConfig{}, err
	}
	return cfg.Coolify, nil
}

// NewProvider builds the coolify_manager command provider.
func NewProvider(d registry.ModuleDescriptor) registry.Provider {
	return registry.ProviderFunc(func(b registry.TreeBuilder) {
		b.Add(newCoolifyCmd(d))
	})
}

func newClient(cmd *cobra.Command) (*Client, error) {
	cfg, err := loadCoolifyConfig(cmd)
	if err != nil {
		return nil, err
	}
	return NewClient(cfg)
}

func newCoolifyCmd(d registry.ModuleDescriptor) *cobra.Command {
	coolifyCmd := &cobra.Command{
		Use:   "coolify",
		Short: d.Description,
	}

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check instance health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			if err := client.Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Coolify instance is healthy.")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show instance version and health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			version, err := client.Version(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Coolify version: %s\n", version)
			return nil
		},
	}

	appsCmd := &cobra.Command{
		Use:   "applications",
		Short: "List applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			apps, err := client.Applications(cmd.Context())
			if err != nil {
				return err
			}
			if len(apps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No applications found.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "UUID\tNAME\tSTATUS")
			for _, a := range apps {
				fmt.Fprintf(w, "%s\t%s\t%s\n", a.UUID, a.Name, a.Status)
			}
			return w.Flush()
		},
	}

	servicesCmd := &cobra.Command{
		Use:   "services",
		Short: "List services",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			services, err := client.Services(cmd.Context())
			if err != nil {
				return err
			}
			if len(services) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No services found.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "UUID\tNAME\tSTATUS")
			for _, s := range services {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.UUID, s.Name, s.Status)
			}
			return w.Flush()
		},
	}

	serversCmd := &cobra.Command{
		Use:   "servers",
		Short: "List servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			servers, err := client.Servers(cmd.Context())
			if err != nil {
				return err
			}
			if len(servers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No servers found.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "UUID\tNAME\tIP\tDESCRIPTION")
			for _, s := range servers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.UUID, s.Name, s.IP, s.Description)
			}
			return w.Flush()
		},
	}

	appCmd := &cobra.Command{
		Use:   "app",
		Short: "Application lifecycle operations",
	}
	appCmd.AddCommand(
		lifecycleCmd("start <uuid>", "Start an application", (*Client).StartApplication),
		lifecycleCmd("stop <uuid>", "Stop an application", (*Client).StopApplication),
		lifecycleCmd("restart <uuid>", "Restart an application", (*Client).RestartApplication),
		lifecycleCmd("deploy <uuid>", "Trigger a deployment", (*Client).DeployApplication),
	)

	serviceCmd := &cobra.Command{
		Use:   "service",
		Short: "Service lifecycle operations",
	}
	serviceCmd.AddCommand(
		lifecycleCmd("start <uuid>", "Start a service", (*Client).StartService),
		lifecycleCmd("stop <uuid>", "Stop a service", (*Client).StopService),
		lifecycleCmd("restart <uuid>", "Restart a service", (*Client).RestartService),
	)

	coolifyCmd.AddCommand(healthCmd, statusCmd, appsCmd, servicesCmd, serversCmd, appCmd, serviceCmd)
	return coolifyCmd
}

func lifecycleCmd(use, short string, op func(*Client, context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			if err := op(client, cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Request accepted for %s\n", args[0])
			return nil
		},
	}
}

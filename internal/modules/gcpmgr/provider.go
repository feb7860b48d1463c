// SPDX-License-Identifier: MPL-2.0

// Package gcpmgr provides the gcp_manager module: gcloud configuration
// switching with application default credential (ADC) handling.
//
// Each gcloud configuration keeps a saved copy of its ADC file under
// ~/.config/gcloud/adc_<name>.json; switching activates the configuration
// and copies the matching ADC file into place.
package gcpmgr

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"maxcli/internal/registry"

	"github.com/spf13/cobra"
)

// runGcloud is swapped out in tests.
var runGcloud = func(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "gcloud", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// gcloudDir is swapped out in tests.
var gcloudDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "gcloud"), nil
}

// NewProvider builds the gcp_manager command provider.
func NewProvider(d registry.ModuleDescriptor) registry.Provider {
	return registry.ProviderFunc(func(b registry.TreeBuilder) {
		b.Add(newGCPCmd(d))
	})
}

func newGCPCmd(d registry.ModuleDescriptor) *cobra.Command {
	gcpCmd := &cobra.Command{
		Use:   "gcp",
		Short: d.Description,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gcloud configurations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List gcloud configurations that have saved ADC credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			configs, err := availableConfigs()
			if err != nil {
				return err
			}
			if len(configs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No configurations with saved ADC credentials found.")
				return nil
			}
			for _, name := range configs {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	switchCmd := &cobra.Command{
		Use:   "switch <name>",
		Short: "Activate a gcloud configuration and its ADC credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return switchConfig(cmd, args[0])
		},
	}

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a gcloud configuration and save its ADC credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return createConfig(cmd, args[0])
		},
	}

	configCmd.AddCommand(listCmd, switchCmd, createCmd)
	gcpCmd.AddCommand(configCmd)
	return gcpCmd
}

// availableConfigs scans the gcloud directory for saved ADC files.
func availableConfigs() ([]string, error) {
	dir, err := gcloudDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read gcloud directory: %w", err)
	}

	var configs []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "adc_") && strings.HasSuffix(name, ".json") {
			configs = append(configs, strings.TrimSuffix(strings.TrimPrefix(name, "adc_"), ".json"))
		}
	}
	sort.Strings(configs)
	return configs, nil
}

func switchConfig(cmd *cobra.Command, name string) error {
	dir, err := gcloudDir()
	if err != nil {
		return err
	}

	savedADC := filepath.Join(dir, "adc_"+name+".json")
	if _, err := os.Stat(savedADC); err != nil {
		return fmt.Errorf("no saved ADC credentials for configuration %q (expected %s)", name, savedADC)
	}

	if err := runGcloud(cmd.Context(), "config", "configurations", "activate", name); err != nil {
		return fmt.Errorf("failed to activate configuration %q: %w", name, err)
	}

	activeADC := filepath.Join(dir, "application_default_credentials.json")
	if err := copyFile(savedADC, activeADC); err != nil {
		return fmt.Errorf("failed to switch ADC credentials: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Switched to configuration %q\n", name)
	return nil
}

func createConfig(cmd *cobra.Command, name string) error {
	ctx := cmd.Context()

	if err := runGcloud(ctx, "config", "configurations", "create", name); err != nil {
		return fmt.Errorf("failed to create configuration %q: %w", name, err)
	}
	if err := runGcloud(ctx, "config", "configurations", "activate", name); err != nil {
		return fmt.Errorf("failed to activate configuration %q: %w", name, err)
	}
	if err := runGcloud(ctx, "auth", "login"); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if err := runGcloud(ctx, "auth", "application-default", "login"); err != nil {
		return fmt.Errorf("ADC authentication failed: %w", err)
	}

	dir, err := gcloudDir()
	if err != nil {
		return err
	}
	activeADC := filepath.Join(dir, "application_default_credentials.json")
	savedADC := filepath.Join(dir, "adc_"+name+".json")
	if err := copyFile(activeADC, savedADC); err != nil {
		return fmt.Errorf("failed to save ADC credentials for %q: %w", name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration %q created. Switch to it with 'max gcp config switch %s'\n", name, name)
	return nil
}

// copyFile copies src to dst with owner-only permissions, since ADC files
// contain credentials.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

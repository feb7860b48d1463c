// SPDX-License-Identifier: MPL-2.0

// Package miscmgr provides the misc_manager module: a grab bag of
// database backup, deployment, and CSV analysis commands.
package miscmgr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/tabwriter"
	"time"

	"maxcli/internal/registry"

	"github.com/spf13/cobra"
)

// runPgDump is swapped out in tests. Output is the backup file handle.
var runPgDump = func(ctx context.Context, database string, out *os.File) error {
	cmd := exec.CommandContext(ctx, "pg_dump", database)
	cmd.Stdout = out
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// NewProvider builds the misc_manager command provider.
func NewProvider(d registry.ModuleDescriptor) registry.Provider {
	return registry.ProviderFunc(func(b registry.TreeBuilder) {
		b.Add(newBackupDBCmd(), newDeployAppCmd(), newProcessCSVCmd())
	})
}

func newBackupDBCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "backup-db <database>",
		Short: "Dump a PostgreSQL database to a timestamped file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create backup directory: %w", err)
			}

			stamp := time.Now().Format("2006-01-02_150405")
			path := filepath.Join(outDir, fmt.Sprintf("%s_%s.sql", args[0], stamp))

			out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer out.Close()

			if err := runPgDump(cmd.Context(), args[0], out); err != nil {
				_ = os.Remove(path)
				return fmt.Errorf("pg_dump failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Database %q backed up to %s\n", args[0], path)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "backups", "directory for backup files")
	return cmd
}

func newDeployAppCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy-app",
		Short: "Run the application deployment checklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Placeholder pipeline. Deployments are environment-specific, so
			// this prints the expected steps instead of guessing at them.
			fmt.Fprintln(cmd.OutOrStdout(), "No deployment pipeline configured. Typical steps:")
			fmt.Fprintln(cmd.OutOrStdout(), "  - Build the application")
			fmt.Fprintln(cmd.OutOrStdout(), "  - Run tests")
			fmt.Fprintln(cmd.OutOrStdout(), "  - Push to the container registry")
			fmt.Fprintln(cmd.OutOrStdout(), "  - Update deployments")
			fmt.Fprintln(cmd.OutOrStdout(), "  - Run post-deployment checks")
			return nil
		},
	}
}

func newProcessCSVCmd() *cobra.Command {
	var csvFile string
	cmd := &cobra.Command{
		Use:   "process-csv",
		Short: "Summarize a CSV file (row count, per-column statistics)",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(csvFile)
			if err != nil {
				return fmt.Errorf("failed to open csv file: %w", err)
			}
			defer f.Close()

			summary, err := Summarize(f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows, %d columns\n", csvFile, summary.Rows, len(summary.Columns))
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COLUMN\tDISTINCT\tMIN\tMAX\tSUM")
			for _, col := range summary.Columns {
				if col.Numeric {
					fmt.Fprintf(w, "%s\t%d\t%g\t%g\t%g\n", col.Name, col.Distinct, col.Min, col.Max, col.Sum)
				} else {
					fmt.Fprintf(w, "%s\t%d\t-\t-\t-\n", col.Name, col.Distinct)
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&csvFile, "csv-file", "", "path to the CSV data file")
	_ = cmd.MarkFlagRequired("csv-file")
	return cmd
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"maxcli/internal/composer"
	"maxcli/internal/issue"
	"maxcli/internal/modstate"
	"maxcli/internal/registry"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "max",
		Short: "A modular personal developer CLI",
		Long: TitleStyle.Render("max") + SubtitleStyle.Render(" - A modular personal developer CLI") + `

max assembles its command set dynamically from the modules you enable.
Each module contributes a group of top-level commands (SSH targets,
Docker cleanup, Kubernetes contexts, Coolify control, and more), and
your selection is persisted across runs.

` + SubtitleStyle.Render("Quick Start:") + `
  1. See what is available: max modules list
  2. Enable what you need:  max modules enable docker_manager
  3. Use the new commands:  max docker clean

` + SubtitleStyle.Render("Examples:") + `
  max modules list            List all modules and their status
  max modules enable ssh_manager gcp_manager
  max modules disable docker_manager
  max modules info ssh_manager
  max config show             Show current configuration`,
	}
)

func init() {
	// Composed command groups must appear in enabled order, not alphabetically.
	cobra.EnableCommandSorting = false

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/maxcli/config.cue)")
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute composes the command tree from enabled modules and runs the CLI.
// This is called by main.main().
func Execute() {
	ctx := context.Background()

	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
	// Management commands are registered unconditionally so the user can
	// always inspect and repair their module selection.
	rootCmd.AddCommand(newModulesCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newCompletionCommand())

	// Composition is fail-closed: when the modules document is corrupt or two
	// modules collide, no module commands are mounted, but the management
	// commands above stay available for repair.
	composeModuleCommands(ctx, app)

	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// composeModuleCommands loads the persisted module selection, builds the
// command tree, and mounts it onto the root command. Failures are rendered
// but never abort: the user must retain access to `max modules`.
func composeModuleCommands(ctx context.Context, app *App) {
	doc, err := app.Store.Load(ctx)
	if err != nil {
		renderCompositionFailure(app, err)
		return
	}

	enabled := make([]registry.ModuleName, 0, len(doc.EnabledModules))
	for _, name := range doc.EnabledModules {
		enabled = append(enabled, registry.ModuleName(name))
	}

	tree, diags, err := composer.Build(app.Registry, enabled)
	app.Diagnostics.Render(ctx, diags, app.stderr)
	if err != nil {
		renderCompositionFailure(app, err)
		return
	}

	tree.Mount(rootCmd)
}

// renderCompositionFailure explains why no module commands are available,
// pointing at the matching issue card for recovery guidance.
func renderCompositionFailure(app *App, err error) {
	fmt.Fprintln(app.stderr, ErrorStyle.Render("error: ")+formatErrorForDisplay(err, verbose))

	var id issue.Id
	switch {
	case errors.Is(err, modstate.ErrCorrupt):
		id = issue.ConfigCorruptId
	case errors.Is(err, composer.ErrCollision):
		id = issue.CommandCollisionId
	default:
		fmt.Fprintln(app.stderr, SubtitleStyle.Render("Module commands are unavailable; 'max modules' still works."))
		return
	}

	if card := issue.Get(id); card != nil {
		if rendered, renderErr := card.Render("dark"); renderErr == nil {
			fmt.Fprintln(app.stderr, rendered)
		}
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}

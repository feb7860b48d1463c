// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"maxcli/internal/depcheck"
	"maxcli/internal/issue"
	"maxcli/internal/modstate"
	"maxcli/internal/registry"

	"github.com/spf13/cobra"
)

// newModulesCommand creates the `max modules` command tree. These commands
// are always available, even when module composition fails, so the user can
// inspect and repair their selection.
func newModulesCommand(app *App) *cobra.Command {
	modCmd := &cobra.Command{
		Use:   "modules",
		Short: "Manage which modules are enabled",
		Long: `Manage which modules are enabled.

Modules group related commands (SSH targets, Docker cleanup, GCP
configurations, ...). Enabling a module mounts its commands at the top
level; disabling removes them. The selection is persisted in:

  ~/.config/maxcli/modules.json (Linux)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	modCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all modules and their status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listModules(cmd.Context(), app)
		},
	})

	modCmd.AddCommand(&cobra.Command{
		Use:   "enable <module> [<module>...]",
		Short: "Enable one or more modules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return enableModules(cmd.Context(), app, args)
		},
	})

	modCmd.AddCommand(&cobra.Command{
		Use:   "disable <module> [<module>...]",
		Short: "Disable one or more modules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return disableModules(cmd.Context(), app, args)
		},
	})

	modCmd.AddCommand(&cobra.Command{
		Use:   "info <module>",
		Short: "Show details for one module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showModuleInfo(cmd.Context(), app, args[0])
		},
	})

	return modCmd
}

// listModules prints every module known to either the compiled catalog or
// the persisted document, with status markers and dependency warnings.
func listModules(ctx context.Context, app *App) error {
	doc, err := app.Store.Load(ctx)
	if err != nil {
		renderCompositionFailure(app, err)
		return err
	}

	cfg := app.loadConfigWithFallback(ctx)

	// Display set is the union of catalog and persisted names so modules
	// written by another binary version still show up.
	seen := make(map[string]bool)
	names := make([]string, 0, len(doc.ModuleStates))
	for _, name := range doc.KnownNames() {
		seen[name] = true
		names = append(names, name)
	}
	for _, n := range app.Registry.Names() {
		if !seen[n.String()] {
			names = append(names, n.String())
		}
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Modules"))
	fmt.Fprintln(app.stdout)

	w := tabwriter.NewWriter(app.stdout, 0, 4, 2, ' ', 0)
	var depWarnings []depcheck.Warning
	for _, name := range names {
		d, known := lookupDescriptor(app, doc, registry.ModuleName(name))

		status := SubtitleStyle.Render("❌ Disabled")
		if doc.IsEnabled(registry.ModuleName(name)) {
			status = SuccessStyle.Render("✅ Enabled")
		}

		note := ""
		switch {
		case !app.Registry.Has(registry.ModuleName(name)):
			note = WarningStyle.Render("(not in this build)")
		case !app.Registry.HasProvider(registry.ModuleName(name)):
			note = SubtitleStyle.Render("(planned)")
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			CmdStyle.Render(name), status, d.Description, strings.Join(d.Commands, " "), note)

		if known && cfg.DependencyChecks {
			depWarnings = append(depWarnings, depcheck.Check(d)...)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, warning := range depWarnings {
		fmt.Fprintln(app.stderr, WarningStyle.Render("warning: ")+warning.String())
	}

	return nil
}

// enableModules enables the named modules in one batch. Every name must
// resolve in the catalog before anything is persisted.
func enableModules(ctx context.Context, app *App, names []string) error {
	doc, err := app.Store.Load(ctx)
	if err != nil {
		renderCompositionFailure(app, err)
		return err
	}

	// Resolve everything first: one unknown name rejects the whole batch.
	descriptors := make([]registry.ModuleDescriptor, 0, len(names))
	for _, name := range names {
		d, err := app.Registry.Get(registry.ModuleName(name))
		if err != nil {
			renderUnknownModule(app, name)
			return err
		}
		descriptors = append(descriptors, d)
	}

	for _, d := range descriptors {
		doc = modstate.SetEnabled(doc, d, true)
	}

	if err := app.Store.Save(ctx, doc); err != nil {
		return err
	}

	cfg := app.loadConfigWithFallback(ctx)
	for _, d := range descriptors {
		fmt.Fprintf(app.stdout, "%s Enabled module %s", SuccessStyle.Render("✓"), CmdStyle.Render(d.Name.String()))
		if len(d.Commands) > 0 {
			fmt.Fprintf(app.stdout, " (commands: %s)", strings.Join(d.Commands, ", "))
		}
		fmt.Fprintln(app.stdout)
		if cfg.DependencyChecks {
			for _, warning := range depcheck.Check(d) {
				fmt.Fprintln(app.stderr, WarningStyle.Render("warning: ")+warning.String())
			}
		}
	}

	return nil
}

// disableModules disables the named modules in one batch. Stale modules
// (persisted by another binary version but absent from this catalog) can
// still be disabled via their cached snapshot.
func disableModules(ctx context.Context, app *App, names []string) error {
	doc, err := app.Store.Load(ctx)
	if err != nil {
		renderCompositionFailure(app, err)
		return err
	}

	descriptors := make([]registry.ModuleDescriptor, 0, len(names))
	for _, name := range names {
		d, known := lookupDescriptor(app, doc, registry.ModuleName(name))
		if !known {
			renderUnknownModule(app, name)
			return &registry.UnknownModuleError{Name: registry.ModuleName(name)}
		}
		descriptors = append(descriptors, d)
	}

	for _, d := range descriptors {
		doc = modstate.SetEnabled(doc, d, false)
	}

	if err := app.Store.Save(ctx, doc); err != nil {
		return err
	}

	for _, d := range descriptors {
		fmt.Fprintf(app.stdout, "%s Disabled module %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(d.Name.String()))
	}

	return nil
}

// showModuleInfo prints the full record for one module.
func showModuleInfo(ctx context.Context, app *App, name string) error {
	doc, err := app.Store.Load(ctx)
	if err != nil {
		renderCompositionFailure(app, err)
		return err
	}

	moduleName := registry.ModuleName(name)
	d, known := lookupDescriptor(app, doc, moduleName)
	if !known {
		renderUnknownModule(app, name)
		return &registry.UnknownModuleError{Name: moduleName}
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render(name))
	fmt.Fprintln(app.stdout)

	status := SubtitleStyle.Render("disabled")
	if doc.IsEnabled(moduleName) {
		status = SuccessStyle.Render("enabled")
	}
	fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("Status"), status)
	fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("Description"), d.Description)

	fmt.Fprintf(app.stdout, "%s:", CmdStyle.Render("Commands"))
	if len(d.Commands) == 0 {
		fmt.Fprintf(app.stdout, " %s", SubtitleStyle.Render("(none)"))
	}
	for _, c := range d.Commands {
		fmt.Fprintf(app.stdout, " %s", c)
	}
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s:", CmdStyle.Render("Dependencies"))
	if len(d.Dependencies) == 0 {
		fmt.Fprintf(app.stdout, " %s", SubtitleStyle.Render("(none)"))
	}
	for _, dep := range d.Dependencies {
		fmt.Fprintf(app.stdout, " %s", dep)
	}
	fmt.Fprintln(app.stdout)

	switch {
	case !app.Registry.Has(moduleName):
		fmt.Fprintln(app.stdout, WarningStyle.Render("This module is not part of this build; only its saved state is shown."))
	case !app.Registry.HasProvider(moduleName):
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("This module is planned but has no commands in this build yet."))
	}

	cfg := app.loadConfigWithFallback(ctx)
	if cfg.DependencyChecks {
		for _, warning := range depcheck.Check(d) {
			fmt.Fprintln(app.stderr, WarningStyle.Render("warning: ")+warning.String())
		}
	}

	return nil
}

// lookupDescriptor resolves a descriptor from the catalog, falling back to
// the document's cached snapshot for modules this binary no longer ships.
// The second return is false when the name is known to neither.
func lookupDescriptor(app *App, doc *modstate.Document, name registry.ModuleName) (registry.ModuleDescriptor, bool) {
	if d, err := app.Registry.Get(name); err == nil {
		return d, true
	}
	state, ok := doc.ModuleStates[name.String()]
	if !ok {
		return registry.ModuleDescriptor{}, false
	}
	return registry.ModuleDescriptor{
		Name:         name,
		Description:  state.Description,
		Commands:     append([]string(nil), state.Commands...),
		Dependencies: append([]string(nil), state.Dependencies...),
	}, true
}

// renderUnknownModule points the user at the matching issue card.
func renderUnknownModule(app *App, name string) {
	fmt.Fprintln(app.stderr, ErrorStyle.Render("error: ")+fmt.Sprintf("unknown module %q", name))
	if card := issue.Get(issue.UnknownModuleId); card != nil {
		if rendered, err := card.Render("dark"); err == nil {
			fmt.Fprintln(app.stderr, rendered)
		}
	}
}

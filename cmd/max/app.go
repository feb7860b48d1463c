// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"maxcli/internal/catalog"
	"maxcli/internal/composer"
	"maxcli/internal/config"
	"maxcli/internal/modstate"
	"maxcli/internal/registry"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: all Cobra command handlers receive an App
	// reference and delegate business logic through its service interfaces.
	App struct {
		Config      ConfigProvider
		Registry    *registry.Registry
		Store       ModuleStore
		Diagnostics DiagnosticRenderer
		stdout      io.Writer
		stderr      io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. Tests can supply
	// mock implementations to isolate specific service behavior.
	Dependencies struct {
		Config      ConfigProvider
		Registry    *registry.Registry
		Store       ModuleStore
		Diagnostics DiagnosticRenderer
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// ModuleStore persists the modules document. Implementations must never
	// delete a corrupt file; they surface modstate.CorruptError instead.
	ModuleStore interface {
		Load(ctx context.Context) (*modstate.Document, error)
		Save(ctx context.Context, doc *modstate.Document) error
		Path() string
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// DiagnosticRenderer renders structured composition diagnostics.
	DiagnosticRenderer interface {
		Render(ctx context.Context, diags []composer.Diagnostic, stderr io.Writer)
	}

	defaultDiagnosticRenderer struct{}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Registry == nil {
		deps.Registry = catalog.Default()
	}
	if deps.Store == nil {
		store, err := modstate.NewStore(deps.Registry, catalog.DefaultEnabled)
		if err != nil {
			return nil, err
		}
		deps.Store = store
	}
	if deps.Diagnostics == nil {
		deps.Diagnostics = &defaultDiagnosticRenderer{}
	}

	return &App{
		Config:      deps.Config,
		Registry:    deps.Registry,
		Store:       deps.Store,
		Diagnostics: deps.Diagnostics,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}, nil
}

// loadConfigWithFallback loads configuration via the provider, returning
// defaults when loading fails so module management stays operational.
func (a *App) loadConfigWithFallback(ctx context.Context) *config.Config {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("warning: ")+formatErrorForDisplay(err, verbose))
		return config.DefaultConfig()
	}
	return cfg
}

// Render writes structured diagnostics to stderr with lipgloss styling.
func (r *defaultDiagnosticRenderer) Render(_ context.Context, diags []composer.Diagnostic, stderr io.Writer) {
	for _, diag := range diags {
		prefix := WarningStyle.Render("warning")
		if diag.Severity == composer.SeverityError {
			prefix = ErrorStyle.Render("error")
		}

		if diag.Module != "" {
			_, _ = fmt.Fprintf(stderr, "%s: %s (%s)\n", prefix, diag.Message, diag.Module)
			continue
		}

		_, _ = fmt.Fprintf(stderr, "%s: %s\n", prefix, diag.Message)
	}
}

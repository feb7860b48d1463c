// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidCoolifyConfig is the sentinel error wrapped by InvalidCoolifyConfigError.
	ErrInvalidCoolifyConfig = errors.New("invalid coolify config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not
	// recognized. It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidCoolifyConfigError is returned when a CoolifyConfig has invalid
	// fields. It wraps ErrInvalidCoolifyConfig for errors.Is() compatibility.
	InvalidCoolifyConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields. It
	// wraps ErrInvalidConfig and collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// DependencyChecks toggles external-binary presence warnings in
		// `max modules list` and `max modules enable` output.
		DependencyChecks bool `json:"dependency_checks" mapstructure:"dependency_checks"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Coolify configures the Coolify REST API module.
		Coolify CoolifyConfig `json:"coolify" mapstructure:"coolify"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// CoolifyConfig configures the coolify_manager module.
	CoolifyConfig struct {
		// BaseURL is the Coolify instance URL (e.g., "https://coolify.example.com").
		BaseURL string `json:"base_url" mapstructure:"base_url"`
		// TokenEnv names the environment variable holding the API token.
		// The token itself never lives in the config file.
		TokenEnv string `json:"token_env" mapstructure:"token_env"`
	}
)

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// IsValid returns whether the CoolifyConfig has valid fields. Both fields are
// optional, but a non-empty TokenEnv must not be whitespace-only and BaseURL
// must not carry a trailing slash ambiguity (whitespace-only is rejected).
func (c CoolifyConfig) IsValid() (bool, []error) {
	var errs []error
	if c.BaseURL != "" && strings.TrimSpace(c.BaseURL) == "" {
		errs = append(errs, fmt.Errorf("coolify base_url must not be whitespace-only"))
	}
	if c.TokenEnv != "" && strings.TrimSpace(c.TokenEnv) == "" {
		errs = append(errs, fmt.Errorf("coolify token_env must not be whitespace-only"))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidCoolifyConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCoolifyConfigError.
func (e *InvalidCoolifyConfigError) Error() string {
	return fmt.Sprintf("invalid coolify config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidCoolifyConfig for errors.Is() compatibility.
func (e *InvalidCoolifyConfigError) Unwrap() error { return ErrInvalidCoolifyConfig }

// IsValid returns whether the Config has valid fields. It delegates to
// UI.ColorScheme.IsValid() and Coolify.IsValid(); bool fields need no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Coolify.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DependencyChecks: true,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Coolify: CoolifyConfig{
			BaseURL:  "",
			TokenEnv: "COOLIFY_API_TOKEN",
		},
	}
}

// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"maxcli/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.DependencyChecks {
		t.Error("expected dependency checks to be enabled by default")
	}

	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}

	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}

	if cfg.Coolify.BaseURL != "" {
		t.Errorf("expected default coolify base_url to be empty, got %q", cfg.Coolify.BaseURL)
	}

	if cfg.Coolify.TokenEnv != "COOLIFY_API_TOKEN" {
		t.Errorf("expected default coolify token_env to be COOLIFY_API_TOKEN, got %q", cfg.Coolify.TokenEnv)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG path behavior is Linux-specific")
	}

	restoreXDG := testutil.MustSetenv(t, "XDG_CONFIG_HOME", "/tmp/test-xdg-config")
	defer restoreXDG()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}

	expected := filepath.Join("/tmp/test-xdg-config", AppName)
	if dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}

	testutil.MustUnsetenv(t, "XDG_CONFIG_HOME")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected = filepath.Join(home, ".config", AppName)
	if dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}
}

func TestConfigDir_Override(t *testing.T) {
	defer Reset()
	SetConfigDirOverride("/tmp/custom-config-dir")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if dir != "/tmp/custom-config-dir" {
		t.Errorf("ConfigDir() = %s, want override path", dir)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	provider := NewProvider()

	cfg, err := provider.Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	want := DefaultConfig()
	if cfg.DependencyChecks != want.DependencyChecks {
		t.Errorf("DependencyChecks = %v, want %v", cfg.DependencyChecks, want.DependencyChecks)
	}
	if cfg.UI.ColorScheme != want.UI.ColorScheme {
		t.Errorf("UI.ColorScheme = %v, want %v", cfg.UI.ColorScheme, want.UI.ColorScheme)
	}
	if cfg.Coolify.TokenEnv != want.Coolify.TokenEnv {
		t.Errorf("Coolify.TokenEnv = %v, want %v", cfg.Coolify.TokenEnv, want.Coolify.TokenEnv)
	}
}

func TestLoad_CUEFile(t *testing.T) {
	dir := t.TempDir()
	content := `dependency_checks: false

ui: {
	color_scheme: "dark"
	verbose:      true
}

coolify: {
	base_url:  "https://coolify.example.com"
	token_env: "MY_COOLIFY_TOKEN"
}
`
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), []byte(content), 0o644)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.DependencyChecks {
		t.Error("DependencyChecks should be false")
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("UI.ColorScheme = %s, want dark", cfg.UI.ColorScheme)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose should be true")
	}
	if cfg.Coolify.BaseURL != "https://coolify.example.com" {
		t.Errorf("Coolify.BaseURL = %q", cfg.Coolify.BaseURL)
	}
	if cfg.Coolify.TokenEnv != "MY_COOLIFY_TOKEN" {
		t.Errorf("Coolify.TokenEnv = %q", cfg.Coolify.TokenEnv)
	}
}

func TestLoad_PartialCUEFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), []byte(`ui: color_scheme: "light"`+"\n"), 0o644)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.UI.ColorScheme != ColorSchemeLight {
		t.Errorf("UI.ColorScheme = %s, want light", cfg.UI.ColorScheme)
	}
	// Unset fields keep their defaults.
	if !cfg.DependencyChecks {
		t.Error("DependencyChecks should keep its default value")
	}
	if cfg.Coolify.TokenEnv != "COOLIFY_API_TOKEN" {
		t.Errorf("Coolify.TokenEnv = %q, want default", cfg.Coolify.TokenEnv)
	}
}

func TestLoad_InvalidCUESyntax(t *testing.T) {
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), []byte("ui: {\n"), 0o644)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("Load() should fail on malformed CUE")
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), []byte(`ui: color_scheme: "purple"`+"\n"), 0o644)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("Load() should reject a color scheme outside the schema enum")
	}
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.cue")
	testutil.MustWriteFile(t, path, []byte("dependency_checks: false\n"), 0o644)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.DependencyChecks {
		t.Error("DependencyChecks should be false")
	}
}

func TestLoad_ExplicitConfigFileMustExist(t *testing.T) {
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: "/nonexistent/config.cue"})
	if err == nil {
		t.Fatal("Load() should fail when the explicit config file is missing")
	}
	if !strings.Contains(err.Error(), "/nonexistent/config.cue") {
		t.Errorf("error should name the missing path, got: %v", err)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if err == nil {
		t.Fatal("Load() should fail with a canceled context")
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	defer Reset()
	dir := t.TempDir()
	SetConfigDirOverride(dir)

	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}

	cfgPath := filepath.Join(dir, "config.cue")
	data := testutil.MustReadFile(t, cfgPath)
	if !strings.Contains(string(data), "dependency_checks") {
		t.Errorf("generated config should mention dependency_checks, got:\n%s", data)
	}

	// The generated file must load back cleanly.
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() of generated config returned error: %v", err)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("UI.ColorScheme = %s, want auto", cfg.UI.ColorScheme)
	}

	// A second call must not clobber an existing file.
	testutil.MustWriteFile(t, cfgPath, []byte("dependency_checks: false\n"), 0o644)
	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() returned error on existing file: %v", err)
	}
	data = testutil.MustReadFile(t, cfgPath)
	if !strings.Contains(string(data), "dependency_checks: false") {
		t.Error("CreateDefaultConfig() overwrote an existing config file")
	}
}

func TestSave_Roundtrip(t *testing.T) {
	defer Reset()
	dir := t.TempDir()
	SetConfigDirOverride(dir)

	cfg := DefaultConfig()
	cfg.DependencyChecks = false
	cfg.UI.ColorScheme = ColorSchemeDark
	cfg.Coolify.BaseURL = "https://coolify.example.com"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if loaded.DependencyChecks != cfg.DependencyChecks {
		t.Errorf("DependencyChecks = %v, want %v", loaded.DependencyChecks, cfg.DependencyChecks)
	}
	if loaded.UI.ColorScheme != cfg.UI.ColorScheme {
		t.Errorf("UI.ColorScheme = %v, want %v", loaded.UI.ColorScheme, cfg.UI.ColorScheme)
	}
	if loaded.Coolify.BaseURL != cfg.Coolify.BaseURL {
		t.Errorf("Coolify.BaseURL = %v, want %v", loaded.Coolify.BaseURL, cfg.Coolify.BaseURL)
	}
}

func TestSave_RejectsInvalidConfig(t *testing.T) {
	defer Reset()
	SetConfigDirOverride(t.TempDir())

	cfg := DefaultConfig()
	cfg.UI.ColorScheme = "purple"

	if err := Save(cfg); err == nil {
		t.Fatal("Save() should reject an invalid color scheme")
	}
}

func TestColorScheme_IsValid(t *testing.T) {
	tests := []struct {
		scheme ColorScheme
		want   bool
	}{
		{ColorSchemeAuto, true},
		{ColorSchemeDark, true},
		{ColorSchemeLight, true},
		{"purple", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.scheme), func(t *testing.T) {
			valid, errs := tt.scheme.IsValid()
			if valid != tt.want {
				t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.scheme, valid, tt.want)
			}
			if !tt.want && len(errs) == 0 {
				t.Error("invalid scheme should return a validation error")
			}
		})
	}
}

func TestGenerateCUE(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Coolify.BaseURL = "https://coolify.example.com"

	out := GenerateCUE(cfg)
	for _, want := range []string{
		"dependency_checks: true",
		`color_scheme: "auto"`,
		`base_url: "https://coolify.example.com"`,
		`token_env: "COOLIFY_API_TOKEN"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("GenerateCUE() should contain %q, got:\n%s", want, out)
		}
	}
}

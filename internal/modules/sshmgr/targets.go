// SPDX-License-Identifier: MPL-2.0

package sshmgr

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"maxcli/internal/config"
)

// TargetsFileName is the SSH target book file inside the config directory.
const TargetsFileName = "ssh_targets.json"

var (
	// ErrTargetExists is returned when adding a target under a taken name.
	ErrTargetExists = errors.New("ssh target already exists")
	// ErrTargetNotFound is returned when a named target is not in the book.
	ErrTargetNotFound = errors.New("ssh target not found")
)

type (
	// Target is a saved SSH connection profile.
	Target struct {
		User string `json:"user"`
		Host string `json:"host"`
		Port int    `json:"port"`
		Key  string `json:"key,omitempty"`
	}

	// TargetBook is the named collection of SSH targets persisted to disk.
	TargetBook struct {
		path    string
		targets map[string]Target
	}
)

// Validate checks the target fields. Port 0 means the default port 22 and is
// normalized by Add.
func (t Target) Validate() error {
	if t.User == "" {
		return errors.New("user must not be empty")
	}
	if t.Host == "" {
		return errors.New("host must not be empty")
	}
	if t.Port < 0 || t.Port > 65535 {
		return fmt.Errorf("port %d out of range", t.Port)
	}
	return nil
}

// OpenTargetBook loads the target book from the config directory, returning
// an empty book when no file exists yet.
func OpenTargetBook() (*TargetBook, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	return OpenTargetBookAt(filepath.Join(dir, TargetsFileName))
}

// OpenTargetBookAt loads the target book from an explicit path.
func OpenTargetBookAt(path string) (*TargetBook, error) {
	book := &TargetBook{path: path, targets: make(map[string]Target)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return book, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ssh targets: %w", err)
	}
	if err := json.Unmarshal(data, &book.targets); err != nil {
		return nil, fmt.Errorf("failed to parse ssh targets %s: %w", path, err)
	}
	return book, nil
}

// Names returns target names sorted alphabetically.
func (b *TargetBook) Names() []string {
	names := make([]string, 0, len(b.targets))
	for name := range b.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get resolves a target by name.
func (b *TargetBook) Get(name string) (Target, error) {
	t, ok := b.targets[name]
	if !ok {
		return Target{}, fmt.Errorf("%w: %q", ErrTargetNotFound, name)
	}
	return t, nil
}

// Add inserts a new target. Names are unique; adding over an existing name
// is rejected so a typo cannot silently overwrite a profile.
func (b *TargetBook) Add(name string, t Target) error {
	if name == "" {
		return errors.New("target name must not be empty")
	}
	if _, taken := b.targets[name]; taken {
		return fmt.Errorf("%w: %q", ErrTargetExists, name)
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid target %q: %w", name, err)
	}
	if t.Port == 0 {
		t.Port = 22
	}
	b.targets[name] = t
	return nil
}

// Remove deletes a target by name.
func (b *TargetBook) Remove(name string) error {
	if _, ok := b.targets[name]; !ok {
		return fmt.Errorf("%w: %q", ErrTargetNotFound, name)
	}
	delete(b.targets, name)
	return nil
}

// Len returns the number of targets in the book.
func (b *TargetBook) Len() int { return len(b.targets) }

// Save writes the book to disk atomically. The containing directory is
// created with 0700 and the file with 0600 since key paths and hostnames are
// private.
func (b *TargetBook) Save() error {
	data, err := json.MarshalIndent(b.targets, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ssh targets: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write ssh targets: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace ssh targets: %w", err)
	}
	return nil
}

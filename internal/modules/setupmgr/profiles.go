// SPDX-License-Identifier: MPL-2.0

package setupmgr

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"maxcli/internal/config"

	"github.com/pelletier/go-toml/v2"
)

// ProfilesFileName is the setup profile file inside the config directory.
const ProfilesFileName = "setup_profiles.toml"

// ErrProfileNotFound is returned when a named profile does not exist.
var ErrProfileNotFound = errors.New("setup profile not found")

type (
	// Profile is a named sequence of shell commands that provision part of a
	// development machine.
	Profile struct {
		Description string   `toml:"description"`
		Commands    []string `toml:"commands"`
	}

	// ProfileSet is the full profile file contents.
	ProfileSet struct {
		Profiles map[string]Profile `toml:"profiles"`
	}
)

// defaultProfiles mirrors the built-in minimal / dev-full / apps setups. They
// are written on first use so the user can edit them.
var defaultProfiles = ProfileSet{
	Profiles: map[string]Profile{
		"minimal": {
			Description: "Minimal terminal and git setup",
			Commands: []string{
				"brew install git zsh wget htop",
			},
		},
		"dev-full": {
			Description: "Complete development environment with languages and tools",
			Commands: []string{
				"brew install git node nvm python docker kubectl awscli terraform tmux",
			},
		},
		"apps": {
			Description: "Essential GUI applications",
			Commands: []string{
				"brew install --cask visual-studio-code slack google-chrome postman",
			},
		},
	},
}

// LoadProfiles reads the profile file from the config directory, writing the
// defaults first when no file exists yet.
func LoadProfiles() (*ProfileSet, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	return LoadProfilesAt(filepath.Join(dir, ProfilesFileName))
}

// LoadProfilesAt reads the profile file from an explicit path.
func LoadProfilesAt(path string) (*ProfileSet, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := writeDefaults(path); err != nil {
			return nil, err
		}
		set := defaultProfiles
		return &set, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read setup profiles: %w", err)
	}

	var set ProfileSet
	if err := toml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse setup profiles %s: %w", path, err)
	}
	if set.Profiles == nil {
		set.Profiles = make(map[string]Profile)
	}
	return &set, nil
}

func writeDefaults(path string) error {
	data, err := toml.Marshal(defaultProfiles)
	if err != nil {
		return fmt.Errorf("failed to encode default setup profiles: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write default setup profiles: %w", err)
	}
	return nil
}

// Names returns profile names sorted alphabetically.
func (s *ProfileSet) Names() []string {
	names := make([]string, 0, len(s.Profiles))
	for name := range s.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get resolves a profile by name.
func (s *ProfileSet) Get(name string) (Profile, error) {
	p, ok := s.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return p, nil
}

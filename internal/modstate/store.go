// SPDX-License-Identifier: MPL-2.0

package modstate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"maxcli/internal/config"
	"maxcli/internal/registry"

	"github.com/charmbracelet/log"
)

// FileName is the modules document file name under the config directory.
const FileName = "modules.json"

// Store loads and saves the modules document. All writes go through a
// temp-file-then-atomic-rename, so concurrent CLI invocations get
// last-writer-wins on whole documents and a reader can never observe a
// half-written file.
type Store struct {
	dir            string
	registry       *registry.Registry
	defaultEnabled []registry.ModuleName
	logger         *log.Logger
}

// NewStore creates a store rooted at the platform config directory.
func NewStore(reg *registry.Registry, defaultEnabled []registry.ModuleName) (*Store, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return NewStoreAt(dir, reg, defaultEnabled), nil
}

// NewStoreAt creates a store rooted at an explicit directory.
func NewStoreAt(dir string, reg *registry.Registry, defaultEnabled []registry.ModuleName) *Store {
	return &Store{
		dir:            dir,
		registry:       reg,
		defaultEnabled: defaultEnabled,
		logger:         log.Default(),
	}
}

// Path returns the absolute path of the modules document.
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Load reads the persisted document. A missing file synthesizes the default
// document (default-enabled set snapshotted from the registry) and persists
// it before returning. An unparsable or unmigratable file returns a
// CorruptError carrying the offending path; the file is never deleted.
func (s *Store) Load(ctx context.Context) (*Document, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load modules config canceled: %w", ctx.Err())
	default:
	}

	path := s.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			doc := NewDocument(s.registry, s.defaultEnabled)
			if err := s.Save(ctx, doc); err != nil {
				return nil, fmt.Errorf("failed to persist default modules config: %w", err)
			}
			s.logger.Debug("synthesized default modules config", "path", path)
			return doc, nil
		}
		return nil, fmt.Errorf("failed to read modules config: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &CorruptError{Path: path, Cause: err}
	}

	if _, ok := raw["schema_version"]; ok {
		return s.loadCurrent(path, data, raw)
	}

	doc, err := s.migrate(path, data, raw)
	if err != nil {
		return nil, err
	}
	// Persist the migrated document so the next load takes the fast path.
	if err := s.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to persist migrated modules config: %w", err)
	}
	s.logger.Debug("migrated legacy modules config", "path", path)
	return doc, nil
}

// loadCurrent decodes a schema-versioned document.
func (s *Store) loadCurrent(path string, data []byte, raw map[string]json.RawMessage) (*Document, error) {
	var version string
	if err := json.Unmarshal(raw["schema_version"], &version); err != nil {
		return nil, &CorruptError{Path: path, Cause: err}
	}
	if version != SchemaVersion {
		return nil, &UnsupportedSchemaError{Path: path, Version: version}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &CorruptError{Path: path, Cause: err}
	}
	if doc.ModuleStates == nil {
		doc.ModuleStates = make(map[string]ModuleState)
	}
	if doc.EnabledModules == nil {
		doc.EnabledModules = []string{}
	}
	if err := doc.Validate(); err != nil {
		return nil, &CorruptError{Path: path, Cause: err}
	}
	return &doc, nil
}

// Save validates the document invariant and atomically rewrites the whole
// file. Enabled names that no longer resolve in the registry are allowed
// (forward compatibility across binary versions); they are logged at debug
// level and surfaced as composition diagnostics rather than save failures.
func (s *Store) Save(ctx context.Context, doc *Document) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("save modules config canceled: %w", ctx.Err())
	default:
	}

	if err := doc.Validate(); err != nil {
		return err
	}
	for _, name := range doc.EnabledModules {
		if !s.registry.Has(registry.ModuleName(name)) {
			s.logger.Debug("enabled module not in this build", "module", name)
		}
	}

	data, err := encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode modules config: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := s.Path()
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write modules config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Best-effort cleanup of temp file
		return fmt.Errorf("failed to rename modules config: %w", err)
	}
	return nil
}

// encode renders the document with a stable layout so that saving a
// just-loaded document produces byte-identical output.
func encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// migrate upgrades pre-1.0 document formats:
//
//   - bootstrap format: {"enabled_modules": [...], "module_info": {...},
//     "created_at": "...", "bootstrap_version": "..."}
//   - flag format: a flat object of module-name → bool
//
// Anything else is unrecognized and reported as corrupt.
func (s *Store) migrate(path string, data []byte, raw map[string]json.RawMessage) (*Document, error) {
	if _, ok := raw["enabled_modules"]; ok {
		return s.migrateBootstrap(path, raw)
	}
	if flags, ok := decodeFlagFormat(data); ok {
		return s.migrateFlags(flags), nil
	}
	return nil, &CorruptError{Path: path, Cause: fmt.Errorf("unrecognized document format")}
}

// migrateBootstrap converts the bootstrap-era format. The module_info cache
// is carried over verbatim so modules unknown to this binary keep displaying.
func (s *Store) migrateBootstrap(path string, raw map[string]json.RawMessage) (*Document, error) {
	var enabled []string
	if err := json.Unmarshal(raw["enabled_modules"], &enabled); err != nil {
		return nil, &CorruptError{Path: path, Cause: fmt.Errorf("enabled_modules: %w", err)}
	}

	states := make(map[string]ModuleState)
	if info, ok := raw["module_info"]; ok {
		if err := json.Unmarshal(info, &states); err != nil {
			return nil, &CorruptError{Path: path, Cause: fmt.Errorf("module_info: %w", err)}
		}
	}

	createdAt := time.Now().UTC().Truncate(time.Second)
	if ts, ok := raw["created_at"]; ok {
		var v string
		if err := json.Unmarshal(ts, &v); err == nil {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				createdAt = t
			}
		}
	}

	doc := &Document{
		SchemaVersion:  SchemaVersion,
		CreatedAt:      createdAt,
		EnabledModules: enabled,
		ModuleStates:   states,
	}

	// Backfill state entries so the subset invariant holds for enabled names
	// the old module_info never recorded.
	for _, name := range enabled {
		if _, ok := doc.ModuleStates[name]; ok {
			continue
		}
		if d, err := s.registry.Get(registry.ModuleName(name)); err == nil {
			doc.ModuleStates[name] = stateFromDescriptor(d, true)
		} else {
			doc.ModuleStates[name] = ModuleState{Enabled: true, Commands: []string{}, Dependencies: []string{}}
		}
	}
	return doc, nil
}

// migrateFlags converts the oldest format, a flat module-name → bool map.
// Only names still present in the registry survive the conversion.
func (s *Store) migrateFlags(flags map[string]bool) *Document {
	var enabled []registry.ModuleName
	for _, d := range s.registry.All() {
		if flags[d.Name.String()] {
			enabled = append(enabled, d.Name)
		}
	}
	return NewDocument(s.registry, enabled)
}

// decodeFlagFormat reports whether the document is a flat name → bool map.
func decodeFlagFormat(data []byte) (map[string]bool, bool) {
	var flags map[string]bool
	if err := json.Unmarshal(data, &flags); err != nil {
		return nil, false
	}
	return flags, true
}

// Copyright 2026 SGNL.ai, Inc.
package schema

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

// Manager caches schema Definitions by name and persists them under a
// cache directory, grounded on schema.py's SchemaManager: construction
// globs `*.schema.json` out of cache_dir and loads every file found, per
// "_load_cached_schemas". The Python online-fetch branch of get_schema
// (fetch from client, then cache) is a literal `pass` no-op in
// original_source and is not ported; Manager is offline-only, matching
// SchemaManager(offline_mode=True).
type Manager struct {
	cacheDir string

	mu      sync.RWMutex
	schemas map[string]Definition
}

// NewManager constructs a Manager rooted at cacheDir, eagerly loading
// every "*.schema.json" file already present, per schema.py's
// SchemaManager.__init__ / _load_cached_schemas. A missing cacheDir is not
// an error: it behaves as an empty cache, same as the Python glob over a
// directory that does not yet exist.
func NewManager(cacheDir string) (*Manager, error) {
	m := &Manager{cacheDir: cacheDir, schemas: make(map[string]Definition)}

	matches, err := filepath.Glob(filepath.Join(cacheDir, "*.schema.json"))
	if err != nil {
		return nil, fmt.Errorf("schema: invalid cache dir %q: %w", cacheDir, err)
	}

	for _, path := range matches {
		def, err := Load(path)
		if err != nil {
			// schema.py's loader prints a warning and skips the bad file
			// rather than failing the whole manager; do the same.
			continue
		}

		m.schemas[def.Name] = def
	}

	return m, nil
}

// GetSchema returns the cached Definition for name, loading it from disk
// by convention ({cache_dir}/{name}.schema.json) if it is not already in
// memory, per schema.py's SchemaManager.get_schema.
func (m *Manager) GetSchema(name string) (Definition, error) {
	m.mu.RLock()
	def, ok := m.schemas[name]
	m.mu.RUnlock()

	if ok {
		return def, nil
	}

	path := filepath.Join(m.cacheDir, fileName(name))

	def, err := Load(path)
	if err != nil {
		return Definition{}, dcerrors.NewValidationError(fmt.Sprintf("schema: no cached schema named %q", name))
	}

	m.mu.Lock()
	m.schemas[def.Name] = def
	m.mu.Unlock()

	return def, nil
}

// RegisterSchema adds or replaces a Definition in memory and persists it
// to the cache directory, per schema.py's SchemaManager pattern of
// save()-ing a SchemaDefinition once it is known.
func (m *Manager) RegisterSchema(def Definition) error {
	if def.Name == "" {
		return dcerrors.NewValidationError("schema: name must not be empty")
	}

	if _, err := def.Save(m.cacheDir); err != nil {
		return err
	}

	m.mu.Lock()
	m.schemas[def.Name] = def
	m.mu.Unlock()

	return nil
}

// ListSchemas returns every cached schema name, sorted, per spec.md §3's
// "lists known schemas" operation.
func (m *Manager) ListSchemas() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.schemas))
	for name := range m.schemas {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Validate checks data's fields against the named schema's required_fields
// and field types, returning one message per violation (an empty slice
// means valid), per ext/providers/schema.py's SchemaProvider.validate
// contract ("returns a list of validation errors; empty = valid").
func (m *Manager) Validate(name string, data map[string]any) ([]string, error) {
	def, err := m.GetSchema(name)
	if err != nil {
		return nil, err
	}

	var errs []string

	for _, req := range def.RequiredFields {
		if _, ok := data[req]; !ok {
			errs = append(errs, fmt.Sprintf("missing required field %q", req))
		}
	}

	for field, value := range data {
		spec, ok := def.Fields[field]
		if !ok || spec.Type == "" {
			continue
		}

		if !matchesJSONType(value, spec.Type) {
			errs = append(errs, fmt.Sprintf("field %q: expected type %q, got %T", field, spec.Type, value))
		}
	}

	return errs, nil
}

// matchesJSONType checks a decoded JSON value against a JSON Schema
// primitive type name, mirroring schema.py's _python_type_from_json_type
// table (string/integer/number/boolean/array/object) adapted to the
// dynamic types encoding/json actually produces.
func matchesJSONType(v any, jsonType string) bool {
	switch jsonType {
	case "string":
		_, ok := v.(string)
		return ok
	case "integer":
		f, ok := v.(float64)
		return ok && f == float64(int64(f))
	case "number":
		_, ok := v.(float64)
		return ok
	case "boolean":
		_, ok := v.(bool)
		return ok
	case "array":
		_, ok := v.([]any)
		return ok
	case "object":
		_, ok := v.(map[string]any)
		return ok
	default:
		return true
	}
}

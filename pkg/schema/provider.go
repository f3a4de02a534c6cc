// Copyright 2026 SGNL.ai, Inc.
package schema

import "fmt"

// Provider is spec.md §2's Schema Provider extension point, grounded on
// ext/providers/schema.py's SchemaProvider abstract base (get_schema,
// list_schemas, validate, register_schema).
type Provider interface {
	// GetSchema returns the JSON-Schema-shaped map for name.
	GetSchema(name string) (map[string]any, error)
	// ListSchemas returns every schema name the provider knows about.
	ListSchemas() ([]string, error)
	// Validate returns one message per violation; an empty slice means data
	// is valid against name's schema.
	Validate(name string, data map[string]any) ([]string, error)
	// RegisterSchema adds a new schema. Providers that only read an
	// upstream source may reject this, per schema.py's default
	// register_schema raising NotImplementedError.
	RegisterSchema(name string, def map[string]any) error
}

// ManagerProvider adapts a *Manager to Provider, the concrete, file-backed
// Schema Provider this repo ships, per spec.md §2's table entry for "Data
// / Schema / Transform Providers".
type ManagerProvider struct {
	manager *Manager
}

// NewManagerProvider wraps manager as a Provider.
func NewManagerProvider(manager *Manager) *ManagerProvider {
	return &ManagerProvider{manager: manager}
}

// GetSchema implements Provider.
func (p *ManagerProvider) GetSchema(name string) (map[string]any, error) {
	def, err := p.manager.GetSchema(name)
	if err != nil {
		return nil, err
	}

	return def.ToJSONSchema(), nil
}

// ListSchemas implements Provider.
func (p *ManagerProvider) ListSchemas() ([]string, error) {
	return p.manager.ListSchemas(), nil
}

// Validate implements Provider.
func (p *ManagerProvider) Validate(name string, data map[string]any) ([]string, error) {
	return p.manager.Validate(name, data)
}

// RegisterSchema implements Provider by parsing def as a JSON-Schema
// object and persisting it through the Manager, unlike schema.py's default
// SchemaProvider.register_schema (which raises NotImplementedError) —
// ManagerProvider backs a writable file cache, so registration is
// supported.
func (p *ManagerProvider) RegisterSchema(name string, def map[string]any) error {
	if name == "" {
		return fmt.Errorf("schema: name must not be empty")
	}

	parsed := fromJSONSchema(def, name)
	parsed.Name = name

	return p.manager.RegisterSchema(parsed)
}

// Copyright 2026 SGNL.ai, Inc.

// Package schema implements spec.md §3's SchemaDefinition entity
// ("named descriptor {name, description, fields, required_fields}...
// Round-trips to JSON Schema") and §6's schema file format ("one
// JSON-Schema-shaped file per entity at {cache_dir}/{name}.schema.json,
// with title, description, properties, required"). Grounded directly on
// original_source's src/dc_api_x/schema.py (SchemaDefinition/SchemaManager):
// this port keeps its name/description/fields/required_fields shape and
// its save-to/load-from-cache-dir behavior, replacing SchemaManager's
// Pydantic create_model step (dynamic class generation, out of scope per
// spec.md §1's "Non-goals: schema-driven code generation at build time")
// with a plain field-type validator instead.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FieldSpec is one field's {type, constraints} entry of spec.md §3. It
// round-trips through JSON Schema's flat property-object shape: Type and
// Constraints (e.g. "minLength", "format", "enum") are merged into one
// object on the way out (MarshalJSON) and split back apart on the way in
// (UnmarshalJSON).
type FieldSpec struct {
	Type        string
	Constraints map[string]any
}

// MarshalJSON flattens Type and Constraints into a single JSON Schema
// property object.
func (f FieldSpec) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(f.Constraints)+1)

	for k, v := range f.Constraints {
		out[k] = v
	}

	if f.Type != "" {
		out["type"] = f.Type
	}

	return json.Marshal(out)
}

// UnmarshalJSON splits a flat JSON Schema property object back into Type
// and Constraints.
func (f *FieldSpec) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f.Constraints = make(map[string]any, len(raw))

	for k, v := range raw {
		if k == "type" {
			if s, ok := v.(string); ok {
				f.Type = s
			}

			continue
		}

		f.Constraints[k] = v
	}

	return nil
}

// Definition is spec.md §3's SchemaDefinition.
type Definition struct {
	Name           string
	Description    string
	Fields         map[string]FieldSpec
	RequiredFields []string
}

// ToJSONSchema implements spec.md §3's "Round-trips to JSON Schema" and
// §6's file shape (title/description/properties/required), grounded on
// schema.py's SchemaDefinition.to_json_schema.
func (d Definition) ToJSONSchema() map[string]any {
	out := map[string]any{
		"type":        "object",
		"title":       d.Name,
		"description": d.Description,
		"properties":  d.Fields,
	}

	if len(d.RequiredFields) > 0 {
		out["required"] = d.RequiredFields
	}

	return out
}

// fileName implements spec.md §6's "{cache_dir}/{name}.schema.json" naming
// rule, grounded on schema.py's `f"{self.name.lower()}.schema.json"`.
func fileName(name string) string {
	return strings.ToLower(name) + ".schema.json"
}

// Save writes d to {dir}/{name}.schema.json, creating dir if it does not
// exist, and returns the path written, per schema.py's SchemaDefinition.save.
func (d Definition) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("schema: failed to create cache dir %q: %w", dir, err)
	}

	path := filepath.Join(dir, fileName(d.Name))

	data, err := json.MarshalIndent(d.ToJSONSchema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("schema: failed to marshal %q: %w", d.Name, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // schema cache files are not secrets
		return "", fmt.Errorf("schema: failed to write %q: %w", path, err)
	}

	return path, nil
}

// Load reads one schema file back into a Definition, per schema.py's
// SchemaDefinition.load: the schema's name defaults to the file's basename
// (minus ".schema.json") when the file has no "title" key.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled, not request-derived
	if err != nil {
		return Definition{}, fmt.Errorf("schema: failed to read %q: %w", path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Definition{}, fmt.Errorf("schema: invalid schema file %q: %w", path, err)
	}

	return fromJSONSchema(raw, defaultName(path)), nil
}

func defaultName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".schema.json")
}

func fromJSONSchema(raw map[string]any, fallbackName string) Definition {
	name, _ := raw["title"].(string)
	if name == "" {
		name = fallbackName
	}

	description, _ := raw["description"].(string)

	fields := make(map[string]FieldSpec)
	if props, ok := raw["properties"].(map[string]any); ok {
		for fname, fv := range props {
			if fm, ok := fv.(map[string]any); ok {
				fields[fname] = fieldSpecFromMap(fm)
			}
		}
	}

	var required []string

	if req, ok := raw["required"].([]any); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				required = append(required, s)
			}
		}
	}

	return Definition{Name: name, Description: description, Fields: fields, RequiredFields: required}
}

func fieldSpecFromMap(m map[string]any) FieldSpec {
	fs := FieldSpec{Constraints: make(map[string]any, len(m))}

	for k, v := range m {
		if k == "type" {
			if s, ok := v.(string); ok {
				fs.Type = s
			}

			continue
		}

		fs.Constraints[k] = v
	}

	return fs
}

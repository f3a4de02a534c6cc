// Copyright 2026 SGNL.ai, Inc.
package schema_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc-api-x/dcapix/pkg/schema"
)

func TestDefinitionToJSONSchema(t *testing.T) {
	def := schema.Definition{
		Name:        "User",
		Description: "a user record",
		Fields: map[string]schema.FieldSpec{
			"email": {Type: "string"},
		},
		RequiredFields: []string{"email"},
	}

	out := def.ToJSONSchema()

	assert.Equal(t, "object", out["type"])
	assert.Equal(t, "User", out["title"])
	assert.Equal(t, "a user record", out["description"])
	assert.Equal(t, []string{"email"}, out["required"])
}

func TestDefinitionToJSONSchemaOmitsEmptyRequired(t *testing.T) {
	def := schema.Definition{Name: "Thing"}

	out := def.ToJSONSchema()

	_, ok := out["required"]
	assert.False(t, ok)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	def := schema.Definition{
		Name:        "Widget",
		Description: "a widget",
		Fields: map[string]schema.FieldSpec{
			"id":    {Type: "string"},
			"count": {Type: "integer"},
		},
		RequiredFields: []string{"id"},
	}

	path, err := def.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "widget.schema.json"), path)

	loaded, err := schema.Load(path)
	require.NoError(t, err)
	assert.Equal(t, def.Name, loaded.Name)
	assert.Equal(t, def.Description, loaded.Description)
	assert.Equal(t, def.RequiredFields, loaded.RequiredFields)
	assert.Equal(t, "string", loaded.Fields["id"].Type)
	assert.Equal(t, "integer", loaded.Fields["count"].Type)
}

func TestLoadReadsNameFromTitle(t *testing.T) {
	dir := t.TempDir()

	_, err := schema.Definition{Name: "Orphan"}.Save(dir)
	require.NoError(t, err)

	loaded, err := schema.Load(filepath.Join(dir, "orphan.schema.json"))
	require.NoError(t, err)
	assert.Equal(t, "Orphan", loaded.Name)
}

func TestManagerLoadsCachedSchemas(t *testing.T) {
	dir := t.TempDir()

	_, err := schema.Definition{
		Name:           "Account",
		RequiredFields: []string{"id"},
		Fields:         map[string]schema.FieldSpec{"id": {Type: "string"}},
	}.Save(dir)
	require.NoError(t, err)

	mgr, err := schema.NewManager(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Account"}, mgr.ListSchemas())

	def, err := mgr.GetSchema("Account")
	require.NoError(t, err)
	assert.Equal(t, "Account", def.Name)
}

func TestManagerRegisterAndValidate(t *testing.T) {
	dir := t.TempDir()

	mgr, err := schema.NewManager(dir)
	require.NoError(t, err)

	err = mgr.RegisterSchema(schema.Definition{
		Name:           "Account",
		RequiredFields: []string{"id"},
		Fields: map[string]schema.FieldSpec{
			"id": {Type: "string"},
		},
	})
	require.NoError(t, err)

	violations, err := mgr.Validate("Account", map[string]any{"id": "a1"})
	require.NoError(t, err)
	assert.Empty(t, violations)

	violations, err = mgr.Validate("Account", map[string]any{})
	require.NoError(t, err)
	assert.Contains(t, violations, `missing required field "id"`)

	violations, err = mgr.Validate("Account", map[string]any{"id": 42})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "expected type")
}

func TestManagerGetSchemaUnknown(t *testing.T) {
	mgr, err := schema.NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = mgr.GetSchema("missing")
	assert.Error(t, err)
}

func TestManagerProviderRoundTrip(t *testing.T) {
	dir := t.TempDir()

	mgr, err := schema.NewManager(dir)
	require.NoError(t, err)

	provider := schema.NewManagerProvider(mgr)

	err = provider.RegisterSchema("Order", map[string]any{
		"properties": map[string]any{
			"sku": map[string]any{"type": "string"},
		},
		"required": []any{"sku"},
	})
	require.NoError(t, err)

	names, err := provider.ListSchemas()
	require.NoError(t, err)
	assert.Equal(t, []string{"Order"}, names)

	got, err := provider.GetSchema("Order")
	require.NoError(t, err)
	assert.Equal(t, "Order", got["title"])

	violations, err := provider.Validate("Order", map[string]any{})
	require.NoError(t, err)
	assert.Contains(t, violations, `missing required field "sku"`)
}

// Copyright 2026 SGNL.ai, Inc.
package transform_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc-api-x/dcapix/pkg/transform"
)

func TestFieldMapperTransform(t *testing.T) {
	mapper := transform.NewFieldMapper(map[string]string{
		"first_name": "FirstName",
		"last_name":  "LastName",
	})

	out, err := mapper.Transform(context.Background(), map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"unmapped":   "dropped",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"FirstName": "Ada", "LastName": "Lovelace"}, out)
}

func TestFieldMapperBatchTransform(t *testing.T) {
	mapper := transform.NewFieldMapper(map[string]string{"id": "ID"})

	out, err := mapper.BatchTransform(context.Background(), []map[string]any{
		{"id": "1"},
		{"id": "2"},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0]["ID"])
	assert.Equal(t, "2", out[1]["ID"])
}

func TestFieldMapperCanTransform(t *testing.T) {
	mapper := transform.NewFieldMapper(nil)

	assert.True(t, mapper.CanTransform("map", "map"))
	assert.False(t, mapper.CanTransform("map", "struct"))
	assert.Equal(t, [][2]string{{"map", "map"}}, mapper.SupportedTransforms())
}

var _ transform.Provider[map[string]any, map[string]any] = (*transform.FieldMapper)(nil)

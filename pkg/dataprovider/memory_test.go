// Copyright 2026 SGNL.ai, Inc.
package dataprovider_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc-api-x/dcapix/pkg/dataprovider"
)

type widget struct {
	Name string
}

func TestMemoryProviderCRUD(t *testing.T) {
	ctx := context.Background()
	p := dataprovider.NewMemoryProvider[widget]()

	created, err := p.Create(ctx, "w1", widget{Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, "a", created.Name)

	all, err := p.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got, ok, err := p.Get(ctx, "w1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", got.Name)

	updated, err := p.Update(ctx, "w1", widget{Name: "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", updated.Name)

	require.NoError(t, p.Delete(ctx, "w1"))

	_, ok, err = p.Get(ctx, "w1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryProviderCreateDuplicateKeyFails(t *testing.T) {
	ctx := context.Background()
	p := dataprovider.NewMemoryProvider[widget]()

	_, err := p.Create(ctx, "w1", widget{Name: "a"})
	require.NoError(t, err)

	_, err = p.Create(ctx, "w1", widget{Name: "b"})
	assert.Error(t, err)
}

func TestMemoryProviderUpdateUnknownKeyFails(t *testing.T) {
	p := dataprovider.NewMemoryProvider[widget]()

	_, err := p.Update(context.Background(), "missing", widget{Name: "x"})
	assert.Error(t, err)
}

func TestMemoryProviderBatchOperations(t *testing.T) {
	ctx := context.Background()
	p := dataprovider.NewMemoryProvider[widget]()

	created, err := p.BatchCreate(ctx, map[string]widget{"a": {Name: "a"}, "b": {Name: "b"}})
	require.NoError(t, err)
	require.Len(t, created, 2)

	got, err := p.BatchGet(ctx, []string{"a", "b", "missing"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	updated, err := p.BatchUpdate(ctx, map[string]widget{"a": {Name: "updated"}})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated["a"].Name)

	require.NoError(t, p.BatchDelete(ctx, []string{"a", "b"}))

	all, err := p.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryProviderBatchCreateDuplicateKeyFailsAtomically(t *testing.T) {
	ctx := context.Background()
	p := dataprovider.NewMemoryProvider[widget]()

	_, err := p.Create(ctx, "a", widget{Name: "a"})
	require.NoError(t, err)

	_, err = p.BatchCreate(ctx, map[string]widget{"a": {Name: "dup"}, "c": {Name: "c"}})
	assert.Error(t, err)

	// The non-conflicting "c" entry must not have been applied either.
	_, ok, err := p.Get(ctx, "c")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryProviderBatchUpdateUnknownKeyFailsAtomically(t *testing.T) {
	ctx := context.Background()
	p := dataprovider.NewMemoryProvider[widget]()

	_, err := p.BatchUpdate(ctx, map[string]widget{"missing": {Name: "x"}})
	assert.Error(t, err)
}

// Copyright 2026 SGNL.ai, Inc.

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc-api-x/dcapix/pkg/adapter/cache"
)

func TestSetGet_RoundTrips(t *testing.T) {
	c := cache.New()

	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), 0))

	got, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestGet_MissingKeyReturnsFalse(t *testing.T) {
	c := cache.New()

	_, ok, err := c.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSet_TTLExpires(t *testing.T) {
	c := cache.New()

	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), 1))
	time.Sleep(1100 * time.Millisecond)

	_, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete_RemovesKey(t *testing.T) {
	c := cache.New()
	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), 0))
	require.NoError(t, c.Delete(context.Background(), "k"))

	_, ok, _ := c.Get(context.Background(), "k")
	assert.False(t, ok)
}

func TestClear_RemovesAllKeys(t *testing.T) {
	c := cache.New()
	require.NoError(t, c.Set(context.Background(), "a", []byte("1"), 0))
	require.NoError(t, c.Set(context.Background(), "b", []byte("2"), 0))
	require.NoError(t, c.Clear(context.Background()))

	_, ok, _ := c.Get(context.Background(), "a")
	assert.False(t, ok)
}

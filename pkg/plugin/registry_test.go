// Copyright 2025 SGNL.ai, Inc.
package plugin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/dcapi"
	"github.com/dc-api-x/dcapix/pkg/plugin"
)

type fakePlugin struct {
	plugin.NoopPlugin

	name string
}

func (p *fakePlugin) RegisterAdapters(r *plugin.Registry) {
	_ = r.Register(plugin.KindAdapter, p.name, func() adapter.Adapter { return nil })
}

func (p *fakePlugin) RegisterRequestHooks(r *plugin.Registry) {
	_ = r.Register(plugin.KindRequestHook, p.name, func() {})
}

type failingPlugin struct {
	plugin.NoopPlugin
}

func (failingPlugin) Initialize(context.Context) error {
	return errors.New("boom")
}

func TestRegistry_RegisterLookupList(t *testing.T) {
	r := plugin.NewRegistry(nil)

	require.NoError(t, r.Register(plugin.KindAdapter, "http", "factory"))

	v, ok := r.Lookup(plugin.KindAdapter, "http")
	require.True(t, ok)
	assert.Equal(t, "factory", v)

	assert.Equal(t, []string{"http"}, r.List(plugin.KindAdapter))
}

func TestRegistry_Register_UnknownKind(t *testing.T) {
	r := plugin.NewRegistry(nil)

	err := r.Register(plugin.Kind("bogus"), "x", "y")
	assert.Error(t, err)
}

func TestRegistry_RegisterAfterFreeze_Fails(t *testing.T) {
	r := plugin.NewRegistry(nil)
	r.Freeze()

	assert.True(t, r.IsFrozen())

	err := r.Register(plugin.KindAdapter, "http", "factory")
	assert.Error(t, err)
}

func TestRegistry_LoadPlugins_RunsRegistrarsAndFreezes(t *testing.T) {
	r := plugin.NewRegistry(nil)

	plugin.RegisterPlugin("test-fake-plugin", func(context.Context) (plugin.Plugin, error) {
		return &fakePlugin{name: "test-fake-plugin"}, nil
	})

	r.LoadPlugins(context.Background(), nil)

	_, ok := r.Lookup(plugin.KindAdapter, "test-fake-plugin")
	assert.True(t, ok)

	_, ok = r.Lookup(plugin.KindRequestHook, "test-fake-plugin")
	assert.True(t, ok)

	require.Len(t, r.Plugins(), 1)
	assert.True(t, r.IsFrozen())
}

func TestRegistry_LoadPlugins_FailingPluginDoesNotBlockOthers(t *testing.T) {
	r := plugin.NewRegistry(nil)

	plugin.RegisterPlugin("test-failing-plugin", func(context.Context) (plugin.Plugin, error) {
		return failingPlugin{}, nil
	})
	plugin.RegisterPlugin("test-second-fake-plugin", func(context.Context) (plugin.Plugin, error) {
		return &fakePlugin{name: "test-second-fake-plugin"}, nil
	})

	r.LoadPlugins(context.Background(), nil)

	_, ok := r.Lookup(plugin.KindAdapter, "test-second-fake-plugin")
	assert.True(t, ok)
}

func TestNoopPlugin_OnError_ReturnsNilMeaningUnsuppressed(t *testing.T) {
	var p plugin.NoopPlugin

	resp, err := p.OnError(context.Background(), "GET", "https://example.com", errors.New("boom"), adapter.RequestOptions{})
	require.NoError(t, err)
	assert.Nil(t, resp)

	_ = dcapi.ApiResponse{}
}

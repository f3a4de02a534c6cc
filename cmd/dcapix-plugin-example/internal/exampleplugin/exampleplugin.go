// Copyright 2026 SGNL.ai, Inc.

// Package exampleplugin demonstrates the discover-once plugin lifecycle
// of spec.md §4.7/§9: it advertises itself via plugin.RegisterPlugin from
// init(), then stamps an outgoing header from its BeforeRequest plugin
// interception point.
package exampleplugin

import (
	"context"

	"go.uber.org/zap"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/dataprovider"
	"github.com/dc-api-x/dcapix/pkg/plugin"
	"github.com/dc-api-x/dcapix/pkg/schema"
	"github.com/dc-api-x/dcapix/pkg/transform"
)

func init() {
	plugin.RegisterPlugin("example", func(context.Context) (plugin.Plugin, error) {
		return &Plugin{}, nil
	})
}

// Plugin adds an X-Dcapix-Plugin header to every outgoing request.
type Plugin struct {
	plugin.NoopPlugin
}

var (
	_ plugin.AdapterRegistrar           = (*Plugin)(nil)
	_ plugin.SchemaProviderRegistrar    = (*Plugin)(nil)
	_ plugin.DataProviderRegistrar      = (*Plugin)(nil)
	_ plugin.TransformProviderRegistrar = (*Plugin)(nil)
)

func (p *Plugin) Initialize(context.Context) error {
	return nil
}

// RegisterAdapters is a no-op; this plugin registers no adapter (only the
// schema, data and transform providers below), but implements the
// registrar interface to demonstrate the pattern for plugins that do
// register adapters.
func (p *Plugin) RegisterAdapters(*plugin.Registry) {}

// RegisterSchemaProviders wires a file-backed schema.ManagerProvider into
// the registry under the name "example", grounded on spec.md §2's Schema
// Provider extension point. Schemas cache under ./schemas, matching
// schema.py's SchemaManager default cache_dir.
func (p *Plugin) RegisterSchemaProviders(r *plugin.Registry) {
	mgr, err := schema.NewManager("./schemas")
	if err != nil {
		return
	}

	_ = r.Register(plugin.KindSchemaProvider, "example", schema.NewManagerProvider(mgr))
}

// RegisterDataProviders wires an in-memory dataprovider.MemoryProvider
// into the registry under the name "example", demonstrating the Data
// Provider extension point of spec.md §2 against a backend with no HTTP
// resource of its own.
func (p *Plugin) RegisterDataProviders(r *plugin.Registry) {
	_ = r.Register(plugin.KindDataProvider, "example", dataprovider.NewMemoryProvider[map[string]any]())
}

// RegisterTransformProviders wires a transform.FieldMapper into the
// registry under the name "example", demonstrating the Transform Provider
// extension point of spec.md §2.
func (p *Plugin) RegisterTransformProviders(r *plugin.Registry) {
	_ = r.Register(plugin.KindTransformProvider, "example", transform.NewFieldMapper(map[string]string{
		"id": "ID",
	}))
}

func (p *Plugin) BeforeRequest(
	ctx context.Context, method, url string, opts adapter.RequestOptions,
) (adapter.RequestOptions, error) {
	if opts.Headers == nil {
		opts.Headers = make(map[string]string, 1)
	}

	opts.Headers["X-Dcapix-Plugin"] = "example"

	return opts, nil
}

// Logger returns a nop logger; exported so the demo main can confirm the
// plugin loaded without wiring a shared logger through the registry.
func Logger() *zap.Logger { return zap.NewNop() }

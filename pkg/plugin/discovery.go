// Copyright 2025 SGNL.ai, Inc.
package plugin

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dc-api-x/dcapix/pkg/dclog/fields"
)

// Factory constructs one Plugin instance.
type Factory func(ctx context.Context) (Plugin, error)

// Entry is one discovered plugin: a name plus the factory that builds it.
// This is the Go analog of spec.md §6's dc_api_x.plugins entry-point group:
// rather than a runtime-enumerable process entry point, a plugin package
// advertises itself by calling RegisterPlugin from an init() function —
// the same "advertise a named extension at process start" idea, made
// explicit and compile-time checked per spec.md §9.
type Entry struct {
	Name    string
	Factory Factory
}

var (
	discoveredMu sync.Mutex
	discovered   []Entry
)

// RegisterPlugin advertises a plugin factory under name. Call from an
// init() function in the plugin's package, grounded on the teacher's
// cmd/adapter/main.go / cmd/ldap-adapter/main.go pattern of wiring one
// named adapter into a server at process start (server.RegisterAdapter),
// generalized here to a single discoverable set instead of one literal
// call per vendor package.
func RegisterPlugin(name string, factory Factory) {
	discoveredMu.Lock()
	defer discoveredMu.Unlock()

	discovered = append(discovered, Entry{Name: name, Factory: factory})
}

// DiscoveredPlugins returns every plugin advertised via RegisterPlugin so
// far. Exported primarily for tests that want to inspect what LoadPlugins
// will see without mutating the global registry.
func DiscoveredPlugins() []Entry {
	discoveredMu.Lock()
	defer discoveredMu.Unlock()

	out := make([]Entry, len(discovered))
	copy(out, discovered)

	return out
}

// AdapterRegistrar, if implemented by a loaded plugin, is called after
// Initialize to let the plugin register named adapter factories.
type AdapterRegistrar interface {
	RegisterAdapters(r *Registry)
}

// AuthProviderRegistrar registers named auth provider factories.
type AuthProviderRegistrar interface {
	RegisterAuthProviders(r *Registry)
}

// SchemaProviderRegistrar registers named schema provider factories.
type SchemaProviderRegistrar interface {
	RegisterSchemaProviders(r *Registry)
}

// ConfigProviderRegistrar registers named config provider factories.
type ConfigProviderRegistrar interface {
	RegisterConfigProviders(r *Registry)
}

// DataProviderRegistrar registers named data provider factories.
type DataProviderRegistrar interface {
	RegisterDataProviders(r *Registry)
}

// TransformProviderRegistrar registers named transform provider factories.
type TransformProviderRegistrar interface {
	RegisterTransformProviders(r *Registry)
}

// PaginationProviderRegistrar registers named pagination strategy factories.
type PaginationProviderRegistrar interface {
	RegisterPaginationProviders(r *Registry)
}

// RequestHookRegistrar registers named request hook factories.
type RequestHookRegistrar interface {
	RegisterRequestHooks(r *Registry)
}

// ResponseHookRegistrar registers named response hook factories.
type ResponseHookRegistrar interface {
	RegisterResponseHooks(r *Registry)
}

// ErrorHookRegistrar registers named error hook factories.
type ErrorHookRegistrar interface {
	RegisterErrorHooks(r *Registry)
}

// ApiResponseHookRegistrar registers named api-response hook factories.
type ApiResponseHookRegistrar interface {
	RegisterApiResponseHooks(r *Registry)
}

// LoadPlugins is the discovery step of spec.md §4.7: for each entry
// advertised via RegisterPlugin, it constructs the plugin, calls
// Initialize, and invokes every registration interface the plugin
// implements. A single failing plugin is logged and skipped; it does not
// prevent the others from loading. LoadPlugins is idempotent, guarded by
// r's loaded flag: a second call is a no-op. After every discovered plugin
// has run, r is frozen — per spec.md §9's "init → load → freeze".
func (r *Registry) LoadPlugins(ctx context.Context, logger *zap.Logger) {
	r.mu.Lock()

	if r.loaded {
		r.mu.Unlock()

		return
	}

	r.loaded = true
	r.mu.Unlock()

	if logger == nil {
		logger = r.logger
	}

	for _, entry := range DiscoveredPlugins() {
		p, err := entry.Factory(ctx)
		if err != nil {
			logger.Warn("failed to construct plugin", fields.Plugin(entry.Name), zap.Error(err))

			continue
		}

		if err := p.Initialize(ctx); err != nil {
			logger.Warn("plugin failed to initialize", fields.Plugin(entry.Name), zap.Error(err))

			continue
		}

		r.registerFrom(p)

		r.mu.Lock()
		r.plugins = append(r.plugins, p)
		r.mu.Unlock()

		logger.Info("loaded plugin", fields.Plugin(entry.Name))
	}

	r.Freeze()
}

func (r *Registry) registerFrom(p Plugin) {
	if reg, ok := p.(AdapterRegistrar); ok {
		reg.RegisterAdapters(r)
	}

	if reg, ok := p.(AuthProviderRegistrar); ok {
		reg.RegisterAuthProviders(r)
	}

	if reg, ok := p.(SchemaProviderRegistrar); ok {
		reg.RegisterSchemaProviders(r)
	}

	if reg, ok := p.(ConfigProviderRegistrar); ok {
		reg.RegisterConfigProviders(r)
	}

	if reg, ok := p.(DataProviderRegistrar); ok {
		reg.RegisterDataProviders(r)
	}

	if reg, ok := p.(TransformProviderRegistrar); ok {
		reg.RegisterTransformProviders(r)
	}

	if reg, ok := p.(PaginationProviderRegistrar); ok {
		reg.RegisterPaginationProviders(r)
	}

	if reg, ok := p.(RequestHookRegistrar); ok {
		reg.RegisterRequestHooks(r)
	}

	if reg, ok := p.(ResponseHookRegistrar); ok {
		reg.RegisterResponseHooks(r)
	}

	if reg, ok := p.(ErrorHookRegistrar); ok {
		reg.RegisterErrorHooks(r)
	}

	if reg, ok := p.(ApiResponseHookRegistrar); ok {
		reg.RegisterApiResponseHooks(r)
	}
}

// Shutdown calls Shutdown on every loaded plugin, swallowing and logging
// each failure independently, per spec.md §4.1's "Disposal" note.
func (r *Registry) Shutdown(ctx context.Context, logger *zap.Logger) {
	if logger == nil {
		logger = r.logger
	}

	for _, p := range r.Plugins() {
		if err := p.Shutdown(ctx); err != nil {
			logger.Warn("plugin failed to shut down cleanly", zap.Error(err))
		}
	}
}

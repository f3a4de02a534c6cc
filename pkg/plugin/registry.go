// Copyright 2025 SGNL.ai, Inc.
package plugin

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Kind names one of the per-axis maps the Registry holds, per spec.md §4.7:
// adapters, auth providers, schema/config/data/transform/pagination
// providers, and the four hook categories.
type Kind string

const (
	KindAdapter            Kind = "adapter"
	KindAuthProvider       Kind = "auth_provider"
	KindSchemaProvider     Kind = "schema_provider"
	KindConfigProvider     Kind = "config_provider"
	KindDataProvider       Kind = "data_provider"
	KindTransformProvider  Kind = "transform_provider"
	KindPaginationProvider Kind = "pagination_provider"
	KindRequestHook        Kind = "request_hook"
	KindResponseHook       Kind = "response_hook"
	KindErrorHook          Kind = "error_hook"
	KindApiResponseHook    Kind = "api_response_hook"
)

// Registry is the process-wide holder of named implementations for every
// extension axis, per spec.md §4.7 and §3's "Ownership & lifecycle"
// ("The Plugin Registry is process-wide, initialized once (idempotent), and
// is the only mutable global the core permits"). A Registry value is not a
// package-level global itself — NewRegistry / Global below model that
// choice explicitly, per spec.md §9's note that tests should be able to
// construct a fresh registry rather than reset process state.
type Registry struct {
	mu      sync.RWMutex
	entries map[Kind]map[string]any
	plugins []Plugin
	loaded  bool
	frozen  bool
	logger  *zap.Logger
}

// NewRegistry builds an empty, unfrozen Registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries := make(map[Kind]map[string]any, 11)
	for _, k := range []Kind{
		KindAdapter, KindAuthProvider, KindSchemaProvider, KindConfigProvider,
		KindDataProvider, KindTransformProvider, KindPaginationProvider,
		KindRequestHook, KindResponseHook, KindErrorHook, KindApiResponseHook,
	} {
		entries[k] = make(map[string]any)
	}

	return &Registry{entries: entries, logger: logger}
}

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide Registry, constructing it exactly once —
// the one mutable global the core permits, per spec.md §3.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry(zap.NewNop())
	})

	return global
}

// Register inserts name → factory under kind. After Freeze it returns an
// error and registers nothing; nothing is logged. An unknown kind is also
// an error.
func (r *Registry) Register(kind Kind, name string, factory any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("plugin registry: cannot register %q under %s after Freeze", name, kind)
	}

	m, ok := r.entries[kind]
	if !ok {
		return fmt.Errorf("plugin registry: unknown kind %s", kind)
	}

	m[name] = factory

	return nil
}

// Lookup resolves name under kind in O(1).
func (r *Registry) Lookup(kind Kind, name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.entries[kind][name]

	return v, ok
}

// List returns every registered name under kind.
func (r *Registry) List(kind Kind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries[kind]))
	for name := range r.entries[kind] {
		names = append(names, name)
	}

	return names
}

// Freeze makes the registry read-only: subsequent Register calls fail.
// Lookups keep taking the RWMutex read lock, which no writer contends once
// frozen.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frozen = true
}

// IsFrozen reports whether Freeze has been called.
func (r *Registry) IsFrozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.frozen
}

// Plugins returns every plugin instance constructed by LoadPlugins.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)

	return out
}

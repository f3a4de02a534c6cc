// Copyright 2026 SGNL.ai, Inc.
package entity

import "sync"

// managerKey identifies one cached binding by (resource_name, base_path),
// per spec.md §9's "EntityManager caches by (resource_name, base_path)".
type managerKey struct {
	resourceName string
	basePath     string
}

// Manager caches Entity bindings so repeated lookups for the same
// resource/base-path pair reuse one Entity value instead of reconstructing
// it, per spec.md §9. Manager itself is untyped since Go cannot mix
// instantiations of a generic type in one map; callers retrieve typed
// entities through the package-level GetOrCreate helper below.
type Manager struct {
	mu    sync.Mutex
	cache map[managerKey]any
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{cache: make(map[managerKey]any)}
}

// GetOrCreate returns the cached Entity[T] for (schema.ResourceName,
// schema.BasePath), constructing and storing one via build if absent.
func GetOrCreate[T any](m *Manager, schema Descriptor, build func() (*Entity[T], error)) (*Entity[T], error) {
	key := managerKey{resourceName: schema.ResourceName, basePath: schema.BasePath}

	m.mu.Lock()
	defer m.mu.Unlock()

	if cached, ok := m.cache[key]; ok {
		if e, ok := cached.(*Entity[T]); ok {
			return e, nil
		}
	}

	e, err := build()
	if err != nil {
		return nil, err
	}

	m.cache[key] = e

	return e, nil
}

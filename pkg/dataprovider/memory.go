// Copyright 2026 SGNL.ai, Inc.
package dataprovider

import (
	"context"
	"fmt"
	"sync"

	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

// MemoryProvider is a concrete, in-process BatchProvider backed by a map,
// the reference implementation spec.md §2's table calls for alongside the
// abstract Provider/BatchProvider contracts. No example in original_source
// ships a concrete in-memory provider, so the locking strategy here
// follows this repo's own mutex-guarded-map conventions (see
// pkg/plugin.Registry) rather than a ported Python file.
type MemoryProvider[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewMemoryProvider returns an empty MemoryProvider.
func NewMemoryProvider[T any]() *MemoryProvider[T] {
	return &MemoryProvider[T]{items: make(map[string]T)}
}

// Get implements Provider.
func (p *MemoryProvider[T]) Get(_ context.Context, key string) (T, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.items[key]

	return v, ok, nil
}

// List implements Provider.
func (p *MemoryProvider[T]) List(_ context.Context) ([]T, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]T, 0, len(p.items))
	for _, v := range p.items {
		out = append(out, v)
	}

	return out, nil
}

// Create implements Provider, failing with a ValidationError if key is
// already taken.
func (p *MemoryProvider[T]) Create(_ context.Context, key string, data T) (T, error) {
	var zero T

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.items[key]; exists {
		return zero, dcerrors.NewValidationError(fmt.Sprintf("dataprovider: key %q already exists", key))
	}

	p.items[key] = data

	return data, nil
}

// Update implements Provider, failing with a ValidationError if key is
// unknown.
func (p *MemoryProvider[T]) Update(_ context.Context, key string, data T) (T, error) {
	var zero T

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.items[key]; !ok {
		return zero, dcerrors.NewValidationError(fmt.Sprintf("dataprovider: no item for key %q", key))
	}

	p.items[key] = data

	return data, nil
}

// Delete implements Provider. Deleting an unknown key is a no-op, per
// data.py's delete contract (it does not require the key to pre-exist).
func (p *MemoryProvider[T]) Delete(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.items, key)

	return nil
}

// BatchGet implements BatchProvider.
func (p *MemoryProvider[T]) BatchGet(_ context.Context, keys []string) (map[string]T, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]T, len(keys))

	for _, k := range keys {
		if v, ok := p.items[k]; ok {
			out[k] = v
		}
	}

	return out, nil
}

// BatchCreate implements BatchProvider, failing with a ValidationError if
// any key in items already exists. No partial application.
func (p *MemoryProvider[T]) BatchCreate(_ context.Context, items map[string]T) (map[string]T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for k := range items {
		if _, exists := p.items[k]; exists {
			return nil, dcerrors.NewValidationError(fmt.Sprintf("dataprovider: key %q already exists", k))
		}
	}

	for k, v := range items {
		p.items[k] = v
	}

	return items, nil
}

// BatchUpdate implements BatchProvider, failing with a ValidationError if
// any key is unknown. No partial application: either all keys exist and
// all updates apply, or none do.
func (p *MemoryProvider[T]) BatchUpdate(_ context.Context, items map[string]T) (map[string]T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for k := range items {
		if _, ok := p.items[k]; !ok {
			return nil, dcerrors.NewValidationError(fmt.Sprintf("dataprovider: no item for key %q", k))
		}
	}

	for k, v := range items {
		p.items[k] = v
	}

	return items, nil
}

// BatchDelete implements BatchProvider.
func (p *MemoryProvider[T]) BatchDelete(_ context.Context, keys []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, k := range keys {
		delete(p.items, k)
	}

	return nil
}

// Copyright 2026 SGNL.ai, Inc.

// Package dataprovider implements spec.md §2's Data Provider extension
// point, grounded on ext/providers/data.py's DataProvider/BatchDataProvider
// abstract bases. A Data Provider is a generic CRUD contract over an
// arbitrary backend — deliberately decoupled from pkg/entity's Client/Codec
// pair, which is always HTTP-resource-shaped; a Data Provider might instead
// front an in-memory store, a local cache, or a non-HTTP backend entirely.
package dataprovider

import "context"

// Provider is the generic single-item CRUD contract of data.py's
// DataProvider(Provider, Generic[T]). data.py's create(data) returns T
// alone because the backend assigns and embeds the id on the model
// itself; Go's T carries no such reflection hook, so Create/Update here
// take an explicit key supplied by the caller instead.
type Provider[T any] interface {
	// Get returns the item stored under key, or ok=false if absent.
	Get(ctx context.Context, key string) (value T, ok bool, err error)
	// List returns every item the provider currently holds.
	List(ctx context.Context) ([]T, error)
	// Create stores data under key.
	Create(ctx context.Context, key string, data T) (T, error)
	// Update replaces the item stored under key.
	Update(ctx context.Context, key string, data T) (T, error)
	// Delete removes the item stored under key.
	Delete(ctx context.Context, key string) error
}

// BatchProvider extends Provider with the bulk operations of data.py's
// BatchDataProvider(DataProvider[T]).
type BatchProvider[T any] interface {
	Provider[T]

	// BatchGet returns every found item keyed by its key; missing keys are
	// simply absent from the result, per data.py's batch_get contract.
	BatchGet(ctx context.Context, keys []string) (map[string]T, error)
	// BatchCreate stores every (key, item) pair.
	BatchCreate(ctx context.Context, items map[string]T) (map[string]T, error)
	// BatchUpdate replaces every (key, item) pair and returns the updated
	// items keyed by key.
	BatchUpdate(ctx context.Context, items map[string]T) (map[string]T, error)
	// BatchDelete removes every key, ignoring keys that do not exist.
	BatchDelete(ctx context.Context, keys []string) error
}

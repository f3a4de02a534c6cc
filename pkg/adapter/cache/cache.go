// Copyright 2026 SGNL.ai, Inc.

// Package cache is the Cache adapter family of spec.md §4.2. No example
// in the retrieval pack wires a real caching client: squat-collective-rat's
// ratelimit.RedisLimiter is an unimplemented Pro-edition stub (a TODO, no
// go-redis import in its go.mod), so there is nothing in the corpus to
// ground a Redis/Memcached client on without fabricating a dependency.
// This adapter is therefore a plain in-memory, mutex-guarded map with
// per-key TTL — the stdlib fallback is deliberate and documented in
// DESIGN.md rather than silent.
package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value   []byte
	expires time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// Adapter implements adapter.CacheAdapter over an in-process map.
type Adapter struct {
	mu        sync.RWMutex
	entries   map[string]entry
	connected bool
}

// New constructs an empty Adapter.
func New() *Adapter {
	return &Adapter{entries: make(map[string]entry)}
}

func (a *Adapter) Connect(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.connected = true

	return nil
}

func (a *Adapter) Disconnect(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.connected = false

	return nil
}

func (a *Adapter) IsConnected() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.connected
}

// SetOption is a no-op; the in-memory cache takes no configuration.
func (a *Adapter) SetOption(string, any) {}

// Get returns the value stored under key, or ok=false if absent or expired.
func (a *Adapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	a.mu.RLock()
	e, ok := a.entries[key]
	a.mu.RUnlock()

	if !ok || e.expired(time.Now()) {
		return nil, false, nil
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)

	return out, true, nil
}

// Set stores value under key. ttlSeconds <= 0 means no expiry.
func (a *Adapter) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	var expires time.Time
	if ttlSeconds > 0 {
		expires = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	a.mu.Lock()
	a.entries[key] = entry{value: stored, expires: expires}
	a.mu.Unlock()

	return nil
}

func (a *Adapter) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	delete(a.entries, key)
	a.mu.Unlock()

	return nil
}

func (a *Adapter) Clear(ctx context.Context) error {
	a.mu.Lock()
	a.entries = make(map[string]entry)
	a.mu.Unlock()

	return nil
}

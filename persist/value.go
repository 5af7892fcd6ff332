// Package persist keeps a single typed value in sync with one storage key.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"recipefinder/storage"
)

// Value is an in-memory value mirrored to a store key as JSON. The in-memory
// copy is authoritative: read and write failures are logged, never returned.
// Writes reach the store in the same order as the mutations that produced them.
type Value[T any] struct {
	// saveMu is held from a mutation through its Put.
	saveMu sync.Mutex
	mu     sync.RWMutex
	store  storage.Store
	key    string
	value  T
}

// Load reads key from store, falling back to initial when the key is missing
// or cannot be decoded.
func Load[T any](ctx context.Context, store storage.Store, key string, initial T) *Value[T] {
	v := &Value[T]{store: store, key: key, value: initial}

	b, err := store.Get(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		slog.Debug("PERSIST: no saved value, using initial", "key", key)
		return v
	case err != nil:
		slog.Error("PERSIST: error reading saved value", "key", key, "error", err)
		return v
	case len(b) == 0:
		return v
	}

	var saved T
	if err := json.Unmarshal(b, &saved); err != nil {
		slog.Error("PERSIST: error decoding saved value", "key", key, "error", err)
		return v
	}
	v.value = saved
	return v
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set replaces the value and writes it back to the store.
func (v *Value[T]) Set(ctx context.Context, value T) {
	v.saveMu.Lock()
	defer v.saveMu.Unlock()

	v.mu.Lock()
	v.value = value
	v.mu.Unlock()
	v.save(ctx, value)
}

// Update applies fn to the current value under lock, then persists the result.
func (v *Value[T]) Update(ctx context.Context, fn func(T) T) T {
	v.saveMu.Lock()
	defer v.saveMu.Unlock()

	v.mu.Lock()
	next := fn(v.value)
	v.value = next
	v.mu.Unlock()
	v.save(ctx, next)
	return next
}

func (v *Value[T]) save(ctx context.Context, value T) {
	b, err := json.Marshal(value)
	if err != nil {
		slog.Error("PERSIST: error encoding value", "key", v.key, "error", err)
		return
	}
	if err := v.store.Put(ctx, v.key, b); err != nil {
		slog.Error("PERSIST: error saving value", "key", v.key, "error", err)
	}
}

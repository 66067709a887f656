// internal/infrastructure/storage/fallback.go
package storage

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// FallbackStore wraps a primary Store and degrades to an in-memory store
// when the primary is unavailable. Persistence failures are non-fatal:
// the session keeps working with memory-only data, logged for diagnostics.
// There is no retry policy; once a key has fallen back, later reads for
// that key prefer the in-memory copy so the session stays consistent.
type FallbackStore struct {
	primary Store
	memory  *MemoryStore
	log     *logrus.Logger
}

// NewFallbackStore creates a store that degrades to memory on primary failure
func NewFallbackStore(primary Store, log *logrus.Logger) *FallbackStore {
	return &FallbackStore{
		primary: primary,
		memory:  NewMemoryStore(),
		log:     log,
	}
}

// Get retrieves a value, preferring the in-memory copy for keys that
// have already degraded
func (f *FallbackStore) Get(ctx context.Context, key string) (string, error) {
	if value, err := f.memory.Get(ctx, key); err == nil {
		return value, nil
	}

	value, err := f.primary.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		f.log.WithError(err).WithField("key", key).Warn("storage unavailable, serving from memory")
		return f.memory.Get(ctx, key)
	}
	return value, err
}

// Set writes to the primary store, falling back to memory on failure
func (f *FallbackStore) Set(ctx context.Context, key, value string) error {
	if err := f.primary.Set(ctx, key, value); err != nil {
		f.log.WithError(err).WithField("key", key).Warn("storage unavailable, writing to memory only")
		return f.memory.Set(ctx, key, value)
	}

	// Keep the memory copy out of the way once the primary works again.
	_ = f.memory.Delete(ctx, key)
	return nil
}

// Delete removes the key from both stores
func (f *FallbackStore) Delete(ctx context.Context, key string) error {
	_ = f.memory.Delete(ctx, key)

	if err := f.primary.Delete(ctx, key); err != nil {
		f.log.WithError(err).WithField("key", key).Warn("storage unavailable, delete applied to memory only")
	}
	return nil
}

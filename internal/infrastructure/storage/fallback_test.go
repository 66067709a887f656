// internal/infrastructure/storage/fallback_test.go
package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails every operation while down is set
type flakyStore struct {
	*MemoryStore
	down bool
}

var errDown = errors.New("connection refused")

func (f *flakyStore) Get(ctx context.Context, key string) (string, error) {
	if f.down {
		return "", errDown
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	if f.down {
		return errDown
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func (f *flakyStore) Delete(ctx context.Context, key string) error {
	if f.down {
		return errDown
	}
	return f.MemoryStore.Delete(ctx, key)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", "v1"))
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", value)

	// Writes replace wholesale.
	require.NoError(t, store.Set(ctx, "k", "v2"))
	value, _ = store.Get(ctx, "k")
	assert.Equal(t, "v2", value)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFallbackStoreHealthyPrimary(t *testing.T) {
	primary := &flakyStore{MemoryStore: NewMemoryStore()}
	store := NewFallbackStore(primary, quietLogger())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v"))

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)

	// The value lives in the primary, not the memory shadow.
	value, err = primary.MemoryStore.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)
}

func TestFallbackStoreDegradesOnSetFailure(t *testing.T) {
	primary := &flakyStore{MemoryStore: NewMemoryStore(), down: true}
	store := NewFallbackStore(primary, quietLogger())
	ctx := context.Background()

	// The write still succeeds, held in memory.
	require.NoError(t, store.Set(ctx, "k", "v"))

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)
}

func TestFallbackStoreRecoversAfterPrimaryReturns(t *testing.T) {
	primary := &flakyStore{MemoryStore: NewMemoryStore(), down: true}
	store := NewFallbackStore(primary, quietLogger())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "degraded"))

	primary.down = false
	require.NoError(t, store.Set(ctx, "k", "recovered"))

	// The memory shadow is dropped once the primary accepts writes again.
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "recovered", value)

	value, err = primary.MemoryStore.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "recovered", value)
}

func TestFallbackStoreDeleteAppliesToBoth(t *testing.T) {
	primary := &flakyStore{MemoryStore: NewMemoryStore(), down: true}
	store := NewFallbackStore(primary, quietLogger())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v"))

	primary.down = false
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

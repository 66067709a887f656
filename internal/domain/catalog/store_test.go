// internal/domain/catalog/store_test.go
package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5spice-online/order.com/internal/config"
	"github.com/5spice-online/order.com/internal/infrastructure/storage"
)

const testConfigDoc = `{
	"isOutletOpen": true,
	"gstRate": 5,
	"outletName": "Test Outlet",
	"tagline": "testing",
	"splashEnabled": false,
	"splashDurationMs": 0
}`

const testProductsDoc = `{
	"categories": [
		{
			"name": "Starters",
			"categoryDiscount": 10,
			"items": [
				{"id": 1, "name": "Samosa", "price": 50, "veg": true, "available": true},
				{"id": 2, "name": "Paneer Tikka", "price": 150, "veg": true, "available": true}
			]
		},
		{
			"name": "Mains",
			"categoryDiscount": 0,
			"items": [
				{"id": 3, "name": "Butter Chicken", "price": 340, "veg": false, "available": true}
			]
		}
	]
}`

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.ErrorLevel)
	return log
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T, configDoc, productsDoc string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Catalog: config.CatalogConfig{
			ConfigSource:   writeDoc(t, dir, "config.json", configDoc),
			ProductsSource: writeDoc(t, dir, "products.json", productsDoc),
			FetchTimeout:   5 * time.Second,
		},
	}
}

func TestStoreLoad(t *testing.T) {
	kv := storage.NewMemoryStore()
	store := NewStore(testConfig(t, testConfigDoc, testProductsDoc), kv, testLogger())

	require.NoError(t, store.Load(context.Background()))

	cfg := store.Config()
	assert.True(t, cfg.IsOutletOpen)
	assert.Equal(t, 5.0, cfg.GSTRate)
	assert.Equal(t, "Test Outlet", cfg.OutletName)

	categories := store.Categories()
	require.Len(t, categories, 2)
	assert.Equal(t, "Starters", categories[0].Name)
	assert.Equal(t, 10.0, categories[0].CategoryDiscount)
	require.Len(t, categories[0].Items, 2)
}

func TestStoreLoadBareCategoryArray(t *testing.T) {
	bare := `[{"name": "Starters", "categoryDiscount": 10, "items": [{"id": 1, "name": "Samosa", "price": 50}]}]`

	store := NewStore(testConfig(t, testConfigDoc, bare), storage.NewMemoryStore(), testLogger())
	require.NoError(t, store.Load(context.Background()))

	categories := store.Categories()
	require.Len(t, categories, 1)
	assert.Equal(t, "Starters", categories[0].Name)
}

func TestStoreLoadMissingProductsDegrades(t *testing.T) {
	cfg := testConfig(t, testConfigDoc, testProductsDoc)
	cfg.Catalog.ProductsSource = filepath.Join(t.TempDir(), "does-not-exist.json")

	store := NewStore(cfg, storage.NewMemoryStore(), testLogger())
	err := store.Load(context.Background())

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, cfg.Catalog.ProductsSource, loadErr.Source)

	// Config still loaded, menu degrades to empty.
	assert.Equal(t, "Test Outlet", store.Config().OutletName)
	assert.Empty(t, store.Categories())
}

func TestStoreLoadMissingConfigDegrades(t *testing.T) {
	cfg := testConfig(t, testConfigDoc, testProductsDoc)
	cfg.Catalog.ConfigSource = filepath.Join(t.TempDir(), "does-not-exist.json")

	store := NewStore(cfg, storage.NewMemoryStore(), testLogger())
	err := store.Load(context.Background())

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))

	// Menu still loaded, config degrades to zero values.
	assert.Len(t, store.Categories(), 2)
	assert.False(t, store.Config().IsOutletOpen)
}

func TestStoreLoadAppliesPersistedOverride(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), "catalog:overrides",
		`{"config": {"outletName": "Renamed", "isOutletOpen": false}}`))

	store := NewStore(testConfig(t, testConfigDoc, testProductsDoc), kv, testLogger())
	require.NoError(t, store.Load(context.Background()))

	cfg := store.Config()
	assert.Equal(t, "Renamed", cfg.OutletName)
	assert.False(t, cfg.IsOutletOpen)
	// Untouched keys keep their source values.
	assert.Equal(t, 5.0, cfg.GSTRate)
}

func TestStoreLoadIgnoresMalformedOverride(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), "catalog:overrides", "{not json"))

	store := NewStore(testConfig(t, testConfigDoc, testProductsDoc), kv, testLogger())
	require.NoError(t, store.Load(context.Background()))

	assert.Equal(t, "Test Outlet", store.Config().OutletName)
}

func TestItemByID(t *testing.T) {
	store := NewStore(testConfig(t, testConfigDoc, testProductsDoc), storage.NewMemoryStore(), testLogger())
	require.NoError(t, store.Load(context.Background()))

	item, ok := store.ItemByID(2)
	require.True(t, ok)
	assert.Equal(t, "Paneer Tikka", item.Name)
	assert.Equal(t, "Starters", item.Category)

	_, ok = store.ItemByID(999)
	assert.False(t, ok)
}

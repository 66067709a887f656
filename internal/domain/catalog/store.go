// internal/domain/catalog/store.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/5spice-online/order.com/internal/config"
	"github.com/5spice-online/order.com/internal/infrastructure/storage"
)

// overrideKey is the single process-wide storage slot holding admin
// overrides. Last writer wins, the entire document is replaced.
const overrideKey = "catalog:overrides"

// LoadError wraps a catalog or config document fetch/parse failure.
// It is non-fatal: the store degrades to whatever state it already has.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog load failed for %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Store holds the catalog for the session. It is populated once by Load
// and only replaced atomically through ApplyOverride; readers always see
// a complete snapshot.
type Store struct {
	mu      sync.RWMutex
	catalog Catalog
	kv      storage.Store
	client  *http.Client
	cfg     *config.Config
	log     *logrus.Logger
}

// NewStore creates a catalog store. The catalog is empty until Load runs.
func NewStore(cfg *config.Config, kv storage.Store, log *logrus.Logger) *Store {
	return &Store{
		kv:     kv,
		cfg:    cfg,
		log:    log,
		client: &http.Client{Timeout: cfg.Catalog.FetchTimeout},
	}
}

// Load fetches the config and products documents and overlays any
// persisted admin override. A failed fetch is logged and leaves the
// corresponding part of the catalog empty rather than failing the
// session; there is no retry.
func (s *Store) Load(ctx context.Context) error {
	var loadErr error

	var outletCfg OutletConfig
	if err := s.fetchJSON(ctx, s.cfg.Catalog.ConfigSource, &outletCfg); err != nil {
		loadErr = &LoadError{Source: s.cfg.Catalog.ConfigSource, Err: err}
		s.log.WithError(err).Warn("config document unavailable, using empty config")
	}

	categories, err := s.fetchCategories(ctx)
	if err != nil {
		loadErr = &LoadError{Source: s.cfg.Catalog.ProductsSource, Err: err}
		s.log.WithError(err).Warn("products document unavailable, menu will be empty")
	}

	s.mu.Lock()
	s.catalog = Catalog{Categories: categories, Config: outletCfg}
	s.mu.Unlock()

	// Overlay the persisted admin override, if any.
	if override, ok := s.loadOverride(ctx); ok {
		s.ApplyOverride(override)
	}

	return loadErr
}

// fetchCategories fetches the products document, accepting both the
// wrapped {"categories": [...]} form and a bare category array.
func (s *Store) fetchCategories(ctx context.Context) ([]Category, error) {
	raw, err := s.fetchRaw(ctx, s.cfg.Catalog.ProductsSource)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Categories []Category `json:"categories"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Categories != nil {
		return wrapped.Categories, nil
	}

	var bare []Category
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, fmt.Errorf("products document is neither wrapped nor a bare category list: %w", err)
	}
	return bare, nil
}

func (s *Store) fetchJSON(ctx context.Context, source string, dest interface{}) error {
	raw, err := s.fetchRaw(ctx, source)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (s *Store) fetchRaw(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}

	return os.ReadFile(source)
}

func (s *Store) loadOverride(ctx context.Context) (Override, bool) {
	raw, err := s.kv.Get(ctx, overrideKey)
	if err != nil {
		if err != storage.ErrNotFound {
			s.log.WithError(err).Warn("failed to read admin overrides")
		}
		return Override{}, false
	}

	var override Override
	if err := json.Unmarshal([]byte(raw), &override); err != nil {
		s.log.WithError(err).Warn("persisted admin overrides are malformed, ignoring")
		return Override{}, false
	}
	return override, true
}

// Snapshot returns the current catalog
func (s *Store) Snapshot() Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Config returns the current outlet configuration
func (s *Store) Config() OutletConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Config
}

// Categories returns the categories in catalog order
func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Categories
}

// ItemByID resolves an item across all categories
func (s *Store) ItemByID(id int) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, cat := range s.catalog.Categories {
		for _, item := range cat.Items {
			if item.ID == id {
				// Items carry their category name so cart lines can
				// snapshot it at add time.
				if item.Category == "" {
					item.Category = cat.Name
				}
				return item, true
			}
		}
	}
	return Item{}, false
}

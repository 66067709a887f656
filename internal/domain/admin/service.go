// internal/domain/admin/service.go
package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"

	"github.com/5spice-online/order.com/internal/config"
	"github.com/5spice-online/order.com/internal/domain/catalog"
	"github.com/5spice-online/order.com/internal/infrastructure/storage"
)

// overrideKey mirrors the slot the catalog store reads at initialization
const overrideKey = "catalog:overrides"

// Service handles the admin dashboard's catalog mutations: saving and
// resetting the override document, and generating table QR codes.
type Service struct {
	kv      storage.Store
	catalog *catalog.Store
	config  *config.Config
	log     *logrus.Logger
}

// NewService creates an admin service
func NewService(kv storage.Store, cat *catalog.Store, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		kv:      kv,
		catalog: cat,
		config:  cfg,
		log:     log,
	}
}

// SaveOverride applies the override to the live catalog and persists the
// whole document. Last writer wins; there is no versioning or conflict
// resolution.
func (s *Service) SaveOverride(ctx context.Context, override catalog.Override) (catalog.Catalog, error) {
	updated := s.catalog.ApplyOverride(override)

	data, err := json.Marshal(override)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("failed to serialize overrides: %w", err)
	}

	if err := s.kv.Set(ctx, overrideKey, string(data)); err != nil {
		return catalog.Catalog{}, fmt.Errorf("failed to persist overrides: %w", err)
	}

	s.log.WithField("products_replaced", override.Products != nil).Info("admin overrides saved")
	return updated, nil
}

// GetOverride returns the persisted override document, if any
func (s *Service) GetOverride(ctx context.Context) (catalog.Override, bool, error) {
	raw, err := s.kv.Get(ctx, overrideKey)
	if err != nil {
		if err == storage.ErrNotFound {
			return catalog.Override{}, false, nil
		}
		return catalog.Override{}, false, err
	}

	var override catalog.Override
	if err := json.Unmarshal([]byte(raw), &override); err != nil {
		return catalog.Override{}, false, fmt.Errorf("persisted overrides are malformed: %w", err)
	}
	return override, true, nil
}

// ResetOverrides deletes the override slot and reloads the catalog from
// its source documents.
func (s *Service) ResetOverrides(ctx context.Context) error {
	if err := s.kv.Delete(ctx, overrideKey); err != nil {
		return fmt.Errorf("failed to delete overrides: %w", err)
	}

	s.log.Info("admin overrides reset, reloading catalog")
	return s.catalog.Load(ctx)
}

// TableQR generates a PNG QR code pointing a table at the menu page
func (s *Service) TableQR(table int) ([]byte, error) {
	if table <= 0 {
		return nil, fmt.Errorf("table number must be positive")
	}

	target := fmt.Sprintf("%s/?table=%d", s.config.App.BaseURL, table)
	return qrcode.Encode(target, qrcode.Medium, 256)
}

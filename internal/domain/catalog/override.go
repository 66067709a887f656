// internal/domain/catalog/override.go
package catalog

// Override represents the admin-authored override document. Config
// fields merge key-by-key (override wins); Products, when present,
// replace the catalog wholesale rather than merging per category.
type Override struct {
	Config   *ConfigOverride `json:"config,omitempty"`
	Products []Category      `json:"products,omitempty"`
}

// ConfigOverride is a partial OutletConfig. Pointer fields distinguish
// "not overridden" from zero values.
type ConfigOverride struct {
	IsOutletOpen     *bool    `json:"isOutletOpen,omitempty"`
	GSTRate          *float64 `json:"gstRate,omitempty"`
	OutletName       *string  `json:"outletName,omitempty"`
	Tagline          *string  `json:"tagline,omitempty"`
	SplashEnabled    *bool    `json:"splashEnabled,omitempty"`
	SplashDurationMs *int     `json:"splashDurationMs,omitempty"`
}

// ApplyOverride overlays an admin override onto the catalog and returns
// the resulting snapshot. Override content is sanitized first:
// out-of-range discounts are clamped and negative prices zeroed, with
// every correction logged.
func (s *Store) ApplyOverride(o Override) Catalog {
	if o.Products != nil {
		o.Products = s.sanitizeCategories(o.Products)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if o.Config != nil {
		mergeConfig(&s.catalog.Config, o.Config)
	}
	if o.Products != nil {
		s.catalog.Categories = o.Products
	}
	return s.catalog
}

func mergeConfig(dst *OutletConfig, src *ConfigOverride) {
	if src.IsOutletOpen != nil {
		dst.IsOutletOpen = *src.IsOutletOpen
	}
	if src.GSTRate != nil {
		dst.GSTRate = *src.GSTRate
	}
	if src.OutletName != nil {
		dst.OutletName = *src.OutletName
	}
	if src.Tagline != nil {
		dst.Tagline = *src.Tagline
	}
	if src.SplashEnabled != nil {
		dst.SplashEnabled = *src.SplashEnabled
	}
	if src.SplashDurationMs != nil {
		dst.SplashDurationMs = *src.SplashDurationMs
	}
}

// sanitizeCategories corrects out-of-range override values in place of
// rejecting the document outright.
func (s *Store) sanitizeCategories(categories []Category) []Category {
	for ci := range categories {
		cat := &categories[ci]

		if cat.CategoryDiscount < 0 || cat.CategoryDiscount > 100 {
			clamped := clamp(cat.CategoryDiscount, 0, 100)
			s.log.WithFields(map[string]interface{}{
				"category": cat.Name,
				"discount": cat.CategoryDiscount,
			}).Warn("override discount out of range, clamping")
			cat.CategoryDiscount = clamped
		}

		for ii := range cat.Items {
			item := &cat.Items[ii]
			if item.Price < 0 {
				s.log.WithFields(map[string]interface{}{
					"item":  item.Name,
					"price": item.Price,
				}).Warn("override price is negative, zeroing")
				item.Price = 0
			}
			if item.Category == "" {
				item.Category = cat.Name
			}
		}
	}
	return categories
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// internal/domain/catalog/entity.go
package catalog

// Item represents one orderable menu item
type Item struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Veg         bool    `json:"veg"`
	Category    string  `json:"category"`
	Available   bool    `json:"available"`
	Description string  `json:"desc"`
	Image       string  `json:"image"`
}

// Category represents a named group of items sharing one discount
type Category struct {
	Name             string  `json:"name"`
	CategoryDiscount float64 `json:"categoryDiscount"`
	Items            []Item  `json:"items"`
}

// OutletConfig represents the outlet-level settings document
type OutletConfig struct {
	IsOutletOpen     bool    `json:"isOutletOpen"`
	GSTRate          float64 `json:"gstRate"`
	OutletName       string  `json:"outletName"`
	Tagline          string  `json:"tagline"`
	SplashEnabled    bool    `json:"splashEnabled"`
	SplashDurationMs int     `json:"splashDurationMs"`
}

// Catalog is the immutable-per-session view of categories and config
type Catalog struct {
	Categories []Category   `json:"categories"`
	Config     OutletConfig `json:"config"`
}

// HasItem reports whether the item id belongs to this category's item set
func (c Category) HasItem(id int) bool {
	for _, item := range c.Items {
		if item.ID == id {
			return true
		}
	}
	return false
}

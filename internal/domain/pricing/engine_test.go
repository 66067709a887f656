// internal/domain/pricing/engine_test.go
package pricing

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5spice-online/order.com/internal/config"
	"github.com/5spice-online/order.com/internal/domain/cart"
	"github.com/5spice-online/order.com/internal/domain/catalog"
	"github.com/5spice-online/order.com/internal/infrastructure/storage"
)

const testProductsDoc = `{
	"categories": [
		{
			"name": "Starters",
			"categoryDiscount": 10,
			"items": [
				{"id": 1, "name": "Samosa", "price": 50},
				{"id": 2, "name": "Paneer Tikka", "price": 150}
			]
		},
		{
			"name": "Mains",
			"categoryDiscount": 0,
			"items": [
				{"id": 3, "name": "Butter Chicken", "price": 340}
			]
		},
		{
			"name": "Desserts",
			"categoryDiscount": 5,
			"items": [
				{"id": 4, "name": "Gulab Jamun", "price": 120}
			]
		}
	]
}`

func testCatalog(t *testing.T, configDoc string) *catalog.Store {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(configDoc), 0o644))
	productsPath := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(productsPath, []byte(testProductsDoc), 0o644))

	store := catalog.NewStore(&config.Config{
		Catalog: config.CatalogConfig{
			ConfigSource:   configPath,
			ProductsSource: productsPath,
			FetchTimeout:   5 * time.Second,
		},
	}, storage.NewMemoryStore(), log)
	require.NoError(t, store.Load(context.Background()))
	return store
}

func testEngine(t *testing.T, trialEnabled bool) *Engine {
	t.Helper()
	return NewEngine(testCatalog(t, `{"isOutletOpen": true, "gstRate": 5}`), &config.Config{
		Pricing: config.PricingConfig{
			TrialDiscountEnabled: trialEnabled,
			TrialDiscountPercent: DefaultTrialDiscountPercent,
		},
	})
}

func TestQuoteWorkedExample(t *testing.T) {
	engine := testEngine(t, true)

	// One Samosa and one Paneer Tikka: subtotal 200, Starters discount
	// 20, trial discount 40, taxable 140, GST 7, payable 147.
	quote := engine.Quote([]cart.Line{
		{ID: 1, Name: "Samosa", Price: 50, Qty: 1},
		{ID: 2, Name: "Paneer Tikka", Price: 150, Qty: 1},
	})

	assert.InDelta(t, 200.0, quote.Subtotal, 1e-9)
	assert.InDelta(t, 60.0, quote.TotalDiscount, 1e-9)
	assert.InDelta(t, 7.0, quote.GST, 1e-9)
	assert.InDelta(t, 147.0, quote.GrandTotal, 1e-9)
	assert.Equal(t, 2, quote.TotalItems)

	require.Len(t, quote.DiscountBreakdown, 1)
	assert.Equal(t, "Starters", quote.DiscountBreakdown[0].Category)
	assert.InDelta(t, 20.0, quote.DiscountBreakdown[0].Amount, 1e-9)
}

func TestQuoteEmptyCart(t *testing.T) {
	engine := testEngine(t, true)

	quote := engine.Quote(nil)

	assert.Zero(t, quote.Subtotal)
	assert.Zero(t, quote.TotalDiscount)
	assert.Zero(t, quote.GST)
	assert.Zero(t, quote.GrandTotal)
	assert.Zero(t, quote.TotalItems)
	assert.Empty(t, quote.DiscountBreakdown)
}

func TestQuoteIsPure(t *testing.T) {
	engine := testEngine(t, true)
	lines := []cart.Line{{ID: 1, Price: 50, Qty: 2}}

	first := engine.Quote(lines)
	second := engine.Quote(lines)

	assert.Equal(t, first, second)
}

func TestQuoteTrialDiscountDisabled(t *testing.T) {
	engine := testEngine(t, false)

	quote := engine.Quote([]cart.Line{
		{ID: 1, Price: 50, Qty: 1},
		{ID: 2, Price: 150, Qty: 1},
	})

	// Only the 10% Starters discount applies: taxable 180, GST 9.
	assert.InDelta(t, 20.0, quote.TotalDiscount, 1e-9)
	assert.InDelta(t, 9.0, quote.GST, 1e-9)
	assert.InDelta(t, 189.0, quote.GrandTotal, 1e-9)
}

func TestQuoteBreakdownFollowsCatalogOrder(t *testing.T) {
	engine := testEngine(t, false)

	// Desserts line listed first in the cart; breakdown still follows
	// catalog order, and zero-discount categories are skipped.
	quote := engine.Quote([]cart.Line{
		{ID: 4, Price: 120, Qty: 1},
		{ID: 3, Price: 340, Qty: 1},
		{ID: 1, Price: 50, Qty: 1},
	})

	require.Len(t, quote.DiscountBreakdown, 2)
	assert.Equal(t, "Starters", quote.DiscountBreakdown[0].Category)
	assert.Equal(t, "Desserts", quote.DiscountBreakdown[1].Category)
}

func TestQuoteUsesLinePriceSnapshots(t *testing.T) {
	engine := testEngine(t, false)

	// The line carries the price captured at add time; a later catalog
	// price has no effect on the quote.
	quote := engine.Quote([]cart.Line{{ID: 1, Price: 80, Qty: 1}})

	assert.InDelta(t, 80.0, quote.Subtotal, 1e-9)
	assert.InDelta(t, 8.0, quote.TotalDiscount, 1e-9)
}

func TestQuoteTaxableNotClamped(t *testing.T) {
	cat := testCatalog(t, `{"isOutletOpen": true, "gstRate": 5}`)
	cat.ApplyOverride(catalog.Override{
		Products: []catalog.Category{
			{Name: "Giveaway", CategoryDiscount: 100, Items: []catalog.Item{
				{ID: 1, Name: "Free Samosa", Price: 50},
			}},
		},
	})

	engine := NewEngine(cat, &config.Config{
		Pricing: config.PricingConfig{
			TrialDiscountEnabled: true,
			TrialDiscountPercent: DefaultTrialDiscountPercent,
		},
	})

	// 100% category discount plus 20% trial: discounts exceed the
	// subtotal, the taxable amount goes negative and so does the total.
	quote := engine.Quote([]cart.Line{{ID: 1, Price: 50, Qty: 1}})

	assert.InDelta(t, 60.0, quote.TotalDiscount, 1e-9)
	assert.True(t, quote.GrandTotal < 0)
}

func TestFormatINRTruncates(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"whole", 147.0, "₹147"},
		{"truncates down", 147.99, "₹147"},
		{"just below whole", 146.999999, "₹146"},
		{"zero", 0.0, "₹0"},
		{"negative", -10.5, "₹-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatINR(tt.value))
		})
	}
}

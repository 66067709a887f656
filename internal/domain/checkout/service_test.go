// internal/domain/checkout/service_test.go
package checkout

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5spice-online/order.com/internal/config"
	"github.com/5spice-online/order.com/internal/domain/cart"
	"github.com/5spice-online/order.com/internal/domain/catalog"
	"github.com/5spice-online/order.com/internal/domain/pricing"
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
		}
	]
}`

func newService(t *testing.T, configDoc string) (*Service, *cart.Ledger) {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(configDoc), 0o644))
	productsPath := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(productsPath, []byte(testProductsDoc), 0o644))

	cfg := &config.Config{
		App: config.AppConfig{Name: "Fallback Name"},
		Catalog: config.CatalogConfig{
			ConfigSource:   configPath,
			ProductsSource: productsPath,
			FetchTimeout:   5 * time.Second,
		},
		Pricing: config.PricingConfig{
			TrialDiscountEnabled: true,
			TrialDiscountPercent: pricing.DefaultTrialDiscountPercent,
		},
		WhatsApp: config.WhatsAppConfig{PhoneNumber: "911234567890"},
	}

	cat := catalog.NewStore(cfg, storage.NewMemoryStore(), log)
	require.NoError(t, cat.Load(context.Background()))

	ledger := cart.NewLedger(storage.NewMemoryStore(), cat, EventBus.New(), log)
	engine := pricing.NewEngine(cat, cfg)

	return NewService(ledger, engine, cat, cfg, log), ledger
}

func validDetails() CustomerDetails {
	return CustomerDetails{
		Name:    "Asha",
		Phone:   "9876543210",
		Address: "Table 4",
	}
}

func TestSubmitBuildsMessageAndClearsCart(t *testing.T) {
	svc, ledger := newService(t, `{"isOutletOpen": true, "gstRate": 5, "outletName": "Test Outlet"}`)
	ctx := context.Background()

	_, err := ledger.AdjustQuantity(ctx, "s1", 1, 1)
	require.NoError(t, err)
	_, err = ledger.AdjustQuantity(ctx, "s1", 2, 1)
	require.NoError(t, err)

	order, err := svc.Submit(ctx, "s1", validDetails())
	require.NoError(t, err)

	assert.Contains(t, order.Message, "🧾 *Order from Test Outlet*")
	assert.Contains(t, order.Message, "1× Samosa – ₹50")
	assert.Contains(t, order.Message, "1× Paneer Tikka – ₹150")
	assert.Contains(t, order.Message, "Starters (10%) – ₹20")
	assert.Contains(t, order.Message, "GST Included (5%)")
	assert.Contains(t, order.Message, "*Total Payable:* ₹147")
	assert.Contains(t, order.Message, "👤 *Customer:* Asha")
	assert.Contains(t, order.Message, "🗒 *Notes:* -")
	assert.Contains(t, order.Message, "Thank you! 🙏")

	// The cart is cleared once the order exists.
	assert.Empty(t, ledger.Lines(ctx, "s1"))
}

func TestSubmitDeepLink(t *testing.T) {
	svc, ledger := newService(t, `{"isOutletOpen": true, "gstRate": 5, "outletName": "Test Outlet"}`)
	ctx := context.Background()

	_, err := ledger.AdjustQuantity(ctx, "s1", 1, 1)
	require.NoError(t, err)

	order, err := svc.Submit(ctx, "s1", validDetails())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(order.DeepLink, "https://wa.me/911234567890?text="))

	// The encoded text decodes back to the exact message.
	encoded := strings.TrimPrefix(order.DeepLink, "https://wa.me/911234567890?text=")
	decoded, err := url.QueryUnescape(encoded)
	require.NoError(t, err)
	assert.Equal(t, order.Message, decoded)
}

func TestSubmitEmptyCart(t *testing.T) {
	svc, _ := newService(t, `{"isOutletOpen": true, "gstRate": 5}`)

	_, err := svc.Submit(context.Background(), "s1", validDetails())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestSubmitMissingDetails(t *testing.T) {
	svc, ledger := newService(t, `{"isOutletOpen": true, "gstRate": 5}`)
	ctx := context.Background()

	_, err := ledger.AdjustQuantity(ctx, "s1", 1, 1)
	require.NoError(t, err)

	tests := []struct {
		name    string
		details CustomerDetails
	}{
		{"no name", CustomerDetails{Phone: "9876543210", Address: "Table 4"}},
		{"no phone", CustomerDetails{Name: "Asha", Address: "Table 4"}},
		{"no address", CustomerDetails{Name: "Asha", Phone: "9876543210"}},
		{"whitespace only", CustomerDetails{Name: "  ", Phone: "9876543210", Address: "Table 4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, "s1", tt.details)
			assert.Error(t, err)
		})
	}

	// Failed submissions never touch the cart.
	assert.Len(t, ledger.Lines(ctx, "s1"), 1)
}

func TestMessageGSTRateFallback(t *testing.T) {
	svc, ledger := newService(t, `{"isOutletOpen": true, "outletName": "Test Outlet"}`)
	ctx := context.Background()

	_, err := ledger.AdjustQuantity(ctx, "s1", 1, 1)
	require.NoError(t, err)

	// The message shows 5% when the rate is unset, but the quote itself
	// taxes at the real configured rate of zero.
	order := svc.Preview(ctx, "s1", validDetails())
	assert.Contains(t, order.Message, "GST Included (5%)")
	assert.Zero(t, order.Quote.GST)
}

func TestMessageOutletNameFallback(t *testing.T) {
	svc, ledger := newService(t, `{"isOutletOpen": true, "gstRate": 5}`)
	ctx := context.Background()

	_, err := ledger.AdjustQuantity(ctx, "s1", 1, 1)
	require.NoError(t, err)

	order := svc.Preview(ctx, "s1", validDetails())
	assert.Contains(t, order.Message, "🧾 *Order from Fallback Name*")
	assert.Equal(t, "Fallback Name", order.OutletName)
}

func TestPreviewDoesNotClearCart(t *testing.T) {
	svc, ledger := newService(t, `{"isOutletOpen": true, "gstRate": 5}`)
	ctx := context.Background()

	_, err := ledger.AdjustQuantity(ctx, "s1", 1, 1)
	require.NoError(t, err)

	_ = svc.Preview(ctx, "s1", validDetails())
	assert.Len(t, ledger.Lines(ctx, "s1"), 1)
}

func TestMessageIncludesNotes(t *testing.T) {
	svc, ledger := newService(t, `{"isOutletOpen": true, "gstRate": 5}`)
	ctx := context.Background()

	_, err := ledger.AdjustQuantity(ctx, "s1", 1, 1)
	require.NoError(t, err)

	details := validDetails()
	details.Notes = "extra spicy"

	order := svc.Preview(ctx, "s1", details)
	assert.Contains(t, order.Message, "🗒 *Notes:* extra spicy")
}

// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/5spice-online/order.com/internal/config"
	"github.com/5spice-online/order.com/internal/domain/cart"
	"github.com/5spice-online/order.com/internal/domain/catalog"
	"github.com/5spice-online/order.com/internal/domain/pricing"
)

// Service turns the current cart into an outbound WhatsApp order
// message. Sending is fire-and-forget: once the deep link is produced
// the order is considered submitted and the cart is cleared.
type Service struct {
	ledger  *cart.Ledger
	engine  *pricing.Engine
	catalog *catalog.Store
	config  *config.Config
	log     *logrus.Logger
}

// NewService creates a checkout service
func NewService(ledger *cart.Ledger, engine *pricing.Engine, cat *catalog.Store, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		ledger:  ledger,
		engine:  engine,
		catalog: cat,
		config:  cfg,
		log:     log,
	}
}

// CustomerDetails represents the checkout form fields
type CustomerDetails struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
	Notes   string `json:"notes"`
}

// Order represents a submitted order: the formatted message text and the
// deep link that carries it.
type Order struct {
	Message    string        `json:"message"`
	DeepLink   string        `json:"whatsapp_url"`
	Quote      pricing.Quote `json:"quote"`
	Lines      []cart.Line   `json:"lines"`
	OutletName string        `json:"outlet_name"`
}

// Submit builds the order message and deep link for the session's cart,
// then clears the cart. There is no delivery confirmation; success is
// assumed once the link exists.
func (s *Service) Submit(ctx context.Context, sessionID string, details CustomerDetails) (*Order, error) {
	if err := validateDetails(details); err != nil {
		return nil, err
	}

	lines := s.ledger.Lines(ctx, sessionID)
	if len(lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	order := s.Preview(ctx, sessionID, details)

	if err := s.ledger.Clear(ctx, sessionID); err != nil {
		// The order message already exists; a failed clear only means
		// the cart resurrects next visit.
		s.log.WithError(err).Warn("failed to clear cart after checkout")
	}

	s.log.WithFields(logrus.Fields{
		"session_id":  sessionID,
		"total_items": order.Quote.TotalItems,
		"grand_total": order.Quote.GrandTotal,
	}).Info("order submitted")

	return order, nil
}

// Preview builds the order message without clearing the cart
func (s *Service) Preview(ctx context.Context, sessionID string, details CustomerDetails) *Order {
	lines := s.ledger.Lines(ctx, sessionID)
	quote := s.engine.Quote(lines)

	outlet := s.catalog.Config().OutletName
	if outlet == "" {
		outlet = s.config.App.Name
	}

	message := buildMessage(outlet, lines, quote, s.catalog.Config().GSTRate, details)

	return &Order{
		Message:    message,
		DeepLink:   fmt.Sprintf("https://wa.me/%s?text=%s", s.config.WhatsApp.PhoneNumber, url.QueryEscape(message)),
		Quote:      quote,
		Lines:      lines,
		OutletName: outlet,
	}
}

func validateDetails(details CustomerDetails) error {
	if strings.TrimSpace(details.Name) == "" ||
		strings.TrimSpace(details.Phone) == "" ||
		strings.TrimSpace(details.Address) == "" {
		return fmt.Errorf("name, phone and address are required")
	}
	return nil
}

// buildMessage renders the order text block: order lines, category
// discount breakdown, GST line, total payable and customer details.
func buildMessage(outlet string, lines []cart.Line, quote pricing.Quote, gstRate float64, details CustomerDetails) string {
	orderLines := make([]string, 0, len(lines))
	for _, line := range lines {
		orderLines = append(orderLines, fmt.Sprintf("%d× %s – %s",
			line.Qty, line.Name, pricing.FormatINR(line.Price*float64(line.Qty))))
	}

	discountLines := make([]string, 0, len(quote.DiscountBreakdown))
	for _, d := range quote.DiscountBreakdown {
		discountLines = append(discountLines, fmt.Sprintf("%s (%g%%) – %s",
			d.Category, d.Percent, pricing.FormatINR(d.Amount)))
	}

	// The customer page shows "GST Included (5%)" even when the rate is
	// unset; keep that fallback.
	if gstRate == 0 {
		gstRate = 5
	}

	notes := details.Notes
	if notes == "" {
		notes = "-"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🧾 *Order from %s*\n\n", outlet)
	b.WriteString(strings.Join(orderLines, "\n"))
	b.WriteString("\n\n")
	if len(discountLines) > 0 {
		b.WriteString(strings.Join(discountLines, "\n"))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "GST Included (%g%%)\n", gstRate)
	fmt.Fprintf(&b, "*Total Payable:* %s\n\n", pricing.FormatINR(quote.GrandTotal))
	fmt.Fprintf(&b, "👤 *Customer:* %s\n", details.Name)
	fmt.Fprintf(&b, "📞 *Phone:* %s\n", details.Phone)
	fmt.Fprintf(&b, "📍 *Address/Table:* %s\n", details.Address)
	fmt.Fprintf(&b, "🗒 *Notes:* %s\n\n", notes)
	b.WriteString("Thank you! 🙏")

	return b.String()
}

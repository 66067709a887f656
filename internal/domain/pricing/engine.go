// internal/domain/pricing/engine.go
package pricing

import (
	"fmt"
	"math"

	"github.com/5spice-online/order.com/internal/config"
	"github.com/5spice-online/order.com/internal/domain/cart"
	"github.com/5spice-online/order.com/internal/domain/catalog"
)

// DefaultTrialDiscountPercent is the flat discount applied to every
// order while the trial pricing policy is enabled. Temporary policy, not
// a permanent pricing rule: turn it off with
// PRICING_TRIAL_DISCOUNT_ENABLED rather than editing the algorithm.
const DefaultTrialDiscountPercent = 20.0

// DiscountLine is one entry of the discount breakdown shown to the customer
type DiscountLine struct {
	Category string  `json:"category"`
	Percent  float64 `json:"percent"`
	Amount   float64 `json:"amount"`
}

// Quote represents the derived totals for a cart. All values retain full
// float precision; display formatting truncates to whole currency units.
type Quote struct {
	Subtotal          float64        `json:"subtotal"`
	TotalDiscount     float64        `json:"total_discount"`
	DiscountBreakdown []DiscountLine `json:"discount_breakdown"`
	GST               float64        `json:"gst"`
	GrandTotal        float64        `json:"grand_total"`
	TotalItems        int            `json:"total_items"`
}

// Engine derives totals from cart lines and the catalog. It is a pure
// function of its inputs and holds no state between quotes.
type Engine struct {
	catalog      *catalog.Store
	trialEnabled bool
	trialPercent float64
}

// NewEngine creates a pricing engine
func NewEngine(cat *catalog.Store, cfg *config.Config) *Engine {
	return &Engine{
		catalog:      cat,
		trialEnabled: cfg.Pricing.TrialDiscountEnabled,
		trialPercent: cfg.Pricing.TrialDiscountPercent,
	}
}

// Quote computes subtotal, discounts, tax and grand total for the given
// lines. Category discounts are evaluated in catalog order; membership
// is by line id in the category's item set, with each item assumed to
// belong to exactly one category. The taxable amount is intentionally
// not clamped: stacked discounts exceeding the subtotal push it negative.
func (e *Engine) Quote(lines []cart.Line) Quote {
	quote := Quote{DiscountBreakdown: []DiscountLine{}}

	for _, line := range lines {
		quote.Subtotal += line.Price * float64(line.Qty)
		quote.TotalItems += line.Qty
	}

	for _, cat := range e.catalog.Categories() {
		if cat.CategoryDiscount <= 0 {
			continue
		}

		sum := 0.0
		matched := false
		for _, line := range lines {
			if cat.HasItem(line.ID) {
				sum += line.Price * float64(line.Qty)
				matched = true
			}
		}
		if !matched {
			continue
		}

		amount := sum * cat.CategoryDiscount / 100
		quote.TotalDiscount += amount
		quote.DiscountBreakdown = append(quote.DiscountBreakdown, DiscountLine{
			Category: cat.Name,
			Percent:  cat.CategoryDiscount,
			Amount:   amount,
		})
	}

	if e.trialEnabled {
		quote.TotalDiscount += quote.Subtotal * e.trialPercent / 100
	}

	taxable := quote.Subtotal - quote.TotalDiscount
	quote.GST = taxable * e.catalog.Config().GSTRate / 100
	quote.GrandTotal = taxable + quote.GST

	return quote
}

// FormatINR renders a monetary value for display. Fractional currency
// units are truncated, not rounded to nearest.
func FormatINR(v float64) string {
	return fmt.Sprintf("₹%d", int64(math.Trunc(v)))
}

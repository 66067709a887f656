// internal/pkg/receipt/service.go
package receipt

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/5spice-online/order.com/internal/config"
	"github.com/5spice-online/order.com/internal/domain/cart"
	"github.com/5spice-online/order.com/internal/domain/pricing"
)

// Service handles order receipt PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new receipt service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	OutletName string
	Date       string
	Lines      []receiptLine
	Quote      pricing.Quote
	Subtotal   string
	Discount   string
	GST        string
	GrandTotal string
	GSTRate    float64
}

type receiptLine struct {
	Qty    int
	Name   string
	Amount string
}

// Generate renders a PDF receipt for a priced order
func (s *Service) Generate(outletName string, lines []cart.Line, quote pricing.Quote, gstRate float64) (*bytes.Buffer, error) {
	data := ReceiptData{
		OutletName: outletName,
		Date:       time.Now().Format("January 2, 2006 3:04 PM"),
		Quote:      quote,
		Subtotal:   pricing.FormatINR(quote.Subtotal),
		Discount:   pricing.FormatINR(quote.TotalDiscount),
		GST:        pricing.FormatINR(quote.GST),
		GrandTotal: pricing.FormatINR(quote.GrandTotal),
		GSTRate:    gstRate,
	}
	for _, line := range lines {
		data.Lines = append(data.Lines, receiptLine{
			Qty:    line.Qty,
			Name:   line.Name,
			Amount: pricing.FormatINR(line.Price * float64(line.Qty)),
		})
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data ReceiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; font-size: 13px; color: #333; }
  h1 { font-size: 20px; margin-bottom: 2px; }
  .date { color: #777; margin-bottom: 16px; }
  table { width: 100%; border-collapse: collapse; }
  th, td { text-align: left; padding: 6px 4px; border-bottom: 1px solid #ddd; }
  td.amount, th.amount { text-align: right; }
  .totals td { border: none; padding: 3px 4px; }
  .grand { font-weight: bold; font-size: 15px; }
</style>
</head>
<body>
  <h1>{{.OutletName}}</h1>
  <div class="date">{{.Date}}</div>
  <table>
    <tr><th>Qty</th><th>Item</th><th class="amount">Amount</th></tr>
    {{range .Lines}}
    <tr><td>{{.Qty}}</td><td>{{.Name}}</td><td class="amount">{{.Amount}}</td></tr>
    {{end}}
  </table>
  <table class="totals">
    <tr><td>Subtotal</td><td class="amount">{{.Subtotal}}</td></tr>
    <tr><td>Discounts</td><td class="amount">-{{.Discount}}</td></tr>
    <tr><td>GST ({{.GSTRate}}%)</td><td class="amount">{{.GST}}</td></tr>
    <tr class="grand"><td>Total Payable</td><td class="amount">{{.GrandTotal}}</td></tr>
  </table>
</body>
</html>`

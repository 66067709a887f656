// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/5spice-online/order.com/internal/domain/cart"
	"github.com/5spice-online/order.com/internal/domain/catalog"
	"github.com/5spice-online/order.com/internal/domain/checkout"
	"github.com/5spice-online/order.com/internal/domain/pricing"
	"github.com/5spice-online/order.com/internal/pkg/receipt"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	service *checkout.Service
	ledger  *cart.Ledger
	engine  *pricing.Engine
	catalog *catalog.Store
	receipt *receipt.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(svc *checkout.Service, ledger *cart.Ledger, engine *pricing.Engine, cat *catalog.Store, rcpt *receipt.Service) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		ledger:  ledger,
		engine:  engine,
		catalog: cat,
		receipt: rcpt,
	}
}

// Submit handles POST /checkout
func (h *CheckoutHandler) Submit(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var details checkout.CustomerDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if !h.catalog.Config().IsOutletOpen {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Outlet is currently closed",
		})
		return
	}

	order, err := h.service.Submit(c.Request.Context(), sessionID, details)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order submitted successfully",
		"data":    order,
	})
}

// Preview handles POST /checkout/preview
func (h *CheckoutHandler) Preview(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var details checkout.CustomerDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order preview generated successfully",
		"data":    h.service.Preview(c.Request.Context(), sessionID, details),
	})
}

// Receipt handles GET /checkout/receipt — a PDF of the current cart
func (h *CheckoutHandler) Receipt(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	lines := h.ledger.Lines(c.Request.Context(), sessionID)
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "cart is empty",
		})
		return
	}

	quote := h.engine.Quote(lines)
	outletCfg := h.catalog.Config()

	outlet := outletCfg.OutletName
	if outlet == "" {
		outlet = "Receipt"
	}

	buf, err := h.receipt.Generate(outlet, lines, quote, outletCfg.GSTRate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", sessionID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// getOrCreateSessionID gets session ID from cookie or creates a new one
func (h *CheckoutHandler) getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie("session_id", sessionID, 86400, "/", "", false, true)
	}

	return sessionID
}

// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/5spice-online/order.com/internal/domain/cart"
	"github.com/5spice-online/order.com/internal/domain/render"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	ledger *cart.Ledger
	hub    *render.Hub
}

// NewCartHandler creates a new cart handler
func NewCartHandler(ledger *cart.Ledger, hub *render.Hub) *CartHandler {
	return &CartHandler{
		ledger: ledger,
		hub:    hub,
	}
}

// AdjustQuantityRequest represents a quantity change for one item
type AdjustQuantityRequest struct {
	ItemID int `json:"item_id" binding:"required"`
	Delta  int `json:"delta" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	snap := h.hub.Snapshot(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    snap,
	})
}

// AdjustQuantity handles POST /cart/items
func (h *CartHandler) AdjustQuantity(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var req AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	change, err := h.ledger.AdjustQuantity(c.Request.Context(), sessionID, req.ItemID, req.Delta)
	if err != nil {
		if errors.Is(err, cart.ErrUnknownItem) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Item not found in menu",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
		"data": gin.H{
			"change":   change,
			"snapshot": h.hub.Snapshot(c.Request.Context(), sessionID),
		},
	})
}

// GetItemCount handles GET /cart/count
func (h *CartHandler) GetItemCount(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"total_items": h.ledger.TotalItems(c.Request.Context(), sessionID),
		},
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	if err := h.ledger.Clear(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// getOrCreateSessionID gets session ID from cookie or creates a new one
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()

		// Session cookie (24 hours)
		c.SetCookie("session_id", sessionID, 86400, "/", "", false, true)
	}

	return sessionID
}

// internal/interfaces/http/handlers/menu.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/5spice-online/order.com/internal/domain/catalog"
)

// MenuHandler handles menu and outlet config endpoints
type MenuHandler struct {
	catalog *catalog.Store
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(cat *catalog.Store) *MenuHandler {
	return &MenuHandler{
		catalog: cat,
	}
}

// GetMenu handles GET /menu
func (h *MenuHandler) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Menu retrieved successfully",
		"data": gin.H{
			"categories": h.catalog.Categories(),
		},
	})
}

// GetConfig handles GET /config
func (h *MenuHandler) GetConfig(c *gin.Context) {
	cfg := h.catalog.Config()

	c.JSON(http.StatusOK, gin.H{
		"message": "Outlet config retrieved successfully",
		"data":    cfg,
	})
}

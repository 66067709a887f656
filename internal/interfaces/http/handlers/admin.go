// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/5spice-online/order.com/internal/domain/admin"
	"github.com/5spice-online/order.com/internal/domain/catalog"
	"github.com/5spice-online/order.com/internal/pkg/auth"
)

// AdminHandler handles admin dashboard endpoints
type AdminHandler struct {
	service *admin.Service
	gate    *auth.PINGate
	jwt     *auth.JWTManager
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(svc *admin.Service, gate *auth.PINGate, jwt *auth.JWTManager) *AdminHandler {
	return &AdminHandler{
		service: svc,
		gate:    gate,
		jwt:     jwt,
	}
}

// LoginRequest represents the PIN login payload
type LoginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.gate.Authenticate(c.Request.Context(), req.PIN); err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, auth.ErrLocked) {
			status = http.StatusTooManyRequests
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	token, err := h.jwt.GenerateAdminToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data": gin.H{
			"token": token,
		},
	})
}

// GetOverrides handles GET /admin/overrides
func (h *AdminHandler) GetOverrides(c *gin.Context) {
	override, found, err := h.service.GetOverride(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve overrides",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Overrides retrieved successfully",
		"data": gin.H{
			"override": override,
			"found":    found,
		},
	})
}

// SaveOverrides handles PUT /admin/overrides
func (h *AdminHandler) SaveOverrides(c *gin.Context) {
	var override catalog.Override
	if err := c.ShouldBindJSON(&override); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.service.SaveOverride(c.Request.Context(), override)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save overrides",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Overrides saved successfully",
		"data":    updated,
	})
}

// ResetOverrides handles DELETE /admin/overrides
func (h *AdminHandler) ResetOverrides(c *gin.Context) {
	if err := h.service.ResetOverrides(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to reset overrides",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Overrides reset successfully",
	})
}

// TableQR handles GET /admin/tables/:table/qr
func (h *AdminHandler) TableQR(c *gin.Context) {
	table, err := strconv.Atoi(c.Param("table"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid table number",
		})
		return
	}

	png, err := h.service.TableQR(table)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

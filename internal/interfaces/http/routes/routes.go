// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/5spice-online/order.com/internal/config"
	"github.com/5spice-online/order.com/internal/domain/admin"
	"github.com/5spice-online/order.com/internal/domain/cart"
	"github.com/5spice-online/order.com/internal/domain/catalog"
	"github.com/5spice-online/order.com/internal/domain/checkout"
	"github.com/5spice-online/order.com/internal/domain/pricing"
	"github.com/5spice-online/order.com/internal/domain/render"
	"github.com/5spice-online/order.com/internal/interfaces/http/handlers"
	"github.com/5spice-online/order.com/internal/interfaces/http/middleware"
	"github.com/5spice-online/order.com/internal/pkg/auth"
	"github.com/5spice-online/order.com/internal/pkg/receipt"
)

// Deps carries the wired services the route handlers need
type Deps struct {
	Config   *config.Config
	Catalog  *catalog.Store
	Ledger   *cart.Ledger
	Engine   *pricing.Engine
	Hub      *render.Hub
	Checkout *checkout.Service
	Admin    *admin.Service
	Gate     *auth.PINGate
	JWT      *auth.JWTManager
	Receipt  *receipt.Service
}

// SetupRoutes wires all API routes onto the router group
func SetupRoutes(rg *gin.RouterGroup, deps Deps) {
	setupMenuRoutes(rg, deps)
	setupCartRoutes(rg, deps)
	setupCheckoutRoutes(rg, deps)
	setupAdminRoutes(rg, deps)
}

// setupMenuRoutes sets up menu and outlet config routes
func setupMenuRoutes(rg *gin.RouterGroup, deps Deps) {
	menuHandler := handlers.NewMenuHandler(deps.Catalog)

	rg.GET("/menu", menuHandler.GetMenu)
	rg.GET("/config", menuHandler.GetConfig)
}

// setupCartRoutes sets up guest cart routes
func setupCartRoutes(rg *gin.RouterGroup, deps Deps) {
	cartHandler := handlers.NewCartHandler(deps.Ledger, deps.Hub)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/items", cartHandler.AdjustQuantity)
		cartGroup.GET("/count", cartHandler.GetItemCount)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
}

// setupCheckoutRoutes sets up checkout routes
func setupCheckoutRoutes(rg *gin.RouterGroup, deps Deps) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout, deps.Ledger, deps.Engine, deps.Catalog, deps.Receipt)

	checkoutGroup := rg.Group("/checkout")
	{
		checkoutGroup.POST("", checkoutHandler.Submit)
		checkoutGroup.POST("/preview", checkoutHandler.Preview)
		checkoutGroup.GET("/receipt", checkoutHandler.Receipt)
	}
}

// setupAdminRoutes sets up admin dashboard routes
func setupAdminRoutes(rg *gin.RouterGroup, deps Deps) {
	adminHandler := handlers.NewAdminHandler(deps.Admin, deps.Gate, deps.JWT)

	adminGroup := rg.Group("/admin")
	{
		// Public: the PIN gate itself
		adminGroup.POST("/login", adminHandler.Login)

		// Protected admin endpoints
		protected := adminGroup.Group("")
		protected.Use(middleware.AdminAuthMiddleware(deps.Config))
		{
			protected.GET("/overrides", adminHandler.GetOverrides)
			protected.PUT("/overrides", adminHandler.SaveOverrides)
			protected.DELETE("/overrides", adminHandler.ResetOverrides)
			protected.GET("/tables/:table/qr", adminHandler.TableQR)
		}
	}
}

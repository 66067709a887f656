// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/sirupsen/logrus"

	"github.com/5spice-online/order.com/internal/config"
	"github.com/5spice-online/order.com/internal/domain/admin"
	"github.com/5spice-online/order.com/internal/domain/cart"
	"github.com/5spice-online/order.com/internal/domain/catalog"
	"github.com/5spice-online/order.com/internal/domain/checkout"
	"github.com/5spice-online/order.com/internal/domain/pricing"
	"github.com/5spice-online/order.com/internal/domain/render"
	"github.com/5spice-online/order.com/internal/infrastructure/storage"
	"github.com/5spice-online/order.com/internal/infrastructure/storage/redis"
	"github.com/5spice-online/order.com/internal/interfaces/http"
	"github.com/5spice-online/order.com/internal/interfaces/http/routes"
	"github.com/5spice-online/order.com/internal/pkg/auth"
	"github.com/5spice-online/order.com/internal/pkg/receipt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	logger := newLogger(cfg)

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := redisClient.Health(); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	// Persistence: Redis primary with in-memory fallback when a write fails
	kv := storage.NewFallbackStore(redis.NewKVStore(redisClient.GetClient()), logger)

	// Catalog: load the outlet config and menu documents, apply overrides
	catalogStore := catalog.NewStore(cfg, kv, logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.FetchTimeout)
	if err := catalogStore.Load(ctx); err != nil {
		// A failed source load is not fatal: the page degrades to an
		// empty menu, matching the behavior of a cold start offline.
		logger.WithError(err).Warn("catalog load failed, starting with degraded menu")
	}
	cancel()

	// Cart ledger and render sync
	bus := EventBus.New()
	ledger := cart.NewLedger(kv, catalogStore, bus, logger)
	engine := pricing.NewEngine(catalogStore, cfg)

	hub, err := render.NewHub(ledger, engine, bus, logger)
	if err != nil {
		log.Fatalf("Failed to create render hub: %v", err)
	}
	hub.Register(render.NewMenuGrid())
	hub.Register(render.NewCartDrawer())

	// Checkout and admin services
	checkoutService := checkout.NewService(ledger, engine, catalogStore, cfg, logger)
	adminService := admin.NewService(kv, catalogStore, cfg, logger)
	pinGate := auth.NewPINGate(kv, cfg, logger)
	jwtManager := auth.NewJWTManager(cfg)
	receiptService := receipt.NewService(cfg)

	log.Println("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, redisClient.GetClient(), routes.Deps{
		Config:   cfg,
		Catalog:  catalogStore,
		Ledger:   ledger,
		Engine:   engine,
		Hub:      hub,
		Checkout: checkoutService,
		Admin:    adminService,
		Gate:     pinGate,
		JWT:      jwtManager,
		Receipt:  receiptService,
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Server shutdown completed")
}

// newLogger builds the shared logrus logger from config
func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

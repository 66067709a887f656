// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the ordering service
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Pricing  PricingConfig
	Admin    AdminConfig
	JWT      JWTConfig
	WhatsApp WhatsAppConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
	BaseURL     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// CatalogConfig points at the two external JSON documents the menu is
// built from. Sources may be http(s) URLs or local file paths.
type CatalogConfig struct {
	ConfigSource   string
	ProductsSource string
	FetchTimeout   time.Duration
}

// PricingConfig contains discount policy configuration
type PricingConfig struct {
	// TrialDiscountEnabled toggles the flat trial discount without
	// touching the discount algorithm.
	TrialDiscountEnabled bool
	TrialDiscountPercent float64
}

// AdminConfig contains the admin PIN gate configuration
type AdminConfig struct {
	PINHash         string
	MaxAttempts     int
	LockoutDuration time.Duration
}

// JWTConfig contains admin token configuration
type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

// WhatsAppConfig contains the outbound checkout deep link target
type WhatsAppConfig struct {
	PhoneNumber string
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "5Spice Ordering"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
			BaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Catalog: CatalogConfig{
			ConfigSource:   getEnv("CATALOG_CONFIG_SOURCE", "./data/config.json"),
			ProductsSource: getEnv("CATALOG_PRODUCTS_SOURCE", "./data/products.json"),
			FetchTimeout:   getEnvAsDuration("CATALOG_FETCH_TIMEOUT", 10*time.Second),
		},
		Pricing: PricingConfig{
			TrialDiscountEnabled: getEnvAsBool("PRICING_TRIAL_DISCOUNT_ENABLED", true),
			TrialDiscountPercent: getEnvAsFloat("PRICING_TRIAL_DISCOUNT_PERCENT", 20),
		},
		Admin: AdminConfig{
			PINHash:         getEnv("ADMIN_PIN_HASH", ""),
			MaxAttempts:     getEnvAsInt("ADMIN_MAX_ATTEMPTS", 5),
			LockoutDuration: getEnvAsDuration("ADMIN_LOCKOUT_DURATION", 15*time.Minute),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "change-me-to-a-32-byte-minimum-secret!!"),
			TokenExpiry: getEnvAsDuration("JWT_TOKEN_EXPIRY", 2*time.Hour),
		},
		WhatsApp: WhatsAppConfig{
			PhoneNumber: getEnv("WHATSAPP_PHONE", "919867378209"),
		},
		Security: SecurityConfig{
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	if c.Catalog.ConfigSource == "" || c.Catalog.ProductsSource == "" {
		return fmt.Errorf("CATALOG_CONFIG_SOURCE and CATALOG_PRODUCTS_SOURCE are required")
	}

	if c.Pricing.TrialDiscountPercent < 0 {
		return fmt.Errorf("PRICING_TRIAL_DISCOUNT_PERCENT cannot be negative")
	}

	if c.WhatsApp.PhoneNumber == "" {
		return fmt.Errorf("WHATSAPP_PHONE is required")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

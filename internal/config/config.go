package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata" // PRICE_TIMEZONE must resolve on minimal images

	"github.com/spf13/viper"
)

// Config holds all application configuration shared by the pricing and
// management services. Each process reads its own environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Pricing  PricingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	PoolMin  int
	PoolMax  int
	Migrate  bool
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// PricingConfig holds settings for talking to, and computing dates in, the
// pricing service.
type PricingConfig struct {
	ServiceURL string
	Timeout    time.Duration
	Timezone   string
	// AdminEnabled exposes /api/v1/prices on the pricing service. A replica
	// with it off serves only the read-only boundary.
	AdminEnabled bool
}

// Load reads configuration from environment variables.
// It uses viper to read values and provides sensible defaults for development.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "land_lease")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_POOL_MIN", 2)
	v.SetDefault("DB_POOL_MAX", 10)
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("PRICING_SERVICE_URL", "http://localhost:8081")
	v.SetDefault("PRICING_TIMEOUT", "5s")
	v.SetDefault("PRICE_TIMEZONE", "Asia/Jakarta")
	v.SetDefault("PRICE_ADMIN_ENABLED", true)

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:     v.GetString("PORT"),
			Env:      v.GetString("ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			PoolMin:  v.GetInt("DB_POOL_MIN"),
			PoolMax:  v.GetInt("DB_POOL_MAX"),
			Migrate:  v.GetBool("DB_MIGRATE"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
		Pricing: PricingConfig{
			ServiceURL:   strings.TrimRight(v.GetString("PRICING_SERVICE_URL"), "/"),
			Timeout:      v.GetDuration("PRICING_TIMEOUT"),
			Timezone:     v.GetString("PRICE_TIMEZONE"),
			AdminEnabled: v.GetBool("PRICE_ADMIN_ENABLED"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Port == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.PoolMin < 0 {
		return fmt.Errorf("DB_POOL_MIN must be non-negative")
	}
	if c.Database.PoolMax < 1 {
		return fmt.Errorf("DB_POOL_MAX must be at least 1")
	}
	if c.Database.PoolMin > c.Database.PoolMax {
		return fmt.Errorf("DB_POOL_MIN must be less than or equal to DB_POOL_MAX")
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	if c.Pricing.ServiceURL == "" {
		return fmt.Errorf("PRICING_SERVICE_URL is required")
	}
	if u, err := url.Parse(c.Pricing.ServiceURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("PRICING_SERVICE_URL must be an absolute URL, got %q", c.Pricing.ServiceURL)
	}
	if c.Pricing.Timeout <= 0 {
		return fmt.Errorf("PRICING_TIMEOUT must be positive")
	}
	if _, err := c.Pricing.Location(); err != nil {
		return fmt.Errorf("PRICE_TIMEZONE is invalid: %w", err)
	}

	return nil
}

// Location returns the time zone used to decide which calendar day "today" is.
func (p PricingConfig) Location() (*time.Location, error) {
	if p.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(p.Timezone)
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that the configuration is valid and complete.
// It returns an error if required fields are missing or values are invalid.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validateServer(cfg); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	if err := validateStore(cfg); err != nil {
		return fmt.Errorf("invalid store config: %w", err)
	}

	if err := validateIdentity(cfg); err != nil {
		return fmt.Errorf("invalid identity config: %w", err)
	}

	return nil
}

// validateServer validates the server-related fields.
func validateServer(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("SERVER_ADDR is required")
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}

	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	// 0 is allowed, meaning no idle timeout.
	if cfg.IdleTimeout < 0 {
		return fmt.Errorf("SERVER_IDLE_TIMEOUT must be non-negative")
	}

	return nil
}

// validateStore validates the document store fields.
func validateStore(cfg *Config) error {
	if cfg.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}

	if !strings.HasPrefix(cfg.MongoURI, "mongodb://") && !strings.HasPrefix(cfg.MongoURI, "mongodb+srv://") {
		return fmt.Errorf("MONGODB_URI must use the mongodb:// or mongodb+srv:// scheme")
	}

	if cfg.Database == "" {
		return fmt.Errorf("MONGODB_DATABASE is required")
	}

	if cfg.ItemsCollection == "" {
		return fmt.Errorf("ITEMS_COLLECTION is required")
	}

	if cfg.ConnectTimeout <= 0 {
		return fmt.Errorf("MONGODB_CONNECT_TIMEOUT must be positive")
	}

	return nil
}

// validateIdentity validates the identity provider fields.
func validateIdentity(cfg *Config) error {
	if cfg.Issuer == "" {
		return fmt.Errorf("AUTH_ISSUER is required")
	}

	if cfg.Audience == "" {
		return fmt.Errorf("AUTH_AUDIENCE is required")
	}

	if cfg.JWKSURL == "" {
		return fmt.Errorf("AUTH_JWKS_URL is required")
	}

	parsedURL, err := url.Parse(cfg.JWKSURL)
	if err != nil {
		return fmt.Errorf("invalid AUTH_JWKS_URL: %w", err)
	}

	if !parsedURL.IsAbs() {
		return fmt.Errorf("AUTH_JWKS_URL must be an absolute URL")
	}

	if parsedURL.Scheme != "https" && parsedURL.Scheme != "http" {
		return fmt.Errorf("AUTH_JWKS_URL must use http or https scheme")
	}

	if cfg.KeysCacheTTL <= 0 {
		return fmt.Errorf("AUTH_KEYS_CACHE_TTL must be positive")
	}

	if cfg.ClockSkew < 0 {
		return fmt.Errorf("AUTH_CLOCK_SKEW must be non-negative")
	}

	return nil
}

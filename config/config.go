package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the application configuration
type Config struct {
	KratosURL           string        // Kratos internal URL (Frontend API - port 4433)
	Port                string        // Service port
	DatabaseURL         string        // Postgres DSN for profiles and assessment results
	SiteBaseURL         string        // Absolute base URL prefixed to redirect targets
	SignOutRedirectURL  string        // Destination after sign-out
	CacheTTL            time.Duration // Session cache TTL
	CookieDomain        string        // Domain attribute for issued cookies
	CookieSecure        bool          // Secure attribute for issued cookies
	SessionCookieTTL    time.Duration // Session cookie lifetime
	MirrorTokenSecret   string        // Secret for signing mirror JWT tokens
	MirrorTokenIssuer   string        // JWT issuer claim
	MirrorTokenAudience string        // JWT audience claim
	MirrorTokenTTL      time.Duration // JWT token TTL
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	config := &Config{
		KratosURL:           getEnv("KRATOS_URL", "http://kratos:4433"),
		Port:                getEnv("PORT", "8888"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		SiteBaseURL:         getEnv("SITE_BASE_URL", ""),
		SignOutRedirectURL:  getEnv("SIGN_OUT_REDIRECT_URL", ""),
		CacheTTL:            5 * time.Minute, // Default 5 minutes
		CookieDomain:        getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:        getEnv("COOKIE_SECURE", "true") == "true",
		SessionCookieTTL:    30 * 24 * time.Hour, // Default 30 days
		MirrorTokenSecret:   getEnv("MIRROR_TOKEN_SECRET", ""),
		MirrorTokenIssuer:   getEnv("MIRROR_TOKEN_ISSUER", "auth-gate"),
		MirrorTokenAudience: getEnv("MIRROR_TOKEN_AUDIENCE", "portal-backend"),
		MirrorTokenTTL:      5 * time.Minute, // Default 5 minutes
	}

	// Parse CACHE_TTL if provided
	if cacheTTLStr := os.Getenv("CACHE_TTL"); cacheTTLStr != "" {
		duration, err := time.ParseDuration(cacheTTLStr)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_TTL format: %w", err)
		}
		config.CacheTTL = duration
	}

	// Parse SESSION_COOKIE_TTL if provided
	if ttlStr := os.Getenv("SESSION_COOKIE_TTL"); ttlStr != "" {
		duration, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_COOKIE_TTL format: %w", err)
		}
		config.SessionCookieTTL = duration
	}

	// Parse MIRROR_TOKEN_TTL if provided
	if ttlStr := os.Getenv("MIRROR_TOKEN_TTL"); ttlStr != "" {
		duration, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid MIRROR_TOKEN_TTL format: %w", err)
		}
		config.MirrorTokenTTL = duration
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.KratosURL == "" {
		return fmt.Errorf("KRATOS_URL cannot be empty")
	}

	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL cannot be empty")
	}

	// HS256 will happily sign with an empty key.
	if c.MirrorTokenSecret == "" {
		return fmt.Errorf("MIRROR_TOKEN_SECRET cannot be empty")
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	if c.SessionCookieTTL <= 0 {
		return fmt.Errorf("SESSION_COOKIE_TTL must be positive")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (backend client, session manager) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Frageo portal server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Upstream REST backend.
	// APIURL is used for server-side calls; PublicAPIURL is the address
	// embedded into rendered pages for browser-originated calls.
	APIURL       string `env:"API_URL,required"`
	PublicAPIURL string `env:"PUBLIC_API_URL"`

	// Realtime chat websocket endpoint
	WSURL string `env:"WS_URL"`

	// SessionSecret is the 32-byte hex key used to seal the session cookie.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// APISecret is the HMAC key the backend signs access tokens with.
	APISecret string `env:"API_SECRET,required"`

	// Optional basic-auth fallback credentials for the backend.
	// Only used when no bearer token is available for a call.
	APIBasicUser string `env:"API_BASIC_USER"`
	APIBasicPass string `env:"API_BASIC_PASS"`

	// Key-Value store for sessions and page caches (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// SteamReturnURL is the absolute callback URL for the Steam OpenID handshake.
	SteamReturnURL string `env:"STEAM_RETURN_URL"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// The cookie sealing key must decode to exactly 32 bytes; catching this at
	// startup is cheaper than a cryptic secretbox failure on the first login.
	if key, err := hex.DecodeString(cfg.SessionSecret); err != nil || len(key) != 32 {
		return nil, fmt.Errorf("config: SESSION_SECRET must be 64 hex characters (32 bytes)")
	}

	// Browser-facing defaults mirror the server-side values when unset.
	if cfg.PublicAPIURL == "" {
		cfg.PublicAPIURL = cfg.APIURL
	}

	return cfg, nil
}

// SessionKey returns the decoded 32-byte cookie sealing key.
func (c *Config) SessionKey() [32]byte {
	var key [32]byte
	raw, _ := hex.DecodeString(c.SessionSecret)
	copy(key[:], raw)
	return key
}

// AllowedOrigins returns the extra origins permitted by CORS, parsed from
// the comma-separated EXTRA_ORIGINS value.
func (c *Config) AllowedOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}

	parts := strings.Split(c.ExtraOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"QAZPRESS_DB_PATH" envDefault:"./data/qazpress.db"`
	ServerHost string `env:"QAZPRESS_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"QAZPRESS_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"QAZPRESS_ENV" envDefault:"development"`
	LogLevel   string `env:"QAZPRESS_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL    string `env:"QAZPRESS_REDIS_URL"`                      // Optional Redis URL for distributed caching
	CachePrefix string `env:"QAZPRESS_CACHE_PREFIX" envDefault:"qzp:"` // Redis key prefix
	CacheTTL    int    `env:"QAZPRESS_CACHE_TTL" envDefault:"300"`     // Default cache TTL in seconds

	// AI provider configuration. The variable names are the upstream
	// provider conventions, not QAZPRESS_-prefixed.
	GeminiAPIKey     string `env:"GEMINI_API_KEY"`
	GeminiModel      string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenRouterModel  string `env:"OPENROUTER_MODEL"` // Model selector override for the secondary provider

	// Seeding configuration
	DoSeed bool `env:"QAZPRESS_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// HasPrimaryAI returns true if the primary (Gemini) provider is configured.
func (c Config) HasPrimaryAI() bool {
	return c.GeminiAPIKey != ""
}

// HasSecondaryAI returns true if the secondary (OpenRouter/OpenAI) provider is configured.
func (c Config) HasSecondaryAI() bool {
	return c.OpenRouterAPIKey != "" || c.OpenAIAPIKey != ""
}

// AIConfigured returns true if at least one AI provider is configured.
func (c Config) AIConfigured() bool {
	return c.HasPrimaryAI() || c.HasSecondaryAI()
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Gateway routes generation requests across providers in a fixed
// order: Gemini first, then the OpenAI-compatible fallback. A provider
// that errors or returns only whitespace is skipped and the next one
// is tried; the caller never sees which provider answered.
type Gateway struct {
	providers []Provider
	log       *slog.Logger
}

// NewGateway builds a gateway from provider credentials.
func NewGateway(cfg Config, log *slog.Logger) *Gateway {
	return &Gateway{
		providers: []Provider{
			newGeminiProvider(cfg),
			newChatProvider(cfg),
		},
		log: log,
	}
}

// NewGatewayWithProviders builds a gateway over an explicit provider
// chain, tried in order. Useful for embedding custom providers.
func NewGatewayWithProviders(log *slog.Logger, providers ...Provider) *Gateway {
	return &Gateway{providers: providers, log: log}
}

// Configured reports whether at least one provider can be called.
func (g *Gateway) Configured() bool {
	for _, p := range g.providers {
		if p.Configured() {
			return true
		}
	}
	return false
}

// Generate runs the prompt through the provider chain and returns the
// first non-empty result. It returns ErrNotConfigured without touching
// the network when no provider has a key, and ErrCallFailed wrapping
// every provider error when all of them fail.
func (g *Gateway) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if !g.Configured() {
		return "", ErrNotConfigured
	}

	var errs []error
	for _, p := range g.providers {
		if !p.Configured() {
			continue
		}
		text, err := p.Generate(ctx, prompt, opts)
		if err == nil && strings.TrimSpace(text) == "" {
			err = fmt.Errorf("%s: %w", p.Name(), ErrEmptyResponse)
		}
		if err != nil {
			g.log.Warn("ai provider call failed",
				"category", "ai",
				"provider", p.Name(),
				"error", err)
			errs = append(errs, err)
			continue
		}
		return text, nil
	}
	return "", fmt.Errorf("%w: %w", ErrCallFailed, errors.Join(errs...))
}

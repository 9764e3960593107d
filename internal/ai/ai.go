// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ai implements the AI provider gateway and the editorial
// advisors built on top of it: translation, categorization, tag
// suggestion and article analysis. Advisors never mutate persisted
// state; they return structured suggestions for the caller to accept.
package ai

import (
	"context"
	"errors"
)

// Error taxonomy. Callers distinguish configuration absence, provider
// call failure and response-shape problems via errors.Is.
var (
	// ErrNotConfigured means no provider API key is present. Surfaced
	// before any network call is attempted.
	ErrNotConfigured = errors.New("ai service is not configured")

	// ErrCallFailed means every configured provider failed.
	ErrCallFailed = errors.New("ai call failed")

	// ErrEmptyResponse means a provider returned only whitespace.
	ErrEmptyResponse = errors.New("ai provider returned empty content")

	// ErrBlocked means the provider refused the prompt on safety grounds.
	ErrBlocked = errors.New("ai content blocked by safety filter")

	// ErrNoCandidates means the provider returned no response candidates.
	ErrNoCandidates = errors.New("ai provider returned no response candidates")

	// ErrInvalidFormat means the response could not be parsed into the
	// expected structure.
	ErrInvalidFormat = errors.New("ai response is not in the expected format")

	// ErrValidation means the request was rejected before any network
	// call because its inputs were invalid.
	ErrValidation = errors.New("invalid input")
)

// Config carries provider credentials and model selection. It is built
// once from the application configuration at startup and never mutated.
type Config struct {
	GeminiAPIKey string
	GeminiModel  string

	OpenRouterAPIKey string
	OpenAIAPIKey     string
	OpenRouterModel  string
}

// Configured returns true if at least one provider has an API key.
func (c Config) Configured() bool {
	return c.GeminiAPIKey != "" || c.OpenRouterAPIKey != "" || c.OpenAIAPIKey != ""
}

// GenerateOptions tunes a single text generation call.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float64
}

// Provider is the interface for AI text generation providers.
type Provider interface {
	Name() string
	Configured() bool
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

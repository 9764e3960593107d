// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const httpTimeout = 120 * time.Second

// geminiProvider is the primary provider. It calls the Gemini
// generateContent API directly and never retries: on any failure the
// gateway falls through to the next provider instead.
type geminiProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func newGeminiProvider(cfg Config) *geminiProvider {
	return &geminiProvider{
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: httpTimeout},
	}
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) Configured() bool { return p.apiKey != "" }

func (p *geminiProvider) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if !p.Configured() {
		return "", fmt.Errorf("gemini: %w", ErrNotConfigured)
	}

	genConfig := map[string]any{}
	if opts.MaxTokens > 0 {
		genConfig["maxOutputTokens"] = opts.MaxTokens
	}
	if opts.Temperature > 0 {
		genConfig["temperature"] = opts.Temperature
	}
	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	if len(genConfig) > 0 {
		body["generationConfig"] = genConfig
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("gemini marshal: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason"`
		} `json:"candidates"`
		PromptFeedback struct {
			BlockReason string `json:"blockReason"`
		} `json:"promptFeedback"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("gemini decode: %w", err)
	}

	if result.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("gemini (%s): %w", result.PromptFeedback.BlockReason, ErrBlocked)
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("gemini: %w", ErrNoCandidates)
	}
	if result.Candidates[0].FinishReason == "SAFETY" {
		return "", fmt.Errorf("gemini (finish reason SAFETY): %w", ErrBlocked)
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	return text, nil
}

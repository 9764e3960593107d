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

const (
	chatMaxAttempts = 3
	chatRetryDelay  = 2 * time.Second
)

// chatProvider is the secondary provider. It speaks the OpenAI chat
// completions protocol against either OpenRouter or OpenAI, depending
// on which key is configured, with OpenRouter taking precedence. Rate
// limit responses (429) are retried with linear backoff; every other
// failure is final.
type chatProvider struct {
	name    string
	apiKey  string
	model   string
	baseURL string
	client  *http.Client

	// sleep is swapped out in tests so backoff does not slow them down.
	sleep func(time.Duration)
}

func newChatProvider(cfg Config) *chatProvider {
	p := &chatProvider{
		client: &http.Client{Timeout: httpTimeout},
		sleep:  time.Sleep,
	}
	switch {
	case cfg.OpenRouterAPIKey != "":
		p.name = "openrouter"
		p.apiKey = cfg.OpenRouterAPIKey
		p.baseURL = "https://openrouter.ai/api/v1"
		p.model = cfg.OpenRouterModel
		if p.model == "" {
			p.model = "deepseek/deepseek-chat"
		}
	case cfg.OpenAIAPIKey != "":
		p.name = "openai"
		p.apiKey = cfg.OpenAIAPIKey
		p.baseURL = "https://api.openai.com/v1"
		p.model = cfg.OpenRouterModel
		if p.model == "" {
			p.model = "gpt-4o-mini"
		}
	default:
		p.name = "openrouter"
	}
	return p
}

func (p *chatProvider) Name() string { return p.name }

func (p *chatProvider) Configured() bool { return p.apiKey != "" }

func (p *chatProvider) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if !p.Configured() {
		return "", fmt.Errorf("%s: %w", p.name, ErrNotConfigured)
	}

	body := map[string]any{
		"model": p.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	if opts.MaxTokens > 0 {
		body["max_tokens"] = opts.MaxTokens
	}
	if opts.Temperature > 0 {
		body["temperature"] = opts.Temperature
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%s marshal: %w", p.name, err)
	}

	var respBody []byte
	for attempt := 1; ; attempt++ {
		var status int
		status, respBody, err = p.doRequest(ctx, jsonBody)
		if err != nil {
			return "", err
		}
		if status == http.StatusOK {
			break
		}
		if status == http.StatusTooManyRequests && attempt < chatMaxAttempts {
			// 2s, then 4s.
			p.sleep(chatRetryDelay * time.Duration(attempt))
			continue
		}
		return "", fmt.Errorf("%s error (status %d): %s", p.name, status, string(respBody))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content   string `json:"content"`
				Reasoning string `json:"reasoning"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%s decode: %w", p.name, err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", p.name, ErrNoCandidates)
	}

	// Some reasoning models leave content empty and put the answer in
	// the reasoning field instead.
	text := result.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		text = result.Choices[0].Message.Reasoning
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: %w", p.name, ErrEmptyResponse)
	}
	return text, nil
}

func (p *chatProvider) doRequest(ctx context.Context, jsonBody []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return 0, nil, fmt.Errorf("%s request: %w", p.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s call: %w", p.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%s read: %w", p.name, err)
	}
	return resp.StatusCode, respBody, nil
}

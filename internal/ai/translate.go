// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Language codes the translator accepts.
const (
	LangKazakh  = "kk"
	LangRussian = "ru"
)

var langNames = map[string]string{
	LangKazakh:  "Kazakh",
	LangRussian: "Russian",
}

// ArticleTranslation is the result of translating an article's
// editorial fields as a unit.
type ArticleTranslation struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt"`
}

// Translator translates free text and whole articles between the two
// site languages.
type Translator struct {
	gw *Gateway
}

func NewTranslator(gw *Gateway) *Translator {
	return &Translator{gw: gw}
}

func validateLangPair(src, dst string) error {
	if _, ok := langNames[src]; !ok {
		return fmt.Errorf("unknown source language %q: %w", src, ErrValidation)
	}
	if _, ok := langNames[dst]; !ok {
		return fmt.Errorf("unknown target language %q: %w", dst, ErrValidation)
	}
	if src == dst {
		return fmt.Errorf("source and target languages are the same: %w", ErrValidation)
	}
	return nil
}

// Translate translates a single piece of text. Input validation fails
// before any provider call.
func (t *Translator) Translate(ctx context.Context, text, src, dst string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty text: %w", ErrValidation)
	}
	if err := validateLangPair(src, dst); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Translate the following text from %s to %s.
Preserve the tone, any HTML or Markdown markup, and proper nouns.
Reply with the translation only, no explanations.

%s`, langNames[src], langNames[dst], text)

	result, err := t.gw.Generate(ctx, prompt, GenerateOptions{})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// TranslateArticle translates title, content and optionally excerpt in
// a single call so the model keeps terminology consistent across the
// fields. The excerpt is requested only when the source has one.
func (t *Translator) TranslateArticle(ctx context.Context, title, content, excerpt, src, dst string) (*ArticleTranslation, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("empty title: %w", ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("empty content: %w", ErrValidation)
	}
	if err := validateLangPair(src, dst); err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `Translate this news article from %s to %s.
Preserve any HTML or Markdown markup, proper nouns and numbers.
Respond with a JSON object only, no explanations, in this exact shape:
`, langNames[src], langNames[dst])
	if strings.TrimSpace(excerpt) != "" {
		sb.WriteString(`{"title": "...", "content": "...", "excerpt": "..."}`)
	} else {
		sb.WriteString(`{"title": "...", "content": "..."}`)
	}
	fmt.Fprintf(&sb, "\n\nTitle: %s\n\nContent:\n%s\n", title, content)
	if strings.TrimSpace(excerpt) != "" {
		fmt.Fprintf(&sb, "\nExcerpt: %s\n", excerpt)
	}

	raw, err := t.gw.Generate(ctx, sb.String(), GenerateOptions{})
	if err != nil {
		return nil, err
	}

	obj, err := firstJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("translation reply: %w", err)
	}
	var result ArticleTranslation
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return nil, fmt.Errorf("translation decode (%v): %w", err, ErrInvalidFormat)
	}
	if strings.TrimSpace(result.Title) == "" || strings.TrimSpace(result.Content) == "" {
		return nil, fmt.Errorf("translation missing title or content: %w", ErrInvalidFormat)
	}
	return &result, nil
}

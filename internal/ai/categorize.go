// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// ArticleInput is the text an advisor works on. Callers pass the
// fields of whichever language version is the richer one.
type ArticleInput struct {
	Title   string
	Excerpt string
	Content string
}

// CategoryOption is one category a categorizer may pick.
type CategoryOption struct {
	Slug   string
	NameKz string
	NameRu string
}

// Categorizer suggests which of the site's categories an article
// belongs to. It only ever returns a slug from the provided options;
// an unusable model answer yields an empty suggestion, not an error.
type Categorizer struct {
	gw  *Gateway
	log *slog.Logger
}

func NewCategorizer(gw *Gateway, log *slog.Logger) *Categorizer {
	return &Categorizer{gw: gw, log: log}
}

// contentSample limits how much article body goes into a prompt.
const contentSample = 3000

func sampleContent(s string) string {
	runes := []rune(s)
	if len(runes) <= contentSample {
		return s
	}
	return string(runes[:contentSample])
}

// Categorize returns the slug of the best-fitting category, or "" when
// the model's answer matches none of the options.
func (c *Categorizer) Categorize(ctx context.Context, article ArticleInput, options []CategoryOption) (string, error) {
	if !c.gw.Configured() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(article.Title) == "" {
		return "", fmt.Errorf("empty title: %w", ErrValidation)
	}
	if len(options) == 0 {
		return "", fmt.Errorf("no categories to choose from: %w", ErrValidation)
	}

	var sb strings.Builder
	sb.WriteString("You are categorizing an article for a bilingual Kazakh/Russian newspaper.\n")
	sb.WriteString("Pick exactly one category from this list and reply with its slug only:\n\n")
	for _, opt := range options {
		fmt.Fprintf(&sb, "- %s (%s / %s)\n", opt.Slug, opt.NameKz, opt.NameRu)
	}
	fmt.Fprintf(&sb, "\nTitle: %s\n", article.Title)
	if article.Excerpt != "" {
		fmt.Fprintf(&sb, "Excerpt: %s\n", article.Excerpt)
	}
	fmt.Fprintf(&sb, "\n%s\n", sampleContent(article.Content))

	reply, err := c.gw.Generate(ctx, sb.String(), GenerateOptions{Temperature: 0.2})
	if err != nil {
		return "", err
	}

	slug := matchCategorySlug(reply, options)
	if slug == "" {
		c.log.Warn("categorizer answer matched no category",
			"category", "ai",
			"answer", strings.TrimSpace(reply))
	}
	return slug, nil
}

var slugCharRe = regexp.MustCompile(`[^a-z0-9а-яёәғқңөұүһі-]+`)

// matchCategorySlug maps a free-form model answer onto a known slug.
// It tries an exact match, then a substring match, then the first
// token of the answer with punctuation stripped.
func matchCategorySlug(reply string, options []CategoryOption) string {
	answer := strings.ToLower(strings.TrimSpace(reply))
	for _, opt := range options {
		if answer == opt.Slug {
			return opt.Slug
		}
	}
	for _, opt := range options {
		if strings.Contains(answer, opt.Slug) {
			return opt.Slug
		}
	}
	if fields := strings.Fields(answer); len(fields) > 0 {
		token := slugCharRe.ReplaceAllString(fields[0], "")
		for _, opt := range options {
			if token == opt.Slug {
				return opt.Slug
			}
		}
	}
	return ""
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/qazpress/qazpress/internal/model"
)

// TagSuggestion is one new tag proposed by the model, named in both
// languages.
type TagSuggestion struct {
	NameKz string `json:"name_kz"`
	NameRu string `json:"name_ru"`
}

// TagSuggestionResult splits suggestions into tags the site already
// has (to be linked) and new candidates (left to the caller to create).
type TagSuggestionResult struct {
	Existing  []model.Tag     `json:"existing"`
	Suggested []TagSuggestion `json:"suggested"`
}

// TagSuggester proposes 3-5 topical tags for an article and reconciles
// them against the existing tag catalog so duplicates are reused.
type TagSuggester struct {
	gw  *Gateway
	log *slog.Logger
}

func NewTagSuggester(gw *Gateway, log *slog.Logger) *TagSuggester {
	return &TagSuggester{gw: gw, log: log}
}

// Suggest returns tag suggestions for the article. A suggestion whose
// name matches an existing tag case-insensitively, in either language,
// goes to Existing; the rest go to Suggested.
func (s *TagSuggester) Suggest(ctx context.Context, article ArticleInput, existing []model.Tag) (*TagSuggestionResult, error) {
	if !s.gw.Configured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(article.Title) == "" {
		return nil, fmt.Errorf("empty title: %w", ErrValidation)
	}

	var sb strings.Builder
	sb.WriteString("Suggest 3 to 5 topical tags for this bilingual Kazakh/Russian newspaper article.\n")
	sb.WriteString("Respond with a JSON array only, no explanations, in this exact shape:\n")
	sb.WriteString(`[{"name_kz": "...", "name_ru": "..."}]`)
	sb.WriteString("\n\nPrefer reusing tags from the existing catalog when they fit:\n")
	for _, t := range existing {
		fmt.Fprintf(&sb, "- %s / %s\n", t.NameKz, t.NameRu)
	}
	fmt.Fprintf(&sb, "\nTitle: %s\n", article.Title)
	if article.Excerpt != "" {
		fmt.Fprintf(&sb, "Excerpt: %s\n", article.Excerpt)
	}
	fmt.Fprintf(&sb, "\n%s\n", sampleContent(article.Content))

	raw, err := s.gw.Generate(ctx, sb.String(), GenerateOptions{Temperature: 0.4})
	if err != nil {
		return nil, err
	}

	arr, err := firstJSONArray(raw)
	if err != nil {
		return nil, fmt.Errorf("tag reply: %w", err)
	}
	var suggestions []TagSuggestion
	if err := json.Unmarshal([]byte(arr), &suggestions); err != nil {
		return nil, fmt.Errorf("tag decode (%v): %w", err, ErrInvalidFormat)
	}

	result := &TagSuggestionResult{}
	seen := make(map[int64]bool)
	for _, sug := range suggestions {
		sug.NameKz = strings.TrimSpace(sug.NameKz)
		sug.NameRu = strings.TrimSpace(sug.NameRu)
		if sug.NameKz == "" && sug.NameRu == "" {
			continue
		}
		if t := matchExistingTag(sug, existing); t != nil {
			if !seen[t.ID] {
				seen[t.ID] = true
				result.Existing = append(result.Existing, *t)
			}
			continue
		}
		result.Suggested = append(result.Suggested, sug)
	}
	if len(result.Existing) == 0 && len(result.Suggested) == 0 {
		return nil, fmt.Errorf("no usable tags in reply: %w", ErrInvalidFormat)
	}
	return result, nil
}

func matchExistingTag(sug TagSuggestion, existing []model.Tag) *model.Tag {
	for i := range existing {
		t := &existing[i]
		for _, name := range []string{sug.NameKz, sug.NameRu} {
			if name == "" {
				continue
			}
			if strings.EqualFold(name, t.NameKz) || strings.EqualFold(name, t.NameRu) {
				return t
			}
		}
	}
	return nil
}

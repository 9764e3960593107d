// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// AnalyzeInput is the full bilingual article text given to the
// analyzer. Russian fields may be empty.
type AnalyzeInput struct {
	TitleKz   string
	ExcerptKz string
	ContentKz string
	TitleRu   string
	ExcerptRu string
	ContentRu string
}

// Improvements holds field-level rewrite proposals from the analyzer.
type Improvements struct {
	Title   flexString `json:"title"`
	Excerpt flexString `json:"excerpt"`
}

// Analysis is the analyzer's editorial assessment of an article.
type Analysis struct {
	Score        int          `json:"score"`
	Summary      flexString   `json:"summary"`
	Suggestions  []flexString `json:"suggestions"`
	Strengths    []flexString `json:"strengths"`
	Improvements Improvements `json:"improvements"`
}

// flexString decodes either a plain JSON string or an object keyed by
// language ({"kk": "...", "ru": "..."}); models produce both shapes.
// Anything else decodes to "".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err == nil {
		for _, key := range []string{"kk", "kz", "kazakh", "ru", "russian", "value", "text"} {
			if v, ok := m[key].(string); ok {
				*f = flexString(v)
				return nil
			}
		}
	}
	*f = ""
	return nil
}

// Analyzer produces an editorial quality review of an article: a
// 0-100 score, a summary, and concrete suggestions.
type Analyzer struct {
	gw *Gateway
}

func NewAnalyzer(gw *Gateway) *Analyzer {
	return &Analyzer{gw: gw}
}

// Analyze reviews the article and answers in targetLang, the editor's
// working language.
func (a *Analyzer) Analyze(ctx context.Context, in AnalyzeInput, targetLang string) (*Analysis, error) {
	if !a.gw.Configured() {
		return nil, ErrNotConfigured
	}
	if _, ok := langNames[targetLang]; !ok {
		return nil, fmt.Errorf("unknown target language %q: %w", targetLang, ErrValidation)
	}
	if strings.TrimSpace(in.TitleKz) == "" || strings.TrimSpace(in.ContentKz) == "" {
		return nil, fmt.Errorf("empty article: %w", ErrValidation)
	}

	hasRussian := strings.TrimSpace(in.TitleRu) != "" && strings.TrimSpace(in.ContentRu) != ""

	var sb strings.Builder
	sb.WriteString("You are an editor at a bilingual Kazakh/Russian newspaper.\n")
	sb.WriteString("Review the article below for clarity, structure, headline strength and factual tone.\n")
	if hasRussian {
		sb.WriteString("Both language versions are present; also check that they are consistent with each other.\n")
	}
	sb.WriteString("Respond with a JSON object only, no explanations, in this exact shape:\n")
	sb.WriteString(`{"score": 0, "summary": "...", "suggestions": ["..."], "strengths": ["..."], "improvements": {"title": "...", "excerpt": "..."}}`)
	fmt.Fprintf(&sb, "\nscore is an integer from 0 to 100. All text values are plain strings in %s.\n", langNames[targetLang])

	fmt.Fprintf(&sb, "\nKazakh title: %s\n", in.TitleKz)
	if in.ExcerptKz != "" {
		fmt.Fprintf(&sb, "Kazakh excerpt: %s\n", in.ExcerptKz)
	}
	fmt.Fprintf(&sb, "\nKazakh content:\n%s\n", sampleContent(in.ContentKz))
	if hasRussian {
		fmt.Fprintf(&sb, "\nRussian title: %s\n", in.TitleRu)
		if in.ExcerptRu != "" {
			fmt.Fprintf(&sb, "Russian excerpt: %s\n", in.ExcerptRu)
		}
		fmt.Fprintf(&sb, "\nRussian content:\n%s\n", sampleContent(in.ContentRu))
	}

	raw, err := a.gw.Generate(ctx, sb.String(), GenerateOptions{Temperature: 0.3})
	if err != nil {
		return nil, err
	}

	obj, err := firstJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("analysis reply: %w", err)
	}
	var result Analysis
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return nil, fmt.Errorf("analysis decode (%v): %w", err, ErrInvalidFormat)
	}
	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}
	return &result, nil
}

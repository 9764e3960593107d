// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/qazpress/qazpress/internal/ai"
	"github.com/qazpress/qazpress/internal/model"
)

// TranslateRequest is the request body for plain text translation.
type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// TranslateResponse carries a plain text translation.
type TranslateResponse struct {
	Text string `json:"text"`
}

// Translate handles POST /api/v1/ai/translate
func (h *Handler) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	text, err := h.translator.Translate(r.Context(), req.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteSuccess(w, TranslateResponse{Text: text}, nil)
}

// TranslateArticleRequest is the request body for article translation.
type TranslateArticleRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt,omitempty"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// TranslateArticle handles POST /api/v1/ai/translate-article
func (h *Handler) TranslateArticle(w http.ResponseWriter, r *http.Request) {
	var req TranslateArticleRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	result, err := h.translator.TranslateArticle(r.Context(),
		req.Title, req.Content, req.Excerpt, req.SourceLang, req.TargetLang)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteSuccess(w, result, nil)
}

// CategorizeRequest is the request body for category suggestion.
type CategorizeRequest struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt,omitempty"`
	Content string `json:"content"`
}

// CategorizeResponse carries the suggested category slug; empty when
// the advisor had no confident match.
type CategorizeResponse struct {
	CategorySlug string `json:"category_slug"`
}

// Categorize handles POST /api/v1/ai/categorize
func (h *Handler) Categorize(w http.ResponseWriter, r *http.Request) {
	var req CategorizeRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	options, err := h.taxonomy.CategoryOptions(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	slug, err := h.categorizer.Categorize(r.Context(), ai.ArticleInput{
		Title:   req.Title,
		Excerpt: req.Excerpt,
		Content: req.Content,
	}, options)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteSuccess(w, CategorizeResponse{CategorySlug: slug}, nil)
}

// SuggestTagsRequest is the request body for tag suggestion.
type SuggestTagsRequest struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt,omitempty"`
	Content string `json:"content"`
}

// SuggestTags handles POST /api/v1/ai/suggest-tags
func (h *Handler) SuggestTags(w http.ResponseWriter, r *http.Request) {
	var req SuggestTagsRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	existing, err := h.taxonomy.ListTags(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	result, err := h.tags.Suggest(r.Context(), ai.ArticleInput{
		Title:   req.Title,
		Excerpt: req.Excerpt,
		Content: req.Content,
	}, existing)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteSuccess(w, result, nil)
}

// AnalyzeRequest is the request body for editorial analysis. The
// article is referenced by ID so the analyzer always sees the stored
// text.
type AnalyzeRequest struct {
	ArticleID  int64  `json:"article_id"`
	TargetLang string `json:"target_lang,omitempty"`
}

// AnalyzeArticle handles POST /api/v1/ai/analyze
func (h *Handler) AnalyzeArticle(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if req.TargetLang == "" {
		req.TargetLang = ai.LangKazakh
	}
	a, err := h.articles.GetArticle(r.Context(), req.ArticleID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	analysis, err := h.analyzer.Analyze(r.Context(), analyzeInput(a), req.TargetLang)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteSuccess(w, analysis, nil)
}

func analyzeInput(a model.Article) ai.AnalyzeInput {
	return ai.AnalyzeInput{
		TitleKz:   a.TitleKz,
		ExcerptKz: a.ExcerptKz,
		ContentKz: a.ContentKz,
		TitleRu:   a.TitleRu.String,
		ExcerptRu: a.ExcerptRu.String,
		ContentRu: a.ContentRu.String,
	}
}

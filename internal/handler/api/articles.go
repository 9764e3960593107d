// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/qazpress/qazpress/internal/middleware"
	"github.com/qazpress/qazpress/internal/model"
	"github.com/qazpress/qazpress/internal/service"
	"github.com/qazpress/qazpress/internal/store"
)

// ArticleResponse represents an article in API responses.
type ArticleResponse struct {
	ID int64 `json:"id"`

	TitleKz   string  `json:"title_kz"`
	SlugKz    string  `json:"slug_kz"`
	ContentKz string  `json:"content_kz"`
	ExcerptKz string  `json:"excerpt_kz,omitempty"`
	TitleRu   *string `json:"title_ru,omitempty"`
	SlugRu    *string `json:"slug_ru,omitempty"`
	ContentRu *string `json:"content_ru,omitempty"`
	ExcerptRu *string `json:"excerpt_ru,omitempty"`

	ContentFormat string `json:"content_format"`
	Status        string `json:"status"`
	Published     bool   `json:"published"`

	IsBreaking    bool `json:"is_breaking"`
	IsFeatured    bool `json:"is_featured"`
	IsPinned      bool `json:"is_pinned"`
	AllowComments bool `json:"allow_comments"`

	CoverImageID *string `json:"cover_image_id,omitempty"`
	CategoryID   *int64  `json:"category_id,omitempty"`
	AuthorID     int64   `json:"author_id"`
	TagIDs       []int64 `json:"tag_ids,omitempty"`

	Views       int64      `json:"views"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// RenderedContent is HTML ready for display, present when requested
	// with ?rendered=1.
	RenderedContent string `json:"rendered_content,omitempty"`
}

func articleResponse(a model.Article) ArticleResponse {
	return ArticleResponse{
		ID:            a.ID,
		TitleKz:       a.TitleKz,
		SlugKz:        a.SlugKz,
		ContentKz:     a.ContentKz,
		ExcerptKz:     a.ExcerptKz,
		TitleRu:       nullStr(a.TitleRu),
		SlugRu:        nullStr(a.SlugRu),
		ContentRu:     nullStr(a.ContentRu),
		ExcerptRu:     nullStr(a.ExcerptRu),
		ContentFormat: a.ContentFormat,
		Status:        a.Status,
		Published:     a.Published,
		IsBreaking:    a.IsBreaking,
		IsFeatured:    a.IsFeatured,
		IsPinned:      a.IsPinned,
		AllowComments: a.AllowComments,
		CoverImageID:  nullStr(a.CoverImageID),
		CategoryID:    nullInt(a.CategoryID),
		AuthorID:      a.AuthorID,
		TagIDs:        a.TagIDs,
		Views:         a.Views,
		PublishedAt:   nullTime(a.PublishedAt),
		ScheduledAt:   nullTime(a.ScheduledAt),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func nullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}

// CreateArticleRequest is the request body for creating an article.
type CreateArticleRequest struct {
	TitleKz   string `json:"title_kz"`
	ContentKz string `json:"content_kz"`
	ExcerptKz string `json:"excerpt_kz,omitempty"`
	TitleRu   string `json:"title_ru,omitempty"`
	ContentRu string `json:"content_ru,omitempty"`
	ExcerptRu string `json:"excerpt_ru,omitempty"`

	ContentFormat string `json:"content_format,omitempty"`
	Status        string `json:"status,omitempty"`

	IsBreaking    bool `json:"is_breaking,omitempty"`
	IsFeatured    bool `json:"is_featured,omitempty"`
	IsPinned      bool `json:"is_pinned,omitempty"`
	AllowComments bool `json:"allow_comments,omitempty"`

	CoverImageID string  `json:"cover_image_id,omitempty"`
	CategoryID   int64   `json:"category_id,omitempty"`
	TagIDs       []int64 `json:"tag_ids,omitempty"`

	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	SkipTranslate bool       `json:"skip_translate,omitempty"`
}

// UpdateArticleRequest is the request body for a partial article update.
type UpdateArticleRequest struct {
	TitleKz   *string `json:"title_kz,omitempty"`
	ContentKz *string `json:"content_kz,omitempty"`
	ExcerptKz *string `json:"excerpt_kz,omitempty"`
	TitleRu   *string `json:"title_ru,omitempty"`
	ContentRu *string `json:"content_ru,omitempty"`
	ExcerptRu *string `json:"excerpt_ru,omitempty"`

	ContentFormat *string `json:"content_format,omitempty"`
	Status        *string `json:"status,omitempty"`
	Published     *bool   `json:"published,omitempty"`

	IsBreaking    *bool `json:"is_breaking,omitempty"`
	IsFeatured    *bool `json:"is_featured,omitempty"`
	IsPinned      *bool `json:"is_pinned,omitempty"`
	AllowComments *bool `json:"allow_comments,omitempty"`

	CoverImageID *string  `json:"cover_image_id,omitempty"`
	CategoryID   *int64   `json:"category_id,omitempty"`
	TagIDs       *[]int64 `json:"tag_ids,omitempty"`

	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// ListArticles handles GET /api/v1/articles
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePageParams(r, 20, 100)

	params := store.ListArticlesParams{
		Status: r.URL.Query().Get("status"),
		Limit:  int64(perPage),
		Offset: int64((page - 1) * perPage),
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("category_id"), 10, 64); err == nil {
		params.CategoryID = v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("tag_id"), 10, 64); err == nil {
		params.TagID = v
	}
	// Anonymous readers only see published articles.
	if middleware.GetActor(r) == nil {
		params.Status = model.StatusPublished
	}

	articles, total, err := h.articles.ListArticles(r.Context(), params)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	responses := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		responses = append(responses, articleResponse(a))
	}
	WriteSuccess(w, responses, &Meta{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pagesCount(total, perPage),
	})
}

// GetArticle handles GET /api/v1/articles/{id}
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid article ID", nil)
		return
	}
	a, err := h.articles.GetArticle(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	// Unpublished articles are only visible to editors.
	if !a.IsPublished() && middleware.GetActor(r) == nil {
		WriteNotFound(w, "Article not found")
		return
	}
	h.writeArticle(w, r, a)
}

// GetArticleBySlug handles GET /api/v1/articles/slug/{lang}/{slug}
// Reader-facing: published views are counted unless the reader is a bot.
func (h *Handler) GetArticleBySlug(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	if lang != "kk" && lang != "ru" {
		WriteBadRequest(w, "Language must be kk or ru", nil)
		return
	}
	countView := !middleware.IsBot(r)
	a, err := h.articles.GetArticleBySlug(r.Context(), lang, chi.URLParam(r, "slug"), countView)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	// Unpublished articles are only visible to editors.
	if !a.IsPublished() && middleware.GetActor(r) == nil {
		WriteNotFound(w, "Article not found")
		return
	}
	h.writeArticle(w, r, a)
}

func (h *Handler) writeArticle(w http.ResponseWriter, r *http.Request, a model.Article) {
	resp := articleResponse(a)
	if r.URL.Query().Get("rendered") == "1" {
		lang := r.URL.Query().Get("lang")
		if lang == "" {
			lang = "kk"
		}
		html, err := h.articles.RenderedContent(a, lang)
		if err == nil {
			resp.RenderedContent = html
		}
	}
	WriteSuccess(w, resp, nil)
}

// CreateArticle handles POST /api/v1/articles
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	actor := middleware.GetActor(r)

	a, err := h.articles.CreateArticle(r.Context(), service.CreateArticleInput{
		TitleKz:       req.TitleKz,
		ContentKz:     req.ContentKz,
		ExcerptKz:     req.ExcerptKz,
		TitleRu:       req.TitleRu,
		ContentRu:     req.ContentRu,
		ExcerptRu:     req.ExcerptRu,
		ContentFormat: req.ContentFormat,
		Status:        req.Status,
		IsBreaking:    req.IsBreaking,
		IsFeatured:    req.IsFeatured,
		IsPinned:      req.IsPinned,
		AllowComments: req.AllowComments,
		CoverImageID:  req.CoverImageID,
		CategoryID:    req.CategoryID,
		AuthorID:      actor.ID,
		TagIDs:        req.TagIDs,
		ScheduledAt:   req.ScheduledAt,
		SkipTranslate: req.SkipTranslate,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteCreated(w, articleResponse(a))
}

// UpdateArticle handles PUT /api/v1/articles/{id}
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid article ID", nil)
		return
	}
	var req UpdateArticleRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	a, err := h.articles.UpdateArticle(r.Context(), id, service.UpdateArticleInput{
		TitleKz:       req.TitleKz,
		ContentKz:     req.ContentKz,
		ExcerptKz:     req.ExcerptKz,
		TitleRu:       req.TitleRu,
		ContentRu:     req.ContentRu,
		ExcerptRu:     req.ExcerptRu,
		ContentFormat: req.ContentFormat,
		Status:        req.Status,
		Published:     req.Published,
		IsBreaking:    req.IsBreaking,
		IsFeatured:    req.IsFeatured,
		IsPinned:      req.IsPinned,
		AllowComments: req.AllowComments,
		CoverImageID:  req.CoverImageID,
		CategoryID:    req.CategoryID,
		TagIDs:        req.TagIDs,
		ScheduledAt:   req.ScheduledAt,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, articleResponse(a), nil)
}

// DeleteArticle handles DELETE /api/v1/articles/{id}
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid article ID", nil)
		return
	}
	if err := h.articles.DeleteArticle(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qazpress/qazpress/internal/ai"
	"github.com/qazpress/qazpress/internal/service"
)

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	NameKz        string `json:"name_kz"`
	NameRu        string `json:"name_ru"`
	Slug          string `json:"slug,omitempty"`
	DescriptionKz string `json:"description_kz,omitempty"`
	DescriptionRu string `json:"description_ru,omitempty"`
}

// UpdateCategoryRequest is the request body for updating a category.
type UpdateCategoryRequest struct {
	NameKz        *string `json:"name_kz,omitempty"`
	NameRu        *string `json:"name_ru,omitempty"`
	Slug          *string `json:"slug,omitempty"`
	DescriptionKz *string `json:"description_kz,omitempty"`
	DescriptionRu *string `json:"description_ru,omitempty"`
}

// ListCategories handles GET /api/v1/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.taxonomy.ListCategories(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, categories, nil)
}

// GetCategory handles GET /api/v1/categories/slug/{slug}
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.taxonomy.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, c, nil)
}

// CreateCategory handles POST /api/v1/categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	c, err := h.taxonomy.CreateCategory(r.Context(), service.CreateCategoryInput{
		NameKz:        req.NameKz,
		NameRu:        req.NameRu,
		Slug:          req.Slug,
		DescriptionKz: req.DescriptionKz,
		DescriptionRu: req.DescriptionRu,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteCreated(w, c)
}

// UpdateCategory handles PUT /api/v1/categories/{id}
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid category ID", nil)
		return
	}
	var req UpdateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	c, err := h.taxonomy.GetCategory(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if req.NameKz != nil {
		c.NameKz = *req.NameKz
	}
	if req.NameRu != nil {
		c.NameRu = *req.NameRu
	}
	if req.Slug != nil {
		c.Slug = *req.Slug
	}
	if req.DescriptionKz != nil {
		c.DescriptionKz = *req.DescriptionKz
	}
	if req.DescriptionRu != nil {
		c.DescriptionRu = *req.DescriptionRu
	}

	updated, err := h.taxonomy.UpdateCategory(r.Context(), c)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, updated, nil)
}

// DeleteCategory handles DELETE /api/v1/categories/{id}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid category ID", nil)
		return
	}
	if err := h.taxonomy.DeleteCategory(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateTagRequest is the request body for creating a tag.
type CreateTagRequest struct {
	NameKz string `json:"name_kz,omitempty"`
	NameRu string `json:"name_ru,omitempty"`
	Slug   string `json:"slug,omitempty"`
}

// UpdateTagRequest is the request body for updating a tag.
type UpdateTagRequest struct {
	NameKz *string `json:"name_kz,omitempty"`
	NameRu *string `json:"name_ru,omitempty"`
	Slug   *string `json:"slug,omitempty"`
}

// AcceptTagSuggestionsRequest persists advisor tag suggestions.
type AcceptTagSuggestionsRequest struct {
	Suggestions []ai.TagSuggestion `json:"suggestions"`
}

// ListTags handles GET /api/v1/tags
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.taxonomy.ListTags(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, tags, nil)
}

// GetTag handles GET /api/v1/tags/slug/{slug}
func (h *Handler) GetTag(w http.ResponseWriter, r *http.Request) {
	t, err := h.taxonomy.GetTagBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, t, nil)
}

// CreateTag handles POST /api/v1/tags
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	t, err := h.taxonomy.CreateTag(r.Context(), service.CreateTagInput{
		NameKz: req.NameKz,
		NameRu: req.NameRu,
		Slug:   req.Slug,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteCreated(w, t)
}

// UpdateTag handles PUT /api/v1/tags/{id}
func (h *Handler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid tag ID", nil)
		return
	}
	var req UpdateTagRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	t, err := h.taxonomy.GetTag(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if req.NameKz != nil {
		t.NameKz = *req.NameKz
	}
	if req.NameRu != nil {
		t.NameRu = *req.NameRu
	}
	if req.Slug != nil {
		t.Slug = *req.Slug
	}

	updated, err := h.taxonomy.UpdateTag(r.Context(), t)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, updated, nil)
}

// DeleteTag handles DELETE /api/v1/tags/{id}
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid tag ID", nil)
		return
	}
	if err := h.taxonomy.DeleteTag(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AcceptTagSuggestions handles POST /api/v1/tags/accept-suggestions
func (h *Handler) AcceptTagSuggestions(w http.ResponseWriter, r *http.Request) {
	var req AcceptTagSuggestionsRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if len(req.Suggestions) == 0 {
		WriteBadRequest(w, "No suggestions to accept", nil)
		return
	}
	tags, err := h.taxonomy.AcceptTagSuggestions(r.Context(), req.Suggestions)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteCreated(w, tags)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qazpress/qazpress/internal/middleware"
	"github.com/qazpress/qazpress/internal/service"
)

// RegisterMediaRequest describes an uploaded file to record. The file
// bytes themselves live in object storage; the API tracks metadata and
// hands back the storage-safe name.
type RegisterMediaRequest struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	Alt      string `json:"alt,omitempty"`
}

// RegisterMedia handles POST /api/v1/media
func (h *Handler) RegisterMedia(w http.ResponseWriter, r *http.Request) {
	var req RegisterMediaRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	actor := middleware.GetActor(r)
	if actor == nil {
		WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
		return
	}
	m, err := h.media.RegisterMedia(r.Context(), service.RegisterMediaInput{
		Filename:   req.Filename,
		MimeType:   req.MimeType,
		Size:       req.Size,
		Alt:        req.Alt,
		UploadedBy: actor.ID,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteCreated(w, m)
}

// ListMedia handles GET /api/v1/media
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePageParams(r, 50, 200)
	media, err := h.media.ListMedia(r.Context(), int64(perPage), int64((page-1)*perPage))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, media, &Meta{Page: page, PerPage: perPage})
}

// GetMedia handles GET /api/v1/media/{id}
func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		WriteBadRequest(w, "Invalid media ID", nil)
		return
	}
	m, err := h.media.GetMedia(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, m, nil)
}

// DeleteMedia handles DELETE /api/v1/media/{id}
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		WriteBadRequest(w, "Invalid media ID", nil)
		return
	}
	if err := h.media.DeleteMedia(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

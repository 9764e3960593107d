// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST API handlers for the newspaper backend.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/qazpress/qazpress/internal/ai"
	"github.com/qazpress/qazpress/internal/service"
	"github.com/qazpress/qazpress/internal/store"
	"github.com/qazpress/qazpress/internal/version"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	articles *service.ArticleService
	taxonomy *service.TaxonomyService
	issues   *service.IssueService
	media    *service.MediaService
	queries  *store.Queries

	translator  *ai.Translator
	categorizer *ai.Categorizer
	tags        *ai.TagSuggester
	analyzer    *ai.Analyzer

	log *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(
	articles *service.ArticleService,
	taxonomy *service.TaxonomyService,
	issues *service.IssueService,
	media *service.MediaService,
	queries *store.Queries,
	translator *ai.Translator,
	categorizer *ai.Categorizer,
	tags *ai.TagSuggester,
	analyzer *ai.Analyzer,
	log *slog.Logger,
) *Handler {
	return &Handler{
		articles:    articles,
		taxonomy:    taxonomy,
		issues:      issues,
		media:       media,
		queries:     queries,
		translator:  translator,
		categorizer: categorizer,
		tags:        tags,
		analyzer:    analyzer,
		log:         log,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total   int64 `json:"total,omitempty"`
	Page    int   `json:"page,omitempty"`
	PerPage int   `json:"per_page,omitempty"`
	Pages   int   `json:"pages,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message, Details: details},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteConflict writes a 409 Conflict response.
func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, "conflict", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// writeServiceError maps a service-layer error onto an HTTP response.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteNotFound(w, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		WriteBadRequest(w, err.Error(), nil)
	case errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrDuplicateIssue),
		errors.Is(err, service.ErrCategoryInUse):
		WriteConflict(w, err.Error())
	default:
		h.log.Error("request failed", "error", err)
		WriteInternalError(w, "Internal server error")
	}
}

// writeAIError maps the AI error taxonomy onto HTTP responses so
// clients can tell "not configured" from "temporarily unavailable"
// from "invalid input".
func (h *Handler) writeAIError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		WriteError(w, http.StatusServiceUnavailable, "ai_not_configured",
			"AI service is not configured", nil)
	case errors.Is(err, ai.ErrValidation):
		WriteBadRequest(w, err.Error(), nil)
	case errors.Is(err, ai.ErrBlocked):
		WriteError(w, http.StatusUnprocessableEntity, "ai_blocked",
			"AI refused the content on safety grounds", nil)
	case errors.Is(err, ai.ErrInvalidFormat):
		WriteError(w, http.StatusUnprocessableEntity, "ai_invalid_format",
			"AI returned an unexpected response format, please try again", nil)
	case errors.Is(err, ai.ErrNoCandidates):
		WriteError(w, http.StatusBadGateway, "ai_no_candidates",
			"AI returned no response candidates", nil)
	default:
		h.log.Error("ai request failed", "category", "ai", "error", err)
		WriteError(w, http.StatusBadGateway, "ai_unavailable",
			"AI service is temporarily unavailable", nil)
	}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// parseIDParam parses the {id} chi URL parameter.
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parsePageParams returns page and per-page query values with bounds.
func parsePageParams(r *http.Request, defaultPerPage, maxPerPage int) (page, perPage int) {
	page = 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	perPage = defaultPerPage
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 && v <= maxPerPage {
		perPage = v
	}
	return page, perPage
}

func pagesCount(total int64, perPage int) int {
	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}
	return pages
}

func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func nullInt(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{Status: "ok", Version: version.Version}, nil)
}

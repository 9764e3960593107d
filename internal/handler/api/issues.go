// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"net/http"

	"github.com/qazpress/qazpress/internal/middleware"
	"github.com/qazpress/qazpress/internal/model"
	"github.com/qazpress/qazpress/internal/service"
)

// IssueResponse represents a magazine issue in API responses.
type IssueResponse struct {
	ID            int64   `json:"id"`
	IssueNumber   int     `json:"issue_number"`
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	TitleKz       string  `json:"title_kz"`
	TitleRu       string  `json:"title_ru,omitempty"`
	DescriptionKz string  `json:"description_kz,omitempty"`
	DescriptionRu string  `json:"description_ru,omitempty"`
	PDFMediaID    *string `json:"pdf_media_id,omitempty"`
	PageCount     int     `json:"page_count"`
	Views         int64   `json:"views"`
	Downloads     int64   `json:"downloads"`
}

func issueResponse(m model.MagazineIssue) IssueResponse {
	return IssueResponse{
		ID:            m.ID,
		IssueNumber:   m.IssueNumber,
		Year:          m.Year,
		Month:         m.Month,
		TitleKz:       m.TitleKz,
		TitleRu:       m.TitleRu,
		DescriptionKz: m.DescriptionKz,
		DescriptionRu: m.DescriptionRu,
		PDFMediaID:    nullStr(m.PDFMediaID),
		PageCount:     m.PageCount,
		Views:         m.Views,
		Downloads:     m.Downloads,
	}
}

// CreateIssueRequest is the request body for creating a magazine issue.
type CreateIssueRequest struct {
	IssueNumber   int    `json:"issue_number"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	TitleKz       string `json:"title_kz"`
	TitleRu       string `json:"title_ru,omitempty"`
	DescriptionKz string `json:"description_kz,omitempty"`
	DescriptionRu string `json:"description_ru,omitempty"`
	PDFMediaID    string `json:"pdf_media_id,omitempty"`
	PageCount     int    `json:"page_count,omitempty"`
}

// ListIssues handles GET /api/v1/issues
func (h *Handler) ListIssues(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePageParams(r, 20, 100)
	issues, total, err := h.issues.ListIssues(r.Context(), int64(perPage), int64((page-1)*perPage))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	responses := make([]IssueResponse, 0, len(issues))
	for _, m := range issues {
		responses = append(responses, issueResponse(m))
	}
	WriteSuccess(w, responses, &Meta{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pagesCount(total, perPage),
	})
}

// GetIssue handles GET /api/v1/issues/{id}
func (h *Handler) GetIssue(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid issue ID", nil)
		return
	}
	countView := !middleware.IsBot(r)
	issue, err := h.issues.GetIssue(r.Context(), id, countView)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, issueResponse(issue), nil)
}

// CreateIssue handles POST /api/v1/issues
func (h *Handler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	var req CreateIssueRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	issue, err := h.issues.CreateIssue(r.Context(), service.CreateIssueInput{
		IssueNumber:   req.IssueNumber,
		Year:          req.Year,
		Month:         req.Month,
		TitleKz:       req.TitleKz,
		TitleRu:       req.TitleRu,
		DescriptionKz: req.DescriptionKz,
		DescriptionRu: req.DescriptionRu,
		PDFMediaID:    req.PDFMediaID,
		PageCount:     req.PageCount,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteCreated(w, issueResponse(issue))
}

// UpdateIssueRequest is the request body for updating a magazine issue.
// Omitted fields keep their current values.
type UpdateIssueRequest struct {
	IssueNumber   *int    `json:"issue_number,omitempty"`
	Year          *int    `json:"year,omitempty"`
	Month         *int    `json:"month,omitempty"`
	TitleKz       *string `json:"title_kz,omitempty"`
	TitleRu       *string `json:"title_ru,omitempty"`
	DescriptionKz *string `json:"description_kz,omitempty"`
	DescriptionRu *string `json:"description_ru,omitempty"`
	PDFMediaID    *string `json:"pdf_media_id,omitempty"`
	PageCount     *int    `json:"page_count,omitempty"`
}

// UpdateIssue handles PUT /api/v1/issues/{id}
func (h *Handler) UpdateIssue(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid issue ID", nil)
		return
	}
	var req UpdateIssueRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	issue, err := h.issues.GetIssue(r.Context(), id, false)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if req.IssueNumber != nil {
		issue.IssueNumber = *req.IssueNumber
	}
	if req.Year != nil {
		issue.Year = *req.Year
	}
	if req.Month != nil {
		issue.Month = *req.Month
	}
	if req.TitleKz != nil {
		issue.TitleKz = *req.TitleKz
	}
	if req.TitleRu != nil {
		issue.TitleRu = *req.TitleRu
	}
	if req.DescriptionKz != nil {
		issue.DescriptionKz = *req.DescriptionKz
	}
	if req.DescriptionRu != nil {
		issue.DescriptionRu = *req.DescriptionRu
	}
	if req.PDFMediaID != nil {
		issue.PDFMediaID = sql.NullString{String: *req.PDFMediaID, Valid: *req.PDFMediaID != ""}
	}
	if req.PageCount != nil {
		issue.PageCount = *req.PageCount
	}
	updated, err := h.issues.UpdateIssue(r.Context(), issue)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, issueResponse(updated), nil)
}

// DeleteIssue handles DELETE /api/v1/issues/{id}
func (h *Handler) DeleteIssue(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid issue ID", nil)
		return
	}
	if err := h.issues.DeleteIssue(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DownloadIssueResponse carries the PDF reference for a counted download.
type DownloadIssueResponse struct {
	PDFMediaID string `json:"pdf_media_id"`
}

// DownloadIssue handles POST /api/v1/issues/{id}/download
func (h *Handler) DownloadIssue(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid issue ID", nil)
		return
	}
	ref, err := h.issues.RecordDownload(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteSuccess(w, DownloadIssueResponse{PDFMediaID: ref.String}, nil)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qazpress/qazpress/internal/model"
)

func issuePath(id int64) string {
	return "/issues/" + strconv.FormatInt(id, 10)
}

func TestIssueLifecycleOverHTTP(t *testing.T) {
	env := setupEnv(t, &fakeProvider{})

	rec := env.do(asEditor(httptest.NewRequest(http.MethodPost, "/issues",
		jsonBody(t, CreateIssueRequest{
			IssueNumber: 12, Year: 2026, Month: 8,
			TitleKz: "Тамыз саны", PageCount: 16,
		}))))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created IssueResponse
	decodeData(t, rec, &created)
	assert.Equal(t, 12, created.IssueNumber)

	// The same number/year/month conflicts.
	rec = env.do(asEditor(httptest.NewRequest(http.MethodPost, "/issues",
		jsonBody(t, CreateIssueRequest{
			IssueNumber: 12, Year: 2026, Month: 8, TitleKz: "Қайталау",
		}))))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Partial update.
	title := "Тамыз айының саны"
	rec = env.do(asEditor(httptest.NewRequest(http.MethodPut, issuePath(created.ID),
		jsonBody(t, UpdateIssueRequest{TitleKz: &title}))))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated IssueResponse
	decodeData(t, rec, &updated)
	assert.Equal(t, "Тамыз айының саны", updated.TitleKz)
	assert.Equal(t, 16, updated.PageCount)

	// Downloading without a PDF is a 404.
	rec = env.do(httptest.NewRequest(http.MethodPost, issuePath(created.ID)+"/download", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(asEditor(httptest.NewRequest(http.MethodDelete, issuePath(created.ID), nil)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestIssueDownloadCounted(t *testing.T) {
	env := setupEnv(t, &fakeProvider{})

	// Register the PDF first.
	rec := env.do(asEditor(httptest.NewRequest(http.MethodPost, "/media",
		jsonBody(t, RegisterMediaRequest{
			Filename: "shilde-sany.pdf",
			MimeType: "application/pdf",
			Size:     1024,
		}))))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var pdf model.Media
	decodeData(t, rec, &pdf)

	rec = env.do(asEditor(httptest.NewRequest(http.MethodPost, "/issues",
		jsonBody(t, CreateIssueRequest{
			IssueNumber: 7, Year: 2026, Month: 7,
			TitleKz: "Шілде саны", PDFMediaID: pdf.ID,
		}))))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var issue IssueResponse
	decodeData(t, rec, &issue)

	rec = env.do(httptest.NewRequest(http.MethodPost, issuePath(issue.ID)+"/download", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var dl DownloadIssueResponse
	decodeData(t, rec, &dl)
	assert.Equal(t, pdf.ID, dl.PDFMediaID)

	// The download is reflected in the issue counters. Lookups without
	// a browser User-Agent do not bump views.
	rec = env.do(httptest.NewRequest(http.MethodGet, issuePath(issue.ID), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &issue)
	assert.Equal(t, int64(1), issue.Downloads)
	assert.Equal(t, int64(0), issue.Views)
}

func TestRegisterMediaRejectsUnknownType(t *testing.T) {
	env := setupEnv(t, &fakeProvider{})

	rec := env.do(asEditor(httptest.NewRequest(http.MethodPost, "/media",
		jsonBody(t, RegisterMediaRequest{
			Filename: "virus.exe",
			MimeType: "application/x-msdownload",
			Size:     10,
		}))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

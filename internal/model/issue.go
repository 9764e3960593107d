// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// MagazineIssue represents a print issue of the newspaper with its PDF
// artifact. An issue is uniquely identified by (IssueNumber, Year, Month).
type MagazineIssue struct {
	ID            int64          `json:"id"`
	IssueNumber   int            `json:"issue_number"`
	Year          int            `json:"year"`
	Month         int            `json:"month"`
	TitleKz       string         `json:"title_kz"`
	TitleRu       string         `json:"title_ru,omitempty"`
	DescriptionKz string         `json:"description_kz,omitempty"`
	DescriptionRu string         `json:"description_ru,omitempty"`
	PDFMediaID    sql.NullString `json:"pdf_media_id,omitempty"`
	PageCount     int            `json:"page_count"`
	Views         int64          `json:"views"`
	Downloads     int64          `json:"downloads"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including Article, Category, Tag and MagazineIssue.
package model

import (
	"database/sql"
	"time"
)

// Article statuses. The set is closed; transitions are owned by the
// article service.
const (
	StatusDraft     = "DRAFT"
	StatusReview    = "REVIEW"
	StatusScheduled = "SCHEDULED"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
)

// Article content formats
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// ValidStatus reports whether s is a member of the article status set.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusReview, StatusScheduled, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Article represents a bilingual newspaper article. The Kazakh variant
// (TitleKz/ContentKz) is mandatory, the Russian variant is optional.
type Article struct {
	ID int64 `json:"id"`

	TitleKz   string `json:"title_kz"`
	SlugKz    string `json:"slug_kz"`
	ContentKz string `json:"content_kz"`
	ExcerptKz string `json:"excerpt_kz,omitempty"`

	TitleRu   sql.NullString `json:"title_ru,omitempty"`
	SlugRu    sql.NullString `json:"slug_ru,omitempty"`
	ContentRu sql.NullString `json:"content_ru,omitempty"`
	ExcerptRu sql.NullString `json:"excerpt_ru,omitempty"`

	ContentFormat string `json:"content_format"`

	Status string `json:"status"`
	// Published mirrors Status == StatusPublished for legacy clients.
	Published bool `json:"published"`

	IsBreaking    bool `json:"is_breaking"`
	IsFeatured    bool `json:"is_featured"`
	IsPinned      bool `json:"is_pinned"`
	AllowComments bool `json:"allow_comments"`

	CoverImageID sql.NullString `json:"cover_image_id,omitempty"`
	CategoryID   sql.NullInt64  `json:"category_id,omitempty"`
	AuthorID     int64          `json:"author_id"`

	Views int64 `json:"views"`

	// PublishedAt is set on the first transition into PUBLISHED and is
	// never cleared afterwards, even if the article is unpublished.
	PublishedAt sql.NullTime `json:"published_at,omitempty"`
	ScheduledAt sql.NullTime `json:"scheduled_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	TagIDs []int64 `json:"tag_ids,omitempty"`
}

// IsPublished returns true if the article is currently published.
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// HasRussian returns true if the Russian variant is present.
func (a *Article) HasRussian() bool {
	return a.TitleRu.Valid && a.TitleRu.String != "" &&
		a.ContentRu.Valid && a.ContentRu.String != ""
}

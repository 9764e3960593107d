// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the application's domain operations on
// top of the store: the article lifecycle coordinator, taxonomy and
// magazine issue management.
package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/qazpress/qazpress/internal/ai"
	"github.com/qazpress/qazpress/internal/model"
	"github.com/qazpress/qazpress/internal/store"
	"github.com/qazpress/qazpress/internal/util"
)

// Service-level error taxonomy. Handlers map these onto HTTP statuses.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrSlugTaken     = errors.New("slug already in use")
	ErrCategoryInUse = errors.New("category still has articles")
)

// Translator is the slice of the translation orchestrator the article
// service needs for auto-translation on create.
type Translator interface {
	TranslateArticle(ctx context.Context, title, content, excerpt, src, dst string) (*ai.ArticleTranslation, error)
}

// ArticleService coordinates the bilingual article lifecycle: slug
// derivation, status transitions, auto-translation and tag linking.
type ArticleService struct {
	db         *sql.DB
	q          *store.Queries
	translator Translator
	log        *slog.Logger

	sanitizer *bluemonday.Policy
}

func NewArticleService(db *sql.DB, translator Translator, log *slog.Logger) *ArticleService {
	return &ArticleService{
		db:         db,
		q:          store.New(db),
		translator: translator,
		log:        log,
		sanitizer:  bluemonday.UGCPolicy(),
	}
}

// CreateArticleInput carries everything an editor submits for a new
// article. Kazakh title and content are mandatory; the Russian variant
// is filled by auto-translation when absent.
type CreateArticleInput struct {
	TitleKz   string
	ContentKz string
	ExcerptKz string
	TitleRu   string
	ContentRu string
	ExcerptRu string

	ContentFormat string
	Status        string

	IsBreaking    bool
	IsFeatured    bool
	IsPinned      bool
	AllowComments bool

	CoverImageID string
	CategoryID   int64
	AuthorID     int64
	TagIDs       []int64

	ScheduledAt *time.Time

	// SkipTranslate suppresses auto-translation even when the Russian
	// variant is missing.
	SkipTranslate bool
}

// CreateArticle validates the input, derives slugs, auto-translates a
// missing Russian variant (non-fatal on failure) and persists the
// article together with its tag links in one transaction.
func (s *ArticleService) CreateArticle(ctx context.Context, in CreateArticleInput) (model.Article, error) {
	if in.TitleKz == "" || in.ContentKz == "" {
		return model.Article{}, fmt.Errorf("kazakh title and content are required: %w", ErrInvalidInput)
	}
	if in.ContentFormat == "" {
		in.ContentFormat = model.FormatHTML
	}
	if in.ContentFormat != model.FormatHTML && in.ContentFormat != model.FormatMarkdown {
		return model.Article{}, fmt.Errorf("unknown content format %q: %w", in.ContentFormat, ErrInvalidInput)
	}
	if in.Status == "" {
		in.Status = model.StatusDraft
	}
	if !model.ValidStatus(in.Status) {
		return model.Article{}, fmt.Errorf("unknown status %q: %w", in.Status, ErrInvalidInput)
	}
	if in.Status == model.StatusScheduled && in.ScheduledAt == nil {
		return model.Article{}, fmt.Errorf("scheduled articles need a scheduled_at time: %w", ErrInvalidInput)
	}
	if err := s.checkTagIDs(ctx, in.TagIDs); err != nil {
		return model.Article{}, err
	}

	// Auto-translate before persisting so the article lands complete.
	// A translation failure is logged and the article proceeds
	// Kazakh-only.
	if (in.TitleRu == "" || in.ContentRu == "") && !in.SkipTranslate && s.translator != nil {
		tr, err := s.translator.TranslateArticle(ctx, in.TitleKz, in.ContentKz, in.ExcerptKz, ai.LangKazakh, ai.LangRussian)
		if err != nil {
			s.log.Warn("auto-translation failed, creating article without russian variant",
				"category", "ai",
				"title", in.TitleKz,
				"error", err)
		} else {
			in.TitleRu = tr.Title
			in.ContentRu = tr.Content
			in.ExcerptRu = tr.Excerpt
		}
	}

	slugKz, err := s.uniqueSlug(ctx, "kk", in.TitleKz, 0)
	if err != nil {
		return model.Article{}, err
	}
	var slugRu string
	if in.TitleRu != "" {
		if slugRu, err = s.uniqueSlug(ctx, "ru", in.TitleRu, 0); err != nil {
			return model.Article{}, err
		}
	}

	params := store.CreateArticleParams{
		TitleKz:       in.TitleKz,
		SlugKz:        slugKz,
		ContentKz:     s.cleanContent(in.ContentKz, in.ContentFormat),
		ExcerptKz:     in.ExcerptKz,
		TitleRu:       nullString(in.TitleRu),
		SlugRu:        nullString(slugRu),
		ContentRu:     nullString(s.cleanContent(in.ContentRu, in.ContentFormat)),
		ExcerptRu:     nullString(in.ExcerptRu),
		ContentFormat: in.ContentFormat,
		Status:        in.Status,
		Published:     in.Status == model.StatusPublished,
		IsBreaking:    in.IsBreaking,
		IsFeatured:    in.IsFeatured,
		IsPinned:      in.IsPinned,
		AllowComments: in.AllowComments,
		CoverImageID:  nullString(in.CoverImageID),
		CategoryID:    nullInt64(in.CategoryID),
		AuthorID:      in.AuthorID,
	}
	if in.Status == model.StatusPublished {
		params.PublishedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	}
	if in.ScheduledAt != nil {
		params.ScheduledAt = sql.NullTime{Time: in.ScheduledAt.UTC(), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Article{}, fmt.Errorf("begin create article: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.q.WithTx(tx)
	article, err := qtx.CreateArticle(ctx, params)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return model.Article{}, fmt.Errorf("article slug: %w", ErrSlugTaken)
		}
		return model.Article{}, err
	}
	if len(in.TagIDs) > 0 {
		if err := qtx.SetArticleTags(ctx, article.ID, in.TagIDs); err != nil {
			return model.Article{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return model.Article{}, fmt.Errorf("commit create article: %w", err)
	}

	article.TagIDs = in.TagIDs
	return article, nil
}

// UpdateArticleInput is a partial update: nil pointers leave the field
// untouched.
type UpdateArticleInput struct {
	TitleKz   *string
	ContentKz *string
	ExcerptKz *string
	TitleRu   *string
	ContentRu *string
	ExcerptRu *string

	ContentFormat *string
	Status        *string

	// Published is the legacy mirror field. When set without Status it
	// derives the status: true means PUBLISHED, false means DRAFT.
	Published *bool

	IsBreaking    *bool
	IsFeatured    *bool
	IsPinned      *bool
	AllowComments *bool

	CoverImageID *string // empty string clears
	CategoryID   *int64  // zero clears

	ScheduledAt *time.Time
	TagIDs      *[]int64
}

// UpdateArticle applies a partial update and relinks tags inside the
// same transaction as the content change.
func (s *ArticleService) UpdateArticle(ctx context.Context, id int64, in UpdateArticleInput) (model.Article, error) {
	a, err := s.q.GetArticle(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return model.Article{}, fmt.Errorf("article %d: %w", id, ErrNotFound)
		}
		return model.Article{}, err
	}

	if in.TitleKz != nil {
		if *in.TitleKz == "" {
			return model.Article{}, fmt.Errorf("kazakh title cannot be emptied: %w", ErrInvalidInput)
		}
		if *in.TitleKz != a.TitleKz {
			a.TitleKz = *in.TitleKz
			if a.SlugKz, err = s.uniqueSlug(ctx, "kk", a.TitleKz, a.ID); err != nil {
				return model.Article{}, err
			}
		}
	}
	if in.ContentKz != nil {
		if *in.ContentKz == "" {
			return model.Article{}, fmt.Errorf("kazakh content cannot be emptied: %w", ErrInvalidInput)
		}
		a.ContentKz = *in.ContentKz
	}
	if in.ExcerptKz != nil {
		a.ExcerptKz = *in.ExcerptKz
	}
	if in.TitleRu != nil {
		a.TitleRu = nullString(*in.TitleRu)
		if *in.TitleRu != "" {
			slugRu, err := s.uniqueSlug(ctx, "ru", *in.TitleRu, a.ID)
			if err != nil {
				return model.Article{}, err
			}
			a.SlugRu = nullString(slugRu)
		} else {
			a.SlugRu = sql.NullString{}
		}
	}
	if in.ContentRu != nil {
		a.ContentRu = nullString(*in.ContentRu)
	}
	if in.ExcerptRu != nil {
		a.ExcerptRu = nullString(*in.ExcerptRu)
	}
	if in.ContentFormat != nil {
		if *in.ContentFormat != model.FormatHTML && *in.ContentFormat != model.FormatMarkdown {
			return model.Article{}, fmt.Errorf("unknown content format %q: %w", *in.ContentFormat, ErrInvalidInput)
		}
		a.ContentFormat = *in.ContentFormat
	}
	if in.IsBreaking != nil {
		a.IsBreaking = *in.IsBreaking
	}
	if in.IsFeatured != nil {
		a.IsFeatured = *in.IsFeatured
	}
	if in.IsPinned != nil {
		a.IsPinned = *in.IsPinned
	}
	if in.AllowComments != nil {
		a.AllowComments = *in.AllowComments
	}
	if in.CoverImageID != nil {
		a.CoverImageID = nullString(*in.CoverImageID)
	}
	if in.CategoryID != nil {
		a.CategoryID = nullInt64(*in.CategoryID)
	}
	if in.ScheduledAt != nil {
		a.ScheduledAt = sql.NullTime{Time: in.ScheduledAt.UTC(), Valid: true}
	}
	if in.TagIDs != nil {
		if err := s.checkTagIDs(ctx, *in.TagIDs); err != nil {
			return model.Article{}, err
		}
	}

	// Status resolution: an explicit status wins; otherwise the legacy
	// published boolean derives it.
	newStatus := a.Status
	switch {
	case in.Status != nil:
		if !model.ValidStatus(*in.Status) {
			return model.Article{}, fmt.Errorf("unknown status %q: %w", *in.Status, ErrInvalidInput)
		}
		newStatus = *in.Status
	case in.Published != nil:
		if *in.Published {
			newStatus = model.StatusPublished
		} else if a.Status == model.StatusPublished {
			newStatus = model.StatusDraft
		}
	}
	if newStatus == model.StatusScheduled && !a.ScheduledAt.Valid {
		return model.Article{}, fmt.Errorf("scheduled articles need a scheduled_at time: %w", ErrInvalidInput)
	}
	// First transition into PUBLISHED stamps publishedAt; it is never
	// cleared by later transitions.
	if newStatus == model.StatusPublished && !a.PublishedAt.Valid {
		a.PublishedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	}
	a.Status = newStatus
	a.Published = newStatus == model.StatusPublished

	params := store.UpdateArticleParams{
		ID:            a.ID,
		TitleKz:       a.TitleKz,
		SlugKz:        a.SlugKz,
		ContentKz:     s.cleanContent(a.ContentKz, a.ContentFormat),
		ExcerptKz:     a.ExcerptKz,
		TitleRu:       a.TitleRu,
		SlugRu:        a.SlugRu,
		ContentRu:     nullString(s.cleanContent(a.ContentRu.String, a.ContentFormat)),
		ExcerptRu:     a.ExcerptRu,
		ContentFormat: a.ContentFormat,
		Status:        a.Status,
		Published:     a.Published,
		IsBreaking:    a.IsBreaking,
		IsFeatured:    a.IsFeatured,
		IsPinned:      a.IsPinned,
		AllowComments: a.AllowComments,
		CoverImageID:  a.CoverImageID,
		CategoryID:    a.CategoryID,
		PublishedAt:   a.PublishedAt,
		ScheduledAt:   a.ScheduledAt,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Article{}, fmt.Errorf("begin update article: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.q.WithTx(tx)
	if err := qtx.UpdateArticle(ctx, params); err != nil {
		if store.IsUniqueViolation(err) {
			return model.Article{}, fmt.Errorf("article slug: %w", ErrSlugTaken)
		}
		return model.Article{}, err
	}
	if in.TagIDs != nil {
		if err := qtx.SetArticleTags(ctx, a.ID, *in.TagIDs); err != nil {
			return model.Article{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return model.Article{}, fmt.Errorf("commit update article: %w", err)
	}

	return s.GetArticle(ctx, a.ID)
}

// GetArticle returns an article with its tag links.
func (s *ArticleService) GetArticle(ctx context.Context, id int64) (model.Article, error) {
	a, err := s.q.GetArticle(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return model.Article{}, fmt.Errorf("article %d: %w", id, ErrNotFound)
		}
		return model.Article{}, err
	}
	if a.TagIDs, err = s.q.GetArticleTagIDs(ctx, a.ID); err != nil {
		return model.Article{}, err
	}
	return a, nil
}

// GetArticleBySlug resolves an article by its slug in the given
// language. countView bumps the view counter for published articles;
// the caller decides based on who is reading (bots don't count).
func (s *ArticleService) GetArticleBySlug(ctx context.Context, lang, slug string, countView bool) (model.Article, error) {
	a, err := s.q.GetArticleBySlug(ctx, lang, slug)
	if err != nil {
		if store.IsNotFound(err) {
			return model.Article{}, fmt.Errorf("article %q: %w", slug, ErrNotFound)
		}
		return model.Article{}, err
	}
	if a.TagIDs, err = s.q.GetArticleTagIDs(ctx, a.ID); err != nil {
		return model.Article{}, err
	}
	if countView && a.IsPublished() {
		if err := s.q.IncrementArticleViews(ctx, a.ID); err != nil {
			s.log.Warn("incrementing article views failed", "article_id", a.ID, "error", err)
		} else {
			a.Views++
		}
	}
	return a, nil
}

// ListArticles returns a filtered page of articles and the total count.
func (s *ArticleService) ListArticles(ctx context.Context, arg store.ListArticlesParams) ([]model.Article, int64, error) {
	if arg.Limit <= 0 || arg.Limit > 100 {
		arg.Limit = 20
	}
	articles, err := s.q.ListArticles(ctx, arg)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.q.CountArticles(ctx, arg)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// DeleteArticle removes an article and its tag links.
func (s *ArticleService) DeleteArticle(ctx context.Context, id int64) error {
	if _, err := s.q.GetArticle(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return fmt.Errorf("article %d: %w", id, ErrNotFound)
		}
		return err
	}
	return s.q.DeleteArticle(ctx, id)
}

// PublishDue flips SCHEDULED articles whose time has come to PUBLISHED
// and returns how many were published. Called by the scheduler.
func (s *ArticleService) PublishDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.q.ListDueScheduled(ctx, now)
	if err != nil {
		return 0, err
	}
	published := 0
	for _, a := range due {
		status := model.StatusPublished
		if _, err := s.UpdateArticle(ctx, a.ID, UpdateArticleInput{Status: &status}); err != nil {
			s.log.Error("publishing scheduled article failed",
				"category", "article",
				"article_id", a.ID,
				"error", err)
			continue
		}
		s.log.Info("scheduled article published",
			"category", "article",
			"article_id", a.ID,
			"slug", a.SlugKz)
		published++
	}
	return published, nil
}

// RenderedContent returns the article body as sanitized HTML in the
// requested language, converting from Markdown when needed.
func (s *ArticleService) RenderedContent(a model.Article, lang string) (string, error) {
	content := a.ContentKz
	if lang == "ru" {
		if !a.ContentRu.Valid {
			return "", fmt.Errorf("article %d has no russian content: %w", a.ID, ErrNotFound)
		}
		content = a.ContentRu.String
	}
	if a.ContentFormat == model.FormatMarkdown {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(content), &buf); err != nil {
			return "", fmt.Errorf("rendering article %d: %w", a.ID, err)
		}
		content = buf.String()
	}
	return s.sanitizer.Sanitize(content), nil
}

// cleanContent sanitizes HTML input. Markdown is stored raw and
// sanitized after rendering.
func (s *ArticleService) cleanContent(content, format string) string {
	if content == "" || format != model.FormatHTML {
		return content
	}
	return s.sanitizer.Sanitize(content)
}

// checkTagIDs rejects references to tags that do not exist.
func (s *ArticleService) checkTagIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	tags, err := s.q.ListTagsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	known := make(map[int64]bool, len(tags))
	for _, t := range tags {
		known[t.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("unknown tag %d: %w", id, ErrInvalidInput)
		}
	}
	return nil
}

// uniqueSlug derives a slug from the title and suffixes it with a
// counter until it is free in the given language column.
func (s *ArticleService) uniqueSlug(ctx context.Context, lang, title string, excludeID int64) (string, error) {
	base := util.Slugify(title)
	if base == "" {
		return "", fmt.Errorf("title %q yields an empty slug: %w", title, ErrInvalidInput)
	}
	slug := base
	for n := 2; ; n++ {
		taken, err := s.q.ArticleSlugExists(ctx, lang, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}

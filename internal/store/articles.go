// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/qazpress/qazpress/internal/model"
)

const articleColumns = `id, title_kz, slug_kz, content_kz, excerpt_kz,
	title_ru, slug_ru, content_ru, excerpt_ru, content_format,
	status, published, is_breaking, is_featured, is_pinned, allow_comments,
	cover_image_id, category_id, author_id, views,
	published_at, scheduled_at, created_at, updated_at`

func scanArticle(row interface{ Scan(...any) error }) (model.Article, error) {
	var a model.Article
	err := row.Scan(
		&a.ID, &a.TitleKz, &a.SlugKz, &a.ContentKz, &a.ExcerptKz,
		&a.TitleRu, &a.SlugRu, &a.ContentRu, &a.ExcerptRu, &a.ContentFormat,
		&a.Status, &a.Published, &a.IsBreaking, &a.IsFeatured, &a.IsPinned, &a.AllowComments,
		&a.CoverImageID, &a.CategoryID, &a.AuthorID, &a.Views,
		&a.PublishedAt, &a.ScheduledAt, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// CreateArticleParams holds the fields for inserting a new article row.
type CreateArticleParams struct {
	TitleKz       string
	SlugKz        string
	ContentKz     string
	ExcerptKz     string
	TitleRu       sql.NullString
	SlugRu        sql.NullString
	ContentRu     sql.NullString
	ExcerptRu     sql.NullString
	ContentFormat string
	Status        string
	Published     bool
	IsBreaking    bool
	IsFeatured    bool
	IsPinned      bool
	AllowComments bool
	CoverImageID  sql.NullString
	CategoryID    sql.NullInt64
	AuthorID      int64
	PublishedAt   sql.NullTime
	ScheduledAt   sql.NullTime
}

// CreateArticle inserts a new article and returns it.
func (q *Queries) CreateArticle(ctx context.Context, arg CreateArticleParams) (model.Article, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO articles (
			title_kz, slug_kz, content_kz, excerpt_kz,
			title_ru, slug_ru, content_ru, excerpt_ru, content_format,
			status, published, is_breaking, is_featured, is_pinned, allow_comments,
			cover_image_id, category_id, author_id, published_at, scheduled_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.TitleKz, arg.SlugKz, arg.ContentKz, arg.ExcerptKz,
		arg.TitleRu, arg.SlugRu, arg.ContentRu, arg.ExcerptRu, arg.ContentFormat,
		arg.Status, arg.Published, arg.IsBreaking, arg.IsFeatured, arg.IsPinned, arg.AllowComments,
		arg.CoverImageID, arg.CategoryID, arg.AuthorID, arg.PublishedAt, arg.ScheduledAt,
	)
	if err != nil {
		return model.Article{}, fmt.Errorf("inserting article: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Article{}, fmt.Errorf("article insert id: %w", err)
	}
	return q.GetArticle(ctx, id)
}

// GetArticle returns an article by ID.
func (q *Queries) GetArticle(ctx context.Context, id int64) (model.Article, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	return scanArticle(row)
}

// GetArticleBySlug returns an article by its language-specific slug.
// lang must be "kk" or "ru".
func (q *Queries) GetArticleBySlug(ctx context.Context, lang, slug string) (model.Article, error) {
	col := "slug_kz"
	if lang == "ru" {
		col = "slug_ru"
	}
	row := q.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE `+col+` = ?`, slug)
	return scanArticle(row)
}

// ArticleSlugExists reports whether a slug is already used in the given
// language column, excluding the article with excludeID (0 for none).
func (q *Queries) ArticleSlugExists(ctx context.Context, lang, slug string, excludeID int64) (bool, error) {
	col := "slug_kz"
	if lang == "ru" {
		col = "slug_ru"
	}
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM articles WHERE `+col+` = ? AND id != ?`, slug, excludeID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListArticlesParams filters and paginates article listings.
type ListArticlesParams struct {
	Status     string // empty = all
	CategoryID int64  // 0 = all
	TagID      int64  // 0 = all
	Limit      int64
	Offset     int64
}

// ListArticles returns articles newest-first with optional filters.
func (q *Queries) ListArticles(ctx context.Context, arg ListArticlesParams) ([]model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE 1=1`
	var args []any
	if arg.Status != "" {
		query += ` AND status = ?`
		args = append(args, arg.Status)
	}
	if arg.CategoryID != 0 {
		query += ` AND category_id = ?`
		args = append(args, arg.CategoryID)
	}
	if arg.TagID != 0 {
		query += ` AND id IN (SELECT article_id FROM article_tags WHERE tag_id = ?)`
		args = append(args, arg.TagID)
	}
	query += ` ORDER BY is_pinned DESC, created_at DESC LIMIT ? OFFSET ?`
	args = append(args, arg.Limit, arg.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var articles []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// CountArticles returns the number of articles matching the filters.
func (q *Queries) CountArticles(ctx context.Context, arg ListArticlesParams) (int64, error) {
	query := `SELECT COUNT(*) FROM articles WHERE 1=1`
	var args []any
	if arg.Status != "" {
		query += ` AND status = ?`
		args = append(args, arg.Status)
	}
	if arg.CategoryID != 0 {
		query += ` AND category_id = ?`
		args = append(args, arg.CategoryID)
	}
	if arg.TagID != 0 {
		query += ` AND id IN (SELECT article_id FROM article_tags WHERE tag_id = ?)`
		args = append(args, arg.TagID)
	}
	var n int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// UpdateArticleParams holds the full set of mutable article fields.
type UpdateArticleParams struct {
	ID            int64
	TitleKz       string
	SlugKz        string
	ContentKz     string
	ExcerptKz     string
	TitleRu       sql.NullString
	SlugRu        sql.NullString
	ContentRu     sql.NullString
	ExcerptRu     sql.NullString
	ContentFormat string
	Status        string
	Published     bool
	IsBreaking    bool
	IsFeatured    bool
	IsPinned      bool
	AllowComments bool
	CoverImageID  sql.NullString
	CategoryID    sql.NullInt64
	PublishedAt   sql.NullTime
	ScheduledAt   sql.NullTime
}

// UpdateArticle rewrites all mutable fields of an article row.
func (q *Queries) UpdateArticle(ctx context.Context, arg UpdateArticleParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE articles SET
			title_kz = ?, slug_kz = ?, content_kz = ?, excerpt_kz = ?,
			title_ru = ?, slug_ru = ?, content_ru = ?, excerpt_ru = ?,
			content_format = ?, status = ?, published = ?,
			is_breaking = ?, is_featured = ?, is_pinned = ?, allow_comments = ?,
			cover_image_id = ?, category_id = ?,
			published_at = ?, scheduled_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		arg.TitleKz, arg.SlugKz, arg.ContentKz, arg.ExcerptKz,
		arg.TitleRu, arg.SlugRu, arg.ContentRu, arg.ExcerptRu,
		arg.ContentFormat, arg.Status, arg.Published,
		arg.IsBreaking, arg.IsFeatured, arg.IsPinned, arg.AllowComments,
		arg.CoverImageID, arg.CategoryID,
		arg.PublishedAt, arg.ScheduledAt, arg.ID,
	)
	if err != nil {
		return fmt.Errorf("updating article %d: %w", arg.ID, err)
	}
	return nil
}

// DeleteArticle removes an article; tag links cascade.
func (q *Queries) DeleteArticle(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	return err
}

// IncrementArticleViews bumps the view counter.
func (q *Queries) IncrementArticleViews(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE articles SET views = views + 1 WHERE id = ?`, id)
	return err
}

// SetArticleTags replaces the tag links of an article. The caller is
// expected to run this inside the same transaction as the content update.
func (q *Queries) SetArticleTags(ctx context.Context, articleID int64, tagIDs []int64) error {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM article_tags WHERE article_id = ?`, articleID); err != nil {
		return fmt.Errorf("clearing article tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO article_tags (article_id, tag_id) VALUES (?, ?)`, articleID, tagID); err != nil {
			return fmt.Errorf("linking tag %d: %w", tagID, err)
		}
	}
	return nil
}

// GetArticleTagIDs returns the tag IDs linked to an article.
func (q *Queries) GetArticleTagIDs(ctx context.Context, articleID int64) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT tag_id FROM article_tags WHERE article_id = ? ORDER BY tag_id`, articleID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListDueScheduled returns SCHEDULED articles whose scheduled_at is at or
// before now.
func (q *Queries) ListDueScheduled(ctx context.Context, now time.Time) ([]model.Article, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles
		 WHERE status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?`,
		model.StatusScheduled, now)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var articles []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// CountArticlesByCategory returns how many articles reference a category.
func (q *Queries) CountArticlesByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM articles WHERE category_id = ?`, categoryID).Scan(&n)
	return n, err
}

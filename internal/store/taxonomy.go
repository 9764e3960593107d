// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/qazpress/qazpress/internal/model"
)

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

const categoryColumns = `id, name_kz, name_ru, slug, description_kz, description_ru, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.NameKz, &c.NameRu, &c.Slug,
		&c.DescriptionKz, &c.DescriptionRu, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateCategoryParams holds fields for a new category.
type CreateCategoryParams struct {
	NameKz        string
	NameRu        string
	Slug          string
	DescriptionKz string
	DescriptionRu string
}

// CreateCategory inserts a category and returns it.
func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (model.Category, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO categories (name_kz, name_ru, slug, description_kz, description_ru)
		VALUES (?, ?, ?, ?, ?)`,
		arg.NameKz, arg.NameRu, arg.Slug, arg.DescriptionKz, arg.DescriptionRu)
	if err != nil {
		return model.Category{}, fmt.Errorf("inserting category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Category{}, err
	}
	return q.GetCategory(ctx, id)
}

// GetCategory returns a category by ID.
func (q *Queries) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	return scanCategory(row)
}

// GetCategoryBySlug returns a category by slug.
func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = ?`, slug)
	return scanCategory(row)
}

// ListCategories returns all categories ordered by Kazakh name.
func (q *Queries) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name_kz`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategory rewrites a category's fields.
func (q *Queries) UpdateCategory(ctx context.Context, c model.Category) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE categories SET name_kz = ?, name_ru = ?, slug = ?,
			description_kz = ?, description_ru = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		c.NameKz, c.NameRu, c.Slug, c.DescriptionKz, c.DescriptionRu, c.ID)
	if err != nil {
		return fmt.Errorf("updating category %d: %w", c.ID, err)
	}
	return nil
}

// DeleteCategory removes a category. Callers must check the article
// reference guard first.
func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}

// ---------------------------------------------------------------------------
// Tags
// ---------------------------------------------------------------------------

const tagColumns = `id, name_kz, name_ru, slug, created_at, updated_at`

func scanTag(row interface{ Scan(...any) error }) (model.Tag, error) {
	var t model.Tag
	err := row.Scan(&t.ID, &t.NameKz, &t.NameRu, &t.Slug, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// CreateTagParams holds fields for a new tag.
type CreateTagParams struct {
	NameKz string
	NameRu string
	Slug   string
}

// CreateTag inserts a tag and returns it.
func (q *Queries) CreateTag(ctx context.Context, arg CreateTagParams) (model.Tag, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO tags (name_kz, name_ru, slug) VALUES (?, ?, ?)`,
		arg.NameKz, arg.NameRu, arg.Slug)
	if err != nil {
		return model.Tag{}, fmt.Errorf("inserting tag: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Tag{}, err
	}
	return q.GetTag(ctx, id)
}

// GetTag returns a tag by ID.
func (q *Queries) GetTag(ctx context.Context, id int64) (model.Tag, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)
	return scanTag(row)
}

// GetTagBySlug returns a tag by slug.
func (q *Queries) GetTagBySlug(ctx context.Context, slug string) (model.Tag, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE slug = ?`, slug)
	return scanTag(row)
}

// ListTags returns all tags ordered by Kazakh name.
func (q *Queries) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY name_kz`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []model.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// ListTagsByIDs returns the tags with the given IDs.
func (q *Queries) ListTagsByIDs(ctx context.Context, ids []int64) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id IN (`+placeholders+`) ORDER BY name_kz`, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []model.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// UpdateTag rewrites a tag's fields.
func (q *Queries) UpdateTag(ctx context.Context, t model.Tag) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE tags SET name_kz = ?, name_ru = ?, slug = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, t.NameKz, t.NameRu, t.Slug, t.ID)
	if err != nil {
		return fmt.Errorf("updating tag %d: %w", t.ID, err)
	}
	return nil
}

// DeleteTag removes a tag; article links cascade.
func (q *Queries) DeleteTag(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	return err
}

// IsNotFound reports whether err is a no-rows lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/qazpress/qazpress/internal/model"
)

const mediaColumns = `id, filename, stored_name, mime_type, size, alt, uploaded_by, created_at`

func scanMedia(row interface{ Scan(...any) error }) (model.Media, error) {
	var m model.Media
	err := row.Scan(&m.ID, &m.Filename, &m.StoredName, &m.MimeType,
		&m.Size, &m.Alt, &m.UploadedBy, &m.CreatedAt)
	return m, err
}

// CreateMedia inserts a media metadata record.
func (q *Queries) CreateMedia(ctx context.Context, m model.Media) (model.Media, error) {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO media (id, filename, stored_name, mime_type, size, alt, uploaded_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Filename, m.StoredName, m.MimeType, m.Size, m.Alt, m.UploadedBy)
	if err != nil {
		return model.Media{}, fmt.Errorf("inserting media: %w", err)
	}
	return q.GetMedia(ctx, m.ID)
}

// GetMedia returns a media record by UUID.
func (q *Queries) GetMedia(ctx context.Context, id string) (model.Media, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = ?`, id)
	return scanMedia(row)
}

// ListMedia returns media records newest-first.
func (q *Queries) ListMedia(ctx context.Context, limit, offset int64) ([]model.Media, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+mediaColumns+` FROM media ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// DeleteMedia removes a media record.
func (q *Queries) DeleteMedia(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	return err
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/qazpress/qazpress/internal/model"
)

const issueColumns = `id, issue_number, year, month, title_kz, title_ru,
	description_kz, description_ru, pdf_media_id, page_count,
	views, downloads, created_at, updated_at`

func scanIssue(row interface{ Scan(...any) error }) (model.MagazineIssue, error) {
	var m model.MagazineIssue
	err := row.Scan(&m.ID, &m.IssueNumber, &m.Year, &m.Month,
		&m.TitleKz, &m.TitleRu, &m.DescriptionKz, &m.DescriptionRu,
		&m.PDFMediaID, &m.PageCount, &m.Views, &m.Downloads,
		&m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// CreateIssueParams holds fields for a new magazine issue.
type CreateIssueParams struct {
	IssueNumber   int
	Year          int
	Month         int
	TitleKz       string
	TitleRu       string
	DescriptionKz string
	DescriptionRu string
	PDFMediaID    sql.NullString
	PageCount     int
}

// CreateIssue inserts a magazine issue and returns it.
func (q *Queries) CreateIssue(ctx context.Context, arg CreateIssueParams) (model.MagazineIssue, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO magazine_issues (issue_number, year, month, title_kz, title_ru,
			description_kz, description_ru, pdf_media_id, page_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.IssueNumber, arg.Year, arg.Month, arg.TitleKz, arg.TitleRu,
		arg.DescriptionKz, arg.DescriptionRu, arg.PDFMediaID, arg.PageCount)
	if err != nil {
		return model.MagazineIssue{}, fmt.Errorf("inserting issue: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.MagazineIssue{}, err
	}
	return q.GetIssue(ctx, id)
}

// GetIssue returns a magazine issue by ID.
func (q *Queries) GetIssue(ctx context.Context, id int64) (model.MagazineIssue, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+issueColumns+` FROM magazine_issues WHERE id = ?`, id)
	return scanIssue(row)
}

// ListIssues returns issues ordered newest-first.
func (q *Queries) ListIssues(ctx context.Context, limit, offset int64) ([]model.MagazineIssue, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+issueColumns+` FROM magazine_issues
		 ORDER BY year DESC, month DESC, issue_number DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var issues []model.MagazineIssue
	for rows.Next() {
		m, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, m)
	}
	return issues, rows.Err()
}

// CountIssues returns the total number of issues.
func (q *Queries) CountIssues(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM magazine_issues`).Scan(&n)
	return n, err
}

// UpdateIssue rewrites an issue's fields.
func (q *Queries) UpdateIssue(ctx context.Context, m model.MagazineIssue) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE magazine_issues SET issue_number = ?, year = ?, month = ?,
			title_kz = ?, title_ru = ?, description_kz = ?, description_ru = ?,
			pdf_media_id = ?, page_count = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		m.IssueNumber, m.Year, m.Month, m.TitleKz, m.TitleRu,
		m.DescriptionKz, m.DescriptionRu, m.PDFMediaID, m.PageCount, m.ID)
	if err != nil {
		return fmt.Errorf("updating issue %d: %w", m.ID, err)
	}
	return nil
}

// DeleteIssue removes a magazine issue.
func (q *Queries) DeleteIssue(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM magazine_issues WHERE id = ?`, id)
	return err
}

// IncrementIssueViews bumps the issue view counter.
func (q *Queries) IncrementIssueViews(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE magazine_issues SET views = views + 1 WHERE id = ?`, id)
	return err
}

// IncrementIssueDownloads bumps the issue download counter.
func (q *Queries) IncrementIssueDownloads(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE magazine_issues SET downloads = downloads + 1 WHERE id = ?`, id)
	return err
}

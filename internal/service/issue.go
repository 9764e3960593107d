// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/qazpress/qazpress/internal/model"
	"github.com/qazpress/qazpress/internal/store"
)

// ErrDuplicateIssue means an issue with the same number, year and
// month already exists.
var ErrDuplicateIssue = errors.New("magazine issue already exists")

// IssueService manages magazine issues and their PDF references.
type IssueService struct {
	q   *store.Queries
	log *slog.Logger
}

func NewIssueService(q *store.Queries, log *slog.Logger) *IssueService {
	return &IssueService{q: q, log: log}
}

// CreateIssueInput holds editor-supplied issue fields.
type CreateIssueInput struct {
	IssueNumber   int
	Year          int
	Month         int
	TitleKz       string
	TitleRu       string
	DescriptionKz string
	DescriptionRu string
	PDFMediaID    string
	PageCount     int
}

func (s *IssueService) CreateIssue(ctx context.Context, in CreateIssueInput) (model.MagazineIssue, error) {
	if in.IssueNumber <= 0 || in.Year < 1900 || in.Month < 1 || in.Month > 12 {
		return model.MagazineIssue{}, fmt.Errorf("invalid issue number, year or month: %w", ErrInvalidInput)
	}
	if in.TitleKz == "" {
		return model.MagazineIssue{}, fmt.Errorf("kazakh title is required: %w", ErrInvalidInput)
	}

	issue, err := s.q.CreateIssue(ctx, store.CreateIssueParams{
		IssueNumber:   in.IssueNumber,
		Year:          in.Year,
		Month:         in.Month,
		TitleKz:       in.TitleKz,
		TitleRu:       in.TitleRu,
		DescriptionKz: in.DescriptionKz,
		DescriptionRu: in.DescriptionRu,
		PDFMediaID:    nullString(in.PDFMediaID),
		PageCount:     in.PageCount,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return model.MagazineIssue{}, fmt.Errorf("issue %d/%d-%02d: %w",
				in.IssueNumber, in.Year, in.Month, ErrDuplicateIssue)
		}
		return model.MagazineIssue{}, err
	}
	return issue, nil
}

// GetIssue returns an issue, optionally counting the read as a view.
func (s *IssueService) GetIssue(ctx context.Context, id int64, countView bool) (model.MagazineIssue, error) {
	issue, err := s.q.GetIssue(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return model.MagazineIssue{}, fmt.Errorf("issue %d: %w", id, ErrNotFound)
		}
		return model.MagazineIssue{}, err
	}
	if countView {
		if err := s.q.IncrementIssueViews(ctx, id); err != nil {
			s.log.Warn("incrementing issue views failed", "issue_id", id, "error", err)
		} else {
			issue.Views++
		}
	}
	return issue, nil
}

// ListIssues returns a page of issues newest-first and the total count.
func (s *IssueService) ListIssues(ctx context.Context, limit, offset int64) ([]model.MagazineIssue, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	issues, err := s.q.ListIssues(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.q.CountIssues(ctx)
	if err != nil {
		return nil, 0, err
	}
	return issues, total, nil
}

func (s *IssueService) UpdateIssue(ctx context.Context, m model.MagazineIssue) (model.MagazineIssue, error) {
	if m.IssueNumber <= 0 || m.Month < 1 || m.Month > 12 || m.TitleKz == "" {
		return model.MagazineIssue{}, fmt.Errorf("invalid issue fields: %w", ErrInvalidInput)
	}
	if _, err := s.q.GetIssue(ctx, m.ID); err != nil {
		if store.IsNotFound(err) {
			return model.MagazineIssue{}, fmt.Errorf("issue %d: %w", m.ID, ErrNotFound)
		}
		return model.MagazineIssue{}, err
	}
	if err := s.q.UpdateIssue(ctx, m); err != nil {
		if store.IsUniqueViolation(err) {
			return model.MagazineIssue{}, fmt.Errorf("issue %d/%d-%02d: %w",
				m.IssueNumber, m.Year, m.Month, ErrDuplicateIssue)
		}
		return model.MagazineIssue{}, err
	}
	return s.q.GetIssue(ctx, m.ID)
}

func (s *IssueService) DeleteIssue(ctx context.Context, id int64) error {
	if _, err := s.q.GetIssue(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return fmt.Errorf("issue %d: %w", id, ErrNotFound)
		}
		return err
	}
	return s.q.DeleteIssue(ctx, id)
}

// RecordDownload counts a PDF download and returns the media reference.
func (s *IssueService) RecordDownload(ctx context.Context, id int64) (sql.NullString, error) {
	issue, err := s.q.GetIssue(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return sql.NullString{}, fmt.Errorf("issue %d: %w", id, ErrNotFound)
		}
		return sql.NullString{}, err
	}
	if !issue.PDFMediaID.Valid {
		return sql.NullString{}, fmt.Errorf("issue %d has no pdf: %w", id, ErrNotFound)
	}
	if err := s.q.IncrementIssueDownloads(ctx, id); err != nil {
		s.log.Warn("incrementing issue downloads failed", "issue_id", id, "error", err)
	}
	return issue.PDFMediaID, nil
}

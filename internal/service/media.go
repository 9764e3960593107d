// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/qazpress/qazpress/internal/model"
	"github.com/qazpress/qazpress/internal/store"
	"github.com/qazpress/qazpress/internal/util"
)

var allowedMimeTypes = map[string]bool{
	model.MimeTypeJPEG: true,
	model.MimeTypePNG:  true,
	model.MimeTypeWebP: true,
	model.MimeTypePDF:  true,
}

// MediaService manages media metadata records. File bytes live in
// external object storage keyed by StoredName.
type MediaService struct {
	q   *store.Queries
	log *slog.Logger
}

func NewMediaService(q *store.Queries, log *slog.Logger) *MediaService {
	return &MediaService{q: q, log: log}
}

// RegisterMediaInput describes an uploaded file.
type RegisterMediaInput struct {
	Filename   string
	MimeType   string
	Size       int64
	Alt        string
	UploadedBy int64
}

// RegisterMedia creates a media record with a fresh UUID and an
// ASCII-safe stored name derived from the original file name.
func (s *MediaService) RegisterMedia(ctx context.Context, in RegisterMediaInput) (model.Media, error) {
	if in.Filename == "" {
		return model.Media{}, fmt.Errorf("filename is required: %w", ErrInvalidInput)
	}
	if !allowedMimeTypes[in.MimeType] {
		return model.Media{}, fmt.Errorf("unsupported mime type %q: %w", in.MimeType, ErrInvalidInput)
	}
	if in.Size <= 0 {
		return model.Media{}, fmt.Errorf("invalid file size: %w", ErrInvalidInput)
	}

	id := uuid.New().String()
	return s.q.CreateMedia(ctx, model.Media{
		ID:         id,
		Filename:   in.Filename,
		StoredName: storedName(id, in.Filename),
		MimeType:   in.MimeType,
		Size:       in.Size,
		Alt:        in.Alt,
		UploadedBy: in.UploadedBy,
	})
}

func (s *MediaService) GetMedia(ctx context.Context, id string) (model.Media, error) {
	m, err := s.q.GetMedia(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return model.Media{}, fmt.Errorf("media %s: %w", id, ErrNotFound)
		}
		return model.Media{}, err
	}
	return m, nil
}

func (s *MediaService) ListMedia(ctx context.Context, limit, offset int64) ([]model.Media, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.q.ListMedia(ctx, limit, offset)
}

func (s *MediaService) DeleteMedia(ctx context.Context, id string) error {
	if _, err := s.q.GetMedia(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return fmt.Errorf("media %s: %w", id, ErrNotFound)
		}
		return err
	}
	return s.q.DeleteMedia(ctx, id)
}

// storedName builds the object-storage key: UUID plus a transliterated
// slice of the original name, keeping the extension.
func storedName(id, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := util.Latinize(strings.TrimSuffix(filename, filepath.Ext(filename)))
	if len(base) > 40 {
		base = base[:40]
	}
	if base == "" {
		return id + ext
	}
	return id + "-" + base + ext
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/qazpress/qazpress/internal/ai"
	"github.com/qazpress/qazpress/internal/cache"
	"github.com/qazpress/qazpress/internal/model"
	"github.com/qazpress/qazpress/internal/store"
	"github.com/qazpress/qazpress/internal/util"
)

const (
	categoriesCacheKey = "catalog:categories"
	tagsCacheKey       = "catalog:tags"
)

// TaxonomyService manages the category and tag catalogs. Both are
// small and read on nearly every request, so listings go through the
// cache.
type TaxonomyService struct {
	q     *store.Queries
	cache cache.Cache
	log   *slog.Logger
}

func NewTaxonomyService(q *store.Queries, c cache.Cache, log *slog.Logger) *TaxonomyService {
	return &TaxonomyService{q: q, cache: c, log: log}
}

// CreateCategoryInput holds editor-supplied category fields. Slug is
// derived from the Kazakh name when empty.
type CreateCategoryInput struct {
	NameKz        string
	NameRu        string
	Slug          string
	DescriptionKz string
	DescriptionRu string
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, in CreateCategoryInput) (model.Category, error) {
	if in.NameKz == "" || in.NameRu == "" {
		return model.Category{}, fmt.Errorf("both category names are required: %w", ErrInvalidInput)
	}
	slug := in.Slug
	if slug == "" {
		slug = util.Slugify(in.NameKz)
	}
	if !util.IsValidSlug(slug) {
		return model.Category{}, fmt.Errorf("invalid category slug %q: %w", slug, ErrInvalidInput)
	}

	c, err := s.q.CreateCategory(ctx, store.CreateCategoryParams{
		NameKz:        in.NameKz,
		NameRu:        in.NameRu,
		Slug:          slug,
		DescriptionKz: in.DescriptionKz,
		DescriptionRu: in.DescriptionRu,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return model.Category{}, fmt.Errorf("category slug %q: %w", slug, ErrSlugTaken)
		}
		return model.Category{}, err
	}
	s.invalidate(ctx, categoriesCacheKey)
	return c, nil
}

func (s *TaxonomyService) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	c, err := s.q.GetCategory(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return model.Category{}, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return model.Category{}, err
	}
	return c, nil
}

func (s *TaxonomyService) GetCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	c, err := s.q.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if store.IsNotFound(err) {
			return model.Category{}, fmt.Errorf("category %q: %w", slug, ErrNotFound)
		}
		return model.Category{}, err
	}
	return c, nil
}

// ListCategories returns the category catalog, cached.
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if s.cachedList(ctx, categoriesCacheKey, &categories) {
		return categories, nil
	}
	categories, err := s.q.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.storeList(ctx, categoriesCacheKey, categories)
	return categories, nil
}

func (s *TaxonomyService) UpdateCategory(ctx context.Context, c model.Category) (model.Category, error) {
	if c.NameKz == "" || c.NameRu == "" || !util.IsValidSlug(c.Slug) {
		return model.Category{}, fmt.Errorf("invalid category fields: %w", ErrInvalidInput)
	}
	if _, err := s.q.GetCategory(ctx, c.ID); err != nil {
		if store.IsNotFound(err) {
			return model.Category{}, fmt.Errorf("category %d: %w", c.ID, ErrNotFound)
		}
		return model.Category{}, err
	}
	if err := s.q.UpdateCategory(ctx, c); err != nil {
		if store.IsUniqueViolation(err) {
			return model.Category{}, fmt.Errorf("category slug %q: %w", c.Slug, ErrSlugTaken)
		}
		return model.Category{}, err
	}
	s.invalidate(ctx, categoriesCacheKey)
	return s.q.GetCategory(ctx, c.ID)
}

// DeleteCategory removes a category unless articles still reference it.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.q.GetCategory(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return err
	}
	n, err := s.q.CountArticlesByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("category %d is referenced by %d articles: %w", id, n, ErrCategoryInUse)
	}
	if err := s.q.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, categoriesCacheKey)
	return nil
}

// CategoryOptions shapes the catalog for the categorization advisor.
func (s *TaxonomyService) CategoryOptions(ctx context.Context) ([]ai.CategoryOption, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]ai.CategoryOption, len(categories))
	for i, c := range categories {
		options[i] = ai.CategoryOption{Slug: c.Slug, NameKz: c.NameKz, NameRu: c.NameRu}
	}
	return options, nil
}

// CreateTagInput holds editor-supplied tag fields.
type CreateTagInput struct {
	NameKz string
	NameRu string
	Slug   string
}

func (s *TaxonomyService) CreateTag(ctx context.Context, in CreateTagInput) (model.Tag, error) {
	if in.NameKz == "" && in.NameRu == "" {
		return model.Tag{}, fmt.Errorf("a tag needs a name in at least one language: %w", ErrInvalidInput)
	}
	slug := in.Slug
	if slug == "" {
		name := in.NameKz
		if name == "" {
			name = in.NameRu
		}
		slug = util.Slugify(name)
	}
	if !util.IsValidSlug(slug) {
		return model.Tag{}, fmt.Errorf("invalid tag slug %q: %w", slug, ErrInvalidInput)
	}

	t, err := s.q.CreateTag(ctx, store.CreateTagParams{NameKz: in.NameKz, NameRu: in.NameRu, Slug: slug})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return model.Tag{}, fmt.Errorf("tag slug %q: %w", slug, ErrSlugTaken)
		}
		return model.Tag{}, err
	}
	s.invalidate(ctx, tagsCacheKey)
	return t, nil
}

func (s *TaxonomyService) GetTag(ctx context.Context, id int64) (model.Tag, error) {
	t, err := s.q.GetTag(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return model.Tag{}, fmt.Errorf("tag %d: %w", id, ErrNotFound)
		}
		return model.Tag{}, err
	}
	return t, nil
}

func (s *TaxonomyService) GetTagBySlug(ctx context.Context, slug string) (model.Tag, error) {
	t, err := s.q.GetTagBySlug(ctx, slug)
	if err != nil {
		if store.IsNotFound(err) {
			return model.Tag{}, fmt.Errorf("tag %q: %w", slug, ErrNotFound)
		}
		return model.Tag{}, err
	}
	return t, nil
}

// ListTags returns the tag catalog, cached.
func (s *TaxonomyService) ListTags(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if s.cachedList(ctx, tagsCacheKey, &tags) {
		return tags, nil
	}
	tags, err := s.q.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	s.storeList(ctx, tagsCacheKey, tags)
	return tags, nil
}

func (s *TaxonomyService) UpdateTag(ctx context.Context, t model.Tag) (model.Tag, error) {
	if (t.NameKz == "" && t.NameRu == "") || !util.IsValidSlug(t.Slug) {
		return model.Tag{}, fmt.Errorf("invalid tag fields: %w", ErrInvalidInput)
	}
	if _, err := s.q.GetTag(ctx, t.ID); err != nil {
		if store.IsNotFound(err) {
			return model.Tag{}, fmt.Errorf("tag %d: %w", t.ID, ErrNotFound)
		}
		return model.Tag{}, err
	}
	if err := s.q.UpdateTag(ctx, t); err != nil {
		if store.IsUniqueViolation(err) {
			return model.Tag{}, fmt.Errorf("tag slug %q: %w", t.Slug, ErrSlugTaken)
		}
		return model.Tag{}, err
	}
	s.invalidate(ctx, tagsCacheKey)
	return s.q.GetTag(ctx, t.ID)
}

func (s *TaxonomyService) DeleteTag(ctx context.Context, id int64) error {
	if _, err := s.q.GetTag(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return fmt.Errorf("tag %d: %w", id, ErrNotFound)
		}
		return err
	}
	if err := s.q.DeleteTag(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, tagsCacheKey)
	return nil
}

// AcceptTagSuggestions persists accepted advisor suggestions as tags
// and returns them. A suggestion whose derived slug already exists
// resolves to the existing tag instead of failing.
func (s *TaxonomyService) AcceptTagSuggestions(ctx context.Context, suggestions []ai.TagSuggestion) ([]model.Tag, error) {
	var tags []model.Tag
	for _, sug := range suggestions {
		t, err := s.CreateTag(ctx, CreateTagInput{NameKz: sug.NameKz, NameRu: sug.NameRu})
		if errors.Is(err, ErrSlugTaken) {
			name := sug.NameKz
			if name == "" {
				name = sug.NameRu
			}
			if t, err = s.GetTagBySlug(ctx, util.Slugify(name)); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func (s *TaxonomyService) cachedList(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (s *TaxonomyService) storeList(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, 0); err != nil {
		s.log.Warn("caching catalog failed", "key", key, "error", err)
	}
}

func (s *TaxonomyService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.Warn("cache invalidation failed", "key", key, "error", err)
	}
}

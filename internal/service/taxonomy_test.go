// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qazpress/qazpress/internal/ai"
	"github.com/qazpress/qazpress/internal/cache"
	"github.com/qazpress/qazpress/internal/store"
)

func testTaxonomyService(t *testing.T) (*TaxonomyService, *store.Queries) {
	t.Helper()
	db := testDB(t)
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	q := store.New(db)
	return NewTaxonomyService(q, c, testLogger()), q
}

func TestCategoryLifecycle(t *testing.T) {
	svc, _ := testTaxonomyService(t)
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, CreateCategoryInput{NameKz: "Қоғам", NameRu: "Общество"})
	require.NoError(t, err)
	assert.Equal(t, "қоғам", c.Slug)

	_, err = svc.CreateCategory(ctx, CreateCategoryInput{NameKz: "Қоғам", NameRu: "Общество"})
	assert.ErrorIs(t, err, ErrSlugTaken)

	got, err := svc.GetCategoryBySlug(ctx, c.Slug)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	c.NameRu = "Социум"
	updated, err := svc.UpdateCategory(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "Социум", updated.NameRu)

	require.NoError(t, svc.DeleteCategory(ctx, c.ID))
	_, err = svc.GetCategoryBySlug(ctx, c.Slug)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCategoryWithArticlesRefused(t *testing.T) {
	svc, q := testTaxonomyService(t)
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, CreateCategoryInput{NameKz: "Спорт", NameRu: "Спорт"})
	require.NoError(t, err)

	_, err = q.CreateArticle(ctx, store.CreateArticleParams{
		TitleKz: "Матч", SlugKz: "match", ContentKz: "мәтін",
		ContentFormat: "html", Status: "DRAFT",
		CategoryID: nullInt64(c.ID), AuthorID: 1,
	})
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, c.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)
}

func TestListCategoriesCached(t *testing.T) {
	svc, q := testTaxonomyService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, CreateCategoryInput{NameKz: "Білім", NameRu: "Образование"})
	require.NoError(t, err)

	first, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Write behind the service's back; the cached listing must not see it.
	_, err = q.CreateCategory(ctx, store.CreateCategoryParams{NameKz: "Сая", NameRu: "Пол", Slug: "saia"})
	require.NoError(t, err)

	second, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 1)

	// A service-side write invalidates.
	_, err = svc.CreateCategory(ctx, CreateCategoryInput{NameKz: "Мәдениет", NameRu: "Культура"})
	require.NoError(t, err)
	third, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 3)
}

func TestTagLifecycle(t *testing.T) {
	svc, _ := testTaxonomyService(t)
	ctx := context.Background()

	tag, err := svc.CreateTag(ctx, CreateTagInput{NameKz: "Ауа райы", NameRu: "Погода"})
	require.NoError(t, err)
	assert.Equal(t, "ауа-райы", tag.Slug)

	_, err = svc.CreateTag(ctx, CreateTagInput{NameKz: "Ауа райы"})
	assert.ErrorIs(t, err, ErrSlugTaken)

	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	require.NoError(t, svc.DeleteTag(ctx, tag.ID))
	_, err = svc.GetTagBySlug(ctx, tag.Slug)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAcceptTagSuggestions(t *testing.T) {
	svc, _ := testTaxonomyService(t)
	ctx := context.Background()

	existing, err := svc.CreateTag(ctx, CreateTagInput{NameKz: "Футбол", NameRu: "Футбол"})
	require.NoError(t, err)

	tags, err := svc.AcceptTagSuggestions(ctx, []ai.TagSuggestion{
		{NameKz: "Футбол", NameRu: "Футбол"},
		{NameKz: "Чемпионат", NameRu: "Чемпионат"},
	})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, existing.ID, tags[0].ID, "duplicate suggestion resolves to the existing tag")
	assert.NotZero(t, tags[1].ID)
	assert.Equal(t, "чемпионат", tags[1].Slug)
}

func TestCategoryOptions(t *testing.T) {
	svc, _ := testTaxonomyService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, CreateCategoryInput{NameKz: "Экономика", NameRu: "Экономика"})
	require.NoError(t, err)

	options, err := svc.CategoryOptions(ctx)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "экономика", options[0].Slug)
	assert.Equal(t, "Экономика", options[0].NameKz)
}

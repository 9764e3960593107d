// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qazpress/qazpress/internal/ai"
	"github.com/qazpress/qazpress/internal/model"
)

func TestCategoryCRUDOverHTTP(t *testing.T) {
	env := setupEnv(t, &fakeProvider{})

	rec := env.do(asEditor(httptest.NewRequest(http.MethodPost, "/categories",
		jsonBody(t, CreateCategoryRequest{NameKz: "Саясат", NameRu: "Политика"}))))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created model.Category
	decodeData(t, rec, &created)
	assert.Equal(t, "саясат", created.Slug)

	// The same slug again conflicts.
	rec = env.do(asEditor(httptest.NewRequest(http.MethodPost, "/categories",
		jsonBody(t, CreateCategoryRequest{NameKz: "Саясат", NameRu: "Политика"}))))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeErrorCode(t, rec))

	// Public read by slug.
	rec = env.do(httptest.NewRequest(http.MethodGet, "/categories/slug/"+created.Slug, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// Rename.
	name := "Ішкі саясат"
	rec = env.do(asEditor(httptest.NewRequest(http.MethodPut,
		"/categories/"+strconv.FormatInt(created.ID, 10),
		jsonBody(t, UpdateCategoryRequest{NameKz: &name}))))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated model.Category
	decodeData(t, rec, &updated)
	assert.Equal(t, "Ішкі саясат", updated.NameKz)
	assert.Equal(t, "Политика", updated.NameRu)

	// Deleting a category is admin-only.
	path := "/categories/" + strconv.FormatInt(created.ID, 10)
	rec = env.do(asEditor(httptest.NewRequest(http.MethodDelete, path, nil)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(asAdmin(httptest.NewRequest(http.MethodDelete, path, nil)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteCategoryInUseRefused(t *testing.T) {
	env := setupEnv(t, &fakeProvider{})

	rec := env.do(asEditor(httptest.NewRequest(http.MethodPost, "/categories",
		jsonBody(t, CreateCategoryRequest{NameKz: "Спорт", NameRu: "Спорт"}))))
	require.Equal(t, http.StatusCreated, rec.Code)
	var cat model.Category
	decodeData(t, rec, &cat)

	env.createArticle(t, CreateArticleRequest{
		TitleKz: "Матч нәтижесі", ContentKz: "Мәтін",
		CategoryID: cat.ID, SkipTranslate: true,
	})

	rec = env.do(asAdmin(httptest.NewRequest(http.MethodDelete,
		"/categories/"+strconv.FormatInt(cat.ID, 10), nil)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTagUpdateOverHTTP(t *testing.T) {
	env := setupEnv(t, &fakeProvider{})

	rec := env.do(asEditor(httptest.NewRequest(http.MethodPost, "/tags",
		jsonBody(t, CreateTagRequest{NameKz: "футбол", NameRu: "футбол"}))))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created model.Tag
	decodeData(t, rec, &created)

	// Partial rename keeps the other language's name and the slug.
	name := "қазақ футболы"
	path := "/tags/" + strconv.FormatInt(created.ID, 10)
	rec = env.do(asEditor(httptest.NewRequest(http.MethodPut, path,
		jsonBody(t, UpdateTagRequest{NameKz: &name}))))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated model.Tag
	decodeData(t, rec, &updated)
	assert.Equal(t, "қазақ футболы", updated.NameKz)
	assert.Equal(t, "футбол", updated.NameRu)
	assert.Equal(t, created.Slug, updated.Slug)

	// Anonymous updates are rejected, unknown tags are not found.
	rec = env.do(httptest.NewRequest(http.MethodPut, path,
		jsonBody(t, UpdateTagRequest{NameKz: &name})))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = env.do(asEditor(httptest.NewRequest(http.MethodPut, "/tags/9999",
		jsonBody(t, UpdateTagRequest{NameKz: &name}))))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAcceptTagSuggestions(t *testing.T) {
	env := setupEnv(t, &fakeProvider{})

	rec := env.do(asEditor(httptest.NewRequest(http.MethodPost, "/tags/accept-suggestions",
		jsonBody(t, AcceptTagSuggestionsRequest{Suggestions: []ai.TagSuggestion{
			{NameKz: "білім", NameRu: "образование"},
			{NameKz: "мектеп", NameRu: "школа"},
		}}))))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tags []model.Tag
	decodeData(t, rec, &tags)
	assert.Len(t, tags, 2)

	// Empty suggestion lists are rejected.
	rec = env.do(asEditor(httptest.NewRequest(http.MethodPost, "/tags/accept-suggestions",
		jsonBody(t, AcceptTagSuggestionsRequest{}))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

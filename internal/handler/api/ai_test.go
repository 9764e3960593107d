// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qazpress/qazpress/internal/ai"
)

func TestAIEndpointsRequireEditor(t *testing.T) {
	env := setupEnv(t, &fakeProvider{configured: true, reply: "Привет"})

	rec := env.do(httptest.NewRequest(http.MethodPost, "/ai/translate",
		jsonBody(t, TranslateRequest{Text: "Сәлем", SourceLang: "kk", TargetLang: "ru"})))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTranslateNotConfigured(t *testing.T) {
	env := setupEnv(t, &fakeProvider{configured: false})

	rec := env.do(asEditor(httptest.NewRequest(http.MethodPost, "/ai/translate",
		jsonBody(t, TranslateRequest{Text: "Сәлем", SourceLang: "kk", TargetLang: "ru"}))))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "ai_not_configured", decodeErrorCode(t, rec))
}

func TestTranslateOverHTTP(t *testing.T) {
	provider := &fakeProvider{configured: true, reply: "Привет, мир"}
	env := setupEnv(t, provider)

	rec := env.do(asEditor(httptest.NewRequest(http.MethodPost, "/ai/translate",
		jsonBody(t, TranslateRequest{Text: "Сәлем әлем", SourceLang: "kk", TargetLang: "ru"}))))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp TranslateResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "Привет, мир", resp.Text)
	assert.Equal(t, 1, provider.calls)
}

func TestTranslateBadLanguagePair(t *testing.T) {
	provider := &fakeProvider{configured: true, reply: "Привет"}
	env := setupEnv(t, provider)

	rec := env.do(asEditor(httptest.NewRequest(http.MethodPost, "/ai/translate",
		jsonBody(t, TranslateRequest{Text: "Сәлем", SourceLang: "kk", TargetLang: "kk"}))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, provider.calls, "validation happens before any provider call")
}

func TestTranslateArticleInvalidFormat(t *testing.T) {
	env := setupEnv(t, &fakeProvider{configured: true, reply: "not a json object"})

	rec := env.do(asEditor(httptest.NewRequest(http.MethodPost, "/ai/translate-article",
		jsonBody(t, TranslateArticleRequest{
			Title: "Тақырып", Content: "Мәтін",
			SourceLang: "kk", TargetLang: "ru",
		}))))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "ai_invalid_format", decodeErrorCode(t, rec))
}

func TestCategorizeOverHTTP(t *testing.T) {
	env := setupEnv(t, &fakeProvider{configured: true, reply: "sport"})

	rec := env.do(asEditor(httptest.NewRequest(http.MethodPost, "/categories",
		jsonBody(t, CreateCategoryRequest{NameKz: "Спорт", NameRu: "Спорт", Slug: "sport"}))))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(asEditor(httptest.NewRequest(http.MethodPost, "/ai/categorize",
		jsonBody(t, CategorizeRequest{Title: "Матч", Content: "Команда жеңді"}))))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp CategorizeResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "sport", resp.CategorySlug)
}

func TestSuggestTagsOverHTTP(t *testing.T) {
	env := setupEnv(t, &fakeProvider{
		configured: true,
		reply:      `[{"name_kz":"футбол","name_ru":"футбол"}]`,
	})

	rec := env.do(asEditor(httptest.NewRequest(http.MethodPost, "/ai/suggest-tags",
		jsonBody(t, SuggestTagsRequest{Title: "Матч", Content: "Гол"}))))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ai.TagSuggestionResult
	decodeData(t, rec, &resp)
	require.Len(t, resp.Suggested, 1)
	assert.Equal(t, "футбол", resp.Suggested[0].NameKz)
	assert.Empty(t, resp.Existing)
}

func TestAnalyzeArticleOverHTTP(t *testing.T) {
	env := setupEnv(t, &fakeProvider{
		configured: true,
		reply:      `{"score": 85, "summary": "Жақсы мақала", "suggestions": ["Қорытынды қосыңыз"]}`,
	})

	created := env.createArticle(t, CreateArticleRequest{
		TitleKz: "Талдау үшін", ContentKz: "Мәтін", SkipTranslate: true,
	})

	rec := env.do(asEditor(httptest.NewRequest(http.MethodPost, "/ai/analyze",
		jsonBody(t, AnalyzeRequest{ArticleID: created.ID}))))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ai.Analysis
	decodeData(t, rec, &resp)
	assert.Equal(t, 85, resp.Score)

	// Unknown articles are a plain 404, not an AI error.
	rec = env.do(asEditor(httptest.NewRequest(http.MethodPost, "/ai/analyze",
		jsonBody(t, AnalyzeRequest{ArticleID: 9999}))))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAIRateLimitPerActor(t *testing.T) {
	env := setupEnv(t, &fakeProvider{configured: true, reply: "Привет"})
	// Rebuild the router with a tight AI budget.
	h := NewHandler(env.articles, env.taxonomy, env.issues, env.media, env.queries,
		ai.NewTranslator(ai.NewGatewayWithProviders(testLogger(),
			&fakeProvider{configured: true, reply: "Привет"})),
		nil, nil, nil, testLogger())
	env.router = h.Routes(RouterConfig{
		GlobalRPS: 1000, GlobalBurst: 1000,
		AIRPS: 0.001, AIBurst: 2,
	})

	body := func() *http.Request {
		return asEditor(httptest.NewRequest(http.MethodPost, "/ai/translate",
			jsonBody(t, TranslateRequest{Text: "Сәлем", SourceLang: "kk", TargetLang: "ru"})))
	}
	assert.Equal(t, http.StatusOK, env.do(body()).Code)
	assert.Equal(t, http.StatusOK, env.do(body()).Code)
	assert.Equal(t, http.StatusTooManyRequests, env.do(body()).Code)
}

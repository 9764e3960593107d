// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qazpress/qazpress/internal/ai"
	"github.com/qazpress/qazpress/internal/middleware"
	"github.com/qazpress/qazpress/internal/service"
	"github.com/qazpress/qazpress/internal/store"
)

// fakeProvider stands in for a real AI provider in endpoint tests.
type fakeProvider struct {
	configured bool
	reply      string
	err        error
	calls      int
}

func (f *fakeProvider) Name() string     { return "fake" }
func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) Generate(_ context.Context, _ string, _ ai.GenerateOptions) (string, error) {
	f.calls++
	return f.reply, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv wires a full handler stack over a temp-file database, with
// the AI gateway backed by the given provider.
type testEnv struct {
	db     *sql.DB
	router http.Handler

	articles *service.ArticleService
	taxonomy *service.TaxonomyService
	issues   *service.IssueService
	media    *service.MediaService
	queries  *store.Queries
}

func setupEnv(t *testing.T, provider ai.Provider) *testEnv {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })

	log := testLogger()
	gateway := ai.NewGatewayWithProviders(log, provider)
	translator := ai.NewTranslator(gateway)
	categorizer := ai.NewCategorizer(gateway, log)
	tagSuggester := ai.NewTagSuggester(gateway, log)
	analyzer := ai.NewAnalyzer(gateway)

	queries := store.New(db)
	env := &testEnv{
		db:       db,
		articles: service.NewArticleService(db, translator, log),
		taxonomy: service.NewTaxonomyService(queries, nil, log),
		issues:   service.NewIssueService(queries, log),
		media:    service.NewMediaService(queries, log),
		queries:  queries,
	}

	h := NewHandler(env.articles, env.taxonomy, env.issues, env.media, queries,
		translator, categorizer, tagSuggester, analyzer, log)
	env.router = h.Routes(RouterConfig{
		GlobalRPS:   1000,
		GlobalBurst: 1000,
		AIRPS:       1000,
		AIBurst:     1000,
	})
	return env
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// asEditor attaches trusted identity headers for an editor actor.
func asEditor(req *http.Request) *http.Request {
	req.Header.Set(middleware.HeaderActorID, "7")
	req.Header.Set(middleware.HeaderActorName, "Айгүл")
	req.Header.Set(middleware.HeaderActorRole, "editor")
	return req
}

func asAdmin(req *http.Request) *http.Request {
	req.Header.Set(middleware.HeaderActorID, "1")
	req.Header.Set(middleware.HeaderActorName, "admin")
	req.Header.Set(middleware.HeaderActorRole, "admin")
	return req
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decodeData unwraps the {"data": ...} envelope into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

// decodeErrorCode returns the error.code field of an error response.
func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

// createArticle creates an article over HTTP as an editor and returns
// its decoded response.
func (e *testEnv) createArticle(t *testing.T, req CreateArticleRequest) ArticleResponse {
	t.Helper()
	rec := e.do(asEditor(httptest.NewRequest(http.MethodPost, "/articles", jsonBody(t, req))))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp ArticleResponse
	decodeData(t, rec, &resp)
	return resp
}

func articlePath(id int64) string {
	return "/articles/" + strconv.FormatInt(id, 10)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qazpress/qazpress/internal/model"
)

func actorRequest(id, name, role string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if id != "" {
		r.Header.Set(HeaderActorID, id)
	}
	if name != "" {
		r.Header.Set(HeaderActorName, name)
	}
	if role != "" {
		r.Header.Set(HeaderActorRole, role)
	}
	return r
}

func TestWithActor(t *testing.T) {
	var got *model.Actor
	h := WithActor(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = GetActor(r)
	}))

	h.ServeHTTP(httptest.NewRecorder(), actorRequest("42", "Айгүл", model.RoleEditor))
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "Айгүл", got.Name)
	assert.True(t, got.CanEdit())

	got = nil
	h.ServeHTTP(httptest.NewRecorder(), actorRequest("", "", ""))
	assert.Nil(t, got, "no headers means anonymous")

	got = nil
	h.ServeHTTP(httptest.NewRecorder(), actorRequest("7", "X", "superuser"))
	assert.Nil(t, got, "unknown roles are ignored")
}

func TestRequireEditor(t *testing.T) {
	called := false
	h := WithActor(RequireEditor(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, actorRequest("", "", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, actorRequest("1", "Е", model.RoleEditor))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireAdmin(t *testing.T) {
	h := WithActor(RequireAdmin(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, actorRequest("1", "Е", model.RoleEditor))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, actorRequest("1", "А", model.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAIRateLimit(t *testing.T) {
	h := WithActor(AIRateLimit(1, 2)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))

	// Burst of 2, then limited.
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, actorRequest("5", "Е", model.RoleEditor))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, actorRequest("5", "Е", model.RoleEditor))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Another actor has an independent budget.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, actorRequest("6", "Б", model.RoleEditor))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAIRateLimitAnonymous(t *testing.T) {
	h := AIRateLimit(1, 1)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIsBot(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, IsBot(r), "missing user agent counts as a bot")

	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	assert.True(t, IsBot(r))

	r.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	assert.False(t, IsBot(r))
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/qazpress/qazpress/internal/middleware"
)

// Route path constants.
const (
	RouteArticles       = "/articles"
	RouteArticlesID     = "/articles/{id}"
	RouteArticleBySlug  = "/articles/slug/{lang}/{slug}"
	RouteCategories     = "/categories"
	RouteCategoriesID   = "/categories/{id}"
	RouteCategoriesSlug = "/categories/slug/{slug}"
	RouteTags           = "/tags"
	RouteTagsID         = "/tags/{id}"
	RouteTagsSlug       = "/tags/slug/{slug}"
	RouteTagsAccept     = "/tags/accept-suggestions"
	RouteIssues         = "/issues"
	RouteIssuesID       = "/issues/{id}"
	RouteIssueDownload  = "/issues/{id}/download"
	RouteMedia          = "/media"
	RouteMediaID        = "/media/{id}"
	RouteEvents         = "/events"
	RouteAITranslate    = "/ai/translate"
	RouteAITranslateArt = "/ai/translate-article"
	RouteAICategorize   = "/ai/categorize"
	RouteAISuggestTags  = "/ai/suggest-tags"
	RouteAIAnalyze      = "/ai/analyze"
)

// RouterConfig holds the throttling knobs for the API router.
type RouterConfig struct {
	GlobalRPS   float64
	GlobalBurst int
	AIRPS       float64
	AIBurst     int
}

// DefaultRouterConfig mirrors production defaults: a generous global
// limit per IP and a tight per-actor limit for the AI endpoints.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		GlobalRPS:   100,
		GlobalBurst: 200,
		AIRPS:       1,
		AIBurst:     5,
	}
}

// Routes mounts all API v1 routes on a fresh router. Identity headers
// are resolved once for the whole subtree; mutations require the
// editor role and AI endpoints are additionally throttled per actor.
func (h *Handler) Routes(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.GlobalRateLimit(cfg.GlobalRPS, cfg.GlobalBurst))
	r.Use(middleware.WithActor)

	r.Get("/status", h.Status)

	// Public read endpoints.
	r.Get(RouteArticles, h.ListArticles)
	r.Get(RouteArticlesID, h.GetArticle)
	r.Get(RouteArticleBySlug, h.GetArticleBySlug)
	r.Get(RouteCategories, h.ListCategories)
	r.Get(RouteCategoriesSlug, h.GetCategory)
	r.Get(RouteTags, h.ListTags)
	r.Get(RouteTagsSlug, h.GetTag)
	r.Get(RouteIssues, h.ListIssues)
	r.Get(RouteIssuesID, h.GetIssue)
	r.Post(RouteIssueDownload, h.DownloadIssue)
	r.Get(RouteMedia, h.ListMedia)
	r.Get(RouteMediaID, h.GetMedia)

	// Editorial endpoints (editor role required).
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireEditor)

		r.Post(RouteArticles, h.CreateArticle)
		r.Put(RouteArticlesID, h.UpdateArticle)
		r.Delete(RouteArticlesID, h.DeleteArticle)

		r.Post(RouteCategories, h.CreateCategory)
		r.Put(RouteCategoriesID, h.UpdateCategory)

		r.Post(RouteTags, h.CreateTag)
		r.Put(RouteTagsID, h.UpdateTag)
		r.Post(RouteTagsAccept, h.AcceptTagSuggestions)

		r.Post(RouteIssues, h.CreateIssue)
		r.Put(RouteIssuesID, h.UpdateIssue)
		r.Delete(RouteIssuesID, h.DeleteIssue)

		r.Post(RouteMedia, h.RegisterMedia)
	})

	// Destructive operations and the audit log are admin-only.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Delete(RouteCategoriesID, h.DeleteCategory)
		r.Delete(RouteTagsID, h.DeleteTag)
		r.Delete(RouteMediaID, h.DeleteMedia)
		r.Get(RouteEvents, h.ListEvents)
	})

	// AI endpoints are editor-only, slow, and metered upstream.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireEditor)
		r.Use(middleware.AIRateLimit(cfg.AIRPS, cfg.AIBurst))

		r.Post(RouteAITranslate, h.Translate)
		r.Post(RouteAITranslateArt, h.TranslateArticle)
		r.Post(RouteAICategorize, h.Categorize)
		r.Post(RouteAISuggestTags, h.SuggestTags)
		r.Post(RouteAIAnalyze, h.AnalyzeArticle)
	})

	return r
}

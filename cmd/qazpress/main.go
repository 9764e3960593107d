// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/qazpress/qazpress/internal/ai"
	"github.com/qazpress/qazpress/internal/cache"
	"github.com/qazpress/qazpress/internal/config"
	"github.com/qazpress/qazpress/internal/handler/api"
	"github.com/qazpress/qazpress/internal/logging"
	"github.com/qazpress/qazpress/internal/scheduler"
	"github.com/qazpress/qazpress/internal/service"
	"github.com/qazpress/qazpress/internal/store"
	"github.com/qazpress/qazpress/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "qazpress - bilingual newspaper backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  QAZPRESS_DB_PATH       SQLite database path (default: ./data/qazpress.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  QAZPRESS_SERVER_PORT   Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  QAZPRESS_ENV           Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  QAZPRESS_REDIS_URL     Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GEMINI_API_KEY         Primary AI provider key (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OPENROUTER_API_KEY     Secondary AI provider key (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OPENAI_API_KEY         Secondary AI provider key, lower precedence (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("qazpress %s (commit: %s, built: %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.IsDevelopment())
	slog.SetDefault(logger)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	logger = slog.New(logging.NewEventLogHandler(logger.Handler(), db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	if cfg.DoSeed {
		if err := store.Seed(context.Background(), db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	cacheManager, err := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := cacheManager.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	// AI gateway and advisors. Missing keys are fine: AI endpoints
	// report they are unconfigured, everything else keeps working.
	gateway := ai.NewGateway(ai.Config{
		GeminiAPIKey:     cfg.GeminiAPIKey,
		GeminiModel:      cfg.GeminiModel,
		OpenRouterAPIKey: cfg.OpenRouterAPIKey,
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenRouterModel:  cfg.OpenRouterModel,
	}, logger)
	if cfg.AIConfigured() {
		slog.Info("ai gateway ready",
			"category", "ai",
			"primary", cfg.HasPrimaryAI(),
			"secondary", cfg.HasSecondaryAI())
	} else {
		slog.Warn("no AI provider configured, AI endpoints disabled", "category", "ai")
	}
	translator := ai.NewTranslator(gateway)
	categorizer := ai.NewCategorizer(gateway, logger)
	tagSuggester := ai.NewTagSuggester(gateway, logger)
	analyzer := ai.NewAnalyzer(gateway)

	// Services
	queries := store.New(db)
	articleService := service.NewArticleService(db, translator, logger)
	taxonomyService := service.NewTaxonomyService(queries, cacheManager, logger)
	issueService := service.NewIssueService(queries, logger)
	mediaService := service.NewMediaService(queries, logger)

	// Scheduled publishing
	sched := scheduler.New(articleService, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// HTTP router
	apiHandler := api.NewHandler(
		articleService, taxonomyService, issueService, mediaService, queries,
		translator, categorizer, tagSuggester, analyzer,
		logger,
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(3 * time.Minute)) // AI calls can take a while

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Mount("/api/v1", apiHandler.Routes(api.DefaultRouterConfig()))
	slog.Info("REST API v1 mounted at /api/v1")

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      3 * time.Minute, // AI-backed endpoints wait on upstream providers
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

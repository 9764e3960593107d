// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the background job that publishes scheduled
// articles when their time arrives.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/qazpress/qazpress/internal/service"
)

// Scheduler periodically publishes due SCHEDULED articles.
type Scheduler struct {
	articles *service.ArticleService
	cron     *cron.Cron
	logger   *slog.Logger
}

// New creates a new scheduler instance.
func New(articles *service.ArticleService, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		articles: articles,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start begins the scheduler with a job that checks for due articles
// every minute.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.publishDue(); err != nil {
			s.logger.Error("processing scheduled articles failed",
				"category", "article",
				"error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) publishDue() error {
	n, err := s.articles.PublishDue(context.Background(), time.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("scheduled articles published", "category", "article", "count", n)
	}
	return nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qazpress/qazpress/internal/model"
	"github.com/qazpress/qazpress/internal/store"
)

func TestEventLogHandler(t *testing.T) {
	f, err := os.CreateTemp("", "qazpress-logtest-*.db")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	t.Cleanup(func() { _ = os.Remove(f.Name()) })

	db, err := store.NewDB(f.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))

	inner := slog.NewTextHandler(io.Discard, nil)
	logger := slog.New(NewEventLogHandler(inner, db))

	logger.Info("routine startup")
	logger.Warn("ai provider failed", "provider", "gemini", "category", model.EventCategoryAI)
	logger.Error("article save failed", "article_id", "7")

	events, err := store.New(db).ListEvents(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 2, "INFO records must not reach the event log")

	byMessage := map[string]model.Event{}
	for _, e := range events {
		byMessage[e.Message] = e
	}

	warn := byMessage["ai provider failed"]
	assert.Equal(t, model.EventLevelWarning, warn.Level)
	assert.Equal(t, model.EventCategoryAI, warn.Category)
	assert.Contains(t, warn.Metadata, `"provider":"gemini"`)

	errEvent := byMessage["article save failed"]
	assert.Equal(t, model.EventLevelError, errEvent.Level)
	assert.Equal(t, model.EventCategoryArticle, errEvent.Category)
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger("debug", true)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger = NewLogger("error", false)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelError))
}

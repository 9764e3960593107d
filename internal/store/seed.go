// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// defaultCategories is the bilingual category set created on first run.
var defaultCategories = []CreateCategoryParams{
	{NameKz: "Қоғам", NameRu: "Общество", Slug: "qogam"},
	{NameKz: "Саясат", NameRu: "Политика", Slug: "sayasat"},
	{NameKz: "Экономика", NameRu: "Экономика", Slug: "ekonomika"},
	{NameKz: "Мәдениет", NameRu: "Культура", Slug: "madeniet"},
	{NameKz: "Спорт", NameRu: "Спорт", Slug: "sport"},
	{NameKz: "Білім", NameRu: "Образование", Slug: "bilim"},
}

// Seed creates initial data in the database. Safe to run repeatedly.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	for _, c := range defaultCategories {
		_, err := queries.GetCategoryBySlug(ctx, c.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking category %q: %w", c.Slug, err)
		}
		created, err := queries.CreateCategory(ctx, c)
		if err != nil {
			return fmt.Errorf("seeding category %q: %w", c.Slug, err)
		}
		slog.Info("seeded category", "id", created.ID, "slug", created.Slug)
	}

	return nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	"github.com/qazpress/qazpress/internal/model"
)

// InsertEventParams holds fields for an event log entry.
type InsertEventParams struct {
	Level    string
	Category string
	Message  string
	ActorID  sql.NullInt64
	Metadata string
}

// InsertEvent writes an event log entry.
func (q *Queries) InsertEvent(ctx context.Context, arg InsertEventParams) error {
	if arg.Metadata == "" {
		arg.Metadata = "{}"
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO events (level, category, message, actor_id, metadata)
		VALUES (?, ?, ?, ?, ?)`,
		arg.Level, arg.Category, arg.Message, arg.ActorID, arg.Metadata)
	return err
}

// ListEvents returns event log entries newest-first.
func (q *Queries) ListEvents(ctx context.Context, limit, offset int64) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, level, category, message, actor_id, metadata, created_at
		FROM events ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message,
			&e.ActorID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

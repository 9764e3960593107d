// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/qazpress/qazpress/internal/model"
)

// EventResponse represents an audit log entry in API responses.
type EventResponse struct {
	ID        int64           `json:"id"`
	Level     string          `json:"level"`
	Category  string          `json:"category"`
	Message   string          `json:"message"`
	ActorID   *int64          `json:"actor_id,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func eventResponse(e model.Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		Level:     e.Level,
		Category:  e.Category,
		Message:   e.Message,
		ActorID:   nullInt(e.ActorID),
		Metadata:  json.RawMessage(e.Metadata),
		CreatedAt: e.CreatedAt,
	}
}

// ListEvents handles GET /api/v1/events
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePageParams(r, 50, 200)
	events, err := h.queries.ListEvents(r.Context(), int64(perPage), int64((page-1)*perPage))
	if err != nil {
		h.log.Error("listing events failed", "error", err)
		WriteInternalError(w, "Internal server error")
		return
	}
	responses := make([]EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, eventResponse(e))
	}
	WriteSuccess(w, responses, &Meta{Page: page, PerPage: perPage})
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for actor identity,
// authorization and request throttling. Authentication itself happens
// upstream; this layer trusts the identity headers the proxy injects.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/qazpress/qazpress/internal/model"
)

// ContextKey is the type for request context keys set by middleware.
type ContextKey string

// ContextKeyActor is the context key for the authenticated actor.
const ContextKeyActor ContextKey = "actor"

// Identity headers set by the upstream auth layer.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorName = "X-Actor-Name"
	HeaderActorRole = "X-Actor-Role"
)

// APIError represents a JSON error response for the API.
type APIError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	apiErr := APIError{}
	apiErr.Error.Code = code
	apiErr.Error.Message = message

	_ = json.NewEncoder(w).Encode(apiErr)
}

// WithActor reads the identity headers and, when present and valid,
// stores the actor in the request context. Requests without identity
// pass through anonymous.
func WithActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.Header.Get(HeaderActorID), 10, 64)
		if err != nil || id <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		role := r.Header.Get(HeaderActorRole)
		if role != model.RoleEditor && role != model.RoleAdmin {
			next.ServeHTTP(w, r)
			return
		}
		actor := model.Actor{
			ID:   id,
			Name: r.Header.Get(HeaderActorName),
			Role: role,
		}
		ctx := context.WithValue(r.Context(), ContextKeyActor, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetActor retrieves the actor from the request context. Returns nil
// for anonymous requests.
func GetActor(r *http.Request) *model.Actor {
	actor, ok := r.Context().Value(ContextKeyActor).(model.Actor)
	if !ok {
		return nil
	}
	return &actor
}

// RequireEditor rejects requests whose actor cannot mutate content.
func RequireEditor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := GetActor(r)
		if actor == nil {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}
		if !actor.CanEdit() {
			WriteAPIError(w, http.StatusForbidden, "forbidden", "Editor role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose actor is not an admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := GetActor(r)
		if actor == nil {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}
		if !actor.IsAdmin() {
			WriteAPIError(w, http.StatusForbidden, "forbidden", "Admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

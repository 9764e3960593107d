// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Actor roles. Authentication happens upstream; the API trusts the
// identity injected by that layer.
const (
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// Actor is the authenticated identity performing a request.
type Actor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// IsAdmin returns true if the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanEdit returns true if the actor may mutate content.
func (a Actor) CanEdit() bool {
	return a.Role == RoleAdmin || a.Role == RoleEditor
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Category represents a bilingual article category. The slug is globally
// unique; a category cannot be deleted while articles reference it.
type Category struct {
	ID            int64     `json:"id"`
	NameKz        string    `json:"name_kz"`
	NameRu        string    `json:"name_ru"`
	Slug          string    `json:"slug"`
	DescriptionKz string    `json:"description_kz,omitempty"`
	DescriptionRu string    `json:"description_ru,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Tag represents a bilingual article tag. Tags are created either
// explicitly or as accepted suggestions from the tag advisor.
type Tag struct {
	ID        int64     `json:"id"`
	NameKz    string    `json:"name_kz"`
	NameRu    string    `json:"name_ru"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

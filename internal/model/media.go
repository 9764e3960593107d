// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Supported MIME types for media records.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeWebP = "image/webp"
	MimeTypePDF  = "application/pdf"
)

// Media represents a stored file reference. The actual bytes live in
// external object storage; this record carries metadata only.
type Media struct {
	ID         string    `json:"id"` // UUID
	Filename   string    `json:"filename"`
	StoredName string    `json:"stored_name"` // ASCII-safe name used in storage
	MimeType   string    `json:"mime_type"`
	Size       int64     `json:"size"`
	Alt        string    `json:"alt,omitempty"`
	UploadedBy int64     `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

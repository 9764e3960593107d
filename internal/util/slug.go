// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation for Kazakh and Russian titles.
package util

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

var (
	// slugRegex matches runs of characters that are not Latin or Cyrillic
	// letters (including the Kazakh-specific set) or digits.
	slugRegex = regexp.MustCompile(`[^a-z0-9а-яёәғқңөұүһі]+`)
	// multipleHyphens matches multiple consecutive hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// asciiUnsafe matches characters not allowed in stored file names
	asciiUnsafe = regexp.MustCompile(`[^a-z0-9._-]+`)
)

// Slugify converts a title to a URL-friendly slug. Latin and Cyrillic
// letters (including Kazakh ә ғ қ ң ө ұ ү һ і) and digits are kept,
// every other run of characters collapses to a single hyphen.
func Slugify(s string) string {
	result := norm.NFC.String(s)
	result = strings.ToLower(result)
	result = slugRegex.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Latinize converts a string to a safe ASCII file name fragment using
// transliteration. Used for stored media file names where non-ASCII
// paths are rejected by external object storage.
func Latinize(s string) string {
	result := unidecode.Unidecode(norm.NFC.String(s))
	result = strings.ToLower(result)
	result = strings.ReplaceAll(result, " ", "-")
	result = asciiUnsafe.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	if strings.Contains(s, "--") {
		return false
	}
	return Slugify(s) == s
}

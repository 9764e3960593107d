// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"latin", "Hello World", "hello-world"},
		{"russian", "Новости дня", "новости-дня"},
		{"kazakh letters", "Қазақстан жаңалықтары", "қазақстан-жаңалықтары"},
		{"kazakh specific", "Әділет және бәсеке", "әділет-және-бәсеке"},
		{"mixed scripts", "IT-саласы 2026", "it-саласы-2026"},
		{"punctuation runs", "Сайлау: қорытынды — нәтижелер!", "сайлау-қорытынды-нәтижелер"},
		{"leading trailing", "  ...Ел тынысы...  ", "ел-тынысы"},
		{"quotes", `"Егемен Қазақстан" газеті`, "егемен-қазақстан-газеті"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
		{"numbers", "Топ-10 оқиға", "топ-10-оқиға"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	titles := []string{
		"Hello, World!",
		"Жаңа оқу жылы басталды",
		"Цены на хлеб выросли на 12%",
		"Ұлттық валютаға 30 жыл",
		"--- already -- hyphenated ---",
	}
	for _, title := range titles {
		first := Slugify(title)
		assert.Equal(t, first, Slugify(first), "Slugify must be idempotent for %q", title)
	}
}

func TestSlugifyInvariants(t *testing.T) {
	titles := []string{
		"!Сенсация!", "қазақша   мәтін", "a--b---c", "-лидер-", "№5 мектеп",
	}
	for _, title := range titles {
		slug := Slugify(title)
		if slug == "" {
			continue
		}
		assert.False(t, strings.HasPrefix(slug, "-"), "slug %q starts with hyphen", slug)
		assert.False(t, strings.HasSuffix(slug, "-"), "slug %q ends with hyphen", slug)
		assert.NotContains(t, slug, "--", "slug %q contains a hyphen run", slug)
	}
}

func TestLatinize(t *testing.T) {
	assert.Equal(t, "pravda", Latinize("Правда"))
	assert.Equal(t, "gazeta-pravda.pdf", Latinize("Газета Правда.pdf"))
	assert.Equal(t, "issue-2026-01", Latinize("Issue 2026/01"))

	// Kazakh-specific letters transliterate to plain ASCII.
	got := Latinize("Қазақстан")
	assert.NotEmpty(t, got)
	for _, r := range got {
		assert.Less(t, r, rune(128), "Latinize output must be ASCII, got %q", got)
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("hello-world"))
	assert.True(t, IsValidSlug("қазақстан-жаңалықтары"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("-leading"))
	assert.False(t, IsValidSlug("trailing-"))
	assert.False(t, IsValidSlug("double--hyphen"))
	assert.False(t, IsValidSlug("Upper Case"))
}

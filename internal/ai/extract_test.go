// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"prose around", `Here is the result: {"a":1}. Hope it helps!`, `{"a":1}`},
		{"nested", `{"a":{"b":2}}`, `{"a":{"b":2}}`},
		{"braces in strings", `{"a":"}{","b":1}`, `{"a":"}{","b":1}`},
		{"escaped quote", `{"a":"say \"hi\" {now}"}`, `{"a":"say \"hi\" {now}"}`},
		{"code fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fence no lang", "```\n{\"a\":1}\n```", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := firstJSONObject(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstJSONObjectErrors(t *testing.T) {
	_, err := firstJSONObject("no json here")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = firstJSONObject(`{"a":1`)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestFirstJSONArray(t *testing.T) {
	got, err := firstJSONArray("Tags:\n```json\n[{\"name_kz\":\"спорт\"}]\n```")
	require.NoError(t, err)
	assert.Equal(t, `[{"name_kz":"спорт"}]`, got)

	_, err = firstJSONArray("nothing")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"fmt"
	"strings"
)

// Models wrap JSON answers in prose and markdown code fences more
// often than not. The extractors below pull the first balanced JSON
// value out of free-form text instead of trusting the whole reply.

// firstJSONObject returns the first balanced {...} block in s.
func firstJSONObject(s string) (string, error) {
	return firstBalanced(stripCodeFences(s), '{', '}')
}

// firstJSONArray returns the first balanced [...] block in s.
func firstJSONArray(s string) (string, error) {
	return firstBalanced(stripCodeFences(s), '[', ']')
}

func firstBalanced(s string, open, closing byte) (string, error) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", fmt.Errorf("no %q found: %w", string(open), ErrInvalidFormat)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// brackets inside strings don't count
		case c == open:
			depth++
		case c == closing:
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced %q block: %w", string(open), ErrInvalidFormat)
}

// stripCodeFences removes markdown ``` fences around the reply.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// drop a language tag like "json" on the fence line
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		if first != "" && !strings.ContainsAny(first, "{}[]") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

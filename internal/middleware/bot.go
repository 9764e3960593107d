// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"

	"github.com/mileusna/useragent"
)

// IsBot reports whether the request comes from a crawler. Bot reads
// are served normally but excluded from view counters.
func IsBot(r *http.Request) bool {
	uaString := r.Header.Get("User-Agent")
	if uaString == "" {
		return true
	}
	return useragent.Parse(uaString).Bot
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/sitedeck/internal/i18n"
	"github.com/olegiv/sitedeck/internal/session"
)

// Language creates middleware that records an explicit language choice:
// the ?lang=XX query parameter, or else the language stored in the session
// at login. GetLanguage falls back further when neither is set.
func Language(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := strings.ToLower(r.URL.Query().Get("lang"))
			if !i18n.IsSupported(lang) {
				lang = ""
			}
			if lang == "" && sm != nil {
				if s := session.Language(r.Context(), sm); i18n.IsSupported(s) {
					lang = s
				}
			}
			if lang == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyLanguage, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLanguage returns the message language of the request. Priority order:
// 1. Choice recorded by Language (query parameter, session)
// 2. Preference of the authenticated user
// 3. Accept-Language header
// 4. Default language
func GetLanguage(r *http.Request) string {
	if lang, ok := r.Context().Value(ContextKeyLanguage).(string); ok && lang != "" {
		return lang
	}
	if u := GetUser(r); u != nil && i18n.IsSupported(u.Language) {
		return u.Language
	}
	if h := r.Header.Get("Accept-Language"); h != "" {
		return i18n.MatchLanguage(h)
	}
	return i18n.DefaultLanguage
}

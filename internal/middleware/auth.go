// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication, site
// loading and request hardening.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/sitedeck/internal/auth"
	"github.com/olegiv/sitedeck/internal/i18n"
	"github.com/olegiv/sitedeck/internal/logging"
	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/session"
	"github.com/olegiv/sitedeck/internal/util"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys of the request data set by the middleware.
const (
	ContextKeyUser        ContextKey = "user"
	ContextKeySite        ContextKey = "site"
	ContextKeyLanguage    ContextKey = "language"
	ContextKeyRequestPath ContextKey = "request_path"
	ContextKeyBearer      ContextKey = "bearer"
)

// UserLoader returns the user with the given id.
type UserLoader interface {
	User(ctx context.Context, id int64) (*model.User, error)
}

// Auth creates middleware that requires an authenticated owner, either
// through the session cookie or a Bearer token. Anonymous callers get a
// JSON 401. A session pointing to a deleted user is destroyed.
func Auth(sm *scs.SessionManager, tokens *auth.TokenIssuer, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID, bearer := int64(0), false

			if raw, ok := bearerToken(r); ok {
				id, err := tokens.Parse(raw)
				if err != nil {
					slog.Debug("rejected bearer token", "error", err, "path", r.URL.Path)
					writeUnauthorized(w, r)
					return
				}
				userID, bearer = id, true
			} else if sm != nil {
				userID = session.UserID(ctx, sm)
			}

			if userID == 0 {
				writeUnauthorized(w, r)
				return
			}

			user, err := users.User(ctx, userID)
			if err != nil {
				if !bearer && sm != nil {
					_ = session.Logout(ctx, sm)
				}
				writeUnauthorized(w, r)
				return
			}

			ctx = context.WithValue(ctx, ContextKeyUser, user)
			ctx = context.WithValue(ctx, ContextKeyBearer, bearer)
			ctx = logging.WithActor(ctx, user.ID, util.ClientIP(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	WriteAPIError(w, http.StatusUnauthorized, "unauthorized", i18n.T(GetLanguage(r), "auth.unauthorized"), nil)
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, _ := r.Context().Value(ContextKeyUser).(*model.User)
	return user
}

// GetUserID returns the current user's ID from context, or 0 if not found.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// IsBearer reports whether the request was authenticated by token.
func IsBearer(r *http.Request) bool {
	b, _ := r.Context().Value(ContextKeyBearer).(bool)
	return b
}

// RequestPath creates middleware that stores the request path in the
// context. Events mirrored by the logging handler carry it.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		ctx = logging.WithRequestPath(ctx, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, ok := ctx.Value(ContextKeyRequestPath).(string)
	if !ok {
		return ""
	}
	return path
}

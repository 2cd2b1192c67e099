// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the cookie session manager backed by the
// sessions table.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys.
const (
	KeyUserID   = "user_id"
	KeyLanguage = "language"
)

// CookieName is the name of the session cookie.
const CookieName = "sitedeck_session"

// New creates a session manager storing sessions in db.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.IdleTimeout = 2 * time.Hour
	sm.Cookie.Name = CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev

	return sm
}

// Login renews the session token and stores the user id. Renewing the
// token on privilege change prevents session fixation.
func Login(ctx context.Context, sm *scs.SessionManager, userID int64, lang string) error {
	if err := sm.RenewToken(ctx); err != nil {
		return err
	}
	sm.Put(ctx, KeyUserID, userID)
	if lang != "" {
		sm.Put(ctx, KeyLanguage, lang)
	}
	return nil
}

// Logout destroys the session.
func Logout(ctx context.Context, sm *scs.SessionManager) error {
	return sm.Destroy(ctx)
}

// UserID returns the logged-in user id, or 0.
func UserID(ctx context.Context, sm *scs.SessionManager) int64 {
	return sm.GetInt64(ctx, KeyUserID)
}

// Language returns the language preference stored in the session.
func Language(ctx context.Context, sm *scs.SessionManager) string {
	return sm.GetString(ctx, KeyLanguage)
}

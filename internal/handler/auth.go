// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/sitedeck/internal/auth"
	"github.com/olegiv/sitedeck/internal/i18n"
	"github.com/olegiv/sitedeck/internal/middleware"
	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/service"
	"github.com/olegiv/sitedeck/internal/session"
	"github.com/olegiv/sitedeck/internal/util"
)

// AuthHandler handles login, logout, tokens and the owner profile.
type AuthHandler struct {
	auth            *service.AuthService
	events          *service.EventService
	sessionManager  *scs.SessionManager
	tokens          *auth.TokenIssuer
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. lp may be nil.
func NewAuthHandler(as *service.AuthService, events *service.EventService, sm *scs.SessionManager, tokens *auth.TokenIssuer, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		auth:            as,
		events:          events,
		sessionManager:  sm,
		tokens:          tokens,
		loginProtection: lp,
	}
}

type credentials struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=1024"`
}

// TokenResponse is the body of a successful POST /auth/token.
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

type languageRequest struct {
	Language string `json:"language" validate:"required"`
}

// Login handles POST /auth/login and starts a cookie session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	user, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	if err := session.Login(r.Context(), h.sessionManager, user.ID, user.Language); err != nil {
		writeInternalError(w, r, "session renewal error", err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, user)
}

// Token handles POST /auth/token and issues a bearer token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	user, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	token, expires, err := h.tokens.Issue(user.ID)
	if err != nil {
		writeInternalError(w, r, "failed to issue token", err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token, TokenType: "Bearer", ExpiresAt: expires})
}

// authenticate checks the posted credentials against the lockout state and
// the user table. It writes the error response itself.
func (h *AuthHandler) authenticate(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	var req credentials
	if !requireJSON(w, r, &req) {
		return nil, false
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	client := clientInfo(r)

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			_ = h.events.LogAuthEvent(r.Context(), model.EventLevelWarning, "Login attempt on locked account", nil, client.IP,
				map[string]any{"email": email})
			writeLocked(w, r, remaining)
			return nil, false
		}
	}

	user, err := h.auth.Authenticate(r.Context(), email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.auth.RecordFailure(r.Context(), email, client)
		if h.loginProtection != nil {
			if locked, d := h.loginProtection.RecordFailedAttempt(email); locked {
				_ = h.events.LogAuthEvent(r.Context(), model.EventLevelWarning, "Account locked due to failed attempts", nil, client.IP,
					map[string]any{"email": email, "duration": d.String()})
				writeLocked(w, r, d)
				return nil, false
			}
		}
		writeError(w, r, http.StatusUnauthorized, "invalid_credentials", "auth.invalid_credentials")
		return nil, false
	}
	if err != nil {
		writeInternalError(w, r, "database error during login", err)
		return nil, false
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}
	h.auth.RecordLogin(r.Context(), user, client)
	return user, true
}

func writeLocked(w http.ResponseWriter, r *http.Request, d time.Duration) {
	w.Header().Set("Retry-After", formatSeconds(d))
	writeError(w, r, http.StatusTooManyRequests, "account_locked", "auth.too_many_attempts", d.Round(time.Second).String())
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if userID := session.UserID(ctx, h.sessionManager); userID > 0 {
		_ = h.events.LogAuthEvent(ctx, model.EventLevelInfo, "User logged out", &userID, util.ClientIP(r), nil)
	}

	if err := session.Logout(ctx, h.sessionManager); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": i18n.T(middleware.GetLanguage(r), "auth.logged_out"),
	})
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.GetUser(r))
}

// SetLanguage handles PUT /api/me/language. The choice is stored on the
// user and, for cookie sessions, in the session.
func (h *AuthHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if !requireJSON(w, r, &req) {
		return
	}
	lang := strings.ToLower(strings.TrimSpace(req.Language))
	if !i18n.IsSupported(lang) {
		writeError(w, r, http.StatusUnprocessableEntity, "unsupported_language", "auth.unsupported_language")
		return
	}

	user := middleware.GetUser(r)
	if err := h.auth.SetLanguage(r.Context(), user.ID, lang); err != nil {
		writeInternalError(w, r, "failed to store language", err)
		return
	}
	if !middleware.IsBearer(r) && h.sessionManager != nil {
		h.sessionManager.Put(r.Context(), session.KeyLanguage, lang)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"language": lang,
		"message":  i18n.T(lang, "auth.language_updated"),
	})
}

func clientInfo(r *http.Request) service.ClientInfo {
	return service.ClientInfo{IP: util.ClientIP(r), UserAgent: r.UserAgent()}
}

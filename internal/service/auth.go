// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mileusna/useragent"

	"github.com/olegiv/sitedeck/internal/auth"
	"github.com/olegiv/sitedeck/internal/geoip"
	"github.com/olegiv/sitedeck/internal/i18n"
	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/store"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong
// password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserNotFound is returned when a user id does not exist.
var ErrUserNotFound = errors.New("user not found")

// ClientInfo describes where a request came from.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// AuthService checks owner credentials and audits logins.
type AuthService struct {
	queries   *store.Queries
	events    *EventService
	geo       *geoip.Lookup
	logger    *slog.Logger
	dummyHash string
}

// NewAuthService creates an AuthService. geo may be nil.
func NewAuthService(db *sql.DB, events *EventService, geo *geoip.Lookup, logger *slog.Logger) (*AuthService, error) {
	dummy, err := auth.HashPassword("sitedeck-timing-equalizer")
	if err != nil {
		return nil, fmt.Errorf("hashing dummy password: %w", err)
	}
	return &AuthService{
		queries:   store.New(db),
		events:    events,
		geo:       geo,
		logger:    logger,
		dummyHash: dummy,
	}, nil
}

// Authenticate returns the user owning email when password matches.
// Unknown emails still pay for a hash check.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row, err := s.queries.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		_, _ = auth.CheckPassword(password, s.dummyHash)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	ok, err := auth.CheckPassword(password, row.PasswordHash)
	if err != nil {
		s.logger.Warn("stored password hash is unreadable", "user_id", row.ID, "error", err)
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if auth.NeedsRehash(row.PasswordHash) {
		s.rehash(ctx, row.ID, password)
	}
	return userFromRow(row), nil
}

// rehash stores a hash of password made with the current parameters.
// Failures are logged; the login goes on.
func (s *AuthService) rehash(ctx context.Context, userID int64, password string) {
	hash, err := auth.HashPassword(password)
	if err == nil {
		err = s.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
			PasswordHash: hash,
			UpdatedAt:    time.Now(),
			ID:           userID,
		})
	}
	if err != nil {
		s.logger.Error("failed to re-hash password", "user_id", userID, "error", err)
		return
	}
	s.logger.Info("password re-hashed with updated parameters", "user_id", userID)
}

// User returns the user with id.
func (s *AuthService) User(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUserByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return userFromRow(row), nil
}

// SetLanguage stores the preferred message language of a user.
func (s *AuthService) SetLanguage(ctx context.Context, userID int64, lang string) error {
	if !i18n.IsSupported(lang) {
		return fmt.Errorf("unsupported language %q", lang)
	}
	return s.queries.UpdateUserLanguage(ctx, store.UpdateUserLanguageParams{
		Language:  strings.ToLower(lang),
		UpdatedAt: time.Now(),
		ID:        userID,
	})
}

// RecordLogin stamps the login time and writes an audit event with the
// client's country, browser and OS.
func (s *AuthService) RecordLogin(ctx context.Context, user *model.User, client ClientInfo) {
	now := time.Now()
	if err := s.queries.UpdateUserLastLogin(ctx, store.UpdateUserLastLoginParams{
		LastLoginAt: sql.NullTime{Time: now, Valid: true},
		ID:          user.ID,
	}); err != nil {
		s.logger.Error("failed to stamp last login", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = &now

	_ = s.events.LogAuthEvent(ctx, model.EventLevelInfo, "User logged in", &user.ID, client.IP, s.clientMetadata(client))
}

// RecordFailure writes an audit event for a failed login.
func (s *AuthService) RecordFailure(ctx context.Context, email string, client ClientInfo) {
	meta := s.clientMetadata(client)
	meta["email"] = email
	_ = s.events.LogAuthEvent(ctx, model.EventLevelWarning, "Failed login attempt", nil, client.IP, meta)
}

func (s *AuthService) clientMetadata(client ClientInfo) map[string]any {
	meta := map[string]any{}
	if client.UserAgent != "" {
		ua := useragent.Parse(client.UserAgent)
		meta["browser"] = orUnknown(ua.Name)
		meta["os"] = orUnknown(ua.OS)
		meta["device"] = deviceType(ua)
	}
	if s.geo != nil && client.IP != "" {
		if c := s.geo.Country(client.IP); c != "" {
			meta["country"] = c
		}
	}
	return meta
}

func deviceType(ua useragent.UserAgent) string {
	switch {
	case ua.Mobile:
		return "mobile"
	case ua.Tablet:
		return "tablet"
	case ua.Bot:
		return "bot"
	default:
		return "desktop"
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func userFromRow(row store.User) *model.User {
	u := &model.User{ID: row.ID, Email: row.Email, Name: row.Name, Language: row.Language}
	if row.LastLoginAt.Valid {
		t := row.LastLoginAt.Time
		u.LastLoginAt = &t
	}
	return u
}

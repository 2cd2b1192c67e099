// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for sitedeck.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/olegiv/sitedeck/internal/auth"
	"github.com/olegiv/sitedeck/internal/store"
)

// TestLogger creates a quiet test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestDB creates a temporary database with all migrations applied.
// The database is closed when the test finishes.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "sitedeck-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// Fixture is an owner with a site and every section created.
type Fixture struct {
	User     store.User
	Site     store.Site
	Hero     store.HeroSection
	Sections map[store.SectionTable]store.Section
}

// CreateUser inserts a user with a throwaway password hash.
func CreateUser(t *testing.T, db *sql.DB, email string) store.User {
	t.Helper()
	now := time.Now()
	u, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        email,
		PasswordHash: "x",
		Name:         "Test Owner",
		Language:     "en",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

// CreateSite inserts a site for owner without any section.
func CreateSite(t *testing.T, db *sql.DB, owner store.User, url string) store.Site {
	t.Helper()
	now := time.Now()
	s, err := store.New(db).CreateSite(context.Background(), store.CreateSiteParams{
		OwnerID:   owner.ID,
		Name:      "Test Site",
		Url:       url,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}
	return s
}

// NewFixture creates an owner, a site under url and every section.
func NewFixture(t *testing.T, db *sql.DB, email, url string) Fixture {
	t.Helper()
	ctx := context.Background()
	q := store.New(db)

	f := Fixture{Sections: map[store.SectionTable]store.Section{}}
	f.User = CreateUser(t, db, email)
	f.Site = CreateSite(t, db, f.User, url)

	hero, err := q.CreateHeroSection(ctx, store.CreateHeroSectionParams{
		SiteID:    f.Site.ID,
		Title:     "Hero",
		Subtitle:  "Sub",
		UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateHeroSection: %v", err)
	}
	f.Hero = hero

	for _, table := range []store.SectionTable{
		store.ServicesSections,
		store.PortfolioSections,
		store.Teams,
		store.TestimonialsSections,
		store.FaqsSections,
	} {
		s, err := q.CreateSection(ctx, table, store.CreateSectionParams{
			SiteID:    f.Site.ID,
			Title:     string(table),
			UpdatedAt: time.Now(),
		})
		if err != nil {
			t.Fatalf("CreateSection(%s): %v", table, err)
		}
		f.Sections[table] = s
	}
	return f
}

// SetPassword replaces the password of a user with a real argon2id hash.
func SetPassword(t *testing.T, db *sql.DB, userID int64, password string) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := store.New(db).UpdateUserPassword(context.Background(), store.UpdateUserPasswordParams{
		PasswordHash: hash,
		UpdatedAt:    time.Now(),
		ID:           userID,
	}); err != nil {
		t.Fatalf("UpdateUserPassword: %v", err)
	}
}

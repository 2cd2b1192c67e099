// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/sitedeck/internal/auth"
	"github.com/olegiv/sitedeck/internal/util"
)

// Default owner credentials used by Seed.
const (
	DefaultOwnerEmail    = "owner@example.com"
	DefaultOwnerPassword = "changeme1234"
	DefaultOwnerName     = "Site Owner"
	DefaultSiteName      = "Demo Studio"
)

// DefaultSiteURL is the url, and storage folder, of the seeded site.
var DefaultSiteURL = util.Slugify(DefaultSiteName)

// Seed creates a default owner with a demo site holding every section.
// It is a no-op when the owner already exists.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	_, err := queries.GetUserByEmail(ctx, DefaultOwnerEmail)
	if err == nil {
		slog.Info("default owner already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for default owner: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultOwnerPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := queries.WithTx(tx)

	now := time.Now()
	user, err := qtx.CreateUser(ctx, CreateUserParams{
		Email:        DefaultOwnerEmail,
		PasswordHash: passwordHash,
		Name:         DefaultOwnerName,
		Language:     "en",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating default owner: %w", err)
	}

	site, err := qtx.CreateSite(ctx, CreateSiteParams{
		OwnerID:   user.ID,
		Name:      DefaultSiteName,
		Url:       DefaultSiteURL,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("creating demo site: %w", err)
	}

	if err := seedSections(ctx, qtx, site.ID, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("created default owner",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultOwnerPassword,
		"site", site.Url,
	)
	return nil
}

func seedSections(ctx context.Context, q *Queries, siteID int64, now time.Time) error {
	if _, err := q.CreateHeroSection(ctx, CreateHeroSectionParams{
		SiteID:    siteID,
		Title:     "We build things people love",
		Subtitle:  "Design and engineering for small teams",
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("creating hero section: %w", err)
	}

	sections := map[SectionTable]string{
		ServicesSections:     "Services",
		PortfolioSections:    "Portfolio",
		Teams:                "Our team",
		TestimonialsSections: "What clients say",
		FaqsSections:         "Frequently asked questions",
	}
	ids := make(map[SectionTable]int64, len(sections))
	for table, title := range sections {
		s, err := q.CreateSection(ctx, table, CreateSectionParams{SiteID: siteID, Title: title, UpdatedAt: now})
		if err != nil {
			return fmt.Errorf("creating %s: %w", table, err)
		}
		ids[table] = s.ID
	}

	for i, title := range []string{"Web design", "Branding"} {
		if _, err := q.CreateServicesItem(ctx, CreateServicesItemParams{
			SectionID:   ids[ServicesSections],
			Position:    int64(i),
			Title:       title,
			Description: "Describe the " + title + " service here.",
		}); err != nil {
			return fmt.Errorf("creating services item: %w", err)
		}
	}

	if _, err := q.CreatePortfolioItem(ctx, CreatePortfolioItemParams{
		SectionID:   ids[PortfolioSections],
		Title:       "Coffee shop relaunch",
		Subtitle:    "Identity and website",
		Description: "A full relaunch for a neighbourhood coffee shop.",
	}); err != nil {
		return fmt.Errorf("creating portfolio item: %w", err)
	}

	if _, err := q.CreateTeamMember(ctx, CreateTeamMemberParams{
		SectionID:   ids[Teams],
		Name:        "Ana Silva",
		Profession:  "Designer",
		Description: "Ana leads every visual project.",
	}); err != nil {
		return fmt.Errorf("creating team member: %w", err)
	}

	if _, err := q.CreateTestimonial(ctx, CreateTestimonialParams{
		SectionID:   ids[TestimonialsSections],
		Username:    "Happy client",
		Stars:       5,
		Description: "Delivered on time and beyond expectations.",
	}); err != nil {
		return fmt.Errorf("creating testimonial: %w", err)
	}

	if _, err := q.CreateFaqsItem(ctx, CreateFaqsItemParams{
		SectionID: ids[FaqsSections],
		Question:  "How long does a project take?",
		Answer:    "Most projects ship in **four to six weeks**.",
	}); err != nil {
		return fmt.Errorf("creating faq item: %w", err)
	}

	return nil
}

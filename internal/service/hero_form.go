// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"time"

	"github.com/olegiv/sitedeck/internal/i18n"
	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/store"
)

// HeroStore persists the hero block.
type HeroStore interface {
	UpdateHero(ctx context.Context, siteID int64, hero model.Hero) error
}

// SQLHeroStore is the database HeroStore.
type SQLHeroStore struct {
	q *store.Queries
}

// NewHeroStore returns a SQLHeroStore.
func NewHeroStore(q *store.Queries) *SQLHeroStore {
	return &SQLHeroStore{q: q}
}

// UpdateHero implements HeroStore.
func (s *SQLHeroStore) UpdateHero(ctx context.Context, siteID int64, hero model.Hero) error {
	n, err := s.q.UpdateHeroSection(ctx, store.UpdateHeroSectionParams{
		Title:              hero.Title,
		Subtitle:           hero.Subtitle,
		BackgroundImageUrl: hero.BackgroundImageURL,
		UpdatedAt:          time.Now(),
		ID:                 hero.ID,
		SiteID:             siteID,
	})
	return affected(n, err, ErrSectionNotFound)
}

// HeroForm is the editor of the hero block.
type HeroForm struct {
	store    HeroStore
	uploader ImageUploader
	siteID   int64
	folder   string
	lang     string
	state    model.Hero
}

// NewHeroForm opens an editor on hero. folder is the storage folder of the
// site, its url.
func NewHeroForm(st HeroStore, up ImageUploader, siteID int64, folder string, hero model.Hero, lang string) *HeroForm {
	return &HeroForm{store: st, uploader: up, siteID: siteID, folder: folder, lang: lang, state: hero}
}

// State returns the editor state.
func (f *HeroForm) State() model.Hero {
	return f.state
}

// Submit uploads file when present and then writes title, subtitle and the
// background image in a single update. A failed upload leaves the row
// untouched.
func (f *HeroForm) Submit(ctx context.Context, title, subtitle string, file *File) Result {
	next := f.state
	next.Title = SanitizeText(title)
	next.Subtitle = SanitizeText(subtitle)

	if file != nil {
		url, err := f.uploader.Upload(ctx, f.folder, file.Name, file.Body)
		if err != nil {
			msg := i18n.T(f.lang, "section.error_upload", err.Error())
			if errors.Is(err, ErrMissingFolder) {
				msg = i18n.T(f.lang, "section.folder_missing")
			}
			return Result{Message: msg, Err: err}
		}
		next.BackgroundImageURL = url
	}

	if err := f.store.UpdateHero(ctx, f.siteID, next); err != nil {
		return Result{Message: i18n.T(f.lang, "section.error_update", err.Error()), Err: err}
	}
	f.state = next
	return Result{Success: true, Message: i18n.T(f.lang, "section.updated"), Updated: 1}
}

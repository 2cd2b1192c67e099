// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/olegiv/sitedeck/internal/cache"
	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/store"
)

// Cache key prefixes of the site snapshots.
const (
	OwnerSnapshotPrefix  = "site:owner:"
	PublicSnapshotPrefix = "site:public:"
)

// SiteService loads the composite snapshot of a site: the site record and
// every section with its items.
type SiteService struct {
	q         *store.Queries
	stores    Stores
	hero      *SQLHeroStore
	snapshots *cache.TypedCache[model.Site]
	public    *cache.TypedCache[PublicSite]
	logger    *slog.Logger
}

// NewSiteService creates a SiteService caching snapshots in c for ttl.
// A nil c disables caching.
func NewSiteService(db *sql.DB, c cache.Cacher, ttl time.Duration, logger *slog.Logger) *SiteService {
	q := store.New(db)
	s := &SiteService{
		q:      q,
		stores: NewStores(q),
		hero:   NewHeroStore(q),
		logger: logger,
	}
	if c != nil {
		s.snapshots = cache.NewTypedCache[model.Site](c, OwnerSnapshotPrefix, ttl)
		s.public = cache.NewTypedCache[PublicSite](c, PublicSnapshotPrefix, ttl)
	}
	return s
}

// Stores returns the item stores of every list section.
func (s *SiteService) Stores() Stores { return s.stores }

// HeroStore returns the hero store.
func (s *SiteService) HeroStore() HeroStore { return s.hero }

// ForOwner returns the snapshot of the site owned by ownerID.
func (s *SiteService) ForOwner(ctx context.Context, ownerID int64) (*model.Site, error) {
	load := func() (*model.Site, error) {
		row, err := s.q.GetSiteByOwner(ctx, ownerID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSiteNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("loading site of owner %d: %w", ownerID, err)
		}
		return s.Load(ctx, row)
	}
	if s.snapshots == nil {
		return load()
	}
	return s.snapshots.GetOrSet(ctx, strconv.FormatInt(ownerID, 10), load)
}

// ByURL returns the snapshot of the site published under url.
func (s *SiteService) ByURL(ctx context.Context, url string) (*model.Site, error) {
	row, err := s.q.GetSiteByURL(ctx, url)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSiteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading site %q: %w", url, err)
	}
	return s.Load(ctx, row)
}

// Public returns the rendered public content of the site under url.
func (s *SiteService) Public(ctx context.Context, url string) (*PublicSite, error) {
	load := func() (*PublicSite, error) {
		site, err := s.ByURL(ctx, url)
		if err != nil {
			return nil, err
		}
		return RenderPublic(site), nil
	}
	if s.public == nil {
		return load()
	}
	return s.public.GetOrSet(ctx, url, load)
}

// Invalidate drops the cached snapshots of site. Cache errors are logged.
func (s *SiteService) Invalidate(ctx context.Context, site *model.Site) {
	if s.snapshots == nil || site == nil {
		return
	}
	if err := s.snapshots.Delete(ctx, strconv.FormatInt(site.OwnerID, 10)); err != nil {
		s.logger.Warn("cache invalidation failed", "site", site.URL, "error", err)
	}
	if err := s.public.Delete(ctx, site.URL); err != nil {
		s.logger.Warn("cache invalidation failed", "site", site.URL, "error", err)
	}
}

// Load builds the snapshot of a site row. Missing sections stay nil.
func (s *SiteService) Load(ctx context.Context, row store.Site) (*model.Site, error) {
	site := &model.Site{ID: row.ID, OwnerID: row.OwnerID, Name: row.Name, URL: row.Url}

	hero, err := s.q.GetHeroSection(ctx, row.ID)
	switch {
	case err == nil:
		site.Hero = &model.Hero{
			ID:                 hero.ID,
			Title:              hero.Title,
			Subtitle:           hero.Subtitle,
			BackgroundImageURL: hero.BackgroundImageUrl,
		}
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("loading hero: %w", err)
	}

	if site.Services, err = loadSection(ctx, s.q, store.ServicesSections, s.stores.Services, row.ID); err != nil {
		return nil, err
	}
	if site.Portfolio, err = loadSection(ctx, s.q, store.PortfolioSections, s.stores.Portfolio, row.ID); err != nil {
		return nil, err
	}
	if site.Team, err = loadSection(ctx, s.q, store.Teams, s.stores.Team, row.ID); err != nil {
		return nil, err
	}
	if site.Testimonials, err = loadSection(ctx, s.q, store.TestimonialsSections, s.stores.Testimonials, row.ID); err != nil {
		return nil, err
	}
	if site.Faqs, err = loadSection(ctx, s.q, store.FaqsSections, s.stores.Faqs, row.ID); err != nil {
		return nil, err
	}
	return site, nil
}

func loadSection[T model.Item](ctx context.Context, q *store.Queries, table store.SectionTable, st ItemStore[T], siteID int64) (*model.Section[T], error) {
	sec, err := q.GetSection(ctx, table, siteID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", table, err)
	}
	items, err := st.List(ctx, sec.ID)
	if err != nil {
		return nil, fmt.Errorf("loading %s items: %w", table, err)
	}
	return &model.Section[T]{ID: sec.ID, Title: sec.Title, Items: items}, nil
}

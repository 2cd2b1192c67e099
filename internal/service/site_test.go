// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/sitedeck/internal/cache"
	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/store"
	"github.com/olegiv/sitedeck/internal/testutil"
)

func newSiteService(t *testing.T) (*SiteService, testutil.Fixture) {
	t.Helper()
	db := testutil.TestDB(t)
	fx := testutil.NewFixture(t, db, "owner@example.com", "acme")
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })
	return NewSiteService(db, c, time.Minute, testutil.TestLogger()), fx
}

func TestSiteService_ForOwnerLoadsEverySection(t *testing.T) {
	svc, fx := newSiteService(t)
	ctx := context.Background()

	_, err := svc.Stores().Services.Create(ctx, fx.Sections[store.ServicesSections].ID)
	require.NoError(t, err)
	_, err = svc.Stores().Faqs.Create(ctx, fx.Sections[store.FaqsSections].ID)
	require.NoError(t, err)

	site, err := svc.ForOwner(ctx, fx.User.ID)
	require.NoError(t, err)

	assert.Equal(t, "acme", site.URL)
	for _, k := range model.Kinds {
		assert.True(t, site.Has(k), "section %s", k)
	}
	assert.Len(t, site.Services.Items, 1)
	assert.Len(t, site.Faqs.Items, 1)
	assert.Empty(t, site.Team.Items)
	assert.NotNil(t, site.Team.Items)
}

func TestSiteService_MissingSectionsAreNil(t *testing.T) {
	db := testutil.TestDB(t)
	owner := testutil.CreateUser(t, db, "bare@example.com")
	testutil.CreateSite(t, db, owner, "bare")
	svc := NewSiteService(db, nil, 0, testutil.TestLogger())

	site, err := svc.ForOwner(context.Background(), owner.ID)
	require.NoError(t, err)

	assert.Nil(t, site.Hero)
	assert.Nil(t, site.Faqs)
	assert.Len(t, Navigation(site, "en")[1].Children, 0)
}

func TestSiteService_NoSite(t *testing.T) {
	db := testutil.TestDB(t)
	owner := testutil.CreateUser(t, db, "nosite@example.com")
	svc := NewSiteService(db, nil, 0, testutil.TestLogger())

	_, err := svc.ForOwner(context.Background(), owner.ID)
	assert.ErrorIs(t, err, ErrSiteNotFound)
	_, err = svc.Public(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSiteNotFound)
}

func TestSiteService_InvalidateDropsSnapshot(t *testing.T) {
	svc, fx := newSiteService(t)
	ctx := context.Background()
	sectionID := fx.Sections[store.ServicesSections].ID

	site, err := svc.ForOwner(ctx, fx.User.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Stores().Services.UpdateTitle(ctx, fx.Site.ID, sectionID, "Renamed"))

	cached, err := svc.ForOwner(ctx, fx.User.ID)
	require.NoError(t, err)
	assert.Equal(t, site.Services.Title, cached.Services.Title)

	svc.Invalidate(ctx, site)
	fresh, err := svc.ForOwner(ctx, fx.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fresh.Services.Title)
}

func TestSQLItemStore_ScopedToSection(t *testing.T) {
	db := testutil.TestDB(t)
	fx := testutil.NewFixture(t, db, "owner@example.com", "acme")
	other := testutil.NewFixture(t, db, "other@example.com", "other")
	stores := NewStores(store.New(db))
	ctx := context.Background()
	services := fx.Sections[store.ServicesSections].ID
	foreign := other.Sections[store.ServicesSections].ID
	require.NotEqual(t, services, foreign)

	item, err := stores.Services.Create(ctx, services)
	require.NoError(t, err)

	item.Title = "Design"
	require.NoError(t, stores.Services.Update(ctx, services, item))
	assert.ErrorIs(t, stores.Services.Update(ctx, foreign, item), ErrItemNotFound)
	assert.ErrorIs(t, stores.Services.Delete(ctx, foreign, item.ID), ErrItemNotFound)
	assert.ErrorIs(t, stores.Services.UpdateTitle(ctx, other.Site.ID, services, "x"), ErrSectionNotFound)

	items, err := stores.Services.List(ctx, services)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Design", items[0].Title)

	require.NoError(t, stores.Services.Delete(ctx, services, item.ID))
	items, err = stores.Services.List(ctx, services)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSQLItemStore_TestimonialImageTargetsTestimonials(t *testing.T) {
	svc, fx := newSiteService(t)
	ctx := context.Background()
	stores := svc.Stores()
	section := fx.Sections[store.TestimonialsSections].ID

	tm, err := stores.Testimonials.Create(ctx, section)
	require.NoError(t, err)
	assert.Equal(t, int64(5), tm.Stars)

	require.NoError(t, stores.Testimonials.SetImage(ctx, section, tm.ID, "https://cdn.example.com/t.png"))

	items, err := stores.Testimonials.List(ctx, section)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/t.png", items[0].ImageURL)

	members, err := stores.Team.List(ctx, fx.Sections[store.Teams].ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestSQLItemStore_FaqsHaveNoImage(t *testing.T) {
	svc, fx := newSiteService(t)
	err := svc.Stores().Faqs.SetImage(context.Background(), fx.Sections[store.FaqsSections].ID, 1, "x")
	assert.ErrorIs(t, err, ErrNoImages)
}

func TestSectionForm_AgainstDatabase(t *testing.T) {
	svc, fx := newSiteService(t)
	ctx := context.Background()
	section := fx.Sections[store.Teams].ID

	a, err := svc.Stores().Team.Create(ctx, section)
	require.NoError(t, err)
	b, err := svc.Stores().Team.Create(ctx, section)
	require.NoError(t, err)

	form := NewSectionForm(model.KindTeam, svc.Stores().Team, fx.Site.ID,
		model.Section[model.TeamMember]{ID: section, Items: []model.TeamMember{a, b}}, "en")
	a.Name = "Ana"
	ghost := model.TeamMember{ID: 9999, Name: "Ghost"}
	b.Name = "Bruno"
	form.Edit("The team", []model.TeamMember{a, ghost, b})

	res := form.Submit(ctx)

	assert.False(t, res.Success)
	assert.Equal(t, "Error updating team member 9999: item not found", res.Message)
	assert.Equal(t, 1, res.Updated)

	site, err := svc.ByURL(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "The team", site.Team.Title)
	assert.Equal(t, "Ana", site.Team.Items[0].Name)
	assert.Empty(t, site.Team.Items[1].Name)
}

func TestHeroStore_Update(t *testing.T) {
	svc, fx := newSiteService(t)
	ctx := context.Background()

	err := svc.HeroStore().UpdateHero(ctx, fx.Site.ID, model.Hero{
		ID:                 fx.Hero.ID,
		Title:              "Welcome",
		Subtitle:           "We build",
		BackgroundImageURL: "https://cdn.example.com/bg.jpg",
	})
	require.NoError(t, err)

	site, err := svc.ByURL(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "Welcome", site.Hero.Title)
	assert.Equal(t, "https://cdn.example.com/bg.jpg", site.Hero.BackgroundImageURL)

	err = svc.HeroStore().UpdateHero(ctx, fx.Site.ID+1, model.Hero{ID: fx.Hero.ID})
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

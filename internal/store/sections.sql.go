// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

// SectionTable names one of the title-only section tables.
type SectionTable string

// Section tables.
const (
	ServicesSections     SectionTable = "services_sections"
	PortfolioSections    SectionTable = "portfolio_sections"
	Teams                SectionTable = "teams"
	TestimonialsSections SectionTable = "testimonials_sections"
	FaqsSections         SectionTable = "faqs_sections"
)

// Valid reports whether t is a known section table. Table names are
// interpolated into SQL, so every query checks this first.
func (t SectionTable) Valid() bool {
	switch t {
	case ServicesSections, PortfolioSections, Teams, TestimonialsSections, FaqsSections:
		return true
	}
	return false
}

// ItemTable names one of the child item tables.
type ItemTable string

// Item tables.
const (
	ServicesItems  ItemTable = "services_items"
	PortfolioItems ItemTable = "portfolio_items"
	TeamMembers    ItemTable = "team_members"
	Testimonials   ItemTable = "testimonials"
	FaqsItems      ItemTable = "faqs_items"
)

// Valid reports whether t is a known item table.
func (t ItemTable) Valid() bool {
	switch t {
	case ServicesItems, PortfolioItems, TeamMembers, Testimonials, FaqsItems:
		return true
	}
	return false
}

// HasImage reports whether rows of t carry an image_url column.
func (t ItemTable) HasImage() bool {
	return t.Valid() && t != FaqsItems
}

func unknownTable[T ~string](t T) error {
	return fmt.Errorf("unknown table %q", string(t))
}

// Hero

const heroColumns = `id, site_id, title, subtitle, background_image_url, updated_at`

func scanHero(row rowScanner) (HeroSection, error) {
	var h HeroSection
	err := row.Scan(&h.ID, &h.SiteID, &h.Title, &h.Subtitle, &h.BackgroundImageUrl, &h.UpdatedAt)
	return h, err
}

const getHeroSection = `-- name: GetHeroSection :one
SELECT ` + heroColumns + ` FROM hero_sections WHERE site_id = ?`

// GetHeroSection returns the hero section of a site.
func (q *Queries) GetHeroSection(ctx context.Context, siteID int64) (HeroSection, error) {
	return scanHero(q.db.QueryRowContext(ctx, getHeroSection, siteID))
}

const createHeroSection = `-- name: CreateHeroSection :one
INSERT INTO hero_sections (site_id, title, subtitle, background_image_url, updated_at)
VALUES (?, ?, ?, ?, ?)
RETURNING ` + heroColumns

// CreateHeroSectionParams holds the arguments of CreateHeroSection.
type CreateHeroSectionParams struct {
	SiteID             int64
	Title              string
	Subtitle           string
	BackgroundImageUrl string
	UpdatedAt          time.Time
}

// CreateHeroSection inserts the hero section of a site.
func (q *Queries) CreateHeroSection(ctx context.Context, arg CreateHeroSectionParams) (HeroSection, error) {
	row := q.db.QueryRowContext(ctx, createHeroSection,
		arg.SiteID, arg.Title, arg.Subtitle, arg.BackgroundImageUrl, arg.UpdatedAt)
	return scanHero(row)
}

const updateHeroSection = `-- name: UpdateHeroSection :execrows
UPDATE hero_sections
SET title = ?, subtitle = ?, background_image_url = ?, updated_at = ?
WHERE id = ? AND site_id = ?`

// UpdateHeroSectionParams holds the arguments of UpdateHeroSection.
type UpdateHeroSectionParams struct {
	Title              string
	Subtitle           string
	BackgroundImageUrl string
	UpdatedAt          time.Time
	ID                 int64
	SiteID             int64
}

// UpdateHeroSection rewrites the hero row. It returns the number of rows
// touched, which is zero when the id does not belong to the site.
func (q *Queries) UpdateHeroSection(ctx context.Context, arg UpdateHeroSectionParams) (int64, error) {
	return q.execRows(ctx, updateHeroSection,
		arg.Title, arg.Subtitle, arg.BackgroundImageUrl, arg.UpdatedAt, arg.ID, arg.SiteID)
}

// Title-only sections

// GetSection returns the section of the given table for a site.
func (q *Queries) GetSection(ctx context.Context, table SectionTable, siteID int64) (Section, error) {
	if !table.Valid() {
		return Section{}, unknownTable(table)
	}
	query := `SELECT id, site_id, title, updated_at FROM ` + string(table) + ` WHERE site_id = ?`
	var s Section
	err := q.db.QueryRowContext(ctx, query, siteID).Scan(&s.ID, &s.SiteID, &s.Title, &s.UpdatedAt)
	return s, err
}

// CreateSectionParams holds the arguments of CreateSection.
type CreateSectionParams struct {
	SiteID    int64
	Title     string
	UpdatedAt time.Time
}

// CreateSection inserts a section row into table.
func (q *Queries) CreateSection(ctx context.Context, table SectionTable, arg CreateSectionParams) (Section, error) {
	if !table.Valid() {
		return Section{}, unknownTable(table)
	}
	query := `INSERT INTO ` + string(table) + ` (site_id, title, updated_at) VALUES (?, ?, ?)
RETURNING id, site_id, title, updated_at`
	var s Section
	err := q.db.QueryRowContext(ctx, query, arg.SiteID, arg.Title, arg.UpdatedAt).
		Scan(&s.ID, &s.SiteID, &s.Title, &s.UpdatedAt)
	return s, err
}

// UpdateSectionTitleParams holds the arguments of UpdateSectionTitle.
type UpdateSectionTitleParams struct {
	Title     string
	UpdatedAt time.Time
	ID        int64
	SiteID    int64
}

// UpdateSectionTitle sets the title of a section owned by SiteID.
func (q *Queries) UpdateSectionTitle(ctx context.Context, table SectionTable, arg UpdateSectionTitleParams) (int64, error) {
	if !table.Valid() {
		return 0, unknownTable(table)
	}
	query := `UPDATE ` + string(table) + ` SET title = ?, updated_at = ? WHERE id = ? AND site_id = ?`
	return q.execRows(ctx, query, arg.Title, arg.UpdatedAt, arg.ID, arg.SiteID)
}

// Item helpers shared by every item table

// DeleteItem removes an item of the given section.
func (q *Queries) DeleteItem(ctx context.Context, table ItemTable, id, sectionID int64) (int64, error) {
	if !table.Valid() {
		return 0, unknownTable(table)
	}
	query := `DELETE FROM ` + string(table) + ` WHERE id = ? AND section_id = ?`
	return q.execRows(ctx, query, id, sectionID)
}

// SetItemImageParams holds the arguments of SetItemImage.
type SetItemImageParams struct {
	ImageUrl  string
	ID        int64
	SectionID int64
}

// SetItemImage patches only the image_url column of an item.
func (q *Queries) SetItemImage(ctx context.Context, table ItemTable, arg SetItemImageParams) (int64, error) {
	if !table.HasImage() {
		return 0, fmt.Errorf("table %q has no image column", string(table))
	}
	query := `UPDATE ` + string(table) + ` SET image_url = ? WHERE id = ? AND section_id = ?`
	return q.execRows(ctx, query, arg.ImageUrl, arg.ID, arg.SectionID)
}

// NextItemPosition returns the position a newly appended item should take.
func (q *Queries) NextItemPosition(ctx context.Context, table ItemTable, sectionID int64) (int64, error) {
	if !table.Valid() {
		return 0, unknownTable(table)
	}
	query := `SELECT COALESCE(MAX(position), -1) + 1 FROM ` + string(table) + ` WHERE section_id = ?`
	var pos int64
	err := q.db.QueryRowContext(ctx, query, sectionID).Scan(&pos)
	return pos, err
}

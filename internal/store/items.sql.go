// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
)

type rowScanner interface{ Scan(...any) error }

func listRows[T any](ctx context.Context, q *Queries, query string, scan func(rowScanner) (T, error), args ...any) ([]T, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Services

func scanServicesItem(row rowScanner) (ServicesItem, error) {
	var i ServicesItem
	err := row.Scan(&i.ID, &i.SectionID, &i.Position, &i.Title, &i.Description, &i.ImageUrl)
	return i, err
}

const listServicesItems = `-- name: ListServicesItems :many
SELECT id, section_id, position, title, description, image_url
FROM services_items WHERE section_id = ? ORDER BY position, id`

// ListServicesItems returns the items of a services section in display order.
func (q *Queries) ListServicesItems(ctx context.Context, sectionID int64) ([]ServicesItem, error) {
	return listRows(ctx, q, listServicesItems, scanServicesItem, sectionID)
}

const createServicesItem = `-- name: CreateServicesItem :one
INSERT INTO services_items (section_id, position, title, description, image_url)
VALUES (?, ?, ?, ?, ?)
RETURNING id, section_id, position, title, description, image_url`

// CreateServicesItemParams holds the arguments of CreateServicesItem.
type CreateServicesItemParams struct {
	SectionID   int64
	Position    int64
	Title       string
	Description string
	ImageUrl    string
}

// CreateServicesItem appends a services item.
func (q *Queries) CreateServicesItem(ctx context.Context, arg CreateServicesItemParams) (ServicesItem, error) {
	row := q.db.QueryRowContext(ctx, createServicesItem,
		arg.SectionID, arg.Position, arg.Title, arg.Description, arg.ImageUrl)
	return scanServicesItem(row)
}

const updateServicesItem = `-- name: UpdateServicesItem :execrows
UPDATE services_items SET title = ?, description = ?, image_url = ?
WHERE id = ? AND section_id = ?`

// UpdateServicesItemParams holds the arguments of UpdateServicesItem.
type UpdateServicesItemParams struct {
	Title       string
	Description string
	ImageUrl    string
	ID          int64
	SectionID   int64
}

// UpdateServicesItem rewrites the content of a services item.
func (q *Queries) UpdateServicesItem(ctx context.Context, arg UpdateServicesItemParams) (int64, error) {
	return q.execRows(ctx, updateServicesItem,
		arg.Title, arg.Description, arg.ImageUrl, arg.ID, arg.SectionID)
}

// Portfolio

func scanPortfolioItem(row rowScanner) (PortfolioItem, error) {
	var i PortfolioItem
	err := row.Scan(&i.ID, &i.SectionID, &i.Position, &i.Title, &i.Subtitle, &i.Description, &i.ImageUrl)
	return i, err
}

const listPortfolioItems = `-- name: ListPortfolioItems :many
SELECT id, section_id, position, title, subtitle, description, image_url
FROM portfolio_items WHERE section_id = ? ORDER BY position, id`

// ListPortfolioItems returns the items of a portfolio section.
func (q *Queries) ListPortfolioItems(ctx context.Context, sectionID int64) ([]PortfolioItem, error) {
	return listRows(ctx, q, listPortfolioItems, scanPortfolioItem, sectionID)
}

const createPortfolioItem = `-- name: CreatePortfolioItem :one
INSERT INTO portfolio_items (section_id, position, title, subtitle, description, image_url)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, section_id, position, title, subtitle, description, image_url`

// CreatePortfolioItemParams holds the arguments of CreatePortfolioItem.
type CreatePortfolioItemParams struct {
	SectionID   int64
	Position    int64
	Title       string
	Subtitle    string
	Description string
	ImageUrl    string
}

// CreatePortfolioItem appends a portfolio item.
func (q *Queries) CreatePortfolioItem(ctx context.Context, arg CreatePortfolioItemParams) (PortfolioItem, error) {
	row := q.db.QueryRowContext(ctx, createPortfolioItem,
		arg.SectionID, arg.Position, arg.Title, arg.Subtitle, arg.Description, arg.ImageUrl)
	return scanPortfolioItem(row)
}

const updatePortfolioItem = `-- name: UpdatePortfolioItem :execrows
UPDATE portfolio_items SET title = ?, subtitle = ?, description = ?, image_url = ?
WHERE id = ? AND section_id = ?`

// UpdatePortfolioItemParams holds the arguments of UpdatePortfolioItem.
type UpdatePortfolioItemParams struct {
	Title       string
	Subtitle    string
	Description string
	ImageUrl    string
	ID          int64
	SectionID   int64
}

// UpdatePortfolioItem rewrites the content of a portfolio item.
func (q *Queries) UpdatePortfolioItem(ctx context.Context, arg UpdatePortfolioItemParams) (int64, error) {
	return q.execRows(ctx, updatePortfolioItem,
		arg.Title, arg.Subtitle, arg.Description, arg.ImageUrl, arg.ID, arg.SectionID)
}

// Team

func scanTeamMember(row rowScanner) (TeamMember, error) {
	var i TeamMember
	err := row.Scan(&i.ID, &i.SectionID, &i.Position, &i.Name, &i.Profession, &i.Description, &i.ImageUrl)
	return i, err
}

const listTeamMembers = `-- name: ListTeamMembers :many
SELECT id, section_id, position, name, profession, description, image_url
FROM team_members WHERE section_id = ? ORDER BY position, id`

// ListTeamMembers returns the members of a team section.
func (q *Queries) ListTeamMembers(ctx context.Context, sectionID int64) ([]TeamMember, error) {
	return listRows(ctx, q, listTeamMembers, scanTeamMember, sectionID)
}

const createTeamMember = `-- name: CreateTeamMember :one
INSERT INTO team_members (section_id, position, name, profession, description, image_url)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, section_id, position, name, profession, description, image_url`

// CreateTeamMemberParams holds the arguments of CreateTeamMember.
type CreateTeamMemberParams struct {
	SectionID   int64
	Position    int64
	Name        string
	Profession  string
	Description string
	ImageUrl    string
}

// CreateTeamMember appends a team member.
func (q *Queries) CreateTeamMember(ctx context.Context, arg CreateTeamMemberParams) (TeamMember, error) {
	row := q.db.QueryRowContext(ctx, createTeamMember,
		arg.SectionID, arg.Position, arg.Name, arg.Profession, arg.Description, arg.ImageUrl)
	return scanTeamMember(row)
}

const updateTeamMember = `-- name: UpdateTeamMember :execrows
UPDATE team_members SET name = ?, profession = ?, description = ?, image_url = ?
WHERE id = ? AND section_id = ?`

// UpdateTeamMemberParams holds the arguments of UpdateTeamMember.
type UpdateTeamMemberParams struct {
	Name        string
	Profession  string
	Description string
	ImageUrl    string
	ID          int64
	SectionID   int64
}

// UpdateTeamMember rewrites the content of a team member.
func (q *Queries) UpdateTeamMember(ctx context.Context, arg UpdateTeamMemberParams) (int64, error) {
	return q.execRows(ctx, updateTeamMember,
		arg.Name, arg.Profession, arg.Description, arg.ImageUrl, arg.ID, arg.SectionID)
}

// Testimonials

func scanTestimonial(row rowScanner) (Testimonial, error) {
	var i Testimonial
	err := row.Scan(&i.ID, &i.SectionID, &i.Position, &i.Username, &i.Stars, &i.Description, &i.ImageUrl)
	return i, err
}

const listTestimonials = `-- name: ListTestimonials :many
SELECT id, section_id, position, username, stars, description, image_url
FROM testimonials WHERE section_id = ? ORDER BY position, id`

// ListTestimonials returns the testimonials of a section.
func (q *Queries) ListTestimonials(ctx context.Context, sectionID int64) ([]Testimonial, error) {
	return listRows(ctx, q, listTestimonials, scanTestimonial, sectionID)
}

const createTestimonial = `-- name: CreateTestimonial :one
INSERT INTO testimonials (section_id, position, username, stars, description, image_url)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, section_id, position, username, stars, description, image_url`

// CreateTestimonialParams holds the arguments of CreateTestimonial.
type CreateTestimonialParams struct {
	SectionID   int64
	Position    int64
	Username    string
	Stars       int64
	Description string
	ImageUrl    string
}

// CreateTestimonial appends a testimonial.
func (q *Queries) CreateTestimonial(ctx context.Context, arg CreateTestimonialParams) (Testimonial, error) {
	row := q.db.QueryRowContext(ctx, createTestimonial,
		arg.SectionID, arg.Position, arg.Username, arg.Stars, arg.Description, arg.ImageUrl)
	return scanTestimonial(row)
}

const updateTestimonial = `-- name: UpdateTestimonial :execrows
UPDATE testimonials SET username = ?, stars = ?, description = ?, image_url = ?
WHERE id = ? AND section_id = ?`

// UpdateTestimonialParams holds the arguments of UpdateTestimonial.
type UpdateTestimonialParams struct {
	Username    string
	Stars       int64
	Description string
	ImageUrl    string
	ID          int64
	SectionID   int64
}

// UpdateTestimonial rewrites the content of a testimonial.
func (q *Queries) UpdateTestimonial(ctx context.Context, arg UpdateTestimonialParams) (int64, error) {
	return q.execRows(ctx, updateTestimonial,
		arg.Username, arg.Stars, arg.Description, arg.ImageUrl, arg.ID, arg.SectionID)
}

// FAQs

func scanFaqsItem(row rowScanner) (FaqsItem, error) {
	var i FaqsItem
	err := row.Scan(&i.ID, &i.SectionID, &i.Position, &i.Question, &i.Answer)
	return i, err
}

const listFaqsItems = `-- name: ListFaqsItems :many
SELECT id, section_id, position, question, answer
FROM faqs_items WHERE section_id = ? ORDER BY position, id`

// ListFaqsItems returns the questions of a FAQ section.
func (q *Queries) ListFaqsItems(ctx context.Context, sectionID int64) ([]FaqsItem, error) {
	return listRows(ctx, q, listFaqsItems, scanFaqsItem, sectionID)
}

const createFaqsItem = `-- name: CreateFaqsItem :one
INSERT INTO faqs_items (section_id, position, question, answer)
VALUES (?, ?, ?, ?)
RETURNING id, section_id, position, question, answer`

// CreateFaqsItemParams holds the arguments of CreateFaqsItem.
type CreateFaqsItemParams struct {
	SectionID int64
	Position  int64
	Question  string
	Answer    string
}

// CreateFaqsItem appends a FAQ entry.
func (q *Queries) CreateFaqsItem(ctx context.Context, arg CreateFaqsItemParams) (FaqsItem, error) {
	row := q.db.QueryRowContext(ctx, createFaqsItem, arg.SectionID, arg.Position, arg.Question, arg.Answer)
	return scanFaqsItem(row)
}

const updateFaqsItem = `-- name: UpdateFaqsItem :execrows
UPDATE faqs_items SET question = ?, answer = ? WHERE id = ? AND section_id = ?`

// UpdateFaqsItemParams holds the arguments of UpdateFaqsItem.
type UpdateFaqsItemParams struct {
	Question  string
	Answer    string
	ID        int64
	SectionID int64
}

// UpdateFaqsItem rewrites a FAQ entry.
func (q *Queries) UpdateFaqsItem(ctx context.Context, arg UpdateFaqsItemParams) (int64, error) {
	return q.execRows(ctx, updateFaqsItem, arg.Question, arg.Answer, arg.ID, arg.SectionID)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/store"
)

// ItemStore persists a list section and its items. Every item write is
// scoped to the section id so an id of another site never matches.
type ItemStore[T model.Item] interface {
	List(ctx context.Context, sectionID int64) ([]T, error)
	UpdateTitle(ctx context.Context, siteID, sectionID int64, title string) error
	Update(ctx context.Context, sectionID int64, item T) error
	Create(ctx context.Context, sectionID int64) (T, error)
	Delete(ctx context.Context, sectionID, id int64) error
	SetImage(ctx context.Context, sectionID, id int64, url string) error
}

// SQLItemStore is the database ItemStore of one section kind.
type SQLItemStore[T model.Item] struct {
	q       *store.Queries
	section store.SectionTable
	items   store.ItemTable
	list    func(ctx context.Context, q *store.Queries, sectionID int64) ([]T, error)
	create  func(ctx context.Context, q *store.Queries, sectionID, position int64) (T, error)
	update  func(ctx context.Context, q *store.Queries, sectionID int64, item T) (int64, error)
}

// List implements ItemStore.
func (s *SQLItemStore[T]) List(ctx context.Context, sectionID int64) ([]T, error) {
	return s.list(ctx, s.q, sectionID)
}

// UpdateTitle implements ItemStore.
func (s *SQLItemStore[T]) UpdateTitle(ctx context.Context, siteID, sectionID int64, title string) error {
	n, err := s.q.UpdateSectionTitle(ctx, s.section, store.UpdateSectionTitleParams{
		Title:     title,
		UpdatedAt: time.Now(),
		ID:        sectionID,
		SiteID:    siteID,
	})
	return affected(n, err, ErrSectionNotFound)
}

// Update implements ItemStore.
func (s *SQLItemStore[T]) Update(ctx context.Context, sectionID int64, item T) error {
	n, err := s.update(ctx, s.q, sectionID, item)
	return affected(n, err, ErrItemNotFound)
}

// Create appends an empty item at the end of the section.
func (s *SQLItemStore[T]) Create(ctx context.Context, sectionID int64) (T, error) {
	var zero T
	pos, err := s.q.NextItemPosition(ctx, s.items, sectionID)
	if err != nil {
		return zero, fmt.Errorf("next position: %w", err)
	}
	return s.create(ctx, s.q, sectionID, pos)
}

// Delete implements ItemStore.
func (s *SQLItemStore[T]) Delete(ctx context.Context, sectionID, id int64) error {
	n, err := s.q.DeleteItem(ctx, s.items, id, sectionID)
	return affected(n, err, ErrItemNotFound)
}

// SetImage patches only the image url of an item.
func (s *SQLItemStore[T]) SetImage(ctx context.Context, sectionID, id int64, url string) error {
	if !s.items.HasImage() {
		return ErrNoImages
	}
	n, err := s.q.SetItemImage(ctx, s.items, store.SetItemImageParams{
		ImageUrl:  url,
		ID:        id,
		SectionID: sectionID,
	})
	return affected(n, err, ErrItemNotFound)
}

func mapRows[R, T any](rows []R, err error, fn func(R) T) ([]T, error) {
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out, nil
}

func mapRow[R, T any](row R, err error, fn func(R) T) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return fn(row), nil
}

// NewServicesStore returns the store of the services section.
func NewServicesStore(q *store.Queries) *SQLItemStore[model.ServiceItem] {
	return &SQLItemStore[model.ServiceItem]{
		q:       q,
		section: store.ServicesSections,
		items:   store.ServicesItems,
		list: func(ctx context.Context, q *store.Queries, sectionID int64) ([]model.ServiceItem, error) {
			rows, err := q.ListServicesItems(ctx, sectionID)
			return mapRows(rows, err, serviceFromRow)
		},
		create: func(ctx context.Context, q *store.Queries, sectionID, position int64) (model.ServiceItem, error) {
			row, err := q.CreateServicesItem(ctx, store.CreateServicesItemParams{
				SectionID: sectionID,
				Position:  position,
			})
			return mapRow(row, err, serviceFromRow)
		},
		update: func(ctx context.Context, q *store.Queries, sectionID int64, it model.ServiceItem) (int64, error) {
			return q.UpdateServicesItem(ctx, store.UpdateServicesItemParams{
				Title:       it.Title,
				Description: it.Description,
				ImageUrl:    it.ImageURL,
				ID:          it.ID,
				SectionID:   sectionID,
			})
		},
	}
}

func serviceFromRow(r store.ServicesItem) model.ServiceItem {
	return model.ServiceItem{ID: r.ID, Title: r.Title, Description: r.Description, ImageURL: r.ImageUrl}
}

// NewPortfolioStore returns the store of the portfolio section.
func NewPortfolioStore(q *store.Queries) *SQLItemStore[model.PortfolioItem] {
	return &SQLItemStore[model.PortfolioItem]{
		q:       q,
		section: store.PortfolioSections,
		items:   store.PortfolioItems,
		list: func(ctx context.Context, q *store.Queries, sectionID int64) ([]model.PortfolioItem, error) {
			rows, err := q.ListPortfolioItems(ctx, sectionID)
			return mapRows(rows, err, portfolioFromRow)
		},
		create: func(ctx context.Context, q *store.Queries, sectionID, position int64) (model.PortfolioItem, error) {
			row, err := q.CreatePortfolioItem(ctx, store.CreatePortfolioItemParams{
				SectionID: sectionID,
				Position:  position,
			})
			return mapRow(row, err, portfolioFromRow)
		},
		update: func(ctx context.Context, q *store.Queries, sectionID int64, it model.PortfolioItem) (int64, error) {
			return q.UpdatePortfolioItem(ctx, store.UpdatePortfolioItemParams{
				Title:       it.Title,
				Subtitle:    it.Subtitle,
				Description: it.Description,
				ImageUrl:    it.ImageURL,
				ID:          it.ID,
				SectionID:   sectionID,
			})
		},
	}
}

func portfolioFromRow(r store.PortfolioItem) model.PortfolioItem {
	return model.PortfolioItem{
		ID:          r.ID,
		Title:       r.Title,
		Subtitle:    r.Subtitle,
		Description: r.Description,
		ImageURL:    r.ImageUrl,
	}
}

// NewTeamStore returns the store of the team section.
func NewTeamStore(q *store.Queries) *SQLItemStore[model.TeamMember] {
	return &SQLItemStore[model.TeamMember]{
		q:       q,
		section: store.Teams,
		items:   store.TeamMembers,
		list: func(ctx context.Context, q *store.Queries, sectionID int64) ([]model.TeamMember, error) {
			rows, err := q.ListTeamMembers(ctx, sectionID)
			return mapRows(rows, err, teamMemberFromRow)
		},
		create: func(ctx context.Context, q *store.Queries, sectionID, position int64) (model.TeamMember, error) {
			row, err := q.CreateTeamMember(ctx, store.CreateTeamMemberParams{
				SectionID: sectionID,
				Position:  position,
			})
			return mapRow(row, err, teamMemberFromRow)
		},
		update: func(ctx context.Context, q *store.Queries, sectionID int64, it model.TeamMember) (int64, error) {
			return q.UpdateTeamMember(ctx, store.UpdateTeamMemberParams{
				Name:        it.Name,
				Profession:  it.Profession,
				Description: it.Description,
				ImageUrl:    it.ImageURL,
				ID:          it.ID,
				SectionID:   sectionID,
			})
		},
	}
}

func teamMemberFromRow(r store.TeamMember) model.TeamMember {
	return model.TeamMember{
		ID:          r.ID,
		Name:        r.Name,
		Profession:  r.Profession,
		Description: r.Description,
		ImageURL:    r.ImageUrl,
	}
}

// NewTestimonialsStore returns the store of the testimonials section. New
// testimonials start with five stars.
func NewTestimonialsStore(q *store.Queries) *SQLItemStore[model.Testimonial] {
	return &SQLItemStore[model.Testimonial]{
		q:       q,
		section: store.TestimonialsSections,
		items:   store.Testimonials,
		list: func(ctx context.Context, q *store.Queries, sectionID int64) ([]model.Testimonial, error) {
			rows, err := q.ListTestimonials(ctx, sectionID)
			return mapRows(rows, err, testimonialFromRow)
		},
		create: func(ctx context.Context, q *store.Queries, sectionID, position int64) (model.Testimonial, error) {
			row, err := q.CreateTestimonial(ctx, store.CreateTestimonialParams{
				SectionID: sectionID,
				Position:  position,
				Stars:     5,
			})
			return mapRow(row, err, testimonialFromRow)
		},
		update: func(ctx context.Context, q *store.Queries, sectionID int64, it model.Testimonial) (int64, error) {
			return q.UpdateTestimonial(ctx, store.UpdateTestimonialParams{
				Username:    it.Username,
				Stars:       it.Stars,
				Description: it.Description,
				ImageUrl:    it.ImageURL,
				ID:          it.ID,
				SectionID:   sectionID,
			})
		},
	}
}

func testimonialFromRow(r store.Testimonial) model.Testimonial {
	return model.Testimonial{
		ID:          r.ID,
		Username:    r.Username,
		Stars:       r.Stars,
		Description: r.Description,
		ImageURL:    r.ImageUrl,
	}
}

// NewFaqsStore returns the store of the FAQ section.
func NewFaqsStore(q *store.Queries) *SQLItemStore[model.FaqItem] {
	return &SQLItemStore[model.FaqItem]{
		q:       q,
		section: store.FaqsSections,
		items:   store.FaqsItems,
		list: func(ctx context.Context, q *store.Queries, sectionID int64) ([]model.FaqItem, error) {
			rows, err := q.ListFaqsItems(ctx, sectionID)
			return mapRows(rows, err, faqFromRow)
		},
		create: func(ctx context.Context, q *store.Queries, sectionID, position int64) (model.FaqItem, error) {
			row, err := q.CreateFaqsItem(ctx, store.CreateFaqsItemParams{
				SectionID: sectionID,
				Position:  position,
			})
			return mapRow(row, err, faqFromRow)
		},
		update: func(ctx context.Context, q *store.Queries, sectionID int64, it model.FaqItem) (int64, error) {
			return q.UpdateFaqsItem(ctx, store.UpdateFaqsItemParams{
				Question:  it.Question,
				Answer:    it.Answer,
				ID:        it.ID,
				SectionID: sectionID,
			})
		},
	}
}

func faqFromRow(r store.FaqsItem) model.FaqItem {
	return model.FaqItem{ID: r.ID, Question: r.Question, Answer: r.Answer}
}

// Stores bundles the stores of every list section.
type Stores struct {
	Services     ItemStore[model.ServiceItem]
	Portfolio    ItemStore[model.PortfolioItem]
	Team         ItemStore[model.TeamMember]
	Testimonials ItemStore[model.Testimonial]
	Faqs         ItemStore[model.FaqItem]
}

// NewStores returns the database stores of every list section.
func NewStores(q *store.Queries) Stores {
	return Stores{
		Services:     NewServicesStore(q),
		Portfolio:    NewPortfolioStore(q),
		Team:         NewTeamStore(q),
		Testimonials: NewTestimonialsStore(q),
		Faqs:         NewFaqsStore(q),
	}
}

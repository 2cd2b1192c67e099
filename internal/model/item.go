// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Item is a child row of a list section.
type Item interface {
	ServiceItem | PortfolioItem | TeamMember | Testimonial | FaqItem
	GetID() int64
}

// ServiceItem is one entry of the services section.
type ServiceItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description" validate:"max=5000"`
	ImageURL    string `json:"image_url" validate:"omitempty,max=2048"`
}

// GetID returns the row id.
func (i ServiceItem) GetID() int64 { return i.ID }

// PortfolioItem is one entry of the portfolio section.
type PortfolioItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title" validate:"max=200"`
	Subtitle    string `json:"subtitle" validate:"max=200"`
	Description string `json:"description" validate:"max=5000"`
	ImageURL    string `json:"image_url" validate:"omitempty,max=2048"`
}

// GetID returns the row id.
func (i PortfolioItem) GetID() int64 { return i.ID }

// TeamMember is one person of the team section.
type TeamMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"max=200"`
	Profession  string `json:"profession" validate:"max=200"`
	Description string `json:"description" validate:"max=5000"`
	ImageURL    string `json:"image_url" validate:"omitempty,max=2048"`
}

// GetID returns the row id.
func (i TeamMember) GetID() int64 { return i.ID }

// Testimonial is one client quote.
type Testimonial struct {
	ID          int64  `json:"id"`
	Username    string `json:"username" validate:"max=200"`
	Stars       int64  `json:"stars" validate:"min=0,max=5"`
	Description string `json:"description" validate:"max=5000"`
	ImageURL    string `json:"image_url" validate:"omitempty,max=2048"`
}

// GetID returns the row id.
func (i Testimonial) GetID() int64 { return i.ID }

// FaqItem is one question and answer pair.
type FaqItem struct {
	ID       int64  `json:"id"`
	Question string `json:"question" validate:"max=500"`
	Answer   string `json:"answer" validate:"max=10000"`
}

// GetID returns the row id.
func (i FaqItem) GetID() int64 { return i.ID }

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// User is a site owner account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Language     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  sql.NullTime
}

// Site is the generated website owned by a single user.
type Site struct {
	ID        int64
	OwnerID   int64
	Name      string
	Url       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Event is an event log row.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	IpAddress string
	Metadata  string
	CreatedAt time.Time
}

// HeroSection is the single hero block of a site.
type HeroSection struct {
	ID                 int64
	SiteID             int64
	Title              string
	Subtitle           string
	BackgroundImageUrl string
	UpdatedAt          time.Time
}

// Section is a row of any of the title-only section tables
// (services_sections, portfolio_sections, teams, testimonials_sections,
// faqs_sections).
type Section struct {
	ID        int64
	SiteID    int64
	Title     string
	UpdatedAt time.Time
}

// ServicesItem is a row of services_items.
type ServicesItem struct {
	ID          int64
	SectionID   int64
	Position    int64
	Title       string
	Description string
	ImageUrl    string
}

// PortfolioItem is a row of portfolio_items.
type PortfolioItem struct {
	ID          int64
	SectionID   int64
	Position    int64
	Title       string
	Subtitle    string
	Description string
	ImageUrl    string
}

// TeamMember is a row of team_members.
type TeamMember struct {
	ID          int64
	SectionID   int64
	Position    int64
	Name        string
	Profession  string
	Description string
	ImageUrl    string
}

// Testimonial is a row of testimonials.
type Testimonial struct {
	ID          int64
	SectionID   int64
	Position    int64
	Username    string
	Stars       int64
	Description string
	ImageUrl    string
}

// FaqsItem is a row of faqs_items.
type FaqsItem struct {
	ID        int64
	SectionID int64
	Position  int64
	Question  string
	Answer    string
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Site is the composite snapshot of a site: the site record plus every
// section and its items. Sections that do not exist are nil.
type Site struct {
	ID           int64                   `json:"id"`
	OwnerID      int64                   `json:"owner_id"`
	Name         string                  `json:"name"`
	URL          string                  `json:"url"`
	Hero         *Hero                   `json:"hero"`
	Services     *Section[ServiceItem]   `json:"services"`
	Portfolio    *Section[PortfolioItem] `json:"portfolio"`
	Team         *Section[TeamMember]    `json:"team"`
	Testimonials *Section[Testimonial]   `json:"testimonials"`
	Faqs         *Section[FaqItem]       `json:"faqs"`
}

// Has reports whether the section of kind k exists for the site.
func (s *Site) Has(k Kind) bool {
	if s == nil {
		return false
	}
	switch k {
	case KindHero:
		return s.Hero != nil
	case KindServices:
		return s.Services != nil
	case KindPortfolio:
		return s.Portfolio != nil
	case KindTeam:
		return s.Team != nil
	case KindTestimonials:
		return s.Testimonials != nil
	case KindFaqs:
		return s.Faqs != nil
	}
	return false
}

// SectionID returns the row id of the section of kind k, or 0.
func (s *Site) SectionID(k Kind) int64 {
	if !s.Has(k) {
		return 0
	}
	switch k {
	case KindHero:
		return s.Hero.ID
	case KindServices:
		return s.Services.ID
	case KindPortfolio:
		return s.Portfolio.ID
	case KindTeam:
		return s.Team.ID
	case KindTestimonials:
		return s.Testimonials.ID
	default:
		return s.Faqs.ID
	}
}

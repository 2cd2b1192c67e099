// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "fmt"

// Kind identifies a content section of a site.
type Kind string

// Section kinds, in menu order.
const (
	KindHero         Kind = "hero"
	KindServices     Kind = "services"
	KindPortfolio    Kind = "portfolio"
	KindTeam         Kind = "team"
	KindTestimonials Kind = "testimonials"
	KindFaqs         Kind = "faqs"
)

// Kinds lists every section kind in display order.
var Kinds = []Kind{KindHero, KindServices, KindPortfolio, KindTeam, KindTestimonials, KindFaqs}

// ParseKind validates a kind taken from a URL.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// IsList reports whether k has child items.
func (k Kind) IsList() bool {
	return k != KindHero && k != ""
}

// HasImages reports whether the items of k carry an image.
func (k Kind) HasImages() bool {
	return k.IsList() && k != KindFaqs
}

// Section is the editor state of a list section: its title and items.
type Section[T Item] struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Items []T    `json:"items"`
}

// Hero is the single hero block of a site.
type Hero struct {
	ID                 int64  `json:"id"`
	Title              string `json:"title"`
	Subtitle           string `json:"subtitle"`
	BackgroundImageURL string `json:"background_image_url"`
}

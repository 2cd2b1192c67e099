// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/olegiv/sitedeck/internal/model"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)
	htmlPolicy = bluemonday.UGCPolicy()
)

// PublicSection is a section as shown on the generated site.
type PublicSection[T any] struct {
	Title string `json:"title"`
	Items []T    `json:"items"`
}

// PublicService is a service with its description rendered.
type PublicService struct {
	model.ServiceItem
	DescriptionHTML string `json:"description_html"`
}

// PublicPortfolioItem is a portfolio item with its description rendered.
type PublicPortfolioItem struct {
	model.PortfolioItem
	DescriptionHTML string `json:"description_html"`
}

// PublicTeamMember is a team member with the description rendered.
type PublicTeamMember struct {
	model.TeamMember
	DescriptionHTML string `json:"description_html"`
}

// PublicTestimonial is a testimonial with its text rendered.
type PublicTestimonial struct {
	model.Testimonial
	DescriptionHTML string `json:"description_html"`
}

// PublicFaq is a FAQ entry with the answer rendered.
type PublicFaq struct {
	model.FaqItem
	AnswerHTML string `json:"answer_html"`
}

// PublicSite is the content of a site for the generated front-end.
type PublicSite struct {
	Name         string                              `json:"name"`
	URL          string                              `json:"url"`
	Hero         *model.Hero                         `json:"hero"`
	Services     *PublicSection[PublicService]       `json:"services"`
	Portfolio    *PublicSection[PublicPortfolioItem] `json:"portfolio"`
	Team         *PublicSection[PublicTeamMember]    `json:"team"`
	Testimonials *PublicSection[PublicTestimonial]   `json:"testimonials"`
	Faqs         *PublicSection[PublicFaq]           `json:"faqs"`
}

// RenderMarkdown converts src to sanitized HTML.
func RenderMarkdown(src string) string {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return htmlPolicy.Sanitize(src)
	}
	return string(htmlPolicy.SanitizeBytes(buf.Bytes()))
}

func renderSection[T model.Item, P any](sec *model.Section[T], fn func(T) P) *PublicSection[P] {
	if sec == nil {
		return nil
	}
	out := &PublicSection[P]{Title: sec.Title, Items: make([]P, 0, len(sec.Items))}
	for _, it := range sec.Items {
		out.Items = append(out.Items, fn(it))
	}
	return out
}

// RenderPublic converts a snapshot into its public form, rendering
// descriptions and answers from Markdown.
func RenderPublic(site *model.Site) *PublicSite {
	return &PublicSite{
		Name: site.Name,
		URL:  site.URL,
		Hero: site.Hero,
		Services: renderSection(site.Services, func(it model.ServiceItem) PublicService {
			return PublicService{ServiceItem: it, DescriptionHTML: RenderMarkdown(it.Description)}
		}),
		Portfolio: renderSection(site.Portfolio, func(it model.PortfolioItem) PublicPortfolioItem {
			return PublicPortfolioItem{PortfolioItem: it, DescriptionHTML: RenderMarkdown(it.Description)}
		}),
		Team: renderSection(site.Team, func(it model.TeamMember) PublicTeamMember {
			return PublicTeamMember{TeamMember: it, DescriptionHTML: RenderMarkdown(it.Description)}
		}),
		Testimonials: renderSection(site.Testimonials, func(it model.Testimonial) PublicTestimonial {
			return PublicTestimonial{Testimonial: it, DescriptionHTML: RenderMarkdown(it.Description)}
		}),
		Faqs: renderSection(site.Faqs, func(it model.FaqItem) PublicFaq {
			return PublicFaq{FaqItem: it, AnswerHTML: RenderMarkdown(it.Answer)}
		}),
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package webhook notifies the generated site front-end when the content of
// a site changes, so it can rebuild or revalidate its pages.
package webhook

import (
	"time"

	"github.com/google/uuid"
)

// EventSiteUpdated is sent after content of a site was written.
const EventSiteUpdated = "site.updated"

// Event is the JSON body of a webhook delivery.
type Event struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
	Data      SiteEventData `json:"data"`
}

// SiteEventData identifies the site and the sections that changed.
type SiteEventData struct {
	SiteID   int64    `json:"site_id"`
	SiteURL  string   `json:"site_url"`
	Sections []string `json:"sections"`
}

// NewEvent creates an event with a fresh delivery id.
func NewEvent(eventType string, data SiteEventData) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// addSection records section once, keeping first-seen order.
func (d *SiteEventData) addSection(section string) {
	for _, s := range d.Sections {
		if s == section {
			return
		}
	}
	d.Sections = append(d.Sections, section)
}

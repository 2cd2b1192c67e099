// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"context"
	"sync"
	"time"

	"github.com/olegiv/sitedeck/internal/model"
)

// DebounceConfig holds debouncer configuration.
type DebounceConfig struct {
	// Interval is the quiet time after the last change before the event
	// is sent.
	Interval time.Duration
	// MaxWait bounds the delay of an event while changes keep coming.
	MaxWait time.Duration
}

// DefaultDebounceConfig returns default debounce configuration.
func DefaultDebounceConfig() DebounceConfig {
	return DebounceConfig{
		Interval: 2 * time.Second,
		MaxWait:  10 * time.Second,
	}
}

// Sender queues events for delivery. *Dispatcher implements it.
type Sender interface {
	Dispatch(ctx context.Context, event *Event) error
}

type pendingEvent struct {
	event     *Event
	timer     *time.Timer
	firstSeen time.Time
}

// Debouncer coalesces the changes of one site into a single event: an
// owner saving several sections in a row triggers one rebuild.
type Debouncer struct {
	sender  Sender
	config  DebounceConfig
	pending map[int64]*pendingEvent // by site id
	mu      sync.Mutex
}

// NewDebouncer creates a new event debouncer.
func NewDebouncer(sender Sender, config DebounceConfig) *Debouncer {
	return &Debouncer{
		sender:  sender,
		config:  config,
		pending: make(map[int64]*pendingEvent),
	}
}

// SiteChanged records a change of section kind on site.
func (d *Debouncer) SiteChanged(site *model.Site, kind model.Kind) {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if pe, ok := d.pending[site.ID]; ok {
		pe.event.Data.addSection(string(kind))
		if now.Sub(pe.firstSeen) >= d.config.MaxWait {
			d.sendLocked(site.ID)
			return
		}
		pe.timer.Reset(d.config.Interval)
		return
	}

	pe := &pendingEvent{
		event: NewEvent(EventSiteUpdated, SiteEventData{
			SiteID:   site.ID,
			SiteURL:  site.URL,
			Sections: []string{string(kind)},
		}),
		firstSeen: now,
	}
	pe.timer = time.AfterFunc(d.config.Interval, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.pending[site.ID] == pe {
			d.sendLocked(site.ID)
		}
	})
	d.pending[site.ID] = pe
}

// sendLocked hands the pending event of siteID to the sender. Caller holds mu.
func (d *Debouncer) sendLocked(siteID int64) {
	pe, ok := d.pending[siteID]
	if !ok {
		return
	}
	pe.timer.Stop()
	delete(d.pending, siteID)
	// Dispatch never blocks; a full queue is logged by the sender.
	_ = d.sender.Dispatch(context.Background(), pe.event)
}

// Flush immediately sends all pending events.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id := range d.pending {
		d.sendLocked(id)
	}
}

// PendingCount returns the number of pending events.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

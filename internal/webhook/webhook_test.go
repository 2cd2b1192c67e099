// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/sitedeck/internal/model"
)

func TestSignature(t *testing.T) {
	payload := []byte(`{"type":"site.updated"}`)
	sig := GenerateSignature(payload, "secret")

	assert.Len(t, sig, 64)
	assert.Equal(t, sig, GenerateSignature(payload, "secret"))
	assert.True(t, VerifySignature(payload, sig, "secret"))
	assert.False(t, VerifySignature(payload, sig, "other"))
	assert.False(t, VerifySignature([]byte(`{}`), sig, "secret"))
}

type received struct {
	header http.Header
	body   []byte
}

// hookServer answers with statuses in order, repeating the last one.
func hookServer(t *testing.T, statuses ...int) (*httptest.Server, func() []received) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []received
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		n := len(reqs)
		reqs = append(reqs, received{header: r.Header.Clone(), body: body})
		mu.Unlock()
		if n >= len(statuses) {
			n = len(statuses) - 1
		}
		w.WriteHeader(statuses[n])
	}))
	t.Cleanup(srv.Close)
	return srv, func() []received {
		mu.Lock()
		defer mu.Unlock()
		return append([]received(nil), reqs...)
	}
}

func testDispatcher(url string) *Dispatcher {
	cfg := DefaultConfig(url, "hook-secret")
	cfg.Workers = 1
	cfg.MaxAttempts = 3
	cfg.InitialBackoff = 5 * time.Millisecond
	cfg.MaxBackoff = 20 * time.Millisecond
	return NewDispatcher(cfg, nil)
}

func siteEvent() *Event {
	return NewEvent(EventSiteUpdated, SiteEventData{SiteID: 7, SiteURL: "acme", Sections: []string{"hero"}})
}

func TestDispatcher_DeliversSignedEvent(t *testing.T) {
	srv, got := hookServer(t, http.StatusNoContent)
	d := testDispatcher(srv.URL)
	d.Start(context.Background())

	ev := siteEvent()
	require.NoError(t, d.Dispatch(context.Background(), ev))
	d.Stop(context.Background())

	reqs := got()
	require.Len(t, reqs, 1)
	h := reqs[0].header
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Equal(t, UserAgent, h.Get("User-Agent"))
	assert.Equal(t, EventSiteUpdated, h.Get(HeaderEvent))
	assert.Equal(t, ev.ID, h.Get(HeaderDelivery))
	assert.Equal(t, "1", h.Get(HeaderAttempt))

	sig := strings.TrimPrefix(h.Get(HeaderSignature), "sha256=")
	assert.True(t, VerifySignature(reqs[0].body, sig, "hook-secret"))

	var body Event
	require.NoError(t, json.Unmarshal(reqs[0].body, &body))
	assert.Equal(t, "acme", body.Data.SiteURL)
	assert.Equal(t, []string{"hero"}, body.Data.Sections)
}

func TestDispatcher_RetriesServerErrors(t *testing.T) {
	srv, got := hookServer(t, http.StatusBadGateway, http.StatusTooManyRequests, http.StatusOK)
	d := testDispatcher(srv.URL)
	d.Start(context.Background())

	require.NoError(t, d.Dispatch(context.Background(), siteEvent()))
	d.Stop(context.Background())

	reqs := got()
	require.Len(t, reqs, 3)
	assert.Equal(t, "3", reqs[2].header.Get(HeaderAttempt))
	assert.Equal(t, reqs[0].header.Get(HeaderDelivery), reqs[2].header.Get(HeaderDelivery))
}

func TestDispatcher_GivesUp(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		attempts int
	}{
		{"client error is not retried", http.StatusBadRequest, 1},
		{"server error stops at max attempts", http.StatusInternalServerError, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, got := hookServer(t, tt.status)
			d := testDispatcher(srv.URL)
			d.Start(context.Background())

			require.NoError(t, d.Dispatch(context.Background(), siteEvent()))
			d.Stop(context.Background())

			assert.Len(t, got(), tt.attempts)
		})
	}
}

func TestDispatcher_NotRunningDropsEvents(t *testing.T) {
	srv, got := hookServer(t, http.StatusOK)
	d := testDispatcher(srv.URL)

	assert.NoError(t, d.Dispatch(context.Background(), siteEvent()))

	d.Start(context.Background())
	d.Stop(context.Background())
	assert.NoError(t, d.Dispatch(context.Background(), siteEvent()))
	assert.Empty(t, got())
}

func TestDispatcher_QueueFull(t *testing.T) {
	cfg := DefaultConfig("http://127.0.0.1:1", "s")
	cfg.QueueSize = 1
	d := NewDispatcher(cfg, nil)
	d.running = true // no workers consume the queue

	require.NoError(t, d.Dispatch(context.Background(), siteEvent()))
	assert.ErrorIs(t, d.Dispatch(context.Background(), siteEvent()), ErrQueueFull)
}

type fakeSender struct {
	mu     sync.Mutex
	events []*Event
	calls  atomic.Int32
}

func (f *fakeSender) Dispatch(_ context.Context, e *Event) error {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeSender) sent() []*Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Event(nil), f.events...)
}

func TestDebouncer_CoalescesPerSite(t *testing.T) {
	sender := &fakeSender{}
	d := NewDebouncer(sender, DebounceConfig{Interval: 20 * time.Millisecond, MaxWait: time.Minute})
	acme := &model.Site{ID: 1, URL: "acme"}
	other := &model.Site{ID: 2, URL: "other"}

	d.SiteChanged(acme, model.KindServices)
	d.SiteChanged(acme, model.KindFaqs)
	d.SiteChanged(acme, model.KindServices)
	d.SiteChanged(other, model.KindHero)
	assert.Equal(t, 2, d.PendingCount())

	require.Eventually(t, func() bool { return sender.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, d.PendingCount())

	bySite := map[string][]string{}
	for _, e := range sender.sent() {
		assert.Equal(t, EventSiteUpdated, e.Type)
		bySite[e.Data.SiteURL] = e.Data.Sections
	}
	assert.Equal(t, []string{"services", "faqs"}, bySite["acme"])
	assert.Equal(t, []string{"hero"}, bySite["other"])
}

func TestDebouncer_MaxWaitSendsImmediately(t *testing.T) {
	sender := &fakeSender{}
	d := NewDebouncer(sender, DebounceConfig{Interval: time.Hour, MaxWait: 0})
	site := &model.Site{ID: 1, URL: "acme"}

	d.SiteChanged(site, model.KindTeam)
	assert.Empty(t, sender.sent())

	d.SiteChanged(site, model.KindPortfolio)
	sent := sender.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"team", "portfolio"}, sent[0].Data.Sections)
	assert.Equal(t, 0, d.PendingCount())
}

func TestDebouncer_Flush(t *testing.T) {
	sender := &fakeSender{}
	d := NewDebouncer(sender, DefaultDebounceConfig())

	d.SiteChanged(&model.Site{ID: 1, URL: "a"}, model.KindHero)
	d.SiteChanged(&model.Site{ID: 2, URL: "b"}, model.KindHero)
	d.Flush()

	assert.Len(t, sender.sent(), 2)
	assert.Equal(t, 0, d.PendingCount())
}

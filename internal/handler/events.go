// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/olegiv/sitedeck/internal/middleware"
	"github.com/olegiv/sitedeck/internal/service"
)

// EventsHandler lists the event log of the owner.
type EventsHandler struct {
	events *service.EventService
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(events *service.EventService) *EventsHandler {
	return &EventsHandler{events: events}
}

// List handles GET /api/events?limit=N.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventList
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "invalid_limit", "request.invalid_body")
			return
		}
		limit = min(n, maxEventList)
	}

	events, err := h.events.ListForUser(r.Context(), middleware.GetUserID(r), limit)
	if err != nil {
		writeInternalError(w, r, "failed to list events", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

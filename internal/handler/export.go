// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/sitedeck/internal/middleware"
	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/service"
	"github.com/olegiv/sitedeck/internal/transfer"
	"github.com/olegiv/sitedeck/internal/util"
)

// ExportHandler streams site archives.
type ExportHandler struct {
	exporter *transfer.Exporter
	events   *service.EventService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exporter *transfer.Exporter, events *service.EventService) *ExportHandler {
	return &ExportHandler{exporter: exporter, events: events}
}

// Export handles GET /api/site/export: a zip with site.json and the
// site's images.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	site := middleware.GetSite(r)
	filename := fmt.Sprintf("%s-%s.zip", site.URL, time.Now().UTC().Format("20060102-150405"))

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	// Headers are sent; a failure can only cut the archive short.
	if err := h.exporter.Export(r.Context(), site, w); err != nil {
		slog.ErrorContext(r.Context(), "site export failed", "site", site.URL, "error", err)
		return
	}

	if h.events != nil {
		userID := middleware.GetUserID(r)
		_ = h.events.LogInfo(r.Context(), model.EventCategorySection, "Site exported", &userID, util.ClientIP(r),
			map[string]any{"site": site.URL})
	}
}

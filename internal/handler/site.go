// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/sitedeck/internal/middleware"
	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/service"
	"github.com/olegiv/sitedeck/internal/util"
)

// SiteHandler serves the site snapshot, the navigation and the public
// content of sites.
type SiteHandler struct {
	sites *service.SiteService
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(sites *service.SiteService) *SiteHandler {
	return &SiteHandler{sites: sites}
}

// Site handles GET /api/site. The snapshot is loaded by middleware.LoadSite.
func (h *SiteHandler) Site(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.GetSite(r))
}

// Navigation handles GET /api/navigation. Owners without a site get the
// overview entry only.
func (h *SiteHandler) Navigation(w http.ResponseWriter, r *http.Request) {
	var site *model.Site
	s, err := h.sites.ForOwner(r.Context(), middleware.GetUserID(r))
	switch {
	case err == nil:
		site = s
	case !errors.Is(err, service.ErrSiteNotFound):
		writeInternalError(w, r, "failed to load site", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": service.Navigation(site, middleware.GetLanguage(r)),
	})
}

// Public handles GET /public/sites/{url}, the rendered content of a site
// for the generated front-end.
func (h *SiteHandler) Public(w http.ResponseWriter, r *http.Request) {
	url := chi.URLParam(r, paramURL)
	if !util.IsValidSlug(url) {
		writeError(w, r, http.StatusNotFound, "site_not_found", "request.not_found")
		return
	}

	site, err := h.sites.Public(r.Context(), url)
	if errors.Is(err, service.ErrSiteNotFound) {
		writeError(w, r, http.StatusNotFound, "site_not_found", "request.not_found")
		return
	}
	if err != nil {
		writeInternalError(w, r, "failed to load public site", err)
		return
	}
	writeJSON(w, http.StatusOK, site)
}

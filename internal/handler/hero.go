// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"mime"
	"net/http"

	"github.com/olegiv/sitedeck/internal/middleware"
	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/service"
)

type heroRequest struct {
	Title    string `json:"title" validate:"max=200"`
	Subtitle string `json:"subtitle" validate:"max=500"`
}

// GetHero handles GET /api/sections/hero.
func (h *SectionsHandler) GetHero(w http.ResponseWriter, r *http.Request) {
	site := middleware.GetSite(r)
	if !site.Has(model.KindHero) {
		writeError(w, r, http.StatusNotFound, "section_not_found", "section.not_found")
		return
	}
	writeJSON(w, http.StatusOK, site.Hero)
}

// UpdateHero handles PUT /api/sections/hero. The body is either JSON with
// title and subtitle, or a multipart form with the same fields and an
// optional background image in "file".
func (h *SectionsHandler) UpdateHero(w http.ResponseWriter, r *http.Request) {
	site := middleware.GetSite(r)
	if !site.Has(model.KindHero) {
		writeError(w, r, http.StatusNotFound, "section_not_found", "section.not_found")
		return
	}

	var (
		req  heroRequest
		file *uploadedFile
	)
	if isMultipart(r) {
		if !parseUploadForm(w, r) {
			return
		}
		req.Title = r.FormValue("title")
		req.Subtitle = r.FormValue("subtitle")
		f, ok := formFile(w, r)
		if !ok {
			return
		}
		if f != nil {
			defer func() { _ = f.Close() }()
			file = f
		}
		if !validateRequest(w, r, &req) {
			return
		}
	} else if !requireJSON(w, r, &req) {
		return
	}

	var upload *service.File
	meta := map[string]any{}
	if file != nil {
		upload = &file.File
		meta["filename"] = file.Name
	}

	form := service.NewHeroForm(h.hero, h.uploader, site.ID, site.URL, *site.Hero, middleware.GetLanguage(r))
	res := form.Submit(r.Context(), req.Title, req.Subtitle, upload)

	msg := "Hero updated"
	if !res.Success {
		msg = "Hero update failed"
	}
	h.after(r, site, model.KindHero, msg, res, meta)
	writeJSON(w, resultStatus(res.Err), SectionResponse[model.Hero]{Result: res, Section: form.State()})
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/sitedeck/internal/i18n"
	"github.com/olegiv/sitedeck/internal/middleware"
	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/service"
	"github.com/olegiv/sitedeck/internal/util"
)

// Invalidator drops the cached snapshots of a site after a write.
type Invalidator interface {
	Invalidate(ctx context.Context, site *model.Site)
}

// ContentNotifier is told about every write that changed site content.
type ContentNotifier interface {
	SiteChanged(site *model.Site, kind model.Kind)
}

// SectionsHandler serves the section editors. Every route runs after
// middleware.LoadSite.
type SectionsHandler struct {
	editors  map[model.Kind]sectionEditor
	hero     service.HeroStore
	uploader service.ImageUploader
	cache    Invalidator
	events   *service.EventService
	notifier ContentNotifier
}

// NewSectionsHandler creates a new SectionsHandler writing through stores
// and hero.
func NewSectionsHandler(stores service.Stores, hero service.HeroStore, uploader service.ImageUploader, cache Invalidator, events *service.EventService) *SectionsHandler {
	h := &SectionsHandler{
		hero:     hero,
		uploader: uploader,
		cache:    cache,
		events:   events,
	}
	h.editors = map[model.Kind]sectionEditor{
		model.KindServices: &listEditor[model.ServiceItem]{
			h: h, kind: model.KindServices, store: stores.Services,
			pick: func(s *model.Site) *model.Section[model.ServiceItem] { return s.Services },
		},
		model.KindPortfolio: &listEditor[model.PortfolioItem]{
			h: h, kind: model.KindPortfolio, store: stores.Portfolio,
			pick: func(s *model.Site) *model.Section[model.PortfolioItem] { return s.Portfolio },
		},
		model.KindTeam: &listEditor[model.TeamMember]{
			h: h, kind: model.KindTeam, store: stores.Team,
			pick: func(s *model.Site) *model.Section[model.TeamMember] { return s.Team },
		},
		model.KindTestimonials: &listEditor[model.Testimonial]{
			h: h, kind: model.KindTestimonials, store: stores.Testimonials,
			pick: func(s *model.Site) *model.Section[model.Testimonial] { return s.Testimonials },
		},
		model.KindFaqs: &listEditor[model.FaqItem]{
			h: h, kind: model.KindFaqs, store: stores.Faqs,
			pick: func(s *model.Site) *model.Section[model.FaqItem] { return s.Faqs },
		},
	}
	return h
}

// SetNotifier registers n to be told about content changes.
func (h *SectionsHandler) SetNotifier(n ContentNotifier) {
	h.notifier = n
}

// sectionEditor is the kind-independent face of a list section editor.
type sectionEditor interface {
	get(w http.ResponseWriter, r *http.Request, site *model.Site)
	submit(w http.ResponseWriter, r *http.Request, site *model.Site)
	add(w http.ResponseWriter, r *http.Request, site *model.Site)
	remove(w http.ResponseWriter, r *http.Request, site *model.Site, id int64)
	image(w http.ResponseWriter, r *http.Request, site *model.Site, id int64)
}

// Get handles GET /api/sections/{kind}.
func (h *SectionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if ed, site, ok := h.editor(w, r); ok {
		ed.get(w, r, site)
	}
}

// Update handles PUT /api/sections/{kind}.
func (h *SectionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if ed, site, ok := h.editor(w, r); ok {
		ed.submit(w, r, site)
	}
}

// AddItem handles POST /api/sections/{kind}/items.
func (h *SectionsHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if ed, site, ok := h.editor(w, r); ok {
		ed.add(w, r, site)
	}
}

// DeleteItem handles DELETE /api/sections/{kind}/items/{id}.
func (h *SectionsHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ed, site, ok := h.editor(w, r)
	if !ok {
		return
	}
	if id, ok := parseIDParam(w, r, paramID); ok {
		ed.remove(w, r, site, id)
	}
}

// UploadImage handles POST /api/sections/{kind}/items/{id}/image with a
// multipart "file" field.
func (h *SectionsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ed, site, ok := h.editor(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, paramID)
	if !ok {
		return
	}
	ed.image(w, r, site, id)
}

// editor resolves the {kind} parameter. Unknown kinds, the hero (served by
// its own routes) and sections the site lacks are 404s.
func (h *SectionsHandler) editor(w http.ResponseWriter, r *http.Request) (sectionEditor, *model.Site, bool) {
	kind, err := model.ParseKind(chi.URLParam(r, paramKind))
	ed, found := h.editors[kind]
	site := middleware.GetSite(r)
	if err != nil || !found || !site.Has(kind) {
		writeError(w, r, http.StatusNotFound, "section_not_found", "section.not_found")
		return nil, nil, false
	}
	return ed, site, true
}

// after runs the bookkeeping of a write attempt: cache invalidation, the
// change notification and the event log entry. A failed submit may still
// have committed its first writes, so failures invalidate and notify too.
func (h *SectionsHandler) after(r *http.Request, site *model.Site, kind model.Kind, message string, res service.Result, meta map[string]any) {
	h.cache.Invalidate(r.Context(), site)
	if h.notifier != nil {
		h.notifier.SiteChanged(site, kind)
	}
	if h.events == nil {
		return
	}

	if meta == nil {
		meta = map[string]any{}
	}
	meta["section"] = string(kind)
	meta["site"] = site.URL
	level := model.EventLevelInfo
	if !res.Success {
		level = model.EventLevelWarning
		meta["error"] = res.Message
		if res.FailedItemID != 0 {
			meta["failed_item_id"] = res.FailedItemID
		}
	}
	userID := middleware.GetUserID(r)
	_ = h.events.LogSectionEvent(r.Context(), level, message, userID, util.ClientIP(r), meta)
}

// SectionResponse is the body of every section write: the outcome and the
// editor state after it.
type SectionResponse[S any] struct {
	service.Result
	Section S `json:"section"`
}

// ItemResponse is the body of an item insert.
type ItemResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Item    T      `json:"item"`
}

type sectionRequest[T model.Item] struct {
	Title string `json:"title"`
	Items []T    `json:"items"`
}

// listEditor adapts service.SectionForm to HTTP for item type T.
type listEditor[T model.Item] struct {
	h     *SectionsHandler
	kind  model.Kind
	store service.ItemStore[T]
	pick  func(*model.Site) *model.Section[T]
}

func (e *listEditor[T]) form(r *http.Request, site *model.Site) *service.SectionForm[T] {
	return service.NewSectionForm(e.kind, e.store, site.ID, *e.pick(site), middleware.GetLanguage(r))
}

func (e *listEditor[T]) get(w http.ResponseWriter, r *http.Request, site *model.Site) {
	writeJSON(w, http.StatusOK, e.form(r, site).State())
}

func (e *listEditor[T]) submit(w http.ResponseWriter, r *http.Request, site *model.Site) {
	var req sectionRequest[T]
	if err := decodeJSON(w, r, &req); err != nil {
		slog.Debug("invalid section body", "error", err, "section", e.kind)
		writeError(w, r, http.StatusBadRequest, "invalid_body", "request.invalid_body")
		return
	}
	if err := service.ValidateSection(req.Title, req.Items); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, r, verr)
			return
		}
		writeInternalError(w, r, "validation error", err)
		return
	}

	form := e.form(r, site)
	form.Edit(req.Title, req.Items)
	res := form.Submit(r.Context())

	msg := "Section updated"
	if !res.Success {
		msg = "Section update failed"
	}
	e.h.after(r, site, e.kind, msg, res, map[string]any{"updated": res.Updated, "items": len(req.Items)})
	writeJSON(w, resultStatus(res.Err), SectionResponse[model.Section[T]]{Result: res, Section: form.State()})
}

func (e *listEditor[T]) add(w http.ResponseWriter, r *http.Request, site *model.Site) {
	lang := middleware.GetLanguage(r)
	form := e.form(r, site)
	item, err := form.Add(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to add item", "section", e.kind, "error", err)
		res := service.Result{Message: i18n.T(lang, "section.error_add", err.Error()), Err: err}
		e.h.after(r, site, e.kind, "Item add failed", res, nil)
		writeJSON(w, resultStatus(err), res)
		return
	}

	res := service.Result{Success: true, Message: i18n.T(lang, "section.item_added"), Updated: 1}
	e.h.after(r, site, e.kind, "Item added", res, map[string]any{"item_id": item.GetID()})
	writeJSON(w, http.StatusCreated, ItemResponse[T]{Success: true, Message: res.Message, Item: item})
}

func (e *listEditor[T]) remove(w http.ResponseWriter, r *http.Request, site *model.Site, id int64) {
	lang := middleware.GetLanguage(r)
	form := e.form(r, site)

	res := service.Result{Success: true, Message: i18n.T(lang, "section.item_deleted"), Updated: 1}
	msg := "Item deleted"
	if err := form.Remove(r.Context(), id); err != nil {
		res = service.Result{Message: i18n.T(lang, "section.error_delete", err.Error()), FailedItemID: id, Err: err}
		msg = "Item delete failed"
	}

	e.h.after(r, site, e.kind, msg, res, map[string]any{"item_id": id})
	writeJSON(w, resultStatus(res.Err), SectionResponse[model.Section[T]]{Result: res, Section: form.State()})
}

func (e *listEditor[T]) image(w http.ResponseWriter, r *http.Request, site *model.Site, id int64) {
	if !e.kind.HasImages() {
		writeError(w, r, http.StatusBadRequest, "no_images", "section.no_images")
		return
	}
	file, ok := readUpload(w, r)
	if !ok {
		return
	}
	defer func() { _ = file.Close() }()

	form := e.form(r, site)
	res := form.UploadImage(r.Context(), e.h.uploader, site.URL, id, file.File)

	msg := "Image updated"
	if !res.Success {
		msg = "Image update failed"
	}
	e.h.after(r, site, e.kind, msg, res, map[string]any{"item_id": id, "filename": file.Name})
	writeJSON(w, resultStatus(res.Err), SectionResponse[model.Section[T]]{Result: res, Section: form.State()})
}

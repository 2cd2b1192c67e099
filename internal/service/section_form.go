// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"slices"

	"github.com/olegiv/sitedeck/internal/i18n"
	"github.com/olegiv/sitedeck/internal/model"
)

// Result is the outcome of an editor submit.
type Result struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Updated      int    `json:"updated"`
	FailedItemID int64  `json:"failed_item_id,omitempty"`
	Err          error  `json:"-"`
}

// SectionForm is the editor of a list section. It holds the section as the
// owner is editing it and writes it back with Submit.
type SectionForm[T model.Item] struct {
	kind   model.Kind
	store  ItemStore[T]
	siteID int64
	lang   string
	state  model.Section[T]
}

// NewSectionForm opens an editor on section, owned by site siteID.
// Messages are produced in lang.
func NewSectionForm[T model.Item](kind model.Kind, st ItemStore[T], siteID int64, section model.Section[T], lang string) *SectionForm[T] {
	f := &SectionForm[T]{kind: kind, store: st, siteID: siteID, lang: lang, state: section}
	f.state.Items = slices.Clone(section.Items)
	if f.state.Items == nil {
		f.state.Items = []T{}
	}
	return f
}

// State returns a copy of the editor state.
func (f *SectionForm[T]) State() model.Section[T] {
	s := f.state
	s.Items = slices.Clone(f.state.Items)
	return s
}

// Edit replaces the title and items with the submitted values, sanitized.
func (f *SectionForm[T]) Edit(title string, items []T) {
	f.state.Title = SanitizeText(title)
	f.state.Items = make([]T, 0, len(items))
	for _, it := range items {
		f.state.Items = append(f.state.Items, SanitizeItem(it))
	}
}

// Submit writes the title and then each item in order. The first failing
// write ends the submit; writes before it stay committed.
func (f *SectionForm[T]) Submit(ctx context.Context) Result {
	if err := f.store.UpdateTitle(ctx, f.siteID, f.state.ID, f.state.Title); err != nil {
		return Result{
			Message: i18n.T(f.lang, "section.error_title", err.Error()),
			Err:     err,
		}
	}

	updated := 0
	for _, it := range f.state.Items {
		if err := f.store.Update(ctx, f.state.ID, it); err != nil {
			return Result{
				Message:      i18n.T(f.lang, "section.error_item", f.noun(), it.GetID(), err.Error()),
				Updated:      updated,
				FailedItemID: it.GetID(),
				Err:          err,
			}
		}
		updated++
	}

	return Result{
		Success: true,
		Message: i18n.T(f.lang, "section.updated"),
		Updated: updated,
	}
}

// Add inserts a new empty item and appends it to the editor state.
func (f *SectionForm[T]) Add(ctx context.Context) (T, error) {
	item, err := f.store.Create(ctx, f.state.ID)
	if err != nil {
		return item, err
	}
	f.state.Items = append(f.state.Items, item)
	return item, nil
}

// Remove deletes item id. The editor state only drops the item once the
// delete succeeded.
func (f *SectionForm[T]) Remove(ctx context.Context, id int64) error {
	if err := f.store.Delete(ctx, f.state.ID, id); err != nil {
		return err
	}
	f.state.Items = slices.DeleteFunc(f.state.Items, func(it T) bool { return it.GetID() == id })
	return nil
}

// SetImage stores url as the image of item id and mirrors it in the state.
func (f *SectionForm[T]) SetImage(ctx context.Context, id int64, url string) Result {
	if err := f.store.SetImage(ctx, f.state.ID, id, url); err != nil {
		return Result{
			Message:      i18n.T(f.lang, "section.error_image", err.Error()),
			FailedItemID: id,
			Err:          err,
		}
	}
	for i, it := range f.state.Items {
		if it.GetID() == id {
			f.state.Items[i] = withImage(it, url)
		}
	}
	return Result{Success: true, Message: i18n.T(f.lang, "section.image_updated"), Updated: 1}
}

// UploadImage uploads file into folder and then sets it as the image of
// item id. Nothing is uploaded for sections without images, for ids that
// are not in the section or when folder is empty.
func (f *SectionForm[T]) UploadImage(ctx context.Context, up ImageUploader, folder string, id int64, file File) Result {
	if !f.kind.HasImages() {
		return Result{Message: i18n.T(f.lang, "section.no_images"), Err: ErrNoImages}
	}
	if !slices.ContainsFunc(f.state.Items, func(it T) bool { return it.GetID() == id }) {
		return Result{
			Message:      i18n.T(f.lang, "section.error_image", ErrItemNotFound.Error()),
			FailedItemID: id,
			Err:          ErrItemNotFound,
		}
	}

	url, err := up.Upload(ctx, folder, file.Name, file.Body)
	if err != nil {
		msg := i18n.T(f.lang, "section.error_image", err.Error())
		if errors.Is(err, ErrMissingFolder) {
			msg = i18n.T(f.lang, "section.folder_missing")
		}
		return Result{Message: msg, FailedItemID: id, Err: err}
	}
	return f.SetImage(ctx, id, url)
}

func (f *SectionForm[T]) noun() string {
	return i18n.T(f.lang, "noun."+string(f.kind))
}

func withImage[T model.Item](item T, url string) T {
	switch v := any(&item).(type) {
	case *model.ServiceItem:
		v.ImageURL = url
	case *model.PortfolioItem:
		v.ImageURL = url
	case *model.TeamMember:
		v.ImageURL = url
	case *model.Testimonial:
		v.ImageURL = url
	}
	return item
}

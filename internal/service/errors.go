// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the site editing logic: section editors, the
// upload helper, navigation, snapshots and the event log.
package service

import "errors"

var (
	// ErrSiteNotFound is returned when the owner has no site.
	ErrSiteNotFound = errors.New("site not found")
	// ErrSectionNotFound is returned when a write targets a section the
	// site does not have.
	ErrSectionNotFound = errors.New("section not found")
	// ErrItemNotFound is returned when an item id does not belong to the
	// section being edited.
	ErrItemNotFound = errors.New("item not found")
	// ErrMissingFolder is returned by uploads without a target folder.
	ErrMissingFolder = errors.New("folder path not set")
	// ErrNoImages is returned for image uploads on sections without images.
	ErrNoImages = errors.New("section has no images")
)

// affected turns an execrows result into an error when nothing matched.
func affected(n int64, err error, notFound error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

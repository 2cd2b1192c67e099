// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/sitedeck/internal/imaging"
	"github.com/olegiv/sitedeck/internal/service"
	"github.com/olegiv/sitedeck/internal/storage"
)

// formatSeconds formats d as whole seconds, at least 1.
func formatSeconds(d time.Duration) string {
	return strconv.Itoa(max(int(d.Round(time.Second)/time.Second), 1))
}

// resultStatus maps the error of an editor result to an HTTP status.
func resultStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, service.ErrItemNotFound), errors.Is(err, service.ErrSectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNoImages), errors.Is(err, service.ErrMissingFolder),
		errors.Is(err, imaging.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, imaging.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, storage.ErrInvalidKey):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

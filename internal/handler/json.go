// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/sitedeck/internal/i18n"
	"github.com/olegiv/sitedeck/internal/middleware"
	"github.com/olegiv/sitedeck/internal/service"
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("failed to encode response", "error", err)
	}
}

// writeError writes a translated JSON error.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, key string, args ...any) {
	middleware.WriteAPIError(w, status, code, i18n.T(middleware.GetLanguage(r), key, args...), nil)
}

// writeInternalError logs err and writes a generic 500.
func writeInternalError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	slog.ErrorContext(r.Context(), logMsg, "error", err, "path", r.URL.Path)
	writeError(w, r, http.StatusInternalServerError, "internal_error", "request.internal_error")
}

// writeValidationError writes a 422 listing the invalid fields.
func writeValidationError(w http.ResponseWriter, r *http.Request, verr *service.ValidationError) {
	middleware.WriteAPIError(w, http.StatusUnprocessableEntity, "validation_failed",
		i18n.T(middleware.GetLanguage(r), "validation.failed"), verr.Fields)
}

// decodeJSON reads a single JSON document into v. Unknown fields are
// rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("decoding request: trailing data")
	}
	return nil
}

// requireJSON decodes the body into v and validates it, writing the error
// response itself. It reports whether the handler may continue.
func requireJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeJSON(w, r, v); err != nil {
		slog.Debug("invalid request body", "error", err, "path", r.URL.Path)
		writeError(w, r, http.StatusBadRequest, "invalid_body", "request.invalid_body")
		return false
	}
	return validateRequest(w, r, v)
}

// validateRequest checks v against its validate tags and writes a 422 on
// failure.
func validateRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	err := service.Validate("", v)
	if err == nil {
		return true
	}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeValidationError(w, r, verr)
	} else {
		writeInternalError(w, r, "validation error", err)
	}
	return false
}

// parseIDParam parses a positive int64 URL parameter. On failure it
// writes a 400 and returns false.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid_id", "request.invalid_id")
		return 0, false
	}
	return id, true
}

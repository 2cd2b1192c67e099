// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/sitedeck/internal/storage"
)

// StorageHandler serves the objects of the bucket read-only under the
// public URL prefix.
type StorageHandler struct {
	bucket storage.Bucket
}

// NewStorageHandler creates a new StorageHandler.
func NewStorageHandler(bucket storage.Bucket) *StorageHandler {
	return &StorageHandler{bucket: bucket}
}

// Serve handles GET /storage/v1/object/public/{bucket}/*.
func (h *StorageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if chi.URLParam(r, paramBucket) != h.bucket.Name() || storage.ValidateKey(key) != nil {
		writeError(w, r, http.StatusNotFound, "not_found", "request.not_found")
		return
	}

	f, err := h.bucket.Open(r.Context(), key)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "not_found", "request.not_found")
		return
	}
	if err != nil {
		writeInternalError(w, r, "failed to open object", err)
		return
	}
	defer func() { _ = f.Close() }()

	// Keys carry their upload time, so content never changes.
	http.ServeContent(w, r, path.Base(key), time.Time{}, f)
}

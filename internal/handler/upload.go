// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/service"
)

// uploadedFile is a multipart file ready for the uploader.
type uploadedFile struct {
	service.File
	f multipart.File
}

func (u *uploadedFile) Close() error { return u.f.Close() }

// parseUploadForm parses a multipart body capped at the upload limit.
func parseUploadForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, model.MaxUploadSize+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "file_too_large", "upload.too_large",
				humanize.IBytes(model.MaxUploadSize))
			return false
		}
		writeError(w, r, http.StatusBadRequest, "invalid_body", "request.invalid_body")
		return false
	}
	return true
}

// formFile returns the "file" part of a parsed multipart form, or nil when
// none was sent.
func formFile(w http.ResponseWriter, r *http.Request) (*uploadedFile, bool) {
	f, hdr, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_body", "request.invalid_body")
		return nil, false
	}
	if hdr.Size > model.MaxUploadSize {
		_ = f.Close()
		writeError(w, r, http.StatusRequestEntityTooLarge, "file_too_large", "upload.too_large",
			humanize.IBytes(model.MaxUploadSize))
		return nil, false
	}
	return &uploadedFile{File: service.File{Name: hdr.Filename, Body: f}, f: f}, true
}

// readUpload parses the body and requires a "file" part.
func readUpload(w http.ResponseWriter, r *http.Request) (*uploadedFile, bool) {
	if !parseUploadForm(w, r) {
		return nil, false
	}
	file, ok := formFile(w, r)
	if !ok {
		return nil, false
	}
	if file == nil {
		writeError(w, r, http.StatusBadRequest, "missing_file", "upload.missing_file")
		return nil, false
	}
	return file, true
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/sitedeck/internal/imaging"
	"github.com/olegiv/sitedeck/internal/storage"
	"github.com/olegiv/sitedeck/internal/util"
)

// File is an uploaded file as received from the client.
type File struct {
	Name string
	Body io.Reader
}

// ImageUploader stores an image under folder and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error)
}

// Uploader normalizes images and puts them in the site bucket.
type Uploader struct {
	bucket    storage.Bucket
	processor *imaging.Processor
	now       func() time.Time
}

// NewUploader returns an Uploader writing to bucket.
func NewUploader(bucket storage.Bucket, processor *imaging.Processor) *Uploader {
	return &Uploader{bucket: bucket, processor: processor, now: time.Now}
}

// ObjectKey builds the key of an upload: <folder>/<unix millis>-<name>.
func ObjectKey(folder string, at time.Time, name string) string {
	return folder + "/" + strconv.FormatInt(at.UnixMilli(), 10) + "-" + name
}

// Upload implements ImageUploader. The stored name is the sanitized file
// name with the extension of the normalized encoding.
func (u *Uploader) Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		return "", ErrMissingFolder
	}

	img, err := u.processor.Normalize(r)
	if err != nil {
		return "", err
	}

	name := util.SanitizeObjectName(filename)
	name = strings.TrimSuffix(name, path.Ext(name)) + img.Ext

	key := ObjectKey(folder, u.now(), name)
	if err := u.bucket.Put(ctx, key, bytes.NewReader(img.Data), img.MimeType); err != nil {
		return "", fmt.Errorf("storing %s: %w", key, err)
	}
	return u.bucket.PublicURL(key), nil
}

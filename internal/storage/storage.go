// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package storage is the object store for uploaded site images. Objects
// live in a named bucket under slash-separated keys and are readable through
// a public URL.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

// PublicPathPrefix is the URL path under which public objects are served.
const PublicPathPrefix = "/storage/v1/object/public/"

// ErrInvalidKey is returned for empty keys or keys escaping the bucket.
var ErrInvalidKey = errors.New("invalid object key")

// ErrNotFound is returned when an object does not exist.
var ErrNotFound = errors.New("object not found")

// Bucket stores objects and hands out their public URLs.
type Bucket interface {
	Name() string
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Open(ctx context.Context, key string) (io.ReadSeekCloser, error)
	PublicURL(key string) string
}

// ValidateKey checks that key is a relative slash path without empty, "."
// or ".." segments.
func ValidateKey(key string) error {
	if key == "" || len(key) > 1024 || strings.HasPrefix(key, "/") || strings.ContainsAny(key, "\\\x00") {
		return ErrInvalidKey
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}

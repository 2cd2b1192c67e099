// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/olegiv/sitedeck/internal/util"
)

// LocalBucket keeps objects on the local filesystem at <root>/<bucket>/<key>.
type LocalBucket struct {
	name    string
	dir     string
	baseURL string
}

// NewLocalBucket creates the bucket directory under root if needed.
// baseURL is the public origin the HTTP server is reachable at.
func NewLocalBucket(root, name, baseURL string) (*LocalBucket, error) {
	dir, err := util.SafeJoinPath(root, name)
	if err != nil || name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid bucket name %q", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating bucket directory: %w", err)
	}
	return &LocalBucket{
		name:    name,
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Name implements Bucket.
func (b *LocalBucket) Name() string { return b.name }

// Dir returns the directory holding the bucket objects.
func (b *LocalBucket) Dir() string { return b.dir }

func (b *LocalBucket) path(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	p, err := util.SafeJoinPath(b.dir, filepath.FromSlash(key))
	if err != nil {
		return "", ErrInvalidKey
	}
	return p, nil
}

// Put writes the object through a temporary file so readers never see a
// partial object.
func (b *LocalBucket) Put(ctx context.Context, key string, r io.Reader, _ string) error {
	target, err := b.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating object directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return fmt.Errorf("creating temp object: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing object: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting object permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("storing object: %w", err)
	}
	return nil
}

// Open implements Bucket.
func (b *LocalBucket) Open(_ context.Context, key string) (io.ReadSeekCloser, error) {
	p, err := b.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if info, err := f.Stat(); err != nil || info.IsDir() {
		_ = f.Close()
		return nil, ErrNotFound
	}
	return f, nil
}

// PublicURL implements Bucket:
// <baseURL>/storage/v1/object/public/<bucket>/<key>, each key segment escaped.
func (b *LocalBucket) PublicURL(key string) string {
	segs := strings.Split(key, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return b.baseURL + PublicPathPrefix + url.PathEscape(b.name) + "/" + strings.Join(segs, "/")
}

// Writable checks that the bucket directory accepts new files.
func (b *LocalBucket) Writable() error {
	f, err := os.CreateTemp(b.dir, ".probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

var _ Bucket = (*LocalBucket)(nil)

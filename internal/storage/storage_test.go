// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKey(t *testing.T) {
	valid := []string{"acme/1700000000000-logo.png", "a", "a/b/c.jpg"}
	for _, k := range valid {
		assert.NoError(t, ValidateKey(k), k)
	}
	invalid := []string{"", "/abs", "a//b", "a/../b", "..", "./a", `a\b`, "a/\x00"}
	for _, k := range invalid {
		assert.ErrorIs(t, ValidateKey(k), ErrInvalidKey, k)
	}
}

func TestLocalBucket_PutOpen(t *testing.T) {
	root := t.TempDir()
	b, err := NewLocalBucket(root, "sites", "http://localhost:8080/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "acme/1-logo.png", strings.NewReader("png-bytes"), "image/png"))

	data, err := os.ReadFile(filepath.Join(root, "sites", "acme", "1-logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	f, err := b.Open(ctx, "acme/1-logo.png")
	require.NoError(t, err)
	got, err := io.ReadAll(f)
	require.NoError(t, err)
	_ = f.Close()
	assert.Equal(t, "png-bytes", string(got))

	_, err = b.Open(ctx, "acme/missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = b.Open(ctx, "acme")
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err := os.ReadDir(filepath.Join(root, "sites", "acme"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalBucket_RejectsTraversal(t *testing.T) {
	b, err := NewLocalBucket(t.TempDir(), "sites", "")
	require.NoError(t, err)

	err = b.Put(context.Background(), "../escape.txt", strings.NewReader("x"), "")
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = b.Open(context.Background(), "acme/../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = NewLocalBucket(t.TempDir(), "../up", "")
	assert.Error(t, err)
}

func TestLocalBucket_PublicURL(t *testing.T) {
	b, err := NewLocalBucket(t.TempDir(), "sites", "https://cdn.example.com/")
	require.NoError(t, err)

	assert.Equal(t,
		"https://cdn.example.com/storage/v1/object/public/sites/acme/1700000000000-logo.png",
		b.PublicURL("acme/1700000000000-logo.png"))
	assert.Equal(t,
		"https://cdn.example.com/storage/v1/object/public/sites/my%20site/a.png",
		b.PublicURL("my site/a.png"))
}

func TestLocalBucket_Writable(t *testing.T) {
	b, err := NewLocalBucket(t.TempDir(), "sites", "")
	require.NoError(t, err)
	assert.NoError(t, b.Writable())
}

func TestLocalBucket_CancelledContext(t *testing.T) {
	b, err := NewLocalBucket(t.TempDir(), "sites", "")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.Put(ctx, "a/b.png", strings.NewReader("x"), ""), context.Canceled)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Memory(t *testing.T) {
	c, info, err := New(Config{DefaultTTL: time.Minute}, nil)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, BackendMemory, info.Backend)
	assert.False(t, info.IsFallback)
	assert.IsType(t, &MemoryCache{}, c)
}

func TestNew_RedisFallback(t *testing.T) {
	cfg := Config{
		RedisURL:         "redis://127.0.0.1:1/0",
		DefaultTTL:       time.Minute,
		FallbackToMemory: true,
	}
	c, info, err := New(cfg, nil)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, BackendMemory, info.Backend)
	assert.True(t, info.IsFallback)
}

func TestNew_RedisNoFallback(t *testing.T) {
	_, _, err := New(Config{RedisURL: "redis://127.0.0.1:1/0"}, nil)
	assert.Error(t, err)

	_, _, err = New(Config{RedisURL: "not a url"}, nil)
	assert.Error(t, err)
}

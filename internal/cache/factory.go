// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and configures the cache backend.
type Config struct {
	RedisURL         string
	Prefix           string
	DefaultTTL       time.Duration
	MaxSize          int
	CleanupInterval  time.Duration
	FallbackToMemory bool
}

// Info describes the backend New picked.
type Info struct {
	Backend    string
	IsFallback bool
}

// New returns a Redis cache when RedisURL is set and reachable, otherwise a
// memory cache. When Redis fails and FallbackToMemory is false the error is
// returned.
func New(cfg Config, logger *slog.Logger) (Cacher, Info, error) {
	if cfg.RedisURL != "" {
		opts := DefaultRedisCacheOptions()
		opts.URL = cfg.RedisURL
		if cfg.Prefix != "" {
			opts.Prefix = cfg.Prefix
		}
		if cfg.DefaultTTL > 0 {
			opts.DefaultTTL = cfg.DefaultTTL
		}
		rc, err := NewRedisCache(opts)
		if err == nil {
			return rc, Info{Backend: BackendRedis}, nil
		}
		if !cfg.FallbackToMemory {
			return nil, Info{}, err
		}
		if logger != nil {
			logger.Warn("redis cache unavailable, falling back to memory", "error", err)
		}
		return newMemory(cfg), Info{Backend: BackendMemory, IsFallback: true}, nil
	}
	return newMemory(cfg), Info{Backend: BackendMemory}, nil
}

func newMemory(cfg Config) *MemoryCache {
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	})
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// ErrQueueFull is returned by Dispatch when the delivery queue is full.
var ErrQueueFull = errors.New("webhook queue full")

// Config holds dispatcher configuration.
type Config struct {
	URL    string // endpoint receiving every event
	Secret string // HMAC-SHA256 signing key

	Workers        int
	QueueSize      int
	MaxAttempts    uint64
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	RequestTimeout time.Duration
}

// DefaultConfig returns default dispatcher configuration for url.
func DefaultConfig(url, secret string) Config {
	return Config{
		URL:            url,
		Secret:         secret,
		Workers:        2,
		QueueSize:      100,
		MaxAttempts:    5,
		InitialBackoff: time.Second,
		MaxBackoff:     time.Minute,
		RequestTimeout: 10 * time.Second,
	}
}

// Dispatcher delivers queued events to the configured endpoint from a
// fixed pool of workers.
type Dispatcher struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
	queue  chan *Event

	wg      sync.WaitGroup
	mu      sync.RWMutex
	running bool
	cancel  context.CancelFunc
}

// NewDispatcher creates a new webhook dispatcher.
func NewDispatcher(cfg Config, logger *slog.Logger) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
		logger: logger,
		queue:  make(chan *Event, cfg.QueueSize),
	}
}

// Start starts the dispatcher workers. Deliveries stop when ctx is done.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.running = true
	ctx, d.cancel = context.WithCancel(ctx)

	d.logger.Info("starting webhook dispatcher", "workers", d.cfg.Workers, "url", d.cfg.URL)
	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

// Stop refuses new events and waits for queued ones to be delivered. When
// ctx ends first, in-flight deliveries are cancelled.
func (d *Dispatcher) Stop(ctx context.Context) {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		d.logger.Warn("webhook dispatcher stop timed out, cancelling deliveries", "pending", len(d.queue))
		d.cancel()
		<-done
	}
	d.cancel()
	d.logger.Info("webhook dispatcher stopped")
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	for event := range d.queue {
		if ctx.Err() != nil {
			continue
		}
		d.logger.Debug("webhook worker processing event", "worker_id", id, "event_id", event.ID)
		_ = d.deliver(ctx, event)
	}
}

// Dispatch queues event for delivery without blocking.
func (d *Dispatcher) Dispatch(_ context.Context, event *Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.running {
		d.logger.Warn("dispatcher not running, dropping webhook event", "event_type", event.Type)
		return nil
	}

	select {
	case d.queue <- event:
		return nil
	default:
		d.logger.Warn("webhook queue full, dropping event", "event_type", event.Type, "site", event.Data.SiteURL)
		return ErrQueueFull
	}
}

// GenerateSignature generates an HMAC-SHA256 signature for the payload.
func GenerateSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature verifies an HMAC-SHA256 signature.
func VerifySignature(payload []byte, signature, secret string) bool {
	return hmac.Equal([]byte(signature), []byte(GenerateSignature(payload, secret)))
}

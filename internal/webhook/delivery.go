// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/sethvargo/go-retry"
)

// Delivery headers.
const (
	HeaderSignature = "X-Sitedeck-Signature" // "sha256=" + hex HMAC of the body
	HeaderEvent     = "X-Sitedeck-Event"
	HeaderDelivery  = "X-Sitedeck-Delivery"
	HeaderAttempt   = "X-Sitedeck-Attempt"

	UserAgent      = "sitedeck-webhook/1.0"
	MaxResponseLen = 10 * 1024
)

// DeliveryResult represents the result of a delivery attempt.
type DeliveryResult struct {
	Success      bool
	StatusCode   int
	ResponseBody string
	Error        error
	ShouldRetry  bool
}

// deliver posts event, retrying network errors, 408, 429 and 5xx answers
// with exponential backoff.
func (d *Dispatcher) deliver(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.Error("failed to marshal webhook event", "error", err, "event_id", event.ID)
		return err
	}

	backoff := retry.NewExponential(d.cfg.InitialBackoff)
	if d.cfg.MaxBackoff > 0 {
		backoff = retry.WithCappedDuration(d.cfg.MaxBackoff, backoff)
	}
	backoff = retry.WithMaxRetries(d.cfg.MaxAttempts-1, backoff)

	attempt := 0
	var last DeliveryResult
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		last = d.attempt(ctx, event, payload, attempt)
		switch {
		case last.Success:
			return nil
		case last.ShouldRetry:
			d.logger.Debug("webhook delivery attempt failed", "event_id", event.ID, "attempt", attempt, "error", last.Error)
			return retry.RetryableError(last.Error)
		default:
			return last.Error
		}
	})
	if err != nil {
		d.logger.Warn("webhook delivery failed",
			"event_id", event.ID,
			"site", event.Data.SiteURL,
			"attempts", attempt,
			"status_code", last.StatusCode,
			"error", err)
		return err
	}

	d.logger.Info("webhook delivered",
		"event_id", event.ID,
		"site", event.Data.SiteURL,
		"attempts", attempt,
		"status_code", last.StatusCode)
	return nil
}

// attempt performs one HTTP POST of payload.
func (d *Dispatcher) attempt(ctx context.Context, event *Event, payload []byte, attempt int) DeliveryResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		// Bad URL, retrying will not help.
		return DeliveryResult{Error: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set(HeaderSignature, "sha256="+GenerateSignature(payload, d.cfg.Secret))
	req.Header.Set(HeaderEvent, event.Type)
	req.Header.Set(HeaderDelivery, event.ID)
	req.Header.Set(HeaderAttempt, strconv.Itoa(attempt))

	resp, err := d.client.Do(req)
	if err != nil {
		return DeliveryResult{Error: fmt.Errorf("request failed: %w", err), ShouldRetry: true}
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))
	res := DeliveryResult{StatusCode: resp.StatusCode, ResponseBody: string(body)}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		res.Success = true
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		res.Error = fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		res.ShouldRetry = resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode == http.StatusTooManyRequests
	default:
		res.Error = fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		res.ShouldRetry = true
	}
	return res
}

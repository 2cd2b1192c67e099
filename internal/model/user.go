// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types exchanged by the admin API:
// owners, the composite site snapshot, section items and the navigation menu.
package model

import (
	"time"
)

// User is a site owner as exposed by the API.
type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Language    string     `json:"language,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// MenuItem is an entry of the admin navigation aside.
type MenuItem struct {
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Href     string     `json:"href,omitempty"`
	Children []MenuItem `json:"children,omitempty"`
}

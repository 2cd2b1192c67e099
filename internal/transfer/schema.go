// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer exports the content of a site as a zip archive holding
// site.json and the images the site stores in the bucket.
package transfer

import (
	"time"

	"github.com/olegiv/sitedeck/internal/model"
)

// ExportVersion is the current version of the export format.
const ExportVersion = "1.0"

// Archive entry names.
const (
	SiteFile  = "site.json"
	ImagesDir = "images"
)

// ExportData is the content of site.json.
type ExportData struct {
	Version    string        `json:"version"`
	ExportedAt time.Time     `json:"exported_at"`
	Site       *model.Site   `json:"site"`
	Images     []ExportImage `json:"images"`
}

// ExportImage maps an image URL used by the site to its archive entry.
type ExportImage struct {
	URL  string `json:"url"`
	Key  string `json:"key"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

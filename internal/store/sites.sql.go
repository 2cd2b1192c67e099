// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const siteColumns = `id, owner_id, name, url, created_at, updated_at`

func scanSite(row rowScanner) (Site, error) {
	var s Site
	err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Url, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const createSite = `-- name: CreateSite :one
INSERT INTO sites (owner_id, name, url, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
RETURNING ` + siteColumns

// CreateSiteParams holds the arguments of CreateSite.
type CreateSiteParams struct {
	OwnerID   int64
	Name      string
	Url       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateSite inserts a site.
func (q *Queries) CreateSite(ctx context.Context, arg CreateSiteParams) (Site, error) {
	row := q.db.QueryRowContext(ctx, createSite, arg.OwnerID, arg.Name, arg.Url, arg.CreatedAt, arg.UpdatedAt)
	return scanSite(row)
}

const getSiteByOwner = `-- name: GetSiteByOwner :one
SELECT ` + siteColumns + ` FROM sites WHERE owner_id = ?`

// GetSiteByOwner returns the site owned by the given user.
func (q *Queries) GetSiteByOwner(ctx context.Context, ownerID int64) (Site, error) {
	return scanSite(q.db.QueryRowContext(ctx, getSiteByOwner, ownerID))
}

const getSiteByURL = `-- name: GetSiteByURL :one
SELECT ` + siteColumns + ` FROM sites WHERE url = ?`

// GetSiteByURL returns the site stored under the given folder url.
func (q *Queries) GetSiteByURL(ctx context.Context, url string) (Site, error) {
	return scanSite(q.db.QueryRowContext(ctx, getSiteByURL, url))
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers of the admin API.
package handler

// Route paths.
const (
	RouteLogin    = "/auth/login"
	RouteLogout   = "/auth/logout"
	RouteToken    = "/auth/token"
	RouteAPI      = "/api"
	RouteMe       = "/me"
	RouteLanguage = "/me/language"
	RouteSite     = "/site"
	RouteExport   = "/site/export"
	RouteNav      = "/navigation"
	RouteEvents   = "/events"
	RouteSections = "/sections"
	RouteHero     = "/hero"
	RouteKind     = "/{kind}"
	RouteItems    = "/{kind}/items"
	RouteItem     = "/{kind}/items/{id}"
	RouteImage    = "/{kind}/items/{id}/image"
	RoutePublic   = "/public/sites/{url}"
	RouteStorage  = "/storage/v1/object/public/{bucket}/*"
	RouteHealth   = "/health"
	RouteLive     = "/health/live"
	RouteReady    = "/health/ready"
)

// URL parameter names.
const (
	paramKind   = "kind"
	paramID     = "id"
	paramURL    = "url"
	paramBucket = "bucket"
)

// Limits of request parsing.
const (
	maxJSONBody      = 1 << 20
	multipartMemory  = 2 << 20
	defaultEventList = 50
	maxEventList     = 200
)

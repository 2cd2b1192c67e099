// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/sitedeck/internal/i18n"
	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/service"
)

// SiteLoader returns the snapshot of the site owned by a user.
type SiteLoader interface {
	ForOwner(ctx context.Context, ownerID int64) (*model.Site, error)
}

// LoadSite creates middleware that loads the owner's site snapshot into
// the request context. It must run after Auth. Owners without a site get
// a JSON 404.
func LoadSite(sites SiteLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				writeUnauthorized(w, r)
				return
			}

			site, err := sites.ForOwner(r.Context(), user.ID)
			if errors.Is(err, service.ErrSiteNotFound) {
				WriteAPIError(w, http.StatusNotFound, "site_not_found", i18n.T(GetLanguage(r), "site.not_found"), nil)
				return
			}
			if err != nil {
				slog.ErrorContext(r.Context(), "failed to load site", "user_id", user.ID, "error", err)
				WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to load site", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySite, site)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSite retrieves the site snapshot loaded by LoadSite.
func GetSite(r *http.Request) *model.Site {
	site, _ := r.Context().Value(ContextKeySite).(*model.Site)
	return site
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/sitedeck/internal/auth"
	"github.com/olegiv/sitedeck/internal/middleware"
)

// RouterConfig holds the dependencies of the HTTP routes.
type RouterConfig struct {
	Sessions        *scs.SessionManager
	Tokens          *auth.TokenIssuer
	LoginProtection *middleware.LoginProtection
	PublicLimiter   *middleware.RateLimiter
	Security        middleware.SecurityHeadersConfig
	CSRF            middleware.CSRFConfig
	RequestTimeout  time.Duration
	// Logger enables chi request logging when set.
	Logger bool

	Auth     *AuthHandler
	Site     *SiteHandler
	Sections *SectionsHandler
	Events   *EventsHandler
	Export   *ExportHandler
	Storage  *StorageHandler
	Health   *HealthHandler

	Users middleware.UserLoader
	Sites middleware.SiteLoader
}

// NewRouter builds the chi router of the whole service.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.Logger {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.SecurityHeaders(cfg.Security))
	r.Use(middleware.RequestPath)

	r.Get(RouteHealth, cfg.Health.Health)
	r.Get(RouteLive, cfg.Health.Liveness)
	r.Get(RouteReady, cfg.Health.Readiness)

	// Stored objects and public content: no session, no CSRF.
	r.Group(func(r chi.Router) {
		if cfg.PublicLimiter != nil {
			r.Use(cfg.PublicLimiter.Middleware())
		}
		r.With(middleware.StaticCache(31536000, true)).Get(RouteStorage, cfg.Storage.Serve)
		r.With(middleware.Language(nil), middleware.StaticCache(60, false)).Get(RoutePublic, cfg.Site.Public)
	})

	r.Group(func(r chi.Router) {
		r.Use(cfg.Sessions.LoadAndSave)
		r.Use(middleware.Language(cfg.Sessions))
		r.Use(middleware.CSRF(cfg.CSRF))
		r.Use(middleware.NoStore)

		r.Group(func(r chi.Router) {
			if cfg.LoginProtection != nil {
				r.Use(cfg.LoginProtection.Middleware())
			}
			r.Post(RouteLogin, cfg.Auth.Login)
			r.Post(RouteToken, cfg.Auth.Token)
		})
		r.Post(RouteLogout, cfg.Auth.Logout)

		r.Route(RouteAPI, func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Sessions, cfg.Tokens, cfg.Users))

			r.Get(RouteMe, cfg.Auth.Me)
			r.Put(RouteLanguage, cfg.Auth.SetLanguage)
			r.Get(RouteNav, cfg.Site.Navigation)
			r.Get(RouteEvents, cfg.Events.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.LoadSite(cfg.Sites))
				r.Get(RouteSite, cfg.Site.Site)
				r.Get(RouteExport, cfg.Export.Export)

				r.Route(RouteSections, func(r chi.Router) {
					r.Get(RouteHero, cfg.Sections.GetHero)
					r.Put(RouteHero, cfg.Sections.UpdateHero)
					r.Get(RouteKind, cfg.Sections.Get)
					r.Put(RouteKind, cfg.Sections.Update)
					r.Post(RouteItems, cfg.Sections.AddItem)
					r.Delete(RouteItem, cfg.Sections.DeleteItem)
					r.Post(RouteImage, cfg.Sections.UploadImage)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not_found", "request.not_found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "request.method_not_allowed")
	})

	return r
}

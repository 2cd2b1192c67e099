// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/sitedeck/internal/auth"
	"github.com/olegiv/sitedeck/internal/cache"
	"github.com/olegiv/sitedeck/internal/config"
	"github.com/olegiv/sitedeck/internal/geoip"
	"github.com/olegiv/sitedeck/internal/handler"
	"github.com/olegiv/sitedeck/internal/i18n"
	"github.com/olegiv/sitedeck/internal/imaging"
	"github.com/olegiv/sitedeck/internal/logging"
	"github.com/olegiv/sitedeck/internal/middleware"
	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/scheduler"
	"github.com/olegiv/sitedeck/internal/service"
	"github.com/olegiv/sitedeck/internal/session"
	"github.com/olegiv/sitedeck/internal/storage"
	"github.com/olegiv/sitedeck/internal/store"
	"github.com/olegiv/sitedeck/internal/transfer"
	"github.com/olegiv/sitedeck/internal/version"
	"github.com/olegiv/sitedeck/internal/webhook"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// maxImageDimension bounds the longest side of stored images.
const maxImageDimension = 2560

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "sitedeck - admin API for multi-tenant business websites\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEDECK_SESSION_SECRET   Session and token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEDECK_DB_PATH          SQLite database path (default: ./data/sitedeck.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEDECK_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEDECK_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEDECK_STORAGE_DIR      Object storage directory (default: ./data/storage)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEDECK_PUBLIC_BASE_URL  Base URL of public object links\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEDECK_REDIS_URL        Redis URL for shared site snapshots (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEDECK_WEBHOOK_URL      Endpoint told about content changes (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITEDECK_DO_SEED          Create the demo owner and site on start\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}
	slog.Info("i18n system initialized", "languages", i18n.SupportedLanguages)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// WARN and ERROR records are also written to the event log.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	sessionManager := session.New(db, cfg.IsDevelopment())

	ttl := time.Duration(cfg.CacheTTL) * time.Second
	snapshots, cacheInfo, err := cache.New(cache.Config{
		RedisURL:         cfg.RedisURL,
		Prefix:           cfg.CachePrefix,
		DefaultTTL:       ttl,
		MaxSize:          cfg.CacheMaxSize,
		CleanupInterval:  time.Minute,
		FallbackToMemory: true,
	}, logger)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() { _ = snapshots.Close() }()
	slog.Info("cache initialized", "backend", cacheInfo.Backend, "fallback", cacheInfo.IsFallback)

	geo, err := geoip.NewLookup(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("GeoIP disabled", "error", err)
		geo, _ = geoip.NewLookup("")
	}
	defer func() { _ = geo.Close() }()

	var reloader scheduler.Reloader
	if geo.Enabled() {
		reloader = geo
	}
	sched := scheduler.New(db, logger, time.Duration(cfg.EventRetentionDays)*24*time.Hour, reloader)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	bucket, err := storage.NewLocalBucket(cfg.StorageDir, cfg.Bucket, cfg.PublicBaseURL)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	slog.Info("object storage ready", "dir", bucket.Dir(), "bucket", bucket.Name())

	events := service.NewEventService(db, logger)
	authService, err := service.NewAuthService(db, events, geo, logger)
	if err != nil {
		return fmt.Errorf("initializing auth: %w", err)
	}
	sites := service.NewSiteService(db, snapshots, ttl, logger)
	uploader := service.NewUploader(bucket, imaging.NewProcessor(model.MaxUploadSize, maxImageDimension))
	tokens := auth.NewTokenIssuer(cfg.SessionSecret, cfg.TokenTTL)

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Stop()

	sections := handler.NewSectionsHandler(sites.Stores(), sites.HeroStore(), uploader, sites, events)
	if cfg.WebhookEnabled() {
		hookCfg := webhook.DefaultConfig(cfg.WebhookURL, cfg.WebhookSecret)
		hookCfg.Workers = cfg.WebhookWorkers
		dispatcher := webhook.NewDispatcher(hookCfg, logger)
		dispatcher.Start(ctx)
		debouncer := webhook.NewDebouncer(dispatcher, webhook.DebounceConfig{
			Interval: cfg.WebhookDelay,
			MaxWait:  5 * cfg.WebhookDelay,
		})
		sections.SetNotifier(debouncer)
		// Deferred, so it runs after srv.Shutdown drained in-flight requests.
		defer func() {
			debouncer.Flush()
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			dispatcher.Stop(stopCtx)
		}()
	}

	router := handler.NewRouter(handler.RouterConfig{
		Sessions:        sessionManager,
		Tokens:          tokens,
		LoginProtection: loginProtection,
		PublicLimiter:   middleware.NewRateLimiter(10, 20),
		Security:        middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment()),
		CSRF:            middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()),
		RequestTimeout:  30 * time.Second,
		Logger:          true,

		Auth:     handler.NewAuthHandler(authService, events, sessionManager, tokens, loginProtection),
		Site:     handler.NewSiteHandler(sites),
		Sections: sections,
		Events:   handler.NewEventsHandler(events),
		Export:   handler.NewExportHandler(transfer.NewExporter(bucket, logger), events),
		Storage:  handler.NewStorageHandler(bucket),
		Health:   handler.NewHealthHandler(db, bucket, bucket.Dir(), info),

		Users: authService,
		Sites: sites,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // uploads
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

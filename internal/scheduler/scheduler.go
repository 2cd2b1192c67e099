// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs: event log retention
// and GeoIP database reloads.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/sitedeck/internal/store"
)

// Default schedules.
const (
	PurgeSchedule  = "0 3 * * *"
	ReloadSchedule = "@hourly"
)

// Reloader is implemented by resources refreshed from disk, such as the
// GeoIP database.
type Reloader interface {
	Reload() error
}

// Scheduler owns a cron instance with the maintenance jobs.
type Scheduler struct {
	queries   *store.Queries
	cron      *cron.Cron
	logger    *slog.Logger
	retention time.Duration
	reloader  Reloader
	now       func() time.Time
}

// New returns a scheduler that purges events older than retention. reloader
// may be nil.
func New(db *sql.DB, logger *slog.Logger, retention time.Duration, reloader Reloader) *Scheduler {
	return &Scheduler{
		queries:   store.New(db),
		cron:      cron.New(),
		logger:    logger,
		retention: retention,
		reloader:  reloader,
		now:       time.Now,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(PurgeSchedule, func() {
		if _, err := s.PurgeEvents(context.Background()); err != nil {
			s.logger.Error("failed to purge old events", "error", err)
		}
	}); err != nil {
		return err
	}

	if s.reloader != nil {
		if _, err := s.cron.AddFunc(ReloadSchedule, func() {
			if err := s.reloader.Reload(); err != nil {
				s.logger.Warn("failed to reload GeoIP database", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop waits for running jobs and stops the scheduler.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// PurgeEvents deletes events older than the retention window and returns
// how many were removed.
func (s *Scheduler) PurgeEvents(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	n, err := s.queries.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("purged old events", "count", n, "before", cutoff.Format(time.RFC3339))
	}
	return n, nil
}

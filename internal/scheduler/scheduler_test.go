// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/sitedeck/internal/store"
	"github.com/olegiv/sitedeck/internal/testutil"
)

type countingReloader struct {
	calls int
	err   error
}

func (r *countingReloader) Reload() error {
	r.calls++
	return r.err
}

func TestPurgeEvents(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	q := store.New(db)

	now := time.Now()
	for _, age := range []time.Duration{100 * 24 * time.Hour, 10 * 24 * time.Hour, time.Hour} {
		_, err := q.CreateEvent(ctx, store.CreateEventParams{
			Level: "info", Category: "system", Message: "m", Metadata: "{}", CreatedAt: now.Add(-age),
		})
		require.NoError(t, err)
	}

	s := New(db, testutil.TestLogger(), 30*24*time.Hour, nil)
	s.now = func() time.Time { return now }

	n, err := s.PurgeEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.PurgeEvents(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStartStop(t *testing.T) {
	db := testutil.TestDB(t)

	s := New(db, testutil.TestLogger(), time.Hour, nil)
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()

	s = New(db, testutil.TestLogger(), time.Hour, &countingReloader{err: errors.New("x")})
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 2)
	s.Stop()
}

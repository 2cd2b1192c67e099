// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/testutil"
)

func TestEventService_LogAndList(t *testing.T) {
	db := testutil.TestDB(t)
	owner := testutil.CreateUser(t, db, "events@example.com")
	other := testutil.CreateUser(t, db, "other@example.com")
	svc := NewEventService(db, testutil.TestLogger())
	ctx := context.Background()

	require.NoError(t, svc.LogSectionEvent(ctx, model.EventLevelInfo, "Section saved", owner.ID, "10.0.0.1",
		map[string]any{"section": "services", "updated": 3}))
	require.NoError(t, svc.LogUploadEvent(ctx, model.EventLevelInfo, "Image uploaded", owner.ID, "10.0.0.1", nil))
	require.NoError(t, svc.LogAuthEvent(ctx, model.EventLevelInfo, "User logged in", &other.ID, "", nil))
	require.NoError(t, svc.LogInfo(ctx, model.EventCategorySystem, "No user", nil, "", nil))

	events, err := svc.ListForUser(ctx, owner.ID, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "Image uploaded", events[0].Message)
	assert.Equal(t, model.EventCategoryUpload, events[0].Category)
	assert.Nil(t, events[0].Metadata)

	assert.Equal(t, "Section saved", events[1].Message)
	assert.Equal(t, "10.0.0.1", events[1].IPAddress)
	assert.Equal(t, "services", events[1].Metadata["section"])
	assert.EqualValues(t, 3, events[1].Metadata["updated"])
}

func TestEventService_ListLimit(t *testing.T) {
	db := testutil.TestDB(t)
	owner := testutil.CreateUser(t, db, "limit@example.com")
	svc := NewEventService(db, testutil.TestLogger())
	ctx := context.Background()

	for range 5 {
		require.NoError(t, svc.LogWarning(ctx, model.EventCategorySection, "Save failed", &owner.ID, "", nil))
	}

	events, err := svc.ListForUser(ctx, owner.ID, 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, model.EventLevelWarning, events[0].Level)
}

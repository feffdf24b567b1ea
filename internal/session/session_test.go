// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestByDefault(t *testing.T) {
	s := NewStore(NewMemoryKV())
	assert.Empty(t, s.Token())
	assert.False(t, s.Authenticated())
}

func TestSetTokenAuthenticates(t *testing.T) {
	s := NewStore(NewMemoryKV())
	require.NoError(t, s.SetToken("bearer-xyz"))
	assert.Equal(t, "bearer-xyz", s.Token())
	assert.True(t, s.Authenticated())
}

func TestClearReturnsToGuest(t *testing.T) {
	s := NewStore(NewMemoryKV())
	require.NoError(t, s.SetToken("bearer-xyz"))
	require.NoError(t, s.Clear())
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
}

func TestTooltipSnooze(t *testing.T) {
	s := NewStore(NewMemoryKV())
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	snooze := 24 * time.Hour

	// Never dismissed: shown.
	assert.False(t, s.TooltipSnoozed(now, snooze))

	require.NoError(t, s.DismissTooltip(now))

	// Inside the window: hidden.
	assert.True(t, s.TooltipSnoozed(now.Add(time.Hour), snooze))
	assert.True(t, s.TooltipSnoozed(now.Add(23*time.Hour+59*time.Minute), snooze))

	// At and past 24h: shown again.
	assert.False(t, s.TooltipSnoozed(now.Add(24*time.Hour), snooze))
	assert.False(t, s.TooltipSnoozed(now.Add(48*time.Hour), snooze))
}

func TestTooltipBadStoredValue(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set("tooltipDismissedAt", "not-a-timestamp"))
	s := NewStore(kv)
	assert.False(t, s.TooltipSnoozed(time.Now(), 24*time.Hour))
}

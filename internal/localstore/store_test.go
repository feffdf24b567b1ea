// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package localstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	v, ok, err := s.Get("absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSetGet(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("accessToken", "tok-123"))
	v, ok, err := s.Get("accessToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", v)
}

func TestSetOverwrites(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("k", "first"))
	require.NoError(t, s.Set("k", "second"))
	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Delete("k"))
	_, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is fine.
	require.NoError(t, s.Delete("k"))
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("accessToken", "persisted"))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	v, ok, err := s2.Get("accessToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", v)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the persisted credential token.
//
// The token is the entire authentication signal: present means member,
// absent means guest. The web client read localStorage["accessToken"]
// wherever it pleased; here the store is an explicit capability handed to
// each controller, so tests can substitute a memory-backed double.
package session

import (
	"time"
)

// Storage keys, kept byte-for-byte compatible with the web client.
const (
	tokenKey   = "accessToken"
	tooltipKey = "tooltipDismissedAt"
)

// KV is the minimal key-value contract the session store needs.
// *localstore.Store satisfies it; tests use MemoryKV.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store exposes the session token as get/set/clear.
type Store struct {
	kv KV
}

// NewStore wraps a key-value backend.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Token returns the bearer token, or "" when unauthenticated.
// Storage errors read as "guest": a chat client that cannot reach its own
// state file should degrade, not crash.
func (s *Store) Token() string {
	v, ok, err := s.kv.Get(tokenKey)
	if err != nil || !ok {
		return ""
	}
	return v
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// SetToken stores the bearer token obtained from login or signup.
func (s *Store) SetToken(token string) error {
	return s.kv.Set(tokenKey, token)
}

// Clear removes the token. Used by logout, account deletion, and the
// gateway when the backend answers 401 to an authenticated call.
func (s *Store) Clear() error {
	return s.kv.Delete(tokenKey)
}

// =============================================================================
// FIRST-TIME HINT CLOCK
// =============================================================================

// DismissTooltip records that the first-time-user hint was dismissed now.
func (s *Store) DismissTooltip(now time.Time) error {
	return s.kv.Set(tooltipKey, now.UTC().Format(time.RFC3339))
}

// TooltipSnoozed reports whether a dismissed hint is still inside its
// snooze window (24 hours in the shipped configuration). An unparseable
// stored value counts as "not snoozed" and will be overwritten on the next
// dismissal.
func (s *Store) TooltipSnoozed(now time.Time, snooze time.Duration) bool {
	v, ok, err := s.kv.Get(tooltipKey)
	if err != nil || !ok {
		return false
	}
	dismissed, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return false
	}
	return now.Sub(dismissed) < snooze
}

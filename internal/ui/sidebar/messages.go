// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar provides the collapsible history/profile panel.
//
// This file defines the panel's Bubble Tea messages and commands. The two
// fetches (history list, profile) are independent: either may fail without
// blocking the other.
package sidebar

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/datastreams-knu/knubot-tui/internal/gateway"
)

// =============================================================================
// FETCH MESSAGES
// =============================================================================

// HistoriesMsg delivers the saved conversation list.
type HistoriesMsg struct {
	Gen     uint64
	Entries []gateway.HistoryEntry
	Err     error
}

// ProfileMsg delivers the member profile.
type ProfileMsg struct {
	Gen     uint64
	Profile *gateway.Profile
	Err     error
}

// =============================================================================
// MUTATION MESSAGES
// =============================================================================

// RenamedMsg reports a rename attempt. On success the list is re-fetched
// rather than patched locally.
type RenamedMsg struct {
	Gen uint64
	Err error
}

// DeletedMsg reports a history deletion attempt.
type DeletedMsg struct {
	Gen uint64
	Err error
}

// AccountDeletedMsg reports an account deletion attempt. Success clears the
// token before this message is emitted.
type AccountDeletedMsg struct {
	Gen uint64
	Err error
}

// =============================================================================
// NAVIGATION MESSAGES (handled by the app router)
// =============================================================================

// OpenHistoryMsg asks the router to open a saved conversation.
type OpenHistoryMsg struct {
	HistoryID int
}

// LogoutMsg asks the router to clear the session and hard-reset.
type LogoutMsg struct{}

// AccountGoneMsg asks the router to hard-reset after account deletion.
type AccountGoneMsg struct{}

// =============================================================================
// COMMANDS
// =============================================================================

func (m *Model) fetchHistoriesCmd() tea.Cmd {
	gen := m.gen
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
		defer cancel()
		entries, err := gw.Histories(ctx)
		return HistoriesMsg{Gen: gen, Entries: entries, Err: err}
	}
}

func (m *Model) fetchProfileCmd() tea.Cmd {
	gen := m.gen
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
		defer cancel()
		profile, err := gw.MemberInfo(ctx)
		return ProfileMsg{Gen: gen, Profile: profile, Err: err}
	}
}

func (m *Model) renameCmd(id int, name string) tea.Cmd {
	gen := m.gen
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
		defer cancel()
		return RenamedMsg{Gen: gen, Err: gw.RenameHistory(ctx, id, name)}
	}
}

func (m *Model) deleteCmd(id int) tea.Cmd {
	gen := m.gen
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
		defer cancel()
		return DeletedMsg{Gen: gen, Err: gw.DeleteHistory(ctx, id)}
	}
}

func (m *Model) deleteAccountCmd() tea.Cmd {
	gen := m.gen
	gw := m.gw
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
		defer cancel()
		err := gw.DeleteAccount(ctx)
		if err == nil {
			err = sess.Clear()
		}
		return AccountDeletedMsg{Gen: gen, Err: err}
	}
}

// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the knubot TUI.
//
// This file defines all Bubble Tea message types used by the conversation
// view, and the commands that produce them. Every async message carries the
// generation counter of the view that issued it: messages from a torn-down
// view are dropped in Update instead of mutating the live one.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/datastreams-knu/knubot-tui/internal/gateway"
)

// =============================================================================
// REPLY MESSAGES
// =============================================================================

// ReplyMsg delivers a successful chatbot answer.
type ReplyMsg struct {
	Gen   uint64
	Reply *gateway.Reply
}

// ReplyErrMsg delivers a failed chat request.
type ReplyErrMsg struct {
	Gen uint64
	Err error
}

// =============================================================================
// HISTORY MESSAGES
// =============================================================================

// HistoryLoadedMsg delivers the fetched turns of a saved conversation.
// Started records when the fetch began so the overlay hold can subtract the
// elapsed time.
type HistoryLoadedMsg struct {
	Gen     uint64
	Turns   []gateway.HistoryTurn
	Err     error
	Started time.Time
}

// HistoryReadyMsg fires when the minimum overlay hold has elapsed and the
// loaded turns may be shown.
type HistoryReadyMsg struct {
	Gen uint64
}

// =============================================================================
// NAVIGATION MESSAGES
// =============================================================================

// RedirectHomeMsg fires five seconds after a terminal failure in a member
// conversation and sends the user back to the root view.
type RedirectHomeMsg struct {
	Gen uint64
}

// NavigateHomeMsg asks the app router to return to the root view. Emitted
// once the redirect delay elapses; carries no generation because the router
// owns it from there.
type NavigateHomeMsg struct{}

// =============================================================================
// SCROLL MESSAGES
// =============================================================================

// scrollTickMsg fires after the scroll debounce and snaps the viewport to
// the bottom.
type scrollTickMsg struct {
	Gen uint64
}

// =============================================================================
// TIMING CONSTANTS
// =============================================================================

const (
	// minOverlayHold is the minimum time the history-loading overlay stays
	// on screen, so short fetches do not flash.
	minOverlayHold = 2 * time.Second

	// scrollDebounce delays the scroll-to-bottom after content growth.
	scrollDebounce = 500 * time.Millisecond

	// redirectDelay is the pause before the terminal-failure redirect.
	redirectDelay = 5 * time.Second
)

// =============================================================================
// COMMANDS
// =============================================================================

// submitCmd issues the chat request for one user turn.
func (m *Model) submitCmd(question string) tea.Cmd {
	gen := m.gen
	gw := m.gw
	historyID := m.historyID
	inHistory := m.mode == ModeHistory

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
		defer cancel()

		var reply *gateway.Reply
		var err error
		if inHistory {
			reply, err = gw.AskInHistory(ctx, historyID, question)
		} else {
			reply, err = gw.Ask(ctx, question)
		}
		if err != nil {
			return ReplyErrMsg{Gen: gen, Err: err}
		}
		return ReplyMsg{Gen: gen, Reply: reply}
	}
}

// loadHistoryCmd fetches the saved turns of the conversation.
func (m *Model) loadHistoryCmd() tea.Cmd {
	gen := m.gen
	gw := m.gw
	historyID := m.historyID
	started := time.Now()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
		defer cancel()

		turns, err := gw.HistoryTurns(ctx, historyID)
		return HistoryLoadedMsg{Gen: gen, Turns: turns, Err: err, Started: started}
	}
}

// holdOverlayCmd keeps the loading overlay up for the remainder of the
// minimum hold: max(minimum - elapsed, 0).
func holdOverlayCmd(gen uint64, started time.Time) tea.Cmd {
	remaining := minOverlayHold - time.Since(started)
	if remaining < 0 {
		remaining = 0
	}
	return tea.Tick(remaining, func(time.Time) tea.Msg {
		return HistoryReadyMsg{Gen: gen}
	})
}

// redirectCmd schedules the terminal-failure redirect.
func redirectCmd(gen uint64) tea.Cmd {
	return tea.Tick(redirectDelay, func(time.Time) tea.Msg {
		return RedirectHomeMsg{Gen: gen}
	})
}

// scrollDebounceCmd schedules a scroll-to-bottom after the debounce window.
func scrollDebounceCmd(gen uint64) tea.Cmd {
	return tea.Tick(scrollDebounce, func(time.Time) tea.Msg {
		return scrollTickMsg{Gen: gen}
	})
}

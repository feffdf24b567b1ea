// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcript contains the conversation data model: ordered turns and
// the formatting rule that folds a backend reply into one system turn.
package transcript

import "time"

// =============================================================================
// AUTHOR TYPE
// =============================================================================

// Author identifies who produced a turn.
type Author string

const (
	AuthorUser Author = "user"
	AuthorBot  Author = "bot"
)

// DisplayName returns a human-readable label for the author.
func (a Author) DisplayName() string {
	switch a {
	case AuthorUser:
		return "나"
	case AuthorBot:
		return "호바누"
	default:
		return string(a)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is one message in a conversation. User turns hold plain text; bot
// turns hold the formatted reply markup produced by FormatReply.
type Turn struct {
	Author  Author
	Content string
	At      time.Time
}

// NewUserTurn creates a user turn.
func NewUserTurn(content string) Turn {
	return Turn{Author: AuthorUser, Content: content, At: time.Now()}
}

// NewBotTurn creates a bot turn.
func NewBotTurn(content string) Turn {
	return Turn{Author: AuthorBot, Content: content, At: time.Now()}
}

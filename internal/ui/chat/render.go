// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/datastreams-knu/knubot-tui/internal/transcript"
)

// =============================================================================
// TURN RENDERING
// =============================================================================

// Stored turns keep the web client's markup so conversations round-trip
// between clients. The terminal renderer rewrites the two tags that occur,
// anchors and images, into styled plain text at draw time.

var (
	anchorPattern = regexp.MustCompile(`<a href="([^"]+)"[^>]*>([^<]*)</a>`)
	imagePattern  = regexp.MustCompile(`<img src="([^"]+)"[^>]*/>`)
)

// renderMarkup converts turn markup into terminal text.
func (m *Model) renderMarkup(content string) string {
	out := anchorPattern.ReplaceAllStringFunc(content, func(tag string) string {
		groups := anchorPattern.FindStringSubmatch(tag)
		return m.theme.LinkText.Render(groups[1])
	})
	out = imagePattern.ReplaceAllStringFunc(out, func(tag string) string {
		groups := imagePattern.FindStringSubmatch(tag)
		return m.theme.ImageText.Render("[이미지] " + groups[1])
	})
	return out
}

// renderTurn renders one turn as an author label plus bubble.
func (m *Model) renderTurn(turn transcript.Turn) string {
	label := m.theme.AuthorLabel.Render(turn.Author.DisplayName())
	body := m.renderMarkup(turn.Content)

	bubbleWidth := m.width - 10
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var bubble string
	if turn.Author == transcript.AuthorUser {
		bubble = m.theme.UserBubble.MaxWidth(bubbleWidth).Render(body)
		return lipgloss.JoinVertical(lipgloss.Right, label, bubble)
	}
	bubble = m.theme.BotBubble.MaxWidth(bubbleWidth).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

// renderTranscript renders all turns, with the pending spinner bubble at the
// bottom while a question is in flight.
func (m *Model) renderTranscript() string {
	turns := m.transcript.Turns()
	blocks := make([]string, 0, len(turns)+1)
	for _, turn := range turns {
		blocks = append(blocks, m.renderTurn(turn))
	}
	if m.spinner.IsActive() {
		blocks = append(blocks, m.spinner.View())
	}
	return strings.Join(blocks, "\n\n")
}

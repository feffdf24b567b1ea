// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
)

// =============================================================================
// BLOCKING OVERLAY
// =============================================================================

// Overlay messages for the two blocking states. While an overlay is shown
// the screen behind it takes no input.
const (
	// OverlayHistoryLoading covers the screen while saved turns are
	// fetched and replayed.
	OverlayHistoryLoading = "챗봇의 전원을 키고 있습니다🤖"

	// OverlayWorking covers the screen during account and history
	// mutations.
	OverlayWorking = "요청 처리 중..."
)

// RenderOverlay renders a full-screen blocking overlay with the given message
// and an animated spinner line beneath it.
func RenderOverlay(theme *styles.Theme, message, spinnerView string, width, height int) string {
	lines := theme.OverlayText.Render(message)
	if spinnerView != "" {
		lines = lipgloss.JoinVertical(lipgloss.Center, lines, spinnerView)
	}
	box := theme.OverlayBox.Render(lines)

	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

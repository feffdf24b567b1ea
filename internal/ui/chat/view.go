// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/datastreams-knu/knubot-tui/internal/ui/components"
)

// View renders the conversation view.
func (m *Model) View() string {
	if !m.ready {
		return ""
	}

	mode := m.DisplayMode()

	// The blocking overlay replaces the whole view.
	if mode.Blocking {
		return components.RenderOverlay(
			m.theme, components.OverlayHistoryLoading, m.spinner.View(), m.width, m.height)
	}

	if m.showGuide {
		return components.RenderUsageGuide(m.theme, m.width, m.height)
	}

	var body string
	if mode.Screen == ScreenIntro {
		body = m.viewIntro()
	} else {
		m.viewport.SetContent(m.renderTranscript())
		body = m.viewport.View()
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		body,
		m.viewComposer(),
	)

	if m.toasts.HasToasts() {
		// Toasts draw over the view; lipgloss has no true z-order so the
		// stack replaces the lower-right region.
		return lipgloss.JoinVertical(lipgloss.Left, view,
			components.RenderToastStack(m.theme, m.toasts.Toasts(), m.width, 0))
	}
	return view
}

func (m *Model) viewHeader() string {
	title := m.theme.Header.Width(m.width).Render("경북대 컴퓨터학부 챗봇")
	return title
}

func (m *Model) viewIntro() string {
	var lines []string
	if m.opts.TutorialEnabled {
		lines = append(lines,
			m.theme.IntroTitle.Render(m.tutorialPanel),
			"",
			m.theme.IntroSubtitle.Render("챗봇 더 알아보기 (ctrl+g)"),
			"",
		)
	}
	lines = append(lines, components.RenderStarters(m.theme, m.starterCursor))

	if !m.sess.TooltipSnoozed(time.Now(), m.opts.TooltipSnooze) {
		lines = append(lines, "", m.theme.TooltipHint.Render(components.TooltipHint))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	height := m.viewport.Height
	if height < 1 {
		height = 1
	}
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewComposer() string {
	prompt := m.theme.InputPrompt.Render("> ")
	return m.theme.InputContainer.Width(m.width).Render(prompt + m.input.View())
}

// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
)

// =============================================================================
// INLINE SPINNER
// =============================================================================

// InlineSpinner is the small "답변을 생성하고 있습니다" indicator shown as a
// pending bot bubble while a question is in flight.
type InlineSpinner struct {
	spinner spinner.Model
	theme   *styles.Theme
	message string
	active  bool
	started time.Time
}

// NewInlineSpinner creates an ASCII-compatible inline spinner.
func NewInlineSpinner(theme *styles.Theme) InlineSpinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	return InlineSpinner{
		spinner: s,
		theme:   theme,
		message: "답변을 생성하고 있습니다",
	}
}

// SetMessage sets the text displayed next to the spinner.
func (s *InlineSpinner) SetMessage(msg string) {
	s.message = msg
}

// Start activates the spinner and records the start time.
func (s *InlineSpinner) Start() tea.Cmd {
	s.active = true
	s.started = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *InlineSpinner) Stop() {
	s.active = false
}

// IsActive returns whether the spinner is currently running.
func (s *InlineSpinner) IsActive() bool {
	return s.active
}

// Elapsed returns the duration since the spinner started.
func (s *InlineSpinner) Elapsed() time.Duration {
	if s.started.IsZero() {
		return 0
	}
	return time.Since(s.started)
}

// Update handles spinner tick messages.
func (s InlineSpinner) Update(msg tea.Msg) (InlineSpinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner with its message.
func (s InlineSpinner) View() string {
	if !s.active {
		return ""
	}
	return s.theme.Spinner.Render(s.spinner.View()) + " " +
		s.theme.ThinkingText.Render(s.message+"...")
}

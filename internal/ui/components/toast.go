// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the knubot TUI.
//
// This file implements non-blocking toasts. Unlike modal error dialogs,
// toasts appear in a corner and auto-dismiss, so the conversation stays
// usable while a notice is on screen.
package components

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastInfo is a neutral notice (blue)
	ToastInfo ToastKind = iota
	// ToastError is an error toast (red)
	ToastError
	// ToastSuccess confirms a completed action (green)
	ToastSuccess
)

// InfoToastDuration is the auto-dismiss duration for info and success toasts.
const InfoToastDuration = 4 * time.Second

// ErrorToastDuration is the auto-dismiss duration for error toasts. Longer so
// the user has time to read what went wrong.
const ErrorToastDuration = 6 * time.Second

// Toast is a single non-blocking notification.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the toast should be dismissed.
func (t *Toast) IsExpired() bool {
	return time.Since(t.CreatedAt) >= t.Duration
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager holds the active toast stack, newest first.
type ToastManager struct {
	toasts    []Toast
	nextID    int
	maxToasts int
	mutex     sync.Mutex
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{
		nextID:    1,
		maxToasts: 3,
	}
}

// add pushes a toast and trims the stack to maxToasts.
func (m *ToastManager) add(message string, kind ToastKind, duration time.Duration) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	toast := Toast{
		ID:        m.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
		Duration:  duration,
	}
	m.nextID++

	m.toasts = append([]Toast{toast}, m.toasts...)
	if len(m.toasts) > m.maxToasts {
		m.toasts = m.toasts[:m.maxToasts]
	}
	return toast.ID
}

// AddError adds an error toast.
func (m *ToastManager) AddError(message string) int {
	return m.add(message, ToastError, ErrorToastDuration)
}

// AddSuccess adds a success toast.
func (m *ToastManager) AddSuccess(message string) int {
	return m.add(message, ToastSuccess, InfoToastDuration)
}

// AddInfo adds a neutral notice toast.
func (m *ToastManager) AddInfo(message string) int {
	return m.add(message, ToastInfo, InfoToastDuration)
}

// Tick removes expired toasts and returns the remaining ones.
func (m *ToastManager) Tick() []Toast {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	active := m.toasts[:0]
	for _, toast := range m.toasts {
		if !toast.IsExpired() {
			active = append(active, toast)
		}
	}
	m.toasts = active
	return m.snapshot()
}

// Toasts returns a copy of the current toasts.
func (m *ToastManager) Toasts() []Toast {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.snapshot()
}

// HasToasts returns true if there are any active toasts.
func (m *ToastManager) HasToasts() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.toasts) > 0
}

// Clear removes all toasts.
func (m *ToastManager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.toasts = nil
}

// snapshot copies the stack. Caller must hold the mutex.
func (m *ToastManager) snapshot() []Toast {
	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg is sent periodically to expire toasts.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd returns a command that ticks toasts every 250ms.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// RenderToastStack renders the toasts stacked in the bottom-right corner.
func RenderToastStack(theme *styles.Theme, toasts []Toast, width, height int) string {
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		var style lipgloss.Style
		switch toast.Kind {
		case ToastError:
			style = theme.ToastError
		case ToastSuccess:
			style = theme.ToastSuccess
		default:
			style = theme.ToastInfo
		}
		rendered = append(rendered, style.Render(toast.Message))
	}

	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	positioned := lipgloss.NewStyle().MarginRight(2).MarginBottom(1).Render(stack)

	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Right, lipgloss.Bottom, positioned)
	}
	return positioned
}

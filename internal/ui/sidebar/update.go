// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package sidebar

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/datastreams-knu/knubot-tui/internal/ui/components"
)

// Toast texts for mutation outcomes.
const (
	renameSuccessNotice  = "이름이 변경되었습니다."
	renameFailureNotice  = "이름 변경에 실패했습니다."
	deleteSuccessNotice  = "채팅이 삭제되었습니다."
	deleteFailureNotice  = "삭제에 실패했습니다."
	accountFailureNotice = "회원 탈퇴에 실패했습니다."
)

// Update handles all sidebar messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case components.ToastTickMsg:
		m.toasts.Tick()
		if m.toasts.HasToasts() {
			return m, components.ToastTickCmd()
		}
		return m, nil
	case HistoriesMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.listErr = msg.Err != nil
		if msg.Err != nil {
			m.log.WithError(msg.Err).Warn("history list fetch failed")
			m.entries = nil
		} else {
			m.entries = msg.Entries
		}
		if m.cursor >= len(m.entries) {
			m.cursor = 0
		}
		return m, nil
	case ProfileMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.profileErr = msg.Err != nil
		if msg.Err != nil {
			m.log.WithError(msg.Err).Warn("profile fetch failed")
			m.profile = nil
		} else {
			m.profile = msg.Profile
		}
		return m, nil
	case RenamedMsg:
		return m.handleRenamed(msg)
	case DeletedMsg:
		return m.handleDeleted(msg)
	case AccountDeletedMsg:
		return m.handleAccountDeleted(msg)
	}
	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.working {
		return m, nil
	}

	switch m.prompt {
	case promptRename:
		return m.handleRenameKey(msg)
	case promptDeleteHistory:
		return m.handleConfirmKey(msg, func() (*Model, tea.Cmd) {
			m.working = true
			return m, m.deleteCmd(m.deleteID)
		})
	case promptDeleteAccount1:
		return m.handleConfirmKey(msg, func() (*Model, tea.Cmd) {
			// First yes only advances to the second confirmation.
			m.prompt = promptDeleteAccount2
			return m, nil
		})
	case promptDeleteAccount2:
		return m.handleConfirmKey(msg, func() (*Model, tea.Cmd) {
			m.working = true
			return m, m.deleteAccountCmd()
		})
	}

	if !m.sess.Authenticated() {
		return m, nil
	}

	switch msg.String() {
	case "h":
		m.tab = TabHistory
	case "p":
		m.tab = TabProfile
	case "up", "k":
		if m.tab == TabHistory && m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.tab == TabHistory && m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		if m.tab == TabHistory && m.cursor < len(m.entries) {
			id := m.entries[m.cursor].ID
			return m, func() tea.Msg { return OpenHistoryMsg{HistoryID: id} }
		}
	case "r":
		if m.tab == TabHistory && m.cursor < len(m.entries) {
			m.prompt = promptRename
			m.renameID = m.entries[m.cursor].ID
			m.rename.SetValue(m.entries[m.cursor].Name)
			m.rename.Focus()
		}
	case "d":
		if m.tab == TabHistory && m.cursor < len(m.entries) {
			m.prompt = promptDeleteHistory
			m.deleteID = m.entries[m.cursor].ID
		}
	case "x":
		if m.tab == TabProfile {
			m.prompt = promptDeleteAccount1
		}
	case "l":
		if m.tab == TabProfile {
			if err := m.sess.Clear(); err != nil {
				m.log.WithError(err).Warn("failed to clear session on logout")
			}
			return m, func() tea.Msg { return LogoutMsg{} }
		}
	}
	return m, nil
}

func (m *Model) handleRenameKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt = promptNone
		m.rename.Blur()
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.rename.Value())
		if name == "" {
			// Only client-side check: a name is required.
			m.toasts.AddError("이름을 입력해주세요.")
			return m, components.ToastTickCmd()
		}
		m.prompt = promptNone
		m.rename.Blur()
		m.working = true
		return m, m.renameCmd(m.renameID, name)
	}
	var cmd tea.Cmd
	m.rename, cmd = m.rename.Update(msg)
	return m, cmd
}

// handleConfirmKey runs yes on "y", cancels on "n" or escape.
func (m *Model) handleConfirmKey(msg tea.KeyMsg, yes func() (*Model, tea.Cmd)) (*Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return yes()
	case "n", "N", "esc":
		m.prompt = promptNone
		return m, nil
	}
	return m, nil
}

// =============================================================================
// MUTATION RESULTS
// =============================================================================

func (m *Model) handleRenamed(msg RenamedMsg) (*Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}
	m.working = false
	if msg.Err != nil {
		// No local mutation on failure, the list stays as fetched.
		m.log.WithError(msg.Err).Warn("rename failed")
		m.toasts.AddError(renameFailureNotice)
		return m, components.ToastTickCmd()
	}
	m.toasts.AddSuccess(renameSuccessNotice)
	return m, tea.Batch(m.fetchHistoriesCmd(), components.ToastTickCmd())
}

func (m *Model) handleDeleted(msg DeletedMsg) (*Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}
	m.working = false
	m.prompt = promptNone
	if msg.Err != nil {
		m.log.WithError(msg.Err).Warn("history delete failed")
		m.toasts.AddError(deleteFailureNotice)
		return m, components.ToastTickCmd()
	}
	m.toasts.AddSuccess(deleteSuccessNotice)
	return m, tea.Batch(m.fetchHistoriesCmd(), components.ToastTickCmd())
}

func (m *Model) handleAccountDeleted(msg AccountDeletedMsg) (*Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}
	m.working = false
	m.prompt = promptNone
	if msg.Err != nil {
		m.log.WithError(msg.Err).Warn("account delete failed")
		m.toasts.AddError(accountFailureNotice)
		return m, components.ToastTickCmd()
	}
	return m, func() tea.Msg { return AccountGoneMsg{} }
}

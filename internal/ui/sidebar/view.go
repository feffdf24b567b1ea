// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package sidebar

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/datastreams-knu/knubot-tui/internal/ui/components"
	"github.com/datastreams-knu/knubot-tui/internal/util"
)

// View renders the sidebar panel. Collapsed returns nothing; the app draws
// only the toggle hint.
func (m *Model) View() string {
	if !m.open {
		return ""
	}

	width := m.width
	if width < 24 {
		width = 24
	}
	inner := width - 4

	var b strings.Builder

	if !m.sess.Authenticated() {
		b.WriteString(m.theme.FormLabel.Render("로그인이 필요합니다"))
		b.WriteString("\n\n")
		b.WriteString(m.theme.FormHint.Render("ctrl+l 로그인 화면으로"))
		return m.frame(b.String(), width)
	}

	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	if m.working {
		b.WriteString(m.theme.FormHint.Render(components.OverlayWorking))
		return m.frame(b.String(), width)
	}

	switch m.prompt {
	case promptRename:
		b.WriteString(m.theme.FormLabel.Render("새 이름 입력"))
		b.WriteString("\n")
		b.WriteString(m.rename.View())
		b.WriteString("\n")
		b.WriteString(m.theme.FormHint.Render("enter 저장 / esc 취소"))
	case promptDeleteHistory:
		b.WriteString(m.theme.FormError.Render("이 채팅을 삭제할까요? (y/n)"))
	case promptDeleteAccount1:
		b.WriteString(m.theme.FormError.Render("정말 탈퇴하시겠습니까? (y/n)"))
	case promptDeleteAccount2:
		b.WriteString(m.theme.FormError.Render("모든 대화가 삭제됩니다. 계속할까요? (y/n)"))
	default:
		if m.tab == TabProfile {
			b.WriteString(m.viewProfile())
		} else {
			b.WriteString(m.viewHistories(inner))
		}
	}

	return m.frame(b.String(), width)
}

func (m *Model) frame(content string, width int) string {
	footer := m.theme.SidebarFooter.Render("경북대학교 컴퓨터학부")
	parts := []string{content}
	if toasts := m.viewToasts(); toasts != "" {
		parts = append(parts, "", toasts)
	}
	parts = append(parts, "", footer)
	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return m.theme.Sidebar.Width(width).Render(body)
}

// viewToasts renders active toasts inline. The sidebar is a narrow joined
// panel, so corner placement does not apply here.
func (m *Model) viewToasts() string {
	toasts := m.toasts.Toasts()
	if len(toasts) == 0 {
		return ""
	}
	rows := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		switch toast.Kind {
		case components.ToastError:
			rows = append(rows, m.theme.ToastError.Render(toast.Message))
		case components.ToastSuccess:
			rows = append(rows, m.theme.ToastSuccess.Render(toast.Message))
		default:
			rows = append(rows, m.theme.ToastInfo.Render(toast.Message))
		}
	}
	return strings.Join(rows, "\n")
}

func (m *Model) viewTabs() string {
	history := m.theme.Tab.Render("채팅 기록")
	profile := m.theme.Tab.Render("내 정보")
	if m.tab == TabHistory {
		history = m.theme.TabActive.Render("채팅 기록")
	} else {
		profile = m.theme.TabActive.Render("내 정보")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, history, profile)
}

func (m *Model) viewHistories(width int) string {
	if m.listErr {
		return m.theme.FormError.Render("기록을 불러오지 못했습니다.")
	}
	if len(m.entries) == 0 {
		return m.theme.FormHint.Render("저장된 채팅이 없습니다.")
	}

	rows := make([]string, 0, len(m.entries))
	for i, entry := range m.entries {
		name := util.TruncateWidth(entry.Name, width-12)
		row := name
		if entry.Date != "" {
			row += " " + m.theme.HistoryDate.Render(entry.Date)
		}
		if i == m.cursor {
			rows = append(rows, m.theme.HistorySelected.Render(row))
		} else {
			rows = append(rows, m.theme.HistoryItem.Render(row))
		}
	}
	rows = append(rows, "", m.theme.FormHint.Render("enter 열기 / r 이름변경 / d 삭제"))
	return strings.Join(rows, "\n")
}

func (m *Model) viewProfile() string {
	if m.profileErr {
		return m.theme.FormError.Render("내 정보를 불러오지 못했습니다.")
	}
	if m.profile == nil {
		return m.theme.FormHint.Render("불러오는 중...")
	}

	rows := []string{
		m.theme.ProfileLabel.Render("닉네임") + m.theme.ProfileValue.Render(m.profile.Nickname),
		m.theme.ProfileLabel.Render("가입일") + m.theme.ProfileValue.Render(m.profile.JoinedAt),
		m.theme.ProfileLabel.Render("질문 수") + m.theme.ProfileValue.Render(strconv.Itoa(m.profile.NumQuestions)),
		"",
		m.theme.FormHint.Render("l 로그아웃 / x 회원 탈퇴"),
	}
	return strings.Join(rows, "\n")
}

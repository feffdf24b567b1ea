// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/datastreams-knu/knubot-tui/internal/gateway"
	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
	"github.com/datastreams-knu/knubot-tui/internal/util"
)

// =============================================================================
// USER HOME
// =============================================================================

// userHome is the signed-in landing: start a new conversation, or resume a
// saved one.
type userHome struct {
	entries []gateway.HistoryEntry
	fetched bool
	fetchOK bool
	cursor  int // 0 = new chat row, 1..n = entries
	busy    bool
	theme   *styles.Theme
}

// homeHistoriesMsg delivers the resume list.
type homeHistoriesMsg struct {
	Entries []gateway.HistoryEntry
	Err     error
}

// newHistoryMsg delivers a freshly created conversation id.
type newHistoryMsg struct {
	ID  int
	Err error
}

func newUserHome(theme *styles.Theme) userHome {
	return userHome{theme: theme}
}

func (h userHome) init(gw Gateway) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
		defer cancel()
		entries, err := gw.Histories(ctx)
		return homeHistoriesMsg{Entries: entries, Err: err}
	}
}

func (h userHome) update(msg tea.Msg, gw Gateway) (userHome, tea.Cmd) {
	switch msg := msg.(type) {
	case homeHistoriesMsg:
		h.fetched = true
		h.fetchOK = msg.Err == nil
		h.entries = msg.Entries
		return h, nil

	case newHistoryMsg:
		h.busy = false
		if msg.Err != nil {
			return h, nil
		}
		id := msg.ID
		return h, func() tea.Msg { return openChatMsg{historyID: id} }
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok || h.busy {
		return h, nil
	}

	switch key.String() {
	case "up", "k":
		if h.cursor > 0 {
			h.cursor--
		}
	case "down", "j":
		if h.cursor < len(h.entries) {
			h.cursor++
		}
	case "enter":
		if h.cursor == 0 {
			h.busy = true
			return h, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
				defer cancel()
				id, err := gw.NewHistory(ctx)
				return newHistoryMsg{ID: id, Err: err}
			}
		}
		id := h.entries[h.cursor-1].ID
		return h, func() tea.Msg { return openChatMsg{historyID: id} }
	}
	return h, nil
}

func (h userHome) view(width, height int) string {
	rows := []string{h.theme.IntroTitle.Render("무엇이 궁금하신가요?"), ""}

	newRow := "  새로운 채팅 시작하기"
	if h.cursor == 0 {
		newRow = h.theme.StarterActive.Render("> 새로운 채팅 시작하기")
	} else {
		newRow = h.theme.StarterItem.Render(newRow)
	}
	rows = append(rows, newRow, "")

	switch {
	case !h.fetched:
		rows = append(rows, h.theme.FormHint.Render("기록을 불러오는 중..."))
	case !h.fetchOK:
		rows = append(rows, h.theme.FormError.Render("기록을 불러오지 못했습니다."))
	case len(h.entries) == 0:
		rows = append(rows, h.theme.FormHint.Render("저장된 채팅이 없습니다."))
	default:
		for i, entry := range h.entries {
			label := util.TruncateWidth(entry.Name, width-20)
			if entry.Date != "" {
				label += " " + h.theme.HistoryDate.Render(entry.Date)
			}
			if h.cursor == i+1 {
				rows = append(rows, h.theme.StarterActive.Render("> "+label))
			} else {
				rows = append(rows, h.theme.StarterItem.Render("  "+label))
			}
		}
	}

	if h.busy {
		rows = append(rows, "", h.theme.FormHint.Render("요청 처리 중..."))
	}

	content := strings.Join(rows, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

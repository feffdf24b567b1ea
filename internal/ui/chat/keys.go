// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the conversation view key bindings.
type keyMap struct {
	Submit      key.Binding
	NextStarter key.Binding
	PrevStarter key.Binding
	Guide       key.Binding
	Dismiss     key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "질문 보내기"),
	),
	NextStarter: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "추천 질문 선택"),
	),
	PrevStarter: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "이전 추천 질문"),
	),
	Guide: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "챗봇 더 알아보기"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "닫기"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "위로"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "아래로"),
	),
}

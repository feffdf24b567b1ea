// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
)

func TestToastManagerLifecycle(t *testing.T) {
	m := NewToastManager()
	assert.False(t, m.HasToasts())

	id := m.AddError("이름 변경에 실패했습니다.")
	assert.True(t, m.HasToasts())
	assert.NotZero(t, id)

	toasts := m.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, ToastError, toasts[0].Kind)
	assert.Equal(t, ErrorToastDuration, toasts[0].Duration)

	m.Clear()
	assert.False(t, m.HasToasts())
}

func TestToastManagerNewestFirstAndCapped(t *testing.T) {
	m := NewToastManager()
	m.AddInfo("one")
	m.AddInfo("two")
	m.AddInfo("three")
	m.AddInfo("four")

	toasts := m.Toasts()
	require.Len(t, toasts, 3)
	assert.Equal(t, "four", toasts[0].Message)
	assert.Equal(t, "three", toasts[1].Message)
}

func TestToastTickExpires(t *testing.T) {
	m := NewToastManager()
	m.AddSuccess("kept")

	// Backdate a toast past its duration and confirm Tick drops it.
	m.toasts = append(m.toasts, Toast{
		ID:        99,
		Message:   "stale",
		Kind:      ToastInfo,
		CreatedAt: time.Now().Add(-InfoToastDuration - time.Second),
		Duration:  InfoToastDuration,
	})

	remaining := m.Tick()
	require.Len(t, remaining, 1)
	assert.Equal(t, "kept", remaining[0].Message)
}

func TestInlineSpinner(t *testing.T) {
	theme := styles.NewTheme()
	s := NewInlineSpinner(theme)

	assert.False(t, s.IsActive())
	assert.Empty(t, s.View())

	cmd := s.Start()
	assert.NotNil(t, cmd)
	assert.True(t, s.IsActive())
	assert.Contains(t, s.View(), "답변을 생성하고 있습니다")

	s.Stop()
	assert.Empty(t, s.View())
}

func TestRenderOverlay(t *testing.T) {
	theme := styles.NewTheme()

	out := RenderOverlay(theme, OverlayHistoryLoading, "", 80, 24)
	assert.Contains(t, out, "챗봇의 전원을 키고 있습니다")

	out = RenderOverlay(theme, OverlayWorking, "|", 0, 0)
	assert.Contains(t, out, "요청 처리 중")
}

func TestRenderStarters(t *testing.T) {
	theme := styles.NewTheme()

	out := RenderStarters(theme, 0)
	assert.Contains(t, out, "> 해외 인턴십 정보 알려줘")
	assert.Contains(t, out, "동계 계절학기 수강신청 언제야")

	// Cursor off the list highlights nothing.
	out = RenderStarters(theme, -1)
	assert.NotContains(t, out, ">")
}

func TestRandomTutorialPanel(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[RandomTutorialPanel()] = true
	}
	for panel := range seen {
		assert.Contains(t, tutorialPanels, panel)
	}
}

func TestRenderUsageGuide(t *testing.T) {
	theme := styles.NewTheme()
	out := RenderUsageGuide(theme, 100, 40)
	assert.Contains(t, out, "사용 설명서")
	assert.Contains(t, out, "2024년 1월 1일")
}

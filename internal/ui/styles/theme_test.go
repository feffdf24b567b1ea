// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTheme(t *testing.T) {
	th := NewTheme()
	require.NotNil(t, th)

	// Styles must render without panicking even before a size is set.
	assert.NotPanics(t, func() {
		_ = th.UserBubble.Render("안녕하세요")
		_ = th.ToastError.Render("오류")
		_ = th.OverlayBox.Render("로딩 중")
	})
}

func TestLayoutMode(t *testing.T) {
	th := NewTheme()

	th.SetSize(60, 24)
	assert.Equal(t, LayoutNarrow, th.GetLayoutMode())

	th.SetSize(70, 24)
	assert.Equal(t, LayoutWide, th.GetLayoutMode())

	th.SetSize(120, 40)
	assert.Equal(t, LayoutWide, th.GetLayoutMode())
	assert.Equal(t, 120, th.Width)
	assert.Equal(t, 40, th.Height)
}

// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	AuthorLabel lipgloss.Style
	LinkText    lipgloss.Style
	ImageText   lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// INTRO SCREEN STYLES
	// ==========================================================================

	IntroBox      lipgloss.Style
	IntroTitle    lipgloss.Style
	IntroSubtitle lipgloss.Style
	StarterItem   lipgloss.Style
	StarterActive lipgloss.Style
	TooltipHint   lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar         lipgloss.Style
	SidebarFooter   lipgloss.Style
	Tab             lipgloss.Style
	TabActive       lipgloss.Style
	HistoryItem     lipgloss.Style
	HistorySelected lipgloss.Style
	HistoryDate     lipgloss.Style
	ProfileLabel    lipgloss.Style
	ProfileValue    lipgloss.Style

	// ==========================================================================
	// OVERLAY AND SPINNER STYLES
	// ==========================================================================

	OverlayBox   lipgloss.Style
	OverlayText  lipgloss.Style
	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// ==========================================================================
	// TOAST STYLES
	// ==========================================================================

	ToastError   lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastInfo    lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FormBox      lipgloss.Style
	FormLabel    lipgloss.Style
	FormHint     lipgloss.Style
	FormError    lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Brown).
		Background(Peach).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Brown)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		Background(BotBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.AuthorLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.LinkText = lipgloss.NewStyle().
		Foreground(BrickRed).
		Underline(true)

	t.ImageText = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(PaperEdge).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(BrickRed).
		Bold(true)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Intro screen
	t.IntroBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Peach).
		Padding(1, 4).
		Align(lipgloss.Center)

	t.IntroTitle = lipgloss.NewStyle().
		Foreground(Brown).
		Bold(true)

	t.IntroSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StarterItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.StarterActive = lipgloss.NewStyle().
		Background(Peach).
		Foreground(Brown).
		Bold(true).
		Padding(0, 1)

	t.TooltipHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		Background(PaperDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(PaperEdge).
		Padding(0, 1)

	t.SidebarFooter = lipgloss.NewStyle().
		Foreground(TextMuted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(PaperEdge).
		Padding(0, 1)

	t.Tab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)

	t.TabActive = lipgloss.NewStyle().
		Foreground(BrickRed).
		Bold(true).
		Underline(true).
		Padding(0, 2)

	t.HistoryItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.HistorySelected = lipgloss.NewStyle().
		Background(Peach).
		Foreground(Brown).
		Bold(true).
		Padding(0, 1)

	t.HistoryDate = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ProfileLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Width(10)

	t.ProfileValue = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	// Overlay and spinner
	t.OverlayBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Peach).
		Background(Paper).
		Padding(1, 4).
		Align(lipgloss.Center)

	t.OverlayText = lipgloss.NewStyle().
		Foreground(Brown).
		Bold(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(BrickRed)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Toasts
	t.ToastError = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Danger).
		Bold(true).
		Padding(0, 2)

	t.ToastSuccess = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Success).
		Bold(true).
		Padding(0, 2)

	t.ToastInfo = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Info).
		Padding(0, 2)

	// Forms
	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Peach).
		Padding(1, 3)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(Brown).
		Bold(true)

	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.FormError = lipgloss.NewStyle().
		Foreground(Danger)

	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(PaperEdge).
		Padding(0, 2).
		MarginRight(1)

	t.ButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(BrickRed).
		Bold(true).
		Padding(0, 2).
		MarginRight(1)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 70 columns, sidebar collapses
	LayoutWide
)

// GetLayoutMode returns the current layout mode based on width. Below the
// narrow threshold the sidebar renders as an overlay instead of a column.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 70 {
		return LayoutNarrow
	}
	return LayoutWide
}

// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the knubot TUI.
// The palette mirrors the department's web client: warm peach brand tones on
// a paper background. All colors use Lip Gloss AdaptiveColor so light and
// dark terminals both stay readable.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// BRAND COLORS
// =============================================================================

// Peach - Primary brand color, headers, user bubbles
var Peach = lipgloss.AdaptiveColor{Light: "#FCB9AA", Dark: "#FCB9AA"}

// Brown - Primary text on brand surfaces
var Brown = lipgloss.AdaptiveColor{Light: "#7E2B24", Dark: "#E8A79B"}

// BrickRed - Accent for actions, links, active tab underline
var BrickRed = lipgloss.AdaptiveColor{Light: "#B8433A", Dark: "#D9706A"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Paper - Main background
var Paper = lipgloss.AdaptiveColor{Light: "#F3F2EC", Dark: "#262422"}

// PaperDim - Sidebar and footer surface
var PaperDim = lipgloss.AdaptiveColor{Light: "#EAE6DA", Dark: "#1E1C1A"}

// PaperEdge - Borders and separators
var PaperEdge = lipgloss.AdaptiveColor{Light: "#DCD8C8", Dark: "#3A3633"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#3B2A27", Dark: "#E7DFD8"}

// TextSecondary - Labels, dates, meta lines
var TextSecondary = lipgloss.AdaptiveColor{Light: "#7A6E66", Dark: "#A89C93"}

// TextMuted - Hints and placeholders
var TextMuted = lipgloss.AdaptiveColor{Light: "#A39A90", Dark: "#756B63"}

// TextInverse - Text on saturated backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#262422"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Danger - Errors, delete confirmations
var Danger = lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#F08A7E"}

// Success - Completed renames, saved state
var Success = lipgloss.AdaptiveColor{Light: "#3E7C4F", Dark: "#8FD0A0"}

// Info - Neutral notices
var Info = lipgloss.AdaptiveColor{Light: "#4A6FA5", Dark: "#9BB8E0"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User turns render in the brand peach, bot turns on plain paper.
var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#FCB9AA", Dark: "#6B3A32"}
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#7E2B24", Dark: "#F5D9D2"}
var BotBubbleBg = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#33302D"}
var BotBubbleFg = lipgloss.AdaptiveColor{Light: "#3B2A27", Dark: "#E7DFD8"}
var BubbleBorder = lipgloss.AdaptiveColor{Light: "#DCD8C8", Dark: "#4A453F"}

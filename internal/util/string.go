// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides shared string helpers for knubot.
package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: History names and chatbot answers are mostly Korean, so every
// truncation in the UI must be display-width aware. Hangul occupies two
// terminal columns; naive len() or rune slicing breaks alignment.

// TruncateWidth truncates a string to a maximum display width, appending an
// ellipsis when anything was cut. Safe for CJK text.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// PadWidth pads a string with spaces up to the given display width.
// Strings already wider than width are returned unchanged.
func PadWidth(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// CollapseSpace collapses runs of whitespace into single spaces and trims
// the ends. Used when a long answer is squeezed into a one-line preview.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

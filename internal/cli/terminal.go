// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection and handling for the knubot CLI.
//
// These utilities ensure proper behavior in different environments:
// - Interactive terminals (full colors, prompts)
// - Piped output (no colors, no prompts)
// - CI environments (respects NO_COLOR)
package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
// Use this to determine if interactive prompts are possible.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
// Use this to determine if colored output should be used.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// =============================================================================
// TERMINAL WIDTH
// =============================================================================

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the minimum width used for wrapping
	MinTerminalWidth = 40
)

// GetTerminalWidth returns the current terminal width.
// Returns DefaultTerminalWidth (80) if width cannot be determined.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}

// =============================================================================
// COLOR CONTROL
// =============================================================================

var (
	colorOnce    sync.Once
	colorEnabled bool
)

// ColorEnabled reports whether colored output should be emitted. Colors are
// disabled for piped output and when NO_COLOR is set.
func ColorEnabled() bool {
	colorOnce.Do(func() {
		if _, set := os.LookupEnv("NO_COLOR"); set {
			colorEnabled = false
			return
		}
		if !IsStdoutTTY() {
			colorEnabled = false
			return
		}
		colorEnabled = termenv.ColorProfile() != termenv.Ascii
	})
	return colorEnabled
}

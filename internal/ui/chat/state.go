// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

// =============================================================================
// DISPLAY MODE DERIVATION
// =============================================================================

// Screen is the base layer of the conversation view.
type Screen int

const (
	// ScreenIntro shows the landing content: tutorial panel, starter
	// questions, composer.
	ScreenIntro Screen = iota
	// ScreenActive shows the transcript and composer.
	ScreenActive
)

// DisplayMode is the fully derived render state of the conversation view.
// It is a pure function of three flags and carries no state of its own.
type DisplayMode struct {
	Screen Screen
	// Inline shows the pending-answer spinner bubble at the bottom of the
	// transcript.
	Inline bool
	// Blocking covers the whole view while saved turns are fetched. Input
	// is discarded while it is up.
	Blocking bool
}

// Derive computes the display mode from the view flags.
//
// The in-flight and history-loading flags are disjoint by construction; if
// both are somehow set, blocking wins and the derivation stays total rather
// than panicking.
func Derive(empty, inflight, historyLoading bool) DisplayMode {
	mode := DisplayMode{Screen: ScreenActive}
	if empty {
		mode.Screen = ScreenIntro
	}
	if historyLoading {
		mode.Blocking = true
		return mode
	}
	if inflight {
		mode.Inline = true
	}
	return mode
}

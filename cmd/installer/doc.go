// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command installer is the knubot setup wizard.
//
// It walks a new user through first-run setup:
//
//   - System checks (operating system, terminal, disk space)
//   - Backend address configuration
//   - Writing ~/.knubot/config.toml
//
// The wizard runs as a small Bubble Tea program. For environments without
// an interactive terminal, --text runs a plain line-based setup instead.
//
// Usage:
//
//	knubot-setup           Interactive wizard
//	knubot-setup --text    Plain text setup
package main

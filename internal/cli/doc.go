// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution for knubot.
//
// This package implements the non-TUI commands of the knubot terminal
// client: one-shot questions, a plain-terminal chat REPL, session
// management (login, logout, signup), and saved conversation management.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed command-line arguments with global and command-specific flags
//   - Deps: The shared stack (config, local store, session, backend client)
//
// # Usage
//
// Parse and execute commands:
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdAsk:
//	    os.Exit(cli.HandleAsk(args))
//	case cli.CmdChat:
//	    os.Exit(cli.HandleChat(args))
//	// ... other commands
//	}
//
// # Commands Overview
//
//   - ask: Single question (guest, or inside a saved conversation)
//   - chat: Interactive plain-terminal chat
//   - login / logout / signup: Member session management
//   - history: List, show, rename, and delete saved conversations
//   - status: Backend and session status
package cli

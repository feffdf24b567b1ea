// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main provides the knubot setup wizard - a guided first-run experience.
package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const version = "1.0.0"

func main() {
	// Check for --text flag for copy/paste friendly output
	for _, arg := range os.Args[1:] {
		if arg == "--text" || arg == "-t" || arg == "--simple" {
			runTextSetup()
			return
		}
		if arg == "--help" || arg == "-h" {
			printHelp()
			return
		}
		if arg == "--version" || arg == "-v" {
			fmt.Printf("knubot setup v%s\n", version)
			return
		}
	}

	if !isTerminal() {
		fmt.Println("The knubot setup wizard requires an interactive terminal.")
		fmt.Println("Run with --text for a simple text-based setup.")
		os.Exit(1)
	}

	p := tea.NewProgram(
		NewSetup(),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running setup: %v\n", err)
		os.Exit(1)
	}
}

// printHelp shows usage information
func printHelp() {
	fmt.Println(`knubot setup v` + version + `

Usage: knubot-setup [OPTIONS]

Options:
  --text, -t     Run in text mode (copy/paste friendly)
  --help, -h     Show this help
  --version, -v  Show version

The default mode is an interactive wizard. Use --text for a simple
text-based setup that's easy to copy/paste.`)
}

// isTerminal checks if we're running in an interactive terminal
func isTerminal() bool {
	if runtime.GOOS == "windows" {
		return true // Windows terminal detection is complex, assume yes
	}

	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// =============================================================================
// TEXT MODE SETUP (Copy/Paste Friendly)
// =============================================================================

func runTextSetup() {
	fmt.Println("knubot setup (text mode)")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("Backend address [%s]: ", defaultBaseURL)
	line, _ := reader.ReadString('\n')
	baseURL := strings.TrimSpace(line)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	if err := checkBackend(baseURL); err != nil {
		fmt.Printf("warning: backend not reachable: %v\n", err)
		fmt.Println("Continuing anyway; knubot will retry on use.")
	} else {
		fmt.Println("Backend reachable.")
	}

	path, err := writeConfig(baseURL)
	if err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Config written to %s\n", path)
	fmt.Println("Run 'knubot' to start chatting.")
}

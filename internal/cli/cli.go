// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for knubot.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdLogin
	CmdLogout
	CmdSignup
	CmdHistory
	CmdStatus
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool
	BaseURL string

	// Command-specific
	Query      string
	Subcommand string
	HistoryID  int

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `knubot - 경북대학교 컴퓨터학부 챗봇 terminal client

Knubot is a terminal client for the KNU CS department chatbot.

It provides:
  - A full-screen chat interface (guest and member modes)
  - Saved conversation histories for signed-in members
  - One-shot questions and a lightweight REPL for scripting

Usage:
  knubot                       Start the full-screen interface (default)
  knubot ask "question"        Ask a single question
  knubot chat                  Interactive chat in the plain terminal
  knubot login                 Sign in and store the access token
  knubot logout                Sign out and clear the access token
  knubot signup                Create a member account
  knubot history [subcommand]  Manage saved conversations
  knubot status, s             Show connection and session status
  knubot version               Show version information
  knubot help                  Show this help

History Commands:
  knubot history list           List saved conversations (default)
  knubot history show <id>      Print a saved conversation
  knubot history rename <id> <name>  Rename a conversation
  knubot history delete <id> --confirm  Delete a conversation

Global Flags:
  --base-url URL  Override the backend address (KNUBOT_BASE_URL)
  --json          Output in JSON format where supported
  -q, --quiet     Minimal output
  -v, --verbose   Debug output

Examples:
  knubot                              Start the chat interface
  knubot ask "심컴 졸업요건 알려줘"      Ask without signing in
  knubot ask --history 12 "계속 설명해줘"  Ask inside a saved conversation
  knubot chat                         Plain-terminal chat session
  knubot login                        Sign in (prompts for email/password)
  knubot history list                 List saved conversations
  knubot history rename 3 "졸업요건"    Rename conversation 3
  knubot status                       Check backend reachability

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("knubot version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parse(os.Args[1:])
}

func parse(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	// No remaining args: default to the full-screen interface.
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "ask":
		parseAskArgs(&parsedArgs, remaining)
		return CmdAsk, parsedArgs

	case "chat":
		return CmdChat, parsedArgs

	case "login", "signin":
		return CmdLogin, parsedArgs

	case "logout", "signout":
		return CmdLogout, parsedArgs

	case "signup", "sign-up", "register":
		return CmdSignup, parsedArgs

	case "history", "histories":
		if len(remaining) > 0 {
			parsedArgs.Subcommand = strings.ToLower(remaining[0])
			parsedArgs.Raw = remaining[1:]
		} else {
			parsedArgs.Subcommand = "list"
		}
		return CmdHistory, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command: treat the whole line as a question, matching the
		// web client where typing anywhere just asks.
		parsedArgs.Query = strings.Join(append([]string{cmd}, remaining...), " ")
		return CmdAsk, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--base-url":
			if i+1 < len(args) {
				i++
				parsedArgs.BaseURL = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--base-url=") {
				parsedArgs.BaseURL = strings.TrimPrefix(arg, "--base-url=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseAskArgs parses ask command specific arguments.
func parseAskArgs(args *Args, remaining []string) {
	var query []string

	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "--history", "-H":
			if i+1 < len(remaining) {
				i++
				if n, err := strconv.Atoi(remaining[i]); err == nil && n > 0 {
					args.HistoryID = n
				}
			}
		default:
			if strings.HasPrefix(arg, "--history=") {
				if n, err := strconv.Atoi(strings.TrimPrefix(arg, "--history=")); err == nil && n > 0 {
					args.HistoryID = n
				}
			} else if !strings.HasPrefix(arg, "-") {
				query = append(query, arg)
			}
		}
		i++
	}

	args.Query = strings.Join(query, " ")
}

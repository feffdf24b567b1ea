// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the knubot CLI.
//
// Handles the "knubot chat" command, a plain-terminal REPL alternative to
// the full-screen interface. Signed-in members get a saved conversation;
// guests chat without one.
//
// Command: chat
// Short:   Start an interactive chat session
//
// Interactive Commands (during chat):
//
//	/help, /h           Show available commands
//	/new, /n            Start a fresh saved conversation (members)
//	/quit, /q           Exit chat
//	Ctrl+C, Ctrl+D      Exit chat
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/datastreams-knu/knubot-tui/internal/config"
	"github.com/datastreams-knu/knubot-tui/internal/gateway"
	"github.com/datastreams-knu/knubot-tui/internal/transcript"
	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Brown).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.BrickRed).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Info)

	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Danger)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.Dir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
// Supports history navigation with arrow keys.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists input history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT LOOP
// =============================================================================

// HandleChat executes the chat command. Returns the process exit code.
func HandleChat(args Args) int {
	deps, err := OpenDeps(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer deps.Close()

	if !IsTTY() {
		fmt.Fprintln(os.Stderr, "chat requires an interactive terminal; use 'knubot ask' instead")
		return 1
	}

	input := NewChatCLI()
	defer input.Close()

	member := deps.Session.Authenticated()
	historyID := 0

	if !args.Quiet {
		fmt.Println(welcomeStyle.Render("경북대 컴퓨터학부 챗봇"))
		if member {
			fmt.Println(infoStyle.Render("로그인 상태입니다. 대화가 채팅 기록에 저장됩니다."))
		} else {
			fmt.Println(infoStyle.Render("게스트 모드입니다. 대화가 저장되지 않습니다."))
		}
		fmt.Println(infoStyle.Render("/help 로 명령을 확인하세요."))
		fmt.Println()
	}

	ctx := context.Background()
	prompt := promptStyle.Render("나> ")

	for {
		line, err := input.ReadInput(prompt)
		if err != nil {
			// Ctrl+C or Ctrl+D
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
			}
			return 0
		}

		question := strings.TrimSpace(line)
		if question == "" {
			continue
		}

		if strings.HasPrefix(question, "/") {
			if quit := handleChatCommand(question, member, &historyID); quit {
				return 0
			}
			continue
		}

		// A member's first question opens a fresh saved conversation.
		if member && historyID == 0 {
			id, err := deps.Client.NewHistory(ctx)
			if err != nil {
				fmt.Println(warningStyle.Render(transcript.ServerProblemNotice))
				continue
			}
			historyID = id
		}

		reply, err := askOnce(ctx, deps, member, historyID, question)
		if err != nil {
			fmt.Println(warningStyle.Render(transcript.ServerProblemNotice))
			if args.Verbose {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
			continue
		}

		fmt.Println()
		displayAnswer(replyMarkdown(reply))
		fmt.Println()
	}
}

func askOnce(ctx context.Context, deps *Deps, member bool, historyID int, question string) (*gateway.Reply, error) {
	if member && historyID > 0 {
		return deps.Client.AskInHistory(ctx, historyID, question)
	}
	return deps.Client.Ask(ctx, question)
}

// handleChatCommand processes a slash command; returns true when the loop
// should exit.
func handleChatCommand(cmd string, member bool, historyID *int) bool {
	switch strings.ToLower(strings.Fields(cmd)[0]) {
	case "/quit", "/q", "/exit":
		return true

	case "/new", "/n":
		if !member {
			fmt.Println(warningStyle.Render("로그인이 필요합니다. (knubot login)"))
			return false
		}
		*historyID = 0
		fmt.Println(infoStyle.Render("다음 질문부터 새 대화가 시작됩니다."))
		return false

	case "/help", "/h":
		fmt.Println(commandStyle.Render("/help") + "  명령 목록")
		fmt.Println(commandStyle.Render("/new") + "   새 대화 시작 (로그인 필요)")
		fmt.Println(commandStyle.Render("/quit") + "  종료")
		return false

	default:
		fmt.Println(warningStyle.Render("알 수 없는 명령입니다: " + cmd))
		return false
	}
}

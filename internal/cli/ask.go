// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler for the knubot CLI.
//
// Handles the "knubot ask" command which sends one question to the chatbot
// backend and prints the answer.
//
// Command: ask [question]
// Short:   Ask a single question
//
// Examples:
//
//	knubot ask "심컴 졸업요건 알려줘"
//	knubot ask --history 12 "계속 설명해줘"
//	knubot ask --json "동계 계절학기 수강신청 언제야"
//
// Flags:
//
//	-H, --history N   Ask inside saved conversation N (members only)
//	--json            Print the raw backend reply as JSON
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/datastreams-knu/knubot-tui/internal/gateway"
	"github.com/datastreams-knu/knubot-tui/internal/transcript"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the shared glamour renderer for answer output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayAnswer prints an answer, rendering markdown only when stdout is a
// TTY so piped output stays clean.
func displayAnswer(content string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(content))
		return
	}
	fmt.Println(content)
}

// replyMarkdown converts a backend reply into display markdown. The part
// order mirrors the chat view: answer, images, disclaimer, references.
func replyMarkdown(reply *gateway.Reply) string {
	var parts []string

	if answer := strings.TrimSpace(reply.Answer); answer != "" {
		parts = append(parts, answer)
	}
	if len(reply.Images) > 0 && reply.Images[0] != transcript.NoContentSentinel {
		for _, url := range reply.Images {
			parts = append(parts, fmt.Sprintf("![이미지](%s)", url))
		}
	}
	if disclaimer := strings.TrimSpace(reply.Disclaimer); disclaimer != "" {
		parts = append(parts, "*"+disclaimer+"*")
	}
	if references := strings.TrimSpace(reply.References); references != "" {
		parts = append(parts, references)
	}

	return strings.Join(parts, "\n\n")
}

// HandleAsk executes the ask command. Returns the process exit code.
func HandleAsk(args Args) int {
	question := strings.TrimSpace(args.Query)
	if question == "" {
		fmt.Fprintln(os.Stderr, "usage: knubot ask \"question\"")
		return 1
	}

	deps, err := OpenDeps(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer deps.Close()

	ctx := context.Background()

	var reply *gateway.Reply
	if args.HistoryID > 0 {
		reply, err = deps.Client.AskInHistory(ctx, args.HistoryID, question)
	} else {
		reply, err = deps.Client.Ask(ctx, question)
	}
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "로그인이 필요합니다. (knubot login)")
			return 1
		}
		fmt.Fprintln(os.Stderr, transcript.ServerProblemNotice)
		if args.Verbose {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		return 1
	}

	if args.JSON {
		out, err := json.MarshalIndent(reply, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		fmt.Println(string(out))
		return 0
	}

	displayAnswer(replyMarkdown(reply))
	return 0
}

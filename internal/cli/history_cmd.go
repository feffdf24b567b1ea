// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - Saved conversation management for the knubot CLI.
//
// Command: history [subcommand]
// Short:   Manage saved conversations (members only)
//
// Subcommands:
//
//	list (default)      List saved conversations
//	show <id>           Print a saved conversation
//	rename <id> <name>  Rename a conversation
//	delete <id>         Delete a conversation (requires --confirm)
//
// Examples:
//
//	knubot history
//	knubot history show 3
//	knubot history rename 3 "졸업요건"
//	knubot history delete 3 --confirm
//	knubot history list --json
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/datastreams-knu/knubot-tui/internal/gateway"
	"github.com/datastreams-knu/knubot-tui/internal/transcript"
	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
	"github.com/datastreams-knu/knubot-tui/internal/util"
)

var (
	historyIDStyle = lipgloss.NewStyle().
			Foreground(styles.Brown).
			Bold(true).
			Width(6)

	historyDateStyle = lipgloss.NewStyle().
				Foreground(styles.TextMuted)

	historyQuestionStyle = lipgloss.NewStyle().
				Foreground(styles.Brown).
				Bold(true)
)

// HandleHistory executes the history command. Returns the process exit code.
func HandleHistory(args Args) int {
	deps, err := OpenDeps(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer deps.Close()

	if !deps.Session.Authenticated() {
		fmt.Fprintln(os.Stderr, "로그인이 필요합니다. (knubot login)")
		return 1
	}

	ctx := context.Background()

	switch args.Subcommand {
	case "list", "ls", "l", "":
		return historyList(ctx, deps, args)
	case "show":
		return historyShow(ctx, deps, args)
	case "rename":
		return historyRename(ctx, deps, args)
	case "delete", "rm":
		return historyDelete(ctx, deps, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown history subcommand: %s\n", args.Subcommand)
		fmt.Fprintln(os.Stderr, "usage: knubot history [list|show|rename|delete]")
		return 1
	}
}

func historyList(ctx context.Context, deps *Deps, args Args) int {
	entries, err := deps.Client.Histories(ctx)
	if err != nil {
		return historyFail(err, args)
	}

	if args.JSON {
		out, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Println(string(out))
		return 0
	}

	if len(entries) == 0 {
		fmt.Println("저장된 대화가 없습니다.")
		return 0
	}

	width := GetTerminalWidth()
	nameWidth := width - 20
	for _, e := range entries {
		// Pad names so the date column lines up.
		name := util.PadWidth(util.TruncateWidth(e.Name, nameWidth), nameWidth)
		fmt.Printf("%s %s  %s\n",
			historyIDStyle.Render(strconv.Itoa(e.ID)),
			name,
			historyDateStyle.Render(e.Date))
	}
	return 0
}

func historyShow(ctx context.Context, deps *Deps, args Args) int {
	id, ok := historyIDArg(args.Raw)
	if !ok {
		fmt.Fprintln(os.Stderr, "usage: knubot history show <id>")
		return 1
	}

	turns, err := deps.Client.HistoryTurns(ctx, id)
	if err != nil {
		return historyFail(err, args)
	}

	if args.JSON {
		out, _ := json.MarshalIndent(turns, "", "  ")
		fmt.Println(string(out))
		return 0
	}

	for i, turn := range turns {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(historyQuestionStyle.Render("나: ") + turn.Question)
		fmt.Println()
		displayAnswer(replyMarkdown(&turn.Answer))
	}
	return 0
}

func historyRename(ctx context.Context, deps *Deps, args Args) int {
	id, ok := historyIDArg(args.Raw)
	if !ok || len(args.Raw) < 2 {
		fmt.Fprintln(os.Stderr, "usage: knubot history rename <id> <name>")
		return 1
	}
	name := strings.TrimSpace(strings.Join(args.Raw[1:], " "))
	if name == "" {
		fmt.Fprintln(os.Stderr, "이름을 입력해주세요.")
		return 1
	}

	if err := deps.Client.RenameHistory(ctx, id, name); err != nil {
		return historyFail(err, args)
	}
	fmt.Println("이름이 변경되었습니다.")
	return 0
}

func historyDelete(ctx context.Context, deps *Deps, args Args) int {
	id, ok := historyIDArg(args.Raw)
	if !ok {
		fmt.Fprintln(os.Stderr, "usage: knubot history delete <id> --confirm")
		return 1
	}

	confirmed := false
	for _, a := range args.Raw {
		if a == "--confirm" || a == "-y" {
			confirmed = true
		}
	}
	if !confirmed {
		fmt.Fprintln(os.Stderr, "삭제하려면 --confirm 을 붙여주세요.")
		return 1
	}

	if err := deps.Client.DeleteHistory(ctx, id); err != nil {
		return historyFail(err, args)
	}
	fmt.Println("삭제되었습니다.")
	return 0
}

// historyIDArg extracts the first positional numeric argument.
func historyIDArg(raw []string) (int, bool) {
	for _, a := range raw {
		if strings.HasPrefix(a, "-") {
			continue
		}
		if n, err := strconv.Atoi(a); err == nil && n > 0 {
			return n, true
		}
		break
	}
	return 0, false
}

func historyFail(err error, args Args) int {
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

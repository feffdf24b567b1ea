// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command handler for the knubot CLI.
//
// Command: status
// Short:   Show connection and session status
// Aliases: s
//
// Examples:
//
//	knubot status
//	knubot status --json
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
)

var (
	statusLabelStyle = lipgloss.NewStyle().
				Foreground(styles.TextSecondary).
				Width(14)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(styles.Success)

	statusWarnStyle = lipgloss.NewStyle().
			Foreground(styles.Danger)
)

// statusReport is the JSON shape of the status command output.
type statusReport struct {
	Version      string `json:"version"`
	Backend      string `json:"backend"`
	StorePath    string `json:"store_path"`
	LoggedIn     bool   `json:"logged_in"`
	Nickname     string `json:"nickname,omitempty"`
	JoinedAt     string `json:"joined_at,omitempty"`
	NumQuestions int    `json:"num_of_question,omitempty"`
}

// HandleStatus executes the status command. Returns the process exit code.
func HandleStatus(args Args) int {
	deps, err := OpenDeps(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer deps.Close()

	report := statusReport{
		Version:   Version,
		Backend:   deps.Client.BaseURL(),
		StorePath: deps.Store.Path(),
		LoggedIn:  deps.Session.Authenticated(),
	}

	// The member route doubles as a reachability check when signed in.
	var memberErr error
	if report.LoggedIn {
		profile, err := deps.Client.MemberInfo(context.Background())
		if err != nil {
			memberErr = err
			report.LoggedIn = deps.Session.Authenticated()
		} else {
			report.Nickname = profile.Nickname
			report.JoinedAt = profile.JoinedAt
			report.NumQuestions = profile.NumQuestions
		}
	}

	if args.JSON {
		out, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(out))
		return 0
	}

	fmt.Println(statusLabelStyle.Render("version") + report.Version)
	fmt.Println(statusLabelStyle.Render("backend") + report.Backend)
	fmt.Println(statusLabelStyle.Render("store") + report.StorePath)

	if report.LoggedIn {
		fmt.Println(statusLabelStyle.Render("session") + statusOKStyle.Render("로그인"))
		if memberErr != nil {
			fmt.Println(statusLabelStyle.Render("backend ok") + statusWarnStyle.Render("연결 실패"))
			if args.Verbose {
				fmt.Fprintf(os.Stderr, "error: %v\n", memberErr)
			}
		} else {
			fmt.Println(statusLabelStyle.Render("닉네임") + report.Nickname)
			fmt.Println(statusLabelStyle.Render("가입일") + report.JoinedAt)
			fmt.Println(statusLabelStyle.Render("질문 수") + fmt.Sprintf("%d", report.NumQuestions))
		}
	} else {
		fmt.Println(statusLabelStyle.Render("session") + "게스트")
	}

	return 0
}

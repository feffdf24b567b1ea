// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datastreams-knu/knubot-tui/internal/gateway"
	"github.com/datastreams-knu/knubot-tui/internal/transcript"
)

// =============================================================================
// PARSE TESTS
// =============================================================================

func TestParse_DefaultsToTUI(t *testing.T) {
	cmd, _ := parse(nil)
	assert.Equal(t, CmdTUI, cmd)
}

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"tui explicit", []string{"tui"}, CmdTUI},
		{"ask", []string{"ask", "질문"}, CmdAsk},
		{"chat", []string{"chat"}, CmdChat},
		{"login", []string{"login"}, CmdLogin},
		{"signin alias", []string{"signin"}, CmdLogin},
		{"logout", []string{"logout"}, CmdLogout},
		{"signup", []string{"sign-up"}, CmdSignup},
		{"history", []string{"history"}, CmdHistory},
		{"status alias", []string{"s"}, CmdStatus},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := parse(tt.argv)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestParse_BareVerboseFlagIsNotVersion(t *testing.T) {
	cmd, args := parse([]string{"-v"})
	assert.Equal(t, CmdTUI, cmd)
	assert.True(t, args.Verbose)
}

func TestParse_UnknownCommandBecomesQuestion(t *testing.T) {
	cmd, args := parse([]string{"심컴", "졸업요건", "알려줘"})
	assert.Equal(t, CmdAsk, cmd)
	assert.Equal(t, "심컴 졸업요건 알려줘", args.Query)
}

func TestParse_GlobalFlags(t *testing.T) {
	cmd, args := parse([]string{"--json", "-q", "--base-url", "http://example.com", "status"})
	assert.Equal(t, CmdStatus, cmd)
	assert.True(t, args.JSON)
	assert.True(t, args.Quiet)
	assert.Equal(t, "http://example.com", args.BaseURL)
}

func TestParse_BaseURLEquals(t *testing.T) {
	_, args := parse([]string{"--base-url=http://example.com", "status"})
	assert.Equal(t, "http://example.com", args.BaseURL)
}

func TestParse_AskFlags(t *testing.T) {
	cmd, args := parse([]string{"ask", "--history", "12", "계속", "설명해줘"})
	assert.Equal(t, CmdAsk, cmd)
	assert.Equal(t, 12, args.HistoryID)
	assert.Equal(t, "계속 설명해줘", args.Query)
}

func TestParse_AskHistoryEquals(t *testing.T) {
	_, args := parse([]string{"ask", "--history=3", "질문"})
	assert.Equal(t, 3, args.HistoryID)
	assert.Equal(t, "질문", args.Query)
}

func TestParse_HistorySubcommand(t *testing.T) {
	cmd, args := parse([]string{"history", "rename", "3", "새 이름"})
	assert.Equal(t, CmdHistory, cmd)
	assert.Equal(t, "rename", args.Subcommand)
	assert.Equal(t, []string{"3", "새 이름"}, args.Raw)
}

func TestParse_HistoryDefaultsToList(t *testing.T) {
	_, args := parse([]string{"history"})
	assert.Equal(t, "list", args.Subcommand)
}

// =============================================================================
// REPLY FORMATTING TESTS
// =============================================================================

func TestReplyMarkdown_PartOrder(t *testing.T) {
	reply := &gateway.Reply{
		Answer:     "졸업요건은 다음과 같습니다.",
		Images:     []string{"https://knu.example/img.png"},
		Disclaimer: "정확하지 않을 수 있습니다.",
		References: "https://cse.knu.ac.kr/notice",
	}

	out := replyMarkdown(reply)

	answerIdx := strings.Index(out, "졸업요건")
	imageIdx := strings.Index(out, "![이미지](https://knu.example/img.png)")
	disclaimerIdx := strings.Index(out, "정확하지 않을")
	refIdx := strings.Index(out, "https://cse.knu.ac.kr/notice")

	assert.True(t, answerIdx >= 0 && imageIdx > answerIdx)
	assert.True(t, disclaimerIdx > imageIdx)
	assert.True(t, refIdx > disclaimerIdx)
}

func TestReplyMarkdown_NoContentImagesSkipped(t *testing.T) {
	reply := &gateway.Reply{
		Answer: "답변",
		Images: []string{transcript.NoContentSentinel},
	}
	out := replyMarkdown(reply)
	assert.NotContains(t, out, "![이미지]")
}

func TestReplyMarkdown_EmptyFieldsOmitted(t *testing.T) {
	reply := &gateway.Reply{Answer: "  답변  "}
	assert.Equal(t, "답변", replyMarkdown(reply))
}

// =============================================================================
// HELPER TESTS
// =============================================================================

func TestHistoryIDArg(t *testing.T) {
	id, ok := historyIDArg([]string{"--confirm", "7"})
	assert.True(t, ok)
	assert.Equal(t, 7, id)

	_, ok = historyIDArg([]string{"abc"})
	assert.False(t, ok)

	_, ok = historyIDArg(nil)
	assert.False(t, ok)
}

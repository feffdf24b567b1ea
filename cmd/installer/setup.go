// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	// Colors (the knubot peach-on-paper palette)
	brandPrimary = lipgloss.Color("#7E2B24") // Brown
	brandAccent  = lipgloss.Color("#FCB9AA") // Peach
	brandSuccess = lipgloss.Color("#3E7C4F") // Green
	brandError   = lipgloss.Color("#C0392B") // Red
	textMuted    = lipgloss.Color("#7A6E66") // Gray

	titleStyle = lipgloss.NewStyle().
			Foreground(brandPrimary).
			Bold(true).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(textMuted).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(brandSuccess).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(brandError).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(brandAccent)

	mutedStyle = lipgloss.NewStyle().
			Foreground(textMuted)
)

const defaultBaseURL = "http://localhost:8080"

// minDiskSpace is the free space required for the local store and logs.
const minDiskSpace = 50 * 1024 * 1024

// =============================================================================
// PHASES
// =============================================================================

type phase int

const (
	phaseWelcome phase = iota
	phaseChecks
	phaseConfig
	phaseComplete
	phaseFailed
)

// CheckResult is the outcome of one system check.
type CheckResult struct {
	Name   string
	OK     bool
	Detail string
}

type checkDoneMsg struct {
	index  int
	result CheckResult
}

type configWrittenMsg struct {
	path string
	err  error
}

// =============================================================================
// MODEL
// =============================================================================

// Setup is the wizard model.
type Setup struct {
	phase   phase
	spinner spinner.Model
	input   textinput.Model

	checks    []CheckResult
	checkIdx  int
	baseURL   string
	confPath  string
	failError string

	width  int
	height int
}

// NewSetup creates the wizard in the welcome phase.
func NewSetup() *Setup {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(brandAccent)

	ti := textinput.New()
	ti.Placeholder = defaultBaseURL
	ti.CharLimit = 200
	ti.Width = 48

	return &Setup{
		phase:   phaseWelcome,
		spinner: sp,
		input:   ti,
		checks: []CheckResult{
			{Name: "운영체제"},
			{Name: "터미널"},
			{Name: "디스크 공간"},
		},
	}
}

// Init implements tea.Model.
func (s *Setup) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update implements tea.Model.
func (s *Setup) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case checkDoneMsg:
		s.checks[msg.index] = msg.result
		if !msg.result.OK {
			s.phase = phaseFailed
			s.failError = msg.result.Detail
			return s, nil
		}
		s.checkIdx = msg.index + 1
		if s.checkIdx >= len(s.checks) {
			s.phase = phaseConfig
			s.input.SetValue("")
			s.input.Focus()
			return s, textinput.Blink
		}
		return s, s.runCheck(s.checkIdx)

	case configWrittenMsg:
		if msg.err != nil {
			s.phase = phaseFailed
			s.failError = msg.err.Error()
			return s, nil
		}
		s.confPath = msg.path
		s.phase = phaseComplete
		return s, nil
	}

	if s.phase == phaseConfig {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *Setup) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if s.phase != phaseConfig || msg.String() == "ctrl+c" {
			return s, tea.Quit
		}
	case "enter":
		switch s.phase {
		case phaseWelcome:
			s.phase = phaseChecks
			s.checkIdx = 0
			return s, s.runCheck(0)
		case phaseConfig:
			s.baseURL = strings.TrimSpace(s.input.Value())
			if s.baseURL == "" {
				s.baseURL = defaultBaseURL
			}
			return s, s.writeConfigCmd()
		case phaseComplete, phaseFailed:
			return s, tea.Quit
		}
	}

	if s.phase == phaseConfig {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// =============================================================================
// CHECKS
// =============================================================================

func (s *Setup) runCheck(index int) tea.Cmd {
	return func() tea.Msg {
		// Slow the wizard down enough to read.
		time.Sleep(300 * time.Millisecond)

		var result CheckResult
		switch index {
		case 0:
			result = checkOS()
		case 1:
			result = checkTerminal()
		case 2:
			result = checkDisk()
		}
		return checkDoneMsg{index: index, result: result}
	}
}

func checkOS() CheckResult {
	detail := fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
	switch runtime.GOOS {
	case "linux", "darwin", "windows":
		return CheckResult{Name: "운영체제", OK: true, Detail: detail}
	default:
		return CheckResult{Name: "운영체제", OK: false, Detail: detail + " is not supported"}
	}
}

func checkTerminal() CheckResult {
	term := os.Getenv("TERM")
	if term == "" && runtime.GOOS != "windows" {
		return CheckResult{Name: "터미널", OK: false, Detail: "TERM is not set"}
	}
	return CheckResult{Name: "터미널", OK: true, Detail: term}
}

func checkDisk() CheckResult {
	home, err := os.UserHomeDir()
	if err != nil {
		return CheckResult{Name: "디스크 공간", OK: false, Detail: err.Error()}
	}
	free, err := getFreeDiskSpace(home)
	if err != nil {
		// Not fatal; the store is tiny.
		return CheckResult{Name: "디스크 공간", OK: true, Detail: "unknown"}
	}
	if free < minDiskSpace {
		return CheckResult{Name: "디스크 공간", OK: false,
			Detail: fmt.Sprintf("%d MB free, need 50 MB", free/1024/1024)}
	}
	return CheckResult{Name: "디스크 공간", OK: true,
		Detail: fmt.Sprintf("%d MB free", free/1024/1024)}
}

// checkBackend probes the backend address. Reachability is advisory: the
// chatbot may simply be down at setup time.
func checkBackend(baseURL string) error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(baseURL)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// =============================================================================
// CONFIG
// =============================================================================

// writeConfig writes a minimal config.toml and returns its path.
func writeConfig(baseURL string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".knubot")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	content := fmt.Sprintf(`version = "1"

[backend]
base_url = %q
timeout_secs = 60

[ui]
tutorial_enabled = true
tooltip_snooze_hours = 24

[logging]
level = "info"
`, baseURL)

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Setup) writeConfigCmd() tea.Cmd {
	baseURL := s.baseURL
	return func() tea.Msg {
		path, err := writeConfig(baseURL)
		return configWrittenMsg{path: path, err: err}
	}
}

// =============================================================================
// VIEWS
// =============================================================================

// View implements tea.Model.
func (s *Setup) View() string {
	var body string
	switch s.phase {
	case phaseWelcome:
		body = s.viewWelcome()
	case phaseChecks:
		body = s.viewChecks()
	case phaseConfig:
		body = s.viewConfig()
	case phaseComplete:
		body = s.viewComplete()
	case phaseFailed:
		body = s.viewFailed()
	}
	return s.center(body)
}

func (s *Setup) viewWelcome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("knubot 설정"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("경북대학교 컴퓨터학부 챗봇 터미널 클라이언트"))
	b.WriteString("\n\n")
	b.WriteString("환경을 점검하고 설정 파일을 만듭니다.\n\n")
	b.WriteString(mutedStyle.Render("enter 시작 / q 종료"))
	return b.String()
}

func (s *Setup) viewChecks() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("시스템 점검"))
	b.WriteString("\n")
	for i, c := range s.checks {
		switch {
		case c.Detail != "" && c.OK:
			b.WriteString(successStyle.Render("✓ ") + c.Name + mutedStyle.Render("  "+c.Detail))
		case c.Detail != "" && !c.OK:
			b.WriteString(errorStyle.Render("✗ ") + c.Name + mutedStyle.Render("  "+c.Detail))
		case i == s.checkIdx:
			b.WriteString(s.spinner.View() + " " + c.Name)
		default:
			b.WriteString(mutedStyle.Render("  " + c.Name))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *Setup) viewConfig() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("백엔드 주소"))
	b.WriteString("\n")
	b.WriteString("챗봇 백엔드의 주소를 입력하세요. 비워두면 기본값을 사용합니다.\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("enter 저장"))
	return b.String()
}

func (s *Setup) viewComplete() string {
	var b strings.Builder
	b.WriteString(successStyle.Render("설정 완료"))
	b.WriteString("\n\n")
	b.WriteString("설정 파일: " + accentStyle.Render(s.confPath))
	b.WriteString("\n")
	b.WriteString("백엔드: " + accentStyle.Render(s.baseURL))
	b.WriteString("\n\n")
	b.WriteString("'knubot' 을 실행해 대화를 시작하세요.\n\n")
	b.WriteString(mutedStyle.Render("enter 종료"))
	return b.String()
}

func (s *Setup) viewFailed() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("설정 실패"))
	b.WriteString("\n\n")
	b.WriteString(s.failError)
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("enter 종료"))
	return b.String()
}

func (s *Setup) center(content string) string {
	if s.width == 0 || s.height == 0 {
		return content
	}
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, content)
}

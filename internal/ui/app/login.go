// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/datastreams-knu/knubot-tui/internal/gateway"
	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
)

// =============================================================================
// LOGIN FORM
// =============================================================================

// loginForm is the email/password screen. A successful login stores the
// token and sends the user to the root view.
type loginForm struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	errText  string
	theme    *styles.Theme
}

// LoginResultMsg reports a login attempt.
type LoginResultMsg struct {
	Err error
}

func newLoginForm(theme *styles.Theme) loginForm {
	email := textinput.New()
	email.Placeholder = "이메일"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "비밀번호"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginForm{email: email, password: password, theme: theme}
}

func (f loginForm) update(msg tea.Msg, gw Gateway) (loginForm, tea.Cmd) {
	if result, ok := msg.(LoginResultMsg); ok {
		f.busy = false
		if result.Err != nil {
			f.errText = "이메일 또는 비밀번호를 확인해주세요."
			return f, nil
		}
		f.errText = ""
		return f, func() tea.Msg { return loginDoneMsg{} }
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok || f.busy {
		return f, nil
	}

	switch key.Type {
	case tea.KeyTab, tea.KeyDown:
		f.setFocus((f.focus + 1) % 2)
		return f, nil
	case tea.KeyShiftTab, tea.KeyUp:
		f.setFocus((f.focus + 1) % 2)
		return f, nil
	case tea.KeyEnter:
		email := strings.TrimSpace(f.email.Value())
		password := f.password.Value()
		if email == "" || password == "" {
			f.errText = "이메일과 비밀번호를 입력해주세요."
			return f, nil
		}
		f.busy = true
		f.errText = ""
		return f, loginCmd(gw, email, password)
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.email, cmd = f.email.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return f, cmd
}

func (f *loginForm) setFocus(i int) {
	f.focus = i
	if i == 0 {
		f.email.Focus()
		f.password.Blur()
	} else {
		f.email.Blur()
		f.password.Focus()
	}
}

func loginCmd(gw Gateway, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
		defer cancel()
		return LoginResultMsg{Err: gw.Login(ctx, email, password)}
	}
}

func (f loginForm) view(width, height int) string {
	rows := []string{
		f.theme.FormLabel.Render("로그인"),
		"",
		f.email.View(),
		f.password.View(),
		"",
		f.theme.FormHint.Render("enter 로그인 / ctrl+s 회원가입 / esc 돌아가기"),
	}
	if f.errText != "" {
		rows = append(rows, "", f.theme.FormError.Render(f.errText))
	}
	if f.busy {
		rows = append(rows, "", f.theme.FormHint.Render("로그인 중..."))
	}

	box := f.theme.FormBox.Render(strings.Join(rows, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

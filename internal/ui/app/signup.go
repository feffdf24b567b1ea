// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/datastreams-knu/knubot-tui/internal/gateway"
	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
)

// =============================================================================
// SIGNUP FORM
// =============================================================================

// signupForm is the registration screen. The email must pass the duplication
// check before the signup request is allowed; editing the email resets the
// check.
type signupForm struct {
	nickname textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int

	emailChecked bool
	busy         bool
	errText      string
	infoText     string
	theme        *styles.Theme
}

// EmailCheckedMsg reports the email duplication check.
type EmailCheckedMsg struct {
	Err error
}

// SignupResultMsg reports the signup attempt.
type SignupResultMsg struct {
	Err error
}

func newSignupForm(theme *styles.Theme) signupForm {
	nickname := textinput.New()
	nickname.Placeholder = "닉네임"
	nickname.Focus()

	email := textinput.New()
	email.Placeholder = "이메일"

	password := textinput.New()
	password.Placeholder = "비밀번호"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return signupForm{nickname: nickname, email: email, password: password, theme: theme}
}

func (f signupForm) update(msg tea.Msg, gw Gateway) (signupForm, tea.Cmd) {
	switch msg := msg.(type) {
	case EmailCheckedMsg:
		f.busy = false
		if msg.Err != nil {
			f.emailChecked = false
			if errors.Is(msg.Err, gateway.ErrInvalidEmail) {
				f.errText = "사용할 수 없는 이메일입니다."
			} else {
				f.errText = "이메일 확인에 실패했습니다."
			}
			return f, nil
		}
		f.emailChecked = true
		f.errText = ""
		f.infoText = "사용 가능한 이메일입니다."
		return f, nil

	case SignupResultMsg:
		f.busy = false
		if msg.Err != nil {
			f.errText = "회원가입에 실패했습니다."
			return f, nil
		}
		return f, func() tea.Msg { return signupDoneMsg{} }
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok || f.busy {
		return f, nil
	}

	switch key.Type {
	case tea.KeyTab, tea.KeyDown:
		f.setFocus((f.focus + 1) % 3)
		return f, nil
	case tea.KeyShiftTab, tea.KeyUp:
		f.setFocus((f.focus + 2) % 3)
		return f, nil
	case tea.KeyCtrlE:
		return f.checkEmail(gw)
	case tea.KeyCtrlP:
		// Password visibility toggle.
		if f.password.EchoMode == textinput.EchoPassword {
			f.password.EchoMode = textinput.EchoNormal
		} else {
			f.password.EchoMode = textinput.EchoPassword
		}
		return f, nil
	case tea.KeyEnter:
		return f.submit(gw)
	}

	before := f.email.Value()
	var cmd tea.Cmd
	switch f.focus {
	case 0:
		f.nickname, cmd = f.nickname.Update(msg)
	case 1:
		f.email, cmd = f.email.Update(msg)
	default:
		f.password, cmd = f.password.Update(msg)
	}
	// Any email edit invalidates a previous check.
	if f.email.Value() != before {
		f.emailChecked = false
		f.infoText = ""
	}
	return f, cmd
}

func (f signupForm) checkEmail(gw Gateway) (signupForm, tea.Cmd) {
	email := strings.TrimSpace(f.email.Value())
	if email == "" {
		f.errText = "이메일을 입력해주세요."
		return f, nil
	}
	f.busy = true
	f.errText = ""
	return f, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
		defer cancel()
		return EmailCheckedMsg{Err: gw.CheckEmail(ctx, email)}
	}
}

func (f signupForm) submit(gw Gateway) (signupForm, tea.Cmd) {
	nickname := strings.TrimSpace(f.nickname.Value())
	email := strings.TrimSpace(f.email.Value())
	password := f.password.Value()

	if nickname == "" || email == "" || password == "" {
		f.errText = "모든 항목을 입력해주세요."
		return f, nil
	}
	if !f.emailChecked {
		// The duplication check gates the signup request.
		f.errText = "이메일 중복 확인이 필요합니다. (ctrl+e)"
		return f, nil
	}

	f.busy = true
	f.errText = ""
	return f, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.DefaultTimeout)
		defer cancel()
		return SignupResultMsg{Err: gw.Signup(ctx, nickname, email, password)}
	}
}

func (f *signupForm) setFocus(i int) {
	f.focus = i
	inputs := []*textinput.Model{&f.nickname, &f.email, &f.password}
	for j, input := range inputs {
		if j == i {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (f signupForm) view(width, height int) string {
	rows := []string{
		f.theme.FormLabel.Render("회원가입"),
		"",
		f.nickname.View(),
		f.email.View(),
		f.password.View(),
		"",
		f.theme.FormHint.Render("ctrl+e 이메일 확인 / ctrl+p 비밀번호 표시 / enter 가입 / esc 돌아가기"),
	}
	if f.infoText != "" {
		rows = append(rows, "", f.theme.FormHint.Render(f.infoText))
	}
	if f.errText != "" {
		rows = append(rows, "", f.theme.FormError.Render(f.errText))
	}
	if f.busy {
		rows = append(rows, "", f.theme.FormHint.Render("요청 처리 중..."))
	}

	box := f.theme.FormBox.Render(strings.Join(rows, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

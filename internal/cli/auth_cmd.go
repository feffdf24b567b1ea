// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - Login, logout, and signup command handlers for knubot.
//
// Command: login | logout | signup
// Short:   Manage the member session
//
// Examples:
//
//	knubot login        Sign in (prompts for email and password)
//	knubot logout       Sign out and clear the stored token
//	knubot signup       Create an account (checks email availability first)
//
// The access token is stored in the local key-value store; the full-screen
// interface and the one-shot commands share it.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/datastreams-knu/knubot-tui/internal/gateway"
)

// promptLine reads one line from stdin with a visible prompt.
func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing it.
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// HandleLogin executes the login command. Returns the process exit code.
func HandleLogin(args Args) int {
	if !IsTTY() {
		fmt.Fprintln(os.Stderr, "login requires an interactive terminal")
		return 1
	}

	deps, err := OpenDeps(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer deps.Close()

	email, err := promptLine("이메일: ")
	if err != nil {
		return 1
	}
	password, err := promptPassword("비밀번호: ")
	if err != nil {
		return 1
	}
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "이메일과 비밀번호를 입력해주세요.")
		return 1
	}

	if err := deps.Client.Login(context.Background(), email, password); err != nil {
		fmt.Fprintln(os.Stderr, "로그인에 실패했습니다.")
		if args.Verbose {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		return 1
	}

	fmt.Println("로그인되었습니다.")
	return 0
}

// HandleLogout executes the logout command. Returns the process exit code.
func HandleLogout(args Args) int {
	deps, err := OpenDeps(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer deps.Close()

	if !deps.Session.Authenticated() {
		fmt.Println("로그인 상태가 아닙니다.")
		return 0
	}

	if err := deps.Session.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Println("로그아웃되었습니다.")
	return 0
}

// HandleSignup executes the signup command. Returns the process exit code.
//
// The email must pass an availability check before the account is created,
// the same gate the signup screen enforces.
func HandleSignup(args Args) int {
	if !IsTTY() {
		fmt.Fprintln(os.Stderr, "signup requires an interactive terminal")
		return 1
	}

	deps, err := OpenDeps(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer deps.Close()

	ctx := context.Background()

	nickname, err := promptLine("닉네임: ")
	if err != nil {
		return 1
	}
	email, err := promptLine("이메일: ")
	if err != nil {
		return 1
	}
	if nickname == "" || email == "" {
		fmt.Fprintln(os.Stderr, "닉네임과 이메일을 입력해주세요.")
		return 1
	}

	if err := deps.Client.CheckEmail(ctx, email); err != nil {
		if errors.Is(err, gateway.ErrInvalidEmail) {
			fmt.Fprintln(os.Stderr, "사용할 수 없는 이메일입니다.")
		} else {
			fmt.Fprintln(os.Stderr, "이메일 확인에 실패했습니다.")
		}
		return 1
	}
	fmt.Println("사용 가능한 이메일입니다.")

	password, err := promptPassword("비밀번호: ")
	if err != nil {
		return 1
	}
	confirm, err := promptPassword("비밀번호 확인: ")
	if err != nil {
		return 1
	}
	if password == "" || password != confirm {
		fmt.Fprintln(os.Stderr, "비밀번호가 일치하지 않습니다.")
		return 1
	}

	if err := deps.Client.Signup(ctx, nickname, email, password); err != nil {
		fmt.Fprintln(os.Stderr, "회원가입에 실패했습니다.")
		if args.Verbose {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		return 1
	}

	fmt.Println("회원가입이 완료되었습니다. knubot login 으로 로그인하세요.")
	return 0
}

// knubot - A terminal client for the KNU CS department chatbot.
//
// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/datastreams-knu/knubot-tui/internal/cli"
	"github.com/datastreams-knu/knubot-tui/internal/config"
	"github.com/datastreams-knu/knubot-tui/internal/gateway"
	"github.com/datastreams-knu/knubot-tui/internal/localstore"
	"github.com/datastreams-knu/knubot-tui/internal/logging"
	"github.com/datastreams-knu/knubot-tui/internal/session"
	"github.com/datastreams-knu/knubot-tui/internal/ui/app"
	"github.com/datastreams-knu/knubot-tui/internal/ui/chat"
	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		os.Exit(runTUI(args))
	case cli.CmdAsk:
		os.Exit(cli.HandleAsk(args))
	case cli.CmdChat:
		os.Exit(cli.HandleChat(args))
	case cli.CmdLogin:
		os.Exit(cli.HandleLogin(args))
	case cli.CmdLogout:
		os.Exit(cli.HandleLogout(args))
	case cli.CmdSignup:
		os.Exit(cli.HandleSignup(args))
	case cli.CmdHistory:
		os.Exit(cli.HandleHistory(args))
	case cli.CmdStatus:
		os.Exit(cli.HandleStatus(args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		cli.PrintUsage()
		os.Exit(1)
	}
}

// runTUI starts the full-screen chat interface.
func runTUI(args cli.Args) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if args.BaseURL != "" {
		cfg.Backend.BaseURL = args.BaseURL
	}
	config.SetGlobal(cfg)

	logPath, err := cfg.LogPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	level := cfg.Logging.Level
	if args.Verbose {
		level = "debug"
	}
	if err := logging.Setup(logPath, level); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	log := logging.L()

	storePath, err := cfg.StorePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	store, err := localstore.Open(storePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer store.Close()

	sess := session.NewStore(store)
	gw := gateway.New(cfg.Backend.BaseURL, sess).
		WithTimeout(time.Duration(cfg.Backend.TimeoutSecs) * time.Second)

	// Watch the local store so sign-in from another knubot process is
	// picked up, the way browser tabs share local storage.
	var changes <-chan struct{}
	watcher, err := localstore.NewWatcher(store)
	if err != nil {
		log.WithError(err).Warn("store watcher unavailable")
	} else {
		changes = watcher.Changes()
		defer watcher.Close()
	}

	theme := styles.NewTheme()
	chatOpts := chat.Options{
		TutorialEnabled: cfg.UI.TutorialEnabled,
		TooltipSnooze:   time.Duration(cfg.UI.TooltipSnoozeHours) * time.Hour,
	}
	root := app.New(gw, sess, theme, chatOpts, changes)

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.WithError(err).Error("program exited with error")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

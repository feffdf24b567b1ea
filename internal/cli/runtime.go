// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// runtime.go - Shared wiring for knubot CLI command handlers.
//
// Every non-TUI command needs the same stack: configuration, the local
// key-value store, the session on top of it, and a backend client. Deps
// builds that stack once per command invocation and tears it down again.
package cli

import (
	"fmt"
	"time"

	"github.com/datastreams-knu/knubot-tui/internal/config"
	"github.com/datastreams-knu/knubot-tui/internal/gateway"
	"github.com/datastreams-knu/knubot-tui/internal/localstore"
	"github.com/datastreams-knu/knubot-tui/internal/logging"
	"github.com/datastreams-knu/knubot-tui/internal/session"
)

// Deps bundles the services a CLI command handler runs against.
type Deps struct {
	Config  *config.Config
	Store   *localstore.Store
	Session *session.Store
	Client  *gateway.Client
}

// OpenDeps loads configuration and opens the local store, session, and
// backend client. The caller must Close the result.
func OpenDeps(args Args) (*Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if args.BaseURL != "" {
		cfg.Backend.BaseURL = args.BaseURL
	}
	config.SetGlobal(cfg)

	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if args.Verbose {
		level = "debug"
	}
	if err := logging.Setup(logPath, level); err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	storePath, err := cfg.StorePath()
	if err != nil {
		return nil, err
	}
	store, err := localstore.Open(storePath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	sess := session.NewStore(store)
	client := gateway.New(cfg.Backend.BaseURL, sess).
		WithTimeout(time.Duration(cfg.Backend.TimeoutSecs) * time.Second)

	return &Deps{
		Config:  cfg,
		Store:   store,
		Session: sess,
		Client:  client,
	}, nil
}

// Close releases the local store.
func (d *Deps) Close() {
	if d.Store != nil {
		d.Store.Close()
	}
}

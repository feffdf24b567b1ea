// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package sidebar

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/datastreams-knu/knubot-tui/internal/gateway"
	"github.com/datastreams-knu/knubot-tui/internal/logging"
	"github.com/datastreams-knu/knubot-tui/internal/session"
	"github.com/datastreams-knu/knubot-tui/internal/ui/components"
	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
)

// Gateway is the slice of the backend client the sidebar needs.
type Gateway interface {
	Histories(ctx context.Context) ([]gateway.HistoryEntry, error)
	MemberInfo(ctx context.Context) (*gateway.Profile, error)
	RenameHistory(ctx context.Context, historyID int, newName string) error
	DeleteHistory(ctx context.Context, historyID int) error
	DeleteAccount(ctx context.Context) error
}

// Tab selects which panel content is shown. Without a token there are no
// tabs, only the login entry point.
type Tab int

const (
	TabNone Tab = iota
	TabHistory
	TabProfile
)

// prompt is the sidebar's modal input state: renaming a history, or one of
// the confirmation steps.
type prompt int

const (
	promptNone prompt = iota
	promptRename
	promptDeleteHistory
	promptDeleteAccount1
	promptDeleteAccount2
)

var sidebarGen uint64

func nextGen() uint64 {
	return atomic.AddUint64(&sidebarGen, 1)
}

// Model is the collapsible sidebar: history list tab and profile tab for
// members, login hint for guests.
type Model struct {
	gen  uint64
	gw   Gateway
	sess *session.Store
	log  *logrus.Logger

	tab    Tab
	open   bool
	cursor int

	entries    []gateway.HistoryEntry
	listErr    bool
	profile    *gateway.Profile
	profileErr bool
	working    bool

	prompt   prompt
	renameID int
	deleteID int
	rename   textinput.Model

	toasts *components.ToastManager
	theme  *styles.Theme
	width  int
	height int
}

// New creates the sidebar. The tab defaults to history the moment a token
// is present.
func New(gw Gateway, sess *session.Store, theme *styles.Theme) *Model {
	rename := textinput.New()
	rename.Placeholder = "새 이름"
	rename.CharLimit = 100

	tab := TabNone
	if sess.Authenticated() {
		tab = TabHistory
	}

	return &Model{
		gen:    nextGen(),
		gw:     gw,
		sess:   sess,
		log:    logging.L(),
		tab:    tab,
		rename: rename,
		toasts: components.NewToastManager(),
		theme:  theme,
	}
}

// Init fires both fetches independently for members.
func (m *Model) Init() tea.Cmd {
	if !m.sess.Authenticated() {
		return nil
	}
	return tea.Batch(m.fetchHistoriesCmd(), m.fetchProfileCmd())
}

// Toggle opens or collapses the sidebar.
func (m *Model) Toggle() {
	m.open = !m.open
}

// Open reports whether the sidebar is expanded.
func (m *Model) Open() bool {
	return m.open
}

// Tab returns the active tab.
func (m *Model) Tab() Tab {
	return m.tab
}

// SetSize stores the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Entries exposes the fetched history list.
func (m *Model) Entries() []gateway.HistoryEntry {
	return m.entries
}

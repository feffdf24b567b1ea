// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/datastreams-knu/knubot-tui/internal/gateway"
	"github.com/datastreams-knu/knubot-tui/internal/logging"
	"github.com/datastreams-knu/knubot-tui/internal/session"
	"github.com/datastreams-knu/knubot-tui/internal/transcript"
	"github.com/datastreams-knu/knubot-tui/internal/ui/components"
	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
)

// Gateway is the slice of the backend client the conversation view needs.
type Gateway interface {
	Ask(ctx context.Context, question string) (*gateway.Reply, error)
	AskInHistory(ctx context.Context, historyID int, question string) (*gateway.Reply, error)
	HistoryTurns(ctx context.Context, historyID int) ([]gateway.HistoryTurn, error)
}

// Mode selects which ask endpoint the view talks to.
type Mode int

const (
	// ModeGuest asks without auth and without server-side persistence.
	ModeGuest Mode = iota
	// ModeHistory asks inside a saved member conversation.
	ModeHistory
)

// Options carries the user-tunable view behavior from the config file.
type Options struct {
	// TutorialEnabled shows the intro banner and guide hint on the empty
	// screen. Starters stay available either way.
	TutorialEnabled bool
	// TooltipSnooze is how long a dismissed first-time hint stays hidden.
	TooltipSnooze time.Duration
}

// DefaultOptions mirrors the config defaults.
func DefaultOptions() Options {
	return Options{
		TutorialEnabled: true,
		TooltipSnooze:   24 * time.Hour,
	}
}

// viewGen hands out generation counters. Each mounted view gets its own;
// stale async messages are recognized by a mismatched counter.
var viewGen uint64

func nextGen() uint64 {
	return atomic.AddUint64(&viewGen, 1)
}

// Model is the conversation view: transcript, composer, and the loading
// machinery around one in-flight question.
type Model struct {
	mode      Mode
	historyID int
	gen       uint64

	gw   Gateway
	sess *session.Store
	opts Options
	log  *logrus.Logger

	transcript *transcript.Transcript

	// Request state. The two flags are disjoint: historyLoading only at
	// mount, inflight only per submitted turn. Both block submit.
	inflight       bool
	historyLoading bool
	redirecting    bool

	// Turns fetched at mount, held back until the overlay minimum elapses.
	pendingTurns []gateway.HistoryTurn

	// Auto-scroll bookkeeping.
	lastHeight    int
	scrollPending bool

	// Intro screen state.
	starterCursor int
	tutorialPanel string
	showGuide     bool

	theme    *styles.Theme
	input    textinput.Model
	viewport viewport.Model
	spinner  components.InlineSpinner
	toasts   *components.ToastManager

	width  int
	height int
	ready  bool
}

// NewGuest creates the guest conversation view.
func NewGuest(gw Gateway, sess *session.Store, theme *styles.Theme, opts Options) *Model {
	return newModel(ModeGuest, 0, gw, sess, theme, opts)
}

// NewHistory creates the member conversation view for a saved history.
func NewHistory(historyID int, gw Gateway, sess *session.Store, theme *styles.Theme, opts Options) *Model {
	return newModel(ModeHistory, historyID, gw, sess, theme, opts)
}

func newModel(mode Mode, historyID int, gw Gateway, sess *session.Store, theme *styles.Theme, opts Options) *Model {
	input := textinput.New()
	input.Placeholder = "Type a question..."
	input.CharLimit = 2000
	input.Focus()

	return &Model{
		mode:          mode,
		historyID:     historyID,
		gen:           nextGen(),
		gw:            gw,
		sess:          sess,
		opts:          opts,
		log:           logging.L(),
		transcript:    transcript.New(),
		starterCursor: -1,
		tutorialPanel: components.RandomTutorialPanel(),
		theme:         theme,
		input:         input,
		viewport:      viewport.New(0, 0),
		spinner:       components.NewInlineSpinner(theme),
		toasts:        components.NewToastManager(),
	}
}

// Init starts the view. Member conversations fetch their saved turns behind
// the blocking overlay; guest conversations start empty.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, components.ToastTickCmd()}
	if m.mode == ModeHistory {
		m.historyLoading = true
		m.spinner.SetMessage("저장된 대화를 불러오고 있습니다")
		cmds = append(cmds, m.loadHistoryCmd(), m.spinner.Start())
	}
	return tea.Batch(cmds...)
}

// Busy reports whether any request is outstanding. Submit is a no-op and
// the composer is disabled while busy.
func (m *Model) Busy() bool {
	return m.inflight || m.historyLoading
}

// DisplayMode derives the current render state.
func (m *Model) DisplayMode() DisplayMode {
	return Derive(m.transcript.Empty(), m.inflight, m.historyLoading)
}

// HistoryID returns the saved conversation id, 0 in guest mode.
func (m *Model) HistoryID() int {
	return m.historyID
}

// Transcript exposes the transcript for the app router and tests.
func (m *Model) Transcript() *transcript.Transcript {
	return m.transcript
}

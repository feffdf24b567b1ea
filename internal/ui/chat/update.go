// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/datastreams-knu/knubot-tui/internal/transcript"
	"github.com/datastreams-knu/knubot-tui/internal/ui/components"
	"github.com/datastreams-knu/knubot-tui/internal/util"
)

// RedirectNotice is the toast shown beside the terminal-failure turn in a
// member conversation.
const RedirectNotice = "5초 뒤 메인페이지로 이동합니다."

// Update handles all messages for the conversation view.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()
	case ReplyMsg:
		return m.handleReply(msg)
	case ReplyErrMsg:
		return m.handleReplyErr(msg)
	case HistoryLoadedMsg:
		return m.handleHistoryLoaded(msg)
	case HistoryReadyMsg:
		return m.handleHistoryReady(msg)
	case RedirectHomeMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m, func() tea.Msg { return NavigateHomeMsg{} }
	case scrollTickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.scrollPending = false
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// =============================================================================
// INPUT HANDLING
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) (*Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := 2
	inputHeight := 3
	m.viewport.Width = msg.Width
	m.viewport.Height = msg.Height - headerHeight - inputHeight
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.input.Width = msg.Width - 6
	m.ready = true

	m.refreshViewport()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	// The blocking overlay swallows everything.
	if m.historyLoading {
		return m, nil
	}

	if m.showGuide {
		m.showGuide = false
		return m, nil
	}

	mode := m.DisplayMode()

	switch {
	case key.Matches(msg, keys.Submit):
		if mode.Screen == ScreenIntro && m.starterCursor >= 0 {
			q := components.StarterQuestions[m.starterCursor]
			m.starterCursor = -1
			return m.submit(q)
		}
		return m.submit(m.input.Value())

	case key.Matches(msg, keys.NextStarter):
		if mode.Screen == ScreenIntro {
			m.starterCursor = (m.starterCursor + 1) % len(components.StarterQuestions)
			return m, nil
		}

	case key.Matches(msg, keys.PrevStarter):
		if mode.Screen == ScreenIntro {
			m.starterCursor--
			if m.starterCursor < 0 {
				m.starterCursor = len(components.StarterQuestions) - 1
			}
			return m, nil
		}

	case key.Matches(msg, keys.Guide):
		if mode.Screen == ScreenIntro {
			m.showGuide = true
			return m, nil
		}

	case key.Matches(msg, keys.Dismiss):
		if m.starterCursor >= 0 {
			m.starterCursor = -1
			return m, nil
		}
		if !m.sess.TooltipSnoozed(time.Now(), m.opts.TooltipSnooze) {
			if err := m.sess.DismissTooltip(time.Now()); err != nil {
				m.log.WithError(err).Warn("failed to persist tooltip dismissal")
			}
			return m, nil
		}

	case key.Matches(msg, keys.ScrollUp), key.Matches(msg, keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.Busy() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit appends the user turn optimistically and fires the request.
// No-op when the text trims to nothing or a request is already outstanding.
func (m *Model) submit(text string) (*Model, tea.Cmd) {
	question := strings.TrimSpace(text)
	if question == "" || m.Busy() {
		return m, nil
	}

	m.transcript.AppendUser(question)
	m.input.Reset()
	m.inflight = true
	m.spinner.SetMessage("답변을 생성하고 있습니다")

	cmds := []tea.Cmd{
		m.submitCmd(question),
		m.spinner.Start(),
	}
	if cmd := m.refreshViewport(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// REPLY HANDLING
// =============================================================================

func (m *Model) handleReply(msg ReplyMsg) (*Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}
	m.log.WithFields(logrus.Fields{
		"elapsed": m.spinner.Elapsed().Round(time.Millisecond),
		"answer":  util.TruncateWidth(util.CollapseSpace(msg.Reply.Answer), 80),
	}).Debug("answer received")
	m.inflight = false
	m.spinner.Stop()

	r := msg.Reply
	m.transcript.AppendBot(transcript.FormatReply(r.Answer, r.Images, r.Disclaimer, r.References))
	return m, m.refreshViewport()
}

func (m *Model) handleReplyErr(msg ReplyErrMsg) (*Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}
	m.inflight = false
	m.spinner.Stop()
	m.log.WithError(msg.Err).Warn("chat request failed")

	m.transcript.AppendBot(transcript.ServerProblemNotice)

	cmds := []tea.Cmd{}
	if cmd := m.refreshViewport(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.mode == ModeHistory && !m.redirecting {
		m.redirecting = true
		m.toasts.AddError(RedirectNotice)
		cmds = append(cmds, redirectCmd(m.gen))
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// HISTORY LOADING
// =============================================================================

func (m *Model) handleHistoryLoaded(msg HistoryLoadedMsg) (*Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}

	if msg.Err != nil {
		m.historyLoading = false
		m.spinner.Stop()
		m.log.WithError(msg.Err).Warn("history load failed")

		m.transcript.AppendBot(transcript.ServerProblemNotice)
		cmds := []tea.Cmd{}
		if cmd := m.refreshViewport(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if !m.redirecting {
			m.redirecting = true
			m.toasts.AddError(RedirectNotice)
			cmds = append(cmds, redirectCmd(m.gen))
		}
		return m, tea.Batch(cmds...)
	}

	m.pendingTurns = msg.Turns
	return m, holdOverlayCmd(m.gen, msg.Started)
}

func (m *Model) handleHistoryReady(msg HistoryReadyMsg) (*Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}
	m.historyLoading = false
	m.spinner.Stop()

	turns := make([]transcript.Turn, 0, len(m.pendingTurns)*2)
	for _, t := range m.pendingTurns {
		turns = append(turns, transcript.NewUserTurn(t.Question))
		r := t.Answer
		turns = append(turns, transcript.NewBotTurn(
			transcript.FormatReply(r.Answer, r.Images, r.Disclaimer, r.References)))
	}
	m.transcript.Replace(turns)
	m.pendingTurns = nil

	return m, m.refreshViewport()
}

// =============================================================================
// VIEWPORT REFRESH
// =============================================================================

// refreshViewport re-renders the transcript into the viewport and applies
// the auto-scroll rule: schedule a debounced scroll-to-bottom only when the
// content grew taller; record the new height unconditionally.
func (m *Model) refreshViewport() tea.Cmd {
	content := m.renderTranscript()
	m.viewport.SetContent(content)

	height := strings.Count(content, "\n") + 1
	grew := height > m.lastHeight
	m.lastHeight = height

	if grew && !m.scrollPending {
		m.scrollPending = true
		return scrollDebounceCmd(m.gen)
	}
	return nil
}

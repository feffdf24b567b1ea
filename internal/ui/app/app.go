// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the root Bubble Tea model: a small router over the
// conversation, auth, and home screens plus the collapsible sidebar.
//
// Routing rules mirror the web client. The root view is the guest landing
// or the member home depending on the session; opening a saved conversation
// without a token bounces back to root; logout and account deletion rebuild
// the whole model in place, which is the full-page-reload analog.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/datastreams-knu/knubot-tui/internal/session"
	"github.com/datastreams-knu/knubot-tui/internal/ui/chat"
	"github.com/datastreams-knu/knubot-tui/internal/ui/sidebar"
	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
)

// Gateway is everything the app and its child views need from the backend
// client. *gateway.Client satisfies it.
type Gateway interface {
	chat.Gateway
	sidebar.Gateway
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, nickname, email, password string) error
	CheckEmail(ctx context.Context, email string) error
	NewHistory(ctx context.Context) (int, error)
}

// Route is the active screen.
type Route int

const (
	RouteRoot Route = iota
	RouteLogin
	RouteSignup
	RouteChat
)

// =============================================================================
// ROUTER MESSAGES
// =============================================================================

// loginDoneMsg fires after a successful login.
type loginDoneMsg struct{}

// signupDoneMsg fires after a successful signup and returns to login.
type signupDoneMsg struct{}

// openChatMsg opens a saved conversation.
type openChatMsg struct {
	historyID int
}

// StorageChangedMsg fires when another process rewrote the local store. The
// router re-reads the session and re-evaluates the landing.
type StorageChangedMsg struct{}

// Model is the root application model.
type Model struct {
	route Route

	gw       Gateway
	sess     *session.Store
	theme    *styles.Theme
	chatOpts chat.Options
	changes  <-chan struct{}

	chat    *chat.Model
	sidebar *sidebar.Model
	home    userHome
	login   loginForm
	signup  signupForm

	width  int
	height int
}

// New creates the root model. changes may be nil when no store watcher is
// running (tests, one-shot commands).
func New(gw Gateway, sess *session.Store, theme *styles.Theme, chatOpts chat.Options, changes <-chan struct{}) *Model {
	m := &Model{
		gw:       gw,
		sess:     sess,
		theme:    theme,
		chatOpts: chatOpts,
		changes:  changes,
	}
	m.mountRoot()
	return m
}

// mountRoot builds the root view for the current session state.
func (m *Model) mountRoot() {
	m.route = RouteRoot
	m.sidebar = sidebar.New(m.gw, m.sess, m.theme)
	if m.sess.Authenticated() {
		m.home = newUserHome(m.theme)
		m.chat = nil
	} else {
		m.chat = chat.NewGuest(m.gw, m.sess, m.theme, m.chatOpts)
	}
}

// hardReset rebuilds the model in place: fresh root view, fresh sidebar,
// every child generation abandoned.
func (m *Model) hardReset() tea.Cmd {
	m.mountRoot()
	cmds := []tea.Cmd{m.sidebar.Init()}
	if m.chat != nil {
		cmds = append(cmds, m.chat.Init())
	} else if m.sess.Authenticated() {
		cmds = append(cmds, m.home.init(m.gw))
	}
	if m.width > 0 {
		cmds = append(cmds, m.propagateSize())
	}
	return tea.Batch(cmds...)
}

// Init starts the root view.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.sidebar.Init(), m.watchStorageCmd()}
	if m.chat != nil {
		cmds = append(cmds, m.chat.Init())
	} else if m.sess.Authenticated() {
		cmds = append(cmds, m.home.init(m.gw))
	}
	return tea.Batch(cmds...)
}

// watchStorageCmd blocks on the store watcher and resumes after each event.
func (m *Model) watchStorageCmd() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		_, ok := <-ch
		if !ok {
			return nil
		}
		return StorageChangedMsg{}
	}
}

// Route returns the active route.
func (m *Model) Route() Route {
	return m.route
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages to the active screen.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		return m, m.propagateSize()

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}

	case StorageChangedMsg:
		// Another process changed the token: re-evaluate the landing.
		if m.route == RouteRoot || (m.route == RouteChat && !m.sess.Authenticated()) {
			return m, tea.Batch(m.hardReset(), m.watchStorageCmd())
		}
		return m, m.watchStorageCmd()

	case chat.NavigateHomeMsg:
		return m, m.hardReset()

	case sidebar.OpenHistoryMsg:
		return m, m.openChat(msg.HistoryID)

	case sidebar.LogoutMsg, sidebar.AccountGoneMsg:
		return m, m.hardReset()

	case openChatMsg:
		return m, m.openChat(msg.historyID)

	case loginDoneMsg:
		return m, m.hardReset()

	case signupDoneMsg:
		m.route = RouteLogin
		m.login = newLoginForm(m.theme)
		return m, nil
	}

	return m.updateChildren(msg)
}

// handleGlobalKey handles navigation keys that work on every screen.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit, true
	case "ctrl+b":
		m.sidebar.Toggle()
		return m.propagateSize(), true
	case "ctrl+l":
		if !m.sess.Authenticated() && m.route != RouteLogin {
			m.route = RouteLogin
			m.login = newLoginForm(m.theme)
			return nil, true
		}
	case "ctrl+s":
		if m.route == RouteLogin {
			m.route = RouteSignup
			m.signup = newSignupForm(m.theme)
			return nil, true
		}
	case "esc":
		if m.route == RouteLogin || m.route == RouteSignup {
			return m.hardReset(), true
		}
	}
	return nil, false
}

// openChat navigates to a saved conversation. Without a token the route
// guard bounces back to root.
func (m *Model) openChat(historyID int) tea.Cmd {
	if !m.sess.Authenticated() {
		return m.hardReset()
	}
	m.route = RouteChat
	m.chat = chat.NewHistory(historyID, m.gw, m.sess, m.theme, m.chatOpts)
	cmds := []tea.Cmd{m.chat.Init()}
	if m.width > 0 {
		cmds = append(cmds, m.propagateSize())
	}
	return tea.Batch(cmds...)
}

// updateChildren forwards the message to whichever views are live.
func (m *Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The sidebar gets keys only while open; async results always land.
	if _, isKey := msg.(tea.KeyMsg); !isKey || m.sidebar.Open() {
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if _, isKey := msg.(tea.KeyMsg); isKey && m.sidebar.Open() {
			return m, tea.Batch(cmds...)
		}
	}

	switch m.route {
	case RouteLogin:
		var cmd tea.Cmd
		m.login, cmd = m.login.update(msg, m.gw)
		cmds = append(cmds, cmd)
	case RouteSignup:
		var cmd tea.Cmd
		m.signup, cmd = m.signup.update(msg, m.gw)
		cmds = append(cmds, cmd)
	default:
		if m.chat != nil {
			var cmd tea.Cmd
			m.chat, cmd = m.chat.Update(msg)
			cmds = append(cmds, cmd)
		} else {
			var cmd tea.Cmd
			m.home, cmd = m.home.update(msg, m.gw)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// propagateSize resends the window size to live child views.
func (m *Model) propagateSize() tea.Cmd {
	size := tea.WindowSizeMsg{Width: m.contentWidth(), Height: m.height}
	m.sidebar.SetSize(m.sidebarWidth(), m.height)
	if m.chat != nil {
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(size)
		return cmd
	}
	return nil
}

func (m *Model) sidebarWidth() int {
	if !m.sidebar.Open() {
		return 0
	}
	w := m.width / 4
	if w < 24 {
		w = 24
	}
	return w
}

func (m *Model) contentWidth() int {
	return m.width - m.sidebarWidth()
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the active screen with the sidebar on the left when open.
func (m *Model) View() string {
	var content string
	switch m.route {
	case RouteLogin:
		content = m.login.view(m.contentWidth(), m.height)
	case RouteSignup:
		content = m.signup.view(m.contentWidth(), m.height)
	default:
		if m.chat != nil {
			content = m.chat.View()
		} else {
			content = m.home.view(m.contentWidth(), m.height)
		}
	}

	if m.sidebar.Open() {
		return lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), content)
	}
	return content
}

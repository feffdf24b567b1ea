// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datastreams-knu/knubot-tui/internal/gateway"
	"github.com/datastreams-knu/knubot-tui/internal/session"
	"github.com/datastreams-knu/knubot-tui/internal/transcript"
	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
)

// fakeGateway records calls and serves canned replies.
type fakeGateway struct {
	reply *gateway.Reply
	turns []gateway.HistoryTurn
	err   error

	askCalls       []string
	inHistoryCalls []int
}

func (f *fakeGateway) Ask(ctx context.Context, question string) (*gateway.Reply, error) {
	f.askCalls = append(f.askCalls, question)
	return f.reply, f.err
}

func (f *fakeGateway) AskInHistory(ctx context.Context, historyID int, question string) (*gateway.Reply, error) {
	f.inHistoryCalls = append(f.inHistoryCalls, historyID)
	return f.reply, f.err
}

func (f *fakeGateway) HistoryTurns(ctx context.Context, historyID int) ([]gateway.HistoryTurn, error) {
	return f.turns, f.err
}

func newGuestModel(t *testing.T, gw Gateway) *Model {
	t.Helper()
	sess := session.NewStore(session.NewMemoryKV())
	m := NewGuest(gw, sess, styles.NewTheme(), DefaultOptions())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func pressEnter(m *Model) (*Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSubmitBlankIsNoOp(t *testing.T) {
	gw := &fakeGateway{}
	m := newGuestModel(t, gw)

	m.input.SetValue("   ")
	m, cmd := pressEnter(m)

	assert.Nil(t, cmd)
	assert.True(t, m.transcript.Empty())
	assert.False(t, m.inflight)
}

func TestSubmitAppendsOptimistically(t *testing.T) {
	gw := &fakeGateway{reply: &gateway.Reply{Answer: "a"}}
	m := newGuestModel(t, gw)

	m.input.SetValue("  졸업요건 알려줘  ")
	m, cmd := pressEnter(m)

	require.NotNil(t, cmd)
	assert.True(t, m.inflight)
	assert.Empty(t, m.input.Value())

	last, ok := m.transcript.Last()
	require.True(t, ok)
	assert.Equal(t, transcript.AuthorUser, last.Author)
	assert.Equal(t, "졸업요건 알려줘", last.Content)
}

func TestSubmitWhileInFlightIsNoOp(t *testing.T) {
	gw := &fakeGateway{}
	m := newGuestModel(t, gw)
	m.input.SetValue("first")
	m, _ = pressEnter(m)
	require.True(t, m.inflight)

	m.input.SetValue("second")
	m, cmd := pressEnter(m)

	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.transcript.Len())
}

func TestReplyAppendsOneFormattedTurn(t *testing.T) {
	gw := &fakeGateway{}
	m := newGuestModel(t, gw)
	m.input.SetValue("q")
	m, _ = pressEnter(m)

	m, _ = m.Update(ReplyMsg{Gen: m.gen, Reply: &gateway.Reply{
		Answer:     "답변입니다.",
		References: "see http://x",
		Disclaimer: "주의",
		Images:     []string{"No content"},
	}})

	assert.False(t, m.inflight)
	require.Equal(t, 2, m.transcript.Len())
	assert.True(t, m.transcript.Alternating())

	last, _ := m.transcript.Last()
	assert.Equal(t, transcript.AuthorBot, last.Author)
	assert.Contains(t, last.Content, "답변입니다.")
	assert.Contains(t, last.Content, "주의")
	assert.Contains(t, last.Content, `<a href="http://x"`)
	assert.NotContains(t, last.Content, "<img")
}

func TestStaleReplyIgnored(t *testing.T) {
	gw := &fakeGateway{}
	m := newGuestModel(t, gw)
	m.input.SetValue("q")
	m, _ = pressEnter(m)

	m, _ = m.Update(ReplyMsg{Gen: m.gen + 1, Reply: &gateway.Reply{Answer: "stale"}})

	assert.True(t, m.inflight, "stale reply must not clear the in-flight flag")
	assert.Equal(t, 1, m.transcript.Len())
}

func TestGuestFailureAppendsNoticeWithoutRedirect(t *testing.T) {
	gw := &fakeGateway{}
	m := newGuestModel(t, gw)
	m.input.SetValue("q")
	m, _ = pressEnter(m)

	m, _ = m.Update(ReplyErrMsg{Gen: m.gen, Err: errors.New("boom")})

	assert.False(t, m.inflight)
	assert.False(t, m.redirecting)
	assert.False(t, m.toasts.HasToasts())

	last, _ := m.transcript.Last()
	assert.Equal(t, transcript.ServerProblemNotice, last.Content)
}

func TestMemberFailureSchedulesRedirect(t *testing.T) {
	gw := &fakeGateway{}
	sess := session.NewStore(session.NewMemoryKV())
	m := NewHistory(7, gw, sess, styles.NewTheme(), DefaultOptions())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.historyLoading = false

	m.input.SetValue("q")
	m, _ = pressEnter(m)

	m, cmd := m.Update(ReplyErrMsg{Gen: m.gen, Err: errors.New("boom")})

	assert.True(t, m.redirecting)
	assert.True(t, m.toasts.HasToasts())
	require.NotNil(t, cmd)

	last, _ := m.transcript.Last()
	assert.Equal(t, transcript.ServerProblemNotice, last.Content)
}

func TestRedirectEmitsNavigateHome(t *testing.T) {
	gw := &fakeGateway{}
	m := newGuestModel(t, gw)

	_, cmd := m.Update(RedirectHomeMsg{Gen: m.gen})
	require.NotNil(t, cmd)
	assert.IsType(t, NavigateHomeMsg{}, cmd())

	// Stale generation does nothing.
	_, cmd = m.Update(RedirectHomeMsg{Gen: m.gen + 1})
	assert.Nil(t, cmd)
}

func TestHistoryLoadHoldsOverlayThenReplaces(t *testing.T) {
	gw := &fakeGateway{}
	sess := session.NewStore(session.NewMemoryKV())
	m := NewHistory(3, gw, sess, styles.NewTheme(), DefaultOptions())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.historyLoading = true

	turns := []gateway.HistoryTurn{
		{Question: "q1", Answer: gateway.Reply{Answer: "a1"}},
		{Question: "q2", Answer: gateway.Reply{Answer: "a2"}},
	}
	m, cmd := m.Update(HistoryLoadedMsg{Gen: m.gen, Turns: turns, Started: time.Now()})

	require.NotNil(t, cmd, "overlay hold timer must be scheduled")
	assert.True(t, m.historyLoading, "overlay stays up until the hold elapses")
	assert.True(t, m.transcript.Empty())

	m, _ = m.Update(HistoryReadyMsg{Gen: m.gen})

	assert.False(t, m.historyLoading)
	require.Equal(t, 4, m.transcript.Len())
	assert.True(t, m.transcript.Alternating())

	got := m.transcript.Turns()
	assert.Equal(t, "q1", got[0].Content)
	assert.Equal(t, "a1", got[1].Content)
}

func TestHoldOverlayRemainder(t *testing.T) {
	// A fetch that already took longer than the minimum yields a zero wait,
	// never a negative one.
	cmd := holdOverlayCmd(1, time.Now().Add(-3*time.Second))
	require.NotNil(t, cmd)
}

func TestHistoryLoadFailure(t *testing.T) {
	gw := &fakeGateway{}
	sess := session.NewStore(session.NewMemoryKV())
	m := NewHistory(3, gw, sess, styles.NewTheme(), DefaultOptions())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.historyLoading = true

	m, cmd := m.Update(HistoryLoadedMsg{Gen: m.gen, Err: errors.New("down"), Started: time.Now()})

	assert.False(t, m.historyLoading)
	assert.True(t, m.redirecting)
	require.NotNil(t, cmd)

	last, _ := m.transcript.Last()
	assert.Equal(t, transcript.ServerProblemNotice, last.Content)
}

func TestScrollScheduledOnlyOnGrowth(t *testing.T) {
	gw := &fakeGateway{}
	m := newGuestModel(t, gw)

	m.transcript.AppendUser("q")
	cmd := m.refreshViewport()
	require.NotNil(t, cmd, "growth schedules a debounced scroll")
	assert.True(t, m.scrollPending)

	// Same content again: height recorded but no second schedule.
	cmd = m.refreshViewport()
	assert.Nil(t, cmd)

	// The debounce tick clears the pending flag.
	m, _ = m.Update(scrollTickMsg{Gen: m.gen})
	assert.False(t, m.scrollPending)
}

func TestStarterSelectionSubmits(t *testing.T) {
	gw := &fakeGateway{reply: &gateway.Reply{Answer: "a"}}
	m := newGuestModel(t, gw)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.starterCursor)

	m, cmd := pressEnter(m)
	require.NotNil(t, cmd)
	assert.Equal(t, -1, m.starterCursor)

	last, _ := m.transcript.Last()
	assert.Equal(t, "해외 인턴십 정보 알려줘", last.Content)
}

func TestBlockingOverlaySwallowsInput(t *testing.T) {
	gw := &fakeGateway{}
	sess := session.NewStore(session.NewMemoryKV())
	m := NewHistory(1, gw, sess, styles.NewTheme(), DefaultOptions())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.historyLoading = true

	m.input.SetValue("typed while blocked")
	m, cmd := pressEnter(m)

	assert.Nil(t, cmd)
	assert.True(t, m.transcript.Empty())
}

func TestTutorialDisabledHidesBanner(t *testing.T) {
	gw := &fakeGateway{}
	sess := session.NewStore(session.NewMemoryKV())
	opts := DefaultOptions()
	opts.TutorialEnabled = false
	m := NewGuest(gw, sess, styles.NewTheme(), opts)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	assert.NotContains(t, view, m.tutorialPanel)
	assert.NotContains(t, view, "더 알아보기")
	assert.Contains(t, view, "해외 인턴십 정보 알려줘", "starters stay available")
}

func TestTooltipSnoozeFollowsOptions(t *testing.T) {
	gw := &fakeGateway{}
	sess := session.NewStore(session.NewMemoryKV())
	require.NoError(t, sess.DismissTooltip(time.Now().Add(-2*time.Hour)))

	opts := DefaultOptions()
	opts.TooltipSnooze = time.Hour
	m := NewGuest(gw, sess, styles.NewTheme(), opts)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Contains(t, m.View(), "추천 질문", "hint returns after the short window")

	opts.TooltipSnooze = 24 * time.Hour
	m = NewGuest(gw, sess, styles.NewTheme(), opts)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.NotContains(t, m.View(), "추천 질문", "hint stays snoozed inside the default window")
}

func TestSpinnerMessageFollowsState(t *testing.T) {
	gw := &fakeGateway{reply: &gateway.Reply{Answer: "a"}}
	sess := session.NewStore(session.NewMemoryKV())
	m := NewHistory(2, gw, sess, styles.NewTheme(), DefaultOptions())
	m.Init()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	require.True(t, m.spinner.IsActive())
	assert.Contains(t, m.View(), "저장된 대화를 불러오고 있습니다")

	m.historyLoading = false
	m.spinner.Stop()
	m.input.SetValue("질문")
	m, _ = pressEnter(m)
	assert.Contains(t, m.View(), "답변을 생성하고 있습니다")
}

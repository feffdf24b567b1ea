// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptAppendOrder(t *testing.T) {
	tr := New()
	assert.True(t, tr.Empty())

	tr.AppendUser("공지사항 알려줘")
	tr.AppendBot("오늘의 공지입니다.")
	tr.AppendUser("졸업요건 알려줘")

	require.Equal(t, 3, tr.Len())
	turns := tr.Turns()
	assert.Equal(t, AuthorUser, turns[0].Author)
	assert.Equal(t, AuthorBot, turns[1].Author)
	assert.Equal(t, AuthorUser, turns[2].Author)
	assert.Equal(t, "졸업요건 알려줘", turns[2].Content)
}

func TestTranscriptTurnsIsCopy(t *testing.T) {
	tr := New()
	tr.AppendUser("hello")

	turns := tr.Turns()
	turns[0].Content = "mutated"

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, "hello", last.Content)
}

func TestTranscriptReplace(t *testing.T) {
	tr := New()
	tr.AppendUser("stale")

	loaded := []Turn{
		NewUserTurn("질문 1"),
		NewBotTurn("답변 1"),
		NewUserTurn("질문 2"),
		NewBotTurn("답변 2"),
	}
	tr.Replace(loaded)

	require.Equal(t, 4, tr.Len())
	assert.Equal(t, 2, tr.CountBy(AuthorUser))
	assert.Equal(t, 2, tr.CountBy(AuthorBot))
	assert.True(t, tr.Alternating())
}

func TestTranscriptAlternating(t *testing.T) {
	tr := New()
	assert.True(t, tr.Alternating(), "empty transcript alternates vacuously")

	tr.AppendUser("q1")
	tr.AppendBot("a1")
	tr.AppendUser("q2")
	assert.True(t, tr.Alternating())

	tr.AppendUser("q3")
	assert.False(t, tr.Alternating())
}

func TestTranscriptLast(t *testing.T) {
	tr := New()
	_, ok := tr.Last()
	assert.False(t, ok)

	tr.AppendBot("only")
	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, AuthorBot, last.Author)
	assert.WithinDuration(t, time.Now(), last.At, time.Minute)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "나", AuthorUser.DisplayName())
	assert.Equal(t, "호바누", AuthorBot.DisplayName())
}

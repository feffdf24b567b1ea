// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

// Transcript is the ordered sequence of turns for one conversation view.
//
// Invariants:
//   - append-only while the view lives; turns are never reordered or edited
//   - turns alternate user/bot, oldest first, starting with a user turn
//
// Replace is the one exception to append-only: loading a saved history
// swaps in the server's turn list wholesale before the view is shown.
type Transcript struct {
	turns []Turn
}

// New creates an empty transcript.
func New() *Transcript {
	return &Transcript{}
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	return len(t.turns)
}

// Empty reports whether the transcript has no turns.
func (t *Transcript) Empty() bool {
	return len(t.turns) == 0
}

// Turns returns a copy of the turn list, oldest first.
func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Last returns the most recent turn and whether one exists.
func (t *Transcript) Last() (Turn, bool) {
	if len(t.turns) == 0 {
		return Turn{}, false
	}
	return t.turns[len(t.turns)-1], true
}

// AppendUser appends a user turn.
func (t *Transcript) AppendUser(content string) {
	t.turns = append(t.turns, NewUserTurn(content))
}

// AppendBot appends a bot turn.
func (t *Transcript) AppendBot(content string) {
	t.turns = append(t.turns, NewBotTurn(content))
}

// Replace swaps the whole turn list. Used when a saved history is loaded.
func (t *Transcript) Replace(turns []Turn) {
	t.turns = make([]Turn, len(turns))
	copy(t.turns, turns)
}

// CountBy returns how many turns the given author produced.
func (t *Transcript) CountBy(a Author) int {
	n := 0
	for _, turn := range t.turns {
		if turn.Author == a {
			n++
		}
	}
	return n
}

// Alternating reports whether turns strictly alternate user/bot starting
// with a user turn. Diagnostic helper; the controller preserves this by
// construction.
func (t *Transcript) Alternating() bool {
	for i, turn := range t.turns {
		want := AuthorUser
		if i%2 == 1 {
			want = AuthorBot
		}
		if turn.Author != want {
			return false
		}
	}
	return true
}

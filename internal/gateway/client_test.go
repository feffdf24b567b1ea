// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datastreams-knu/knubot-tui/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	sess := session.NewStore(session.NewMemoryKV())
	return New(srv.URL, sess), sess
}

func TestAskDecodesFlatReply(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/front-ai-response", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "공지사항 알려줘", req["question"])

		json.NewEncoder(w).Encode(Reply{
			Answer:     "오늘의 공지입니다.",
			References: "http://cse.knu.ac.kr",
			Images:     []string{"No content"},
		})
	}))

	reply, err := c.Ask(context.Background(), "공지사항 알려줘")
	require.NoError(t, err)
	assert.Equal(t, "오늘의 공지입니다.", reply.Answer)
	assert.Equal(t, []string{"No content"}, reply.Images)
}

func TestAskDecodesLegacyEnvelope(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"answer":"wrapped","references":"","disclaimer":"","images":[]}}`))
	}))

	reply, err := c.Ask(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "wrapped", reply.Answer)
}

func TestAskServerError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.Ask(context.Background(), "q")
	assert.ErrorIs(t, err, ErrServer)
}

func TestAskInHistoryRequiresToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not reach the backend without a token")
	}))

	_, err := c.AskInHistory(context.Background(), 7, "q")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAskInHistorySendsBearerToken(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat/user-question/7", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(Reply{Answer: "ok"})
	}))
	require.NoError(t, sess.SetToken("tok-123"))

	reply, err := c.AskInHistory(context.Background(), 7, "q")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply.Answer)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	require.NoError(t, sess.SetToken("expired"))

	_, err := c.Histories(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, sess.Authenticated(), "rejected token must be dropped")
}

func TestLoginStoresToken(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/member/login", r.URL.Path)
		w.Write([]byte(`{"accessToken":"abc"}`))
	}))

	require.NoError(t, c.Login(context.Background(), "a@knu.ac.kr", "pw"))
	assert.True(t, sess.Authenticated())
	assert.Equal(t, "abc", sess.Token())
}

func TestLoginTokenFieldSpelling(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"legacy"}`))
	}))

	require.NoError(t, c.Login(context.Background(), "a@knu.ac.kr", "pw"))
	assert.Equal(t, "legacy", sess.Token())
}

func TestCheckEmail(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "available", status: http.StatusOK, body: `{"email_check":true}`, wantErr: nil},
		{name: "taken flag", status: http.StatusOK, body: `{"email_check":false}`, wantErr: ErrInvalidEmail},
		{name: "bad request", status: http.StatusBadRequest, body: `bad`, wantErr: ErrInvalidEmail},
		{name: "unauthorized", status: http.StatusUnauthorized, body: ``, wantErr: ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/member/check-email", r.URL.Path)
				assert.Equal(t, "x@knu.ac.kr", r.URL.Query().Get("email"))
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			err := c.CheckEmail(context.Background(), "x@knu.ac.kr")
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestHistoriesList(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/history/show-all", r.URL.Path)
		w.Write([]byte(`[{"id":2,"name":"졸업요건","date":"2025-03-02"},{"id":1,"name":"장학금","date":"2025-03-01"}]`))
	}))
	require.NoError(t, sess.SetToken("tok"))

	entries, err := c.Histories(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].ID)
	assert.Equal(t, "졸업요건", entries[0].Name)
}

func TestNewHistory(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/history/new-history", r.URL.Path)
		w.Write([]byte(`{"new_history_id":42}`))
	}))
	require.NoError(t, sess.SetToken("tok"))

	id, err := c.NewHistory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestRenameHistoryEscapesName(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/history/rename/3/%EC%83%88%20%EC%9D%B4%EB%A6%84", r.URL.EscapedPath())
		w.WriteHeader(http.StatusOK)
	}))
	require.NoError(t, sess.SetToken("tok"))

	assert.NoError(t, c.RenameHistory(context.Background(), 3, "새 이름"))
}

func TestDeleteHistory(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/history/delete/9", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	require.NoError(t, sess.SetToken("tok"))

	assert.NoError(t, c.DeleteHistory(context.Background(), 9))
}

func TestHistoryTurns(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/history/show-questions/5", r.URL.Path)
		w.Write([]byte(`[{"Question":"q1","Answer":{"answer":"a1","references":"","disclaimer":"","images":[]},"QDate":"2025-03-01"}]`))
	}))
	require.NoError(t, sess.SetToken("tok"))

	turns, err := c.HistoryTurns(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "q1", turns[0].Question)
	assert.Equal(t, "a1", turns[0].Answer.Answer)
	assert.Equal(t, "2025-03-01", turns[0].QDate)
}

func TestMemberRoutePaths(t *testing.T) {
	var gotMethod, gotPath string
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusCreated)
	}))

	require.NoError(t, c.Signup(context.Background(), "닉", "a@knu.ac.kr", "pw"))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/member/signup", gotPath)

	require.NoError(t, sess.SetToken("tok"))
	require.NoError(t, c.DeleteAccount(context.Background()))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/member/delete", gotPath)
}

func TestMemberInfo(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/member/info", r.URL.Path)
		w.Write([]byte(`{"nickname":"호바누","joinedAt":"2025-01-01","num_of_question":12}`))
	}))
	require.NoError(t, sess.SetToken("tok"))

	p, err := c.MemberInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "호바누", p.Nickname)
	assert.Equal(t, 12, p.NumQuestions)
}

func TestNotConfigured(t *testing.T) {
	sess := session.NewStore(session.NewMemoryKV())
	c := New("", sess)

	_, err := c.Ask(context.Background(), "q")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import "encoding/json"

// =============================================================================
// WIRE TYPES
// =============================================================================

// Reply is the chatbot's answer payload. The backend serves it either flat or
// wrapped in a legacy {"response": {...}} envelope depending on the endpoint
// version; decodeReply accepts both.
type Reply struct {
	Answer     string   `json:"answer"`
	References string   `json:"references"`
	Disclaimer string   `json:"disclaimer"`
	Images     []string `json:"images"`
}

// replyEnvelope is the legacy wrapper still produced by older backend routes.
type replyEnvelope struct {
	Response *Reply `json:"response"`
}

// decodeReply parses a reply body, unwrapping the legacy envelope when
// present. A flat body with an empty answer and a populated envelope means
// the envelope wins.
func decodeReply(body []byte) (*Reply, error) {
	var flat Reply
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, err
	}
	if flat.Answer != "" || flat.References != "" || flat.Disclaimer != "" || len(flat.Images) > 0 {
		return &flat, nil
	}
	var env replyEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Response != nil {
		return env.Response, nil
	}
	return &flat, nil
}

// HistoryEntry is one saved conversation in the sidebar list.
type HistoryEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

// HistoryTurn is one question/answer pair inside a saved conversation,
// oldest first.
type HistoryTurn struct {
	Question string `json:"Question"`
	Answer   Reply  `json:"Answer"`
	QDate    string `json:"QDate"`
}

// Profile is the signed-in member's account summary.
type Profile struct {
	Nickname     string `json:"nickname"`
	JoinedAt     string `json:"joinedAt"`
	NumQuestions int    `json:"num_of_question"`
}

// loginResponse covers both token field spellings the backend has used.
type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

func (r loginResponse) token() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

// newHistoryResponse is the body of a new-history creation.
type newHistoryResponse struct {
	NewHistoryID int `json:"new_history_id"`
}

// emailCheckResponse reports whether an email is free to register.
type emailCheckResponse struct {
	EmailCheck bool `json:"email_check"`
}

// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway implements the HTTP client for the KNU CSE chatbot backend.
//
// The backend exposes a small REST surface: one ask endpoint for guests, one
// per-history ask endpoint for members, and CRUD routes for saved histories
// and accounts. Authentication is a bearer token obtained from /api/login.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/datastreams-knu/knubot-tui/internal/logging"
	"github.com/datastreams-knu/knubot-tui/internal/session"
)

// Configuration constants for the backend API.
const (
	// DefaultTimeout is the default timeout for API requests. Chatbot
	// answers are generated server-side and can take tens of seconds.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// Error variables for common backend errors.
var (
	// ErrNotConfigured indicates no backend base URL is set.
	ErrNotConfigured = errors.New("backend base URL not configured")

	// ErrUnauthorized indicates the session token was rejected or missing.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidEmail indicates the email failed the registration check.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrServer indicates a 5xx response from the backend.
	ErrServer = errors.New("server error")
)

// APIError represents an error response from the backend.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// Client is a client for the chatbot backend.
//
// All methods take a context and return explicit errors; none retries. The
// conversation flow treats any failure as a single fixed notice to the user,
// so transparent retries would only delay that notice.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
	log        *logrus.Logger
}

// New creates a backend client for the given base URL.
//
// The session store supplies the bearer token for member routes. If the base
// URL is empty the client is still created but every call fails with
// ErrNotConfigured.
func New(baseURL string, sess *session.Store) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		session: sess,
		log:     logging.L(),
	}
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// CHAT
// =============================================================================

// Ask sends a guest question and returns the chatbot's reply.
func (c *Client) Ask(ctx context.Context, question string) (*Reply, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/front-ai-response",
		map[string]string{"question": question}, false)
	if err != nil {
		return nil, err
	}
	return decodeReply(body)
}

// AskInHistory sends a member question inside a saved conversation. The
// backend stores the turn under the history and returns the reply.
func (c *Client) AskInHistory(ctx context.Context, historyID int, question string) (*Reply, error) {
	path := fmt.Sprintf("/api/chat/user-question/%d", historyID)
	body, err := c.do(ctx, http.MethodPost, path,
		map[string]string{"question": question}, true)
	if err != nil {
		return nil, err
	}
	return decodeReply(body)
}

// =============================================================================
// AUTH
// =============================================================================

// Login exchanges credentials for a bearer token and stores it in the
// session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body, err := c.do(ctx, http.MethodPost, "/api/member/login",
		map[string]string{"email": email, "password": password}, false)
	if err != nil {
		return err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}
	token := resp.token()
	if token == "" {
		return errors.New("login response carried no token")
	}
	return c.session.SetToken(token)
}

// Signup registers a new member. The backend answers 201 on success.
func (c *Client) Signup(ctx context.Context, nickname, email, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/member/signup", map[string]string{
		"nickname": nickname,
		"email":    email,
		"password": password,
	}, false)
	return err
}

// CheckEmail asks the backend whether the email may be registered. A 400 or
// 401 answer means the address is malformed or already taken.
func (c *Client) CheckEmail(ctx context.Context, email string) error {
	path := "/api/member/check-email?email=" + url.QueryEscape(email)
	body, err := c.do(ctx, http.MethodGet, path, nil, false)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized) {
			return ErrInvalidEmail
		}
		if errors.Is(err, ErrUnauthorized) {
			return ErrInvalidEmail
		}
		return err
	}

	var resp emailCheckResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse email check response: %w", err)
	}
	if !resp.EmailCheck {
		return ErrInvalidEmail
	}
	return nil
}

// MemberInfo fetches the signed-in member's profile.
func (c *Client) MemberInfo(ctx context.Context) (*Profile, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/member/info", nil, true)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("failed to parse member info: %w", err)
	}
	return &p, nil
}

// DeleteAccount removes the member account and all its histories. The caller
// is responsible for clearing the local session afterwards.
func (c *Client) DeleteAccount(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/member/delete", nil, true)
	return err
}

// =============================================================================
// HISTORIES
// =============================================================================

// Histories lists the member's saved conversations, newest first as the
// backend orders them.
func (c *Client) Histories(ctx context.Context) ([]HistoryEntry, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/history/show-all", nil, true)
	if err != nil {
		return nil, err
	}
	var entries []HistoryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history list: %w", err)
	}
	return entries, nil
}

// NewHistory creates an empty conversation and returns its id.
func (c *Client) NewHistory(ctx context.Context) (int, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/history/new-history", nil, true)
	if err != nil {
		return 0, err
	}
	var resp newHistoryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("failed to parse new history response: %w", err)
	}
	return resp.NewHistoryID, nil
}

// HistoryTurns fetches the saved turns of one conversation, oldest first.
func (c *Client) HistoryTurns(ctx context.Context, historyID int) ([]HistoryTurn, error) {
	path := fmt.Sprintf("/api/history/show-questions/%d", historyID)
	body, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}
	var turns []HistoryTurn
	if err := json.Unmarshal(body, &turns); err != nil {
		return nil, fmt.Errorf("failed to parse history turns: %w", err)
	}
	return turns, nil
}

// RenameHistory renames a saved conversation. The new name travels in the
// path, so it is escaped.
func (c *Client) RenameHistory(ctx context.Context, historyID int, newName string) error {
	path := fmt.Sprintf("/api/history/rename/%d/%s", historyID, url.PathEscape(newName))
	_, err := c.do(ctx, http.MethodPost, path, nil, true)
	return err
}

// DeleteHistory deletes a saved conversation.
func (c *Client) DeleteHistory(ctx context.Context, historyID int) error {
	path := fmt.Sprintf("/api/history/delete/%d", historyID)
	_, err := c.do(ctx, http.MethodDelete, path, nil, true)
	return err
}

// =============================================================================
// TRANSPORT
// =============================================================================

// do performs one request and returns the raw body for 2xx answers.
//
// authed routes carry the session bearer token; a 401 on any of them clears
// the stored token so the UI falls back to the guest flow on its next
// routing decision.
func (c *Client) do(ctx context.Context, method, path string, payload any, authed bool) ([]byte, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "knubot/1.0")

	if authed {
		token := c.session.Token()
		if token == "" {
			return nil, ErrUnauthorized
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	reqID := uuid.NewString()
	start := time.Now()
	c.log.WithFields(logrus.Fields{
		"request_id": reqID,
		"method":     method,
		"path":       path,
	}).Debug("backend request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithField("request_id", reqID).WithError(err).Warn("backend request failed")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"request_id": reqID,
		"status":     resp.StatusCode,
		"duration":   time.Since(start).String(),
	}).Debug("backend response")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	return nil, c.handleErrorResponse(resp.StatusCode, body, authed)
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse converts HTTP error statuses to package errors. A 401
// on an authenticated route also drops the stored token: the backend has
// declared the session dead, keeping the token would only repeat the error.
func (c *Client) handleErrorResponse(statusCode int, body []byte, authed bool) error {
	msg := strings.TrimSpace(string(body))

	switch {
	case statusCode == http.StatusUnauthorized:
		if authed {
			if err := c.session.Clear(); err != nil {
				c.log.WithError(err).Warn("failed to clear rejected session token")
			}
		}
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		}
		return ErrUnauthorized
	case statusCode == http.StatusNotFound:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		}
		return ErrNotFound
	case statusCode >= 500:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrServer, msg)
		}
		return ErrServer
	default:
		return &APIError{Status: statusCode, Message: msg}
	}
}

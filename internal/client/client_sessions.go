package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// CreateSessionRequest is the request body for creating a session.
type CreateSessionRequest struct {
	Title string `json:"title"`
}

// ListSessions fetches all sessions known to the server.
func (c *Client) ListSessions(ctx context.Context) ([]RawSession, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/session", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setRequestHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus("list sessions", resp.StatusCode, resp.Body)
	}

	var sessions []RawSession
	if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
		return nil, fmt.Errorf("failed to parse sessions: %w", err)
	}

	return sessions, nil
}

// ListStatuses fetches the per-session working status map. Sessions absent
// from the map have no known status.
func (c *Client) ListStatuses(ctx context.Context) (map[string]SessionStatus, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/session/status", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setRequestHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session statuses: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus("list session statuses", resp.StatusCode, resp.Body)
	}

	var statuses map[string]SessionStatus
	if err := json.NewDecoder(resp.Body).Decode(&statuses); err != nil {
		return nil, fmt.Errorf("failed to parse session statuses: %w", err)
	}

	return statuses, nil
}

// CreateSession creates a new session with the given title.
func (c *Client) CreateSession(ctx context.Context, title string) (*RawSession, error) {
	resp, err := c.postJSON(ctx, c.baseURL+"/session", CreateSessionRequest{Title: title})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, unexpectedStatus("create session", resp.StatusCode, resp.Body)
	}

	var session RawSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}

	return &session, nil
}

// DeleteSession removes a session from the server.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	url := fmt.Sprintf("%s/session/%s", c.baseURL, sessionID)

	req, err := http.NewRequestWithContext(ctx, "DELETE", url, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.setRequestHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return unexpectedStatus("delete session", resp.StatusCode, resp.Body)
	}

	return nil
}

// Abort interrupts whatever the session's agent is currently doing.
func (c *Client) Abort(ctx context.Context, sessionID string) error {
	url := fmt.Sprintf("%s/session/%s/abort", c.baseURL, sessionID)

	resp, err := c.postJSON(ctx, url, struct{}{})
	if err != nil {
		return fmt.Errorf("failed to abort session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return unexpectedStatus("abort session", resp.StatusCode, resp.Body)
	}

	return nil
}

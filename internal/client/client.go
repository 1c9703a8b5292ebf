// Package client provides the HTTP client for an opencode coding-agent server.
//
// The client authenticates with HTTP Basic and provides methods for:
//   - Checking server health and version
//   - Listing sessions and their working statuses
//   - Loading a session's message history and todo list
//   - Sending prompts and slash commands into a session
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/gervaso-assistant/ocremote/internal/buildinfo"
	"github.com/gervaso-assistant/ocremote/internal/config"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client is the opencode server API client.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// HealthInfo is the server's health report.
type HealthInfo struct {
	Healthy bool   `json:"healthy"`
	Version string `json:"version"`
}

// Timestamps holds creation and update times in epoch milliseconds.
type Timestamps struct {
	Created int64 `json:"created"`
	Updated int64 `json:"updated"`
}

// SessionSummary aggregates the file changes a session has made.
type SessionSummary struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Files     int `json:"files"`
}

// RawSession is one session as reported by the server.
type RawSession struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Directory string          `json:"directory"`
	Time      Timestamps      `json:"time"`
	Summary   *SessionSummary `json:"summary,omitempty"`
}

// SessionStatus describes what a session is currently doing.
type SessionStatus struct {
	Type    string `json:"type"`
	Attempt int    `json:"attempt,omitempty"`
	Message string `json:"message,omitempty"`
	Next    string `json:"next,omitempty"`
}

// MessageInfo is the metadata half of a message envelope.
type MessageInfo struct {
	ID        string      `json:"id"`
	Role      string      `json:"role"`
	SessionID string      `json:"sessionID"`
	Time      MessageTime `json:"time"`
}

// MessageTime holds a message's creation and optional completion time.
type MessageTime struct {
	Created   int64 `json:"created"`
	Completed int64 `json:"completed,omitempty"`
}

// MessagePart is one content part of a message.
type MessagePart struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// MessageEnvelope pairs message metadata with its content parts.
type MessageEnvelope struct {
	Info  MessageInfo   `json:"info"`
	Parts []MessagePart `json:"parts"`
}

// TodoItem is one entry of a session's task list.
type TodoItem struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

// CommandInfo describes one slash command the server accepts.
type CommandInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// New creates a client for the given server.
func New(server config.ServerConfig) *Client {
	return &Client{
		baseURL:  server.BaseURL(),
		username: server.Username,
		password: server.Password,
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// WithBaseURL sets a custom base URL. Used by tests against httptest servers.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health checks the server's health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthInfo, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/global/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setRequestHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("server rejected credentials")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus("health check", resp.StatusCode, resp.Body)
	}

	var health HealthInfo
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to parse health response: %w", err)
	}

	return &health, nil
}

// ListCommands fetches the server's slash-command catalog.
func (c *Client) ListCommands(ctx context.Context) ([]CommandInfo, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/command", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setRequestHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commands: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus("list commands", resp.StatusCode, resp.Body)
	}

	var commands []CommandInfo
	if err := json.NewDecoder(resp.Body).Decode(&commands); err != nil {
		return nil, fmt.Errorf("failed to parse commands: %w", err)
	}

	return commands, nil
}

func (c *Client) setRequestHeaders(req *http.Request) {
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "ocremote/"+buildinfo.Version)
}

// postJSON issues a POST with a JSON body and returns the response.
func (c *Client) postJSON(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setRequestHeaders(req)

	return c.httpClient.Do(req)
}

// unexpectedStatus creates a formatted error from an unexpected HTTP status code.
func unexpectedStatus(operation string, statusCode int, body io.Reader) error {
	respBody, readErr := io.ReadAll(body)
	if readErr != nil {
		return fmt.Errorf("%s failed with status %d (failed to read body: %v)", operation, statusCode, readErr)
	}
	return fmt.Errorf("%s failed with status %d: %s", operation, statusCode, string(respBody))
}

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	neturl "net/url"
)

// SendPromptRequest is the request body for sending free-text input.
type SendPromptRequest struct {
	Text      string `json:"text"`
	Directory string `json:"directory,omitempty"`
}

// SendCommandRequest is the request body for running a slash command.
type SendCommandRequest struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
	Directory string `json:"directory,omitempty"`
}

// LoadMessages fetches a session's message history. The session's working
// directory is passed through so the server resolves file references.
func (c *Client) LoadMessages(ctx context.Context, sessionID, directory string) ([]MessageEnvelope, error) {
	endpoint, err := neturl.Parse(fmt.Sprintf("%s/session/%s/message", c.baseURL, sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to parse message endpoint: %w", err)
	}

	if directory != "" {
		query := endpoint.Query()
		query.Set("directory", directory)
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setRequestHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus("load messages", resp.StatusCode, resp.Body)
	}

	var messages []MessageEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	return messages, nil
}

// LoadTodo fetches a session's task list.
func (c *Client) LoadTodo(ctx context.Context, sessionID string) ([]TodoItem, error) {
	url := fmt.Sprintf("%s/session/%s/todo", c.baseURL, sessionID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setRequestHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch todos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus("load todos", resp.StatusCode, resp.Body)
	}

	var todos []TodoItem
	if err := json.NewDecoder(resp.Body).Decode(&todos); err != nil {
		return nil, fmt.Errorf("failed to parse todos: %w", err)
	}

	return todos, nil
}

// SendPrompt sends free text into a session for the agent to work on.
// The server responds asynchronously; the reply arrives via polling.
func (c *Client) SendPrompt(ctx context.Context, sessionID, text, directory string) error {
	url := fmt.Sprintf("%s/session/%s/message", c.baseURL, sessionID)

	resp, err := c.postJSON(ctx, url, SendPromptRequest{Text: text, Directory: directory})
	if err != nil {
		return fmt.Errorf("failed to send prompt: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return unexpectedStatus("send prompt", resp.StatusCode, resp.Body)
	}

	return nil
}

// SendCommand runs a named slash command in a session.
func (c *Client) SendCommand(ctx context.Context, sessionID, name, arguments, directory string) error {
	url := fmt.Sprintf("%s/session/%s/command", c.baseURL, sessionID)

	body := SendCommandRequest{
		Name:      name,
		Arguments: arguments,
		Directory: directory,
	}

	resp, err := c.postJSON(ctx, url, body)
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return unexpectedStatus("send command", resp.StatusCode, resp.Body)
	}

	return nil
}

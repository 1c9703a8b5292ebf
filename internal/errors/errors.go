// Package errors provides structured CLI error types for ocremote.
//
// CLIError wraps errors with user-facing messages, hints, and exit codes
// to provide consistent, actionable error output across all commands.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for CLI errors.
const (
	ExitSuccess = 0  // Successful execution
	ExitGeneral = 1  // General error
	ExitAuth    = 2  // Authentication error
	ExitNetwork = 3  // Network/API error
	ExitConfig  = 4  // Configuration error
	ExitUsage   = 64 // Command line usage error (BSD convention)
)

// CLIError represents a user-facing CLI error with actionable guidance.
type CLIError struct {
	// Message is the primary error message shown to the user.
	Message string

	// Hint provides actionable guidance on how to fix the error.
	Hint string

	// Cause is the underlying error, if any.
	Cause error

	// Code is the exit code for the CLI.
	Code int
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// New creates a new CLIError with the given message and exit code.
func New(code int, message string) *CLIError {
	return &CLIError{
		Message: message,
		Code:    code,
	}
}

// Wrap wraps an existing error with a CLIError.
func Wrap(code int, message string, cause error) *CLIError {
	return &CLIError{
		Message: message,
		Cause:   cause,
		Code:    code,
	}
}

// WithHint adds a hint to the error.
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// As is a convenience function for errors.As with CLIError.
func As(err error, target **CLIError) bool {
	return errors.As(err, target)
}

// --- Common error constructors ---

// NotConfigured returns an error indicating a missing server configuration.
func NotConfigured() *CLIError {
	return &CLIError{
		Message: "No server configured",
		Hint:    "Run 'ocremote init' to configure a server",
		Code:    ExitConfig,
	}
}

// NotAuthenticated returns an error indicating a missing server password.
func NotAuthenticated() *CLIError {
	return &CLIError{
		Message: "Not authenticated",
		Hint:    "Run 'ocremote login' to store the server password",
		Code:    ExitAuth,
	}
}

// AuthFailed returns an error for a rejected password.
func AuthFailed(cause error) *CLIError {
	return &CLIError{
		Message: "Authentication failed",
		Hint:    "Check the server password or run 'ocremote login'",
		Cause:   cause,
		Code:    ExitAuth,
	}
}

// ServerUnreachable returns an error when the server cannot be contacted.
func ServerUnreachable(baseURL string, cause error) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Cannot reach server at %s", baseURL),
		Hint:    "Check that the opencode server is running and the host/port are correct, or run 'ocremote doctor'",
		Cause:   cause,
		Code:    ExitNetwork,
	}
}

// CannotPrompt returns an error when interactive prompts are unavailable.
func CannotPrompt(envVar string) *CLIError {
	return &CLIError{
		Message: "Cannot prompt in non-interactive mode",
		Hint:    fmt.Sprintf("Set %s environment variable instead", envVar),
		Code:    ExitUsage,
	}
}

// SessionNotFound returns an error for an unknown session.
func SessionNotFound(id string) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Session not found: %s", id),
		Hint:    "Run 'ocremote sessions list' to see available sessions",
		Code:    ExitGeneral,
	}
}

// NoSessions returns an error when the server reports no sessions.
func NoSessions() *CLIError {
	return &CLIError{
		Message: "No sessions found on the server",
		Hint:    "Create one with 'ocremote sessions create'",
		Code:    ExitGeneral,
	}
}

// SessionRequired returns an error when a session is required but not specified.
func SessionRequired() *CLIError {
	return &CLIError{
		Message: "Session required",
		Hint:    "Use --session to specify a session, or run without --no-input to select interactively",
		Code:    ExitUsage,
	}
}

// EmptyPrompt returns an error for a blank prompt text.
func EmptyPrompt() *CLIError {
	return &CLIError{
		Message: "Prompt text cannot be empty",
		Hint:    "Provide the text to send after the command name",
		Code:    ExitUsage,
	}
}

// EmptyCommand returns an error for a slash input with no command name.
func EmptyCommand() *CLIError {
	return &CLIError{
		Message: "Command name cannot be empty",
		Hint:    "Use '/name args' to run a command, for example '/undo'",
		Code:    ExitUsage,
	}
}

// PasswordEmpty returns an error when the password is empty.
func PasswordEmpty() *CLIError {
	return &CLIError{
		Message: "Password cannot be empty",
		Hint:    "Enter a valid password or set OCREMOTE_PASSWORD environment variable",
		Code:    ExitAuth,
	}
}

// ConfigFailed returns an error for configuration save failures.
func ConfigFailed(operation string, cause error) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Failed to %s", operation),
		Hint:    "Check file permissions for your ocremote config directory or run 'ocremote doctor'",
		Cause:   cause,
		Code:    ExitConfig,
	}
}

// RequestFailed returns an error for a failed server operation.
// It inspects the HTTP status to pick the message and hint.
func RequestFailed(operation string, status int, cause error) *CLIError {
	msg := fmt.Sprintf("Failed to %s", operation)
	hint := ""
	code := ExitNetwork

	switch {
	case status == 401 || status == 403:
		msg = fmt.Sprintf("Server rejected credentials while trying to %s", operation)
		hint = "Run 'ocremote login' to update the stored password"
		code = ExitAuth
	case status == 404:
		hint = "The session may have been deleted. Refresh with 'ocremote sessions list'"
	case status >= 500:
		hint = "The server reported an internal error. Check the server logs"
	case containsAny(errText(cause), "connection refused", "no such host", "timeout"):
		hint = "Check that the server is running and reachable, or run 'ocremote doctor'"
	}

	return &CLIError{
		Message: msg,
		Hint:    hint,
		Cause:   cause,
		Code:    code,
	}
}

// UpdateFailed returns an error for self-update failures.
func UpdateFailed(cause error) *CLIError {
	return &CLIError{
		Message: "Update failed",
		Hint:    "Check your network connection, or download the latest release manually",
		Cause:   cause,
		Code:    ExitNetwork,
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}

// containsAny checks if s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrings {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}

	return false
}

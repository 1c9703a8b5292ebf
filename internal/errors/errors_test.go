package errors

import (
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/gervaso-assistant/ocremote/internal/testutil"
)

func TestRequestFailed(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		cause    error
		wantMsg  string
		wantHint string
		wantCode int
	}{
		{
			name:     "unauthorized",
			status:   401,
			wantMsg:  "rejected credentials",
			wantHint: "ocremote login",
			wantCode: ExitAuth,
		},
		{
			name:     "forbidden",
			status:   403,
			wantMsg:  "rejected credentials",
			wantHint: "ocremote login",
			wantCode: ExitAuth,
		},
		{
			name:     "not found",
			status:   404,
			wantMsg:  "Failed to",
			wantHint: "may have been deleted",
			wantCode: ExitNetwork,
		},
		{
			name:     "server error",
			status:   500,
			wantMsg:  "Failed to",
			wantHint: "internal error",
			wantCode: ExitNetwork,
		},
		{
			name:     "connection refused",
			status:   0,
			cause:    &net.OpError{Op: "dial", Err: fmt.Errorf("connection refused")},
			wantMsg:  "Failed to",
			wantHint: "ocremote doctor",
			wantCode: ExitNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequestFailed("list sessions", tt.status, tt.cause)

			if !strings.Contains(err.Message, tt.wantMsg) {
				t.Errorf("message = %q, want to contain %q", err.Message, tt.wantMsg)
			}

			if !strings.Contains(err.Hint, tt.wantHint) {
				t.Errorf("hint = %q, want to contain %q", err.Hint, tt.wantHint)
			}

			if err.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", err.Code, tt.wantCode)
			}
		})
	}
}

func TestContainsAny(t *testing.T) {
	tests := []struct {
		s          string
		substrings []string
		want       bool
	}{
		{"connection refused", []string{"connection refused"}, true},
		{"CONNECTION REFUSED", []string{"connection refused"}, true},
		{"some error", []string{"connection refused", "timeout"}, false},
		{"i/o timeout", []string{"connection refused", "timeout"}, true},
		{"", []string{"test"}, false},
	}

	for _, tt := range tests {
		result := containsAny(tt.s, tt.substrings...)
		if result != tt.want {
			t.Errorf("containsAny(%q, %v) = %v, want %v", tt.s, tt.substrings, result, tt.want)
		}
	}
}

// TestAllErrorsHaveHints verifies that all error constructors provide actionable hints.
func TestAllErrorsHaveHints(t *testing.T) {
	tests := []struct {
		name string
		err  *CLIError
	}{
		{"NotConfigured", NotConfigured()},
		{"NotAuthenticated", NotAuthenticated()},
		{"AuthFailed", AuthFailed(nil)},
		{"ServerUnreachable", ServerUnreachable("http://127.0.0.1:4096", nil)},
		{"CannotPrompt", CannotPrompt("TEST_VAR")},
		{"SessionNotFound", SessionNotFound("ses_123")},
		{"NoSessions", NoSessions()},
		{"SessionRequired", SessionRequired()},
		{"EmptyPrompt", EmptyPrompt()},
		{"EmptyCommand", EmptyCommand()},
		{"PasswordEmpty", PasswordEmpty()},
		{"ConfigFailed", ConfigFailed("test operation", nil)},
		{"RequestFailed", RequestFailed("list sessions", 500, nil)},
		{"UpdateFailed", UpdateFailed(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Hint == "" {
				t.Errorf("%s() should have a hint, got empty string", tt.name)
			}

			if tt.err.Message == "" {
				t.Errorf("%s() should have a message, got empty string", tt.name)
			}
		})
	}
}

func TestCLIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *CLIError
		want string
	}{
		{
			name: "message only",
			err:  &CLIError{Message: "test error"},
			want: "test error",
		},
		{
			name: "message with cause",
			err:  &CLIError{Message: "test error", Cause: New(1, "underlying")},
			want: "test error: underlying",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCLIError_Unwrap(t *testing.T) {
	cause := New(1, "cause")
	err := &CLIError{Message: "wrapper", Cause: cause}

	if got := err.Unwrap(); got != cause { //nolint:errorlint // testing identity
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
}

func TestWithHint(t *testing.T) {
	err := New(1, "test").WithHint("do this")

	if err.Hint != "do this" {
		t.Errorf("WithHint() hint = %q, want %q", err.Hint, "do this")
	}
}

func TestWrap(t *testing.T) {
	cause := New(1, "cause")
	err := Wrap(ExitNetwork, "wrapped", cause)

	if err.Code != ExitNetwork {
		t.Errorf("Wrap() code = %d, want %d", err.Code, ExitNetwork)
	}

	if err.Cause != cause { //nolint:errorlint // testing struct field identity
		t.Errorf("Wrap() cause = %v, want %v", err.Cause, cause)
	}
}

// formatCLIError produces a deterministic string representation of a CLIError for golden file comparison.
func formatCLIError(err *CLIError) string {
	return fmt.Sprintf("Message: %s\nHint: %s\nCode: %d\n", err.Message, err.Hint, err.Code)
}

func TestErrorMessages_Golden(t *testing.T) {
	tests := []struct {
		name string
		err  *CLIError
	}{
		{"NotConfigured", NotConfigured()},
		{"NotAuthenticated", NotAuthenticated()},
		{"AuthFailed", AuthFailed(nil)},
		{"ServerUnreachable", ServerUnreachable("http://127.0.0.1:4096", nil)},
		{"CannotPrompt", CannotPrompt("OCREMOTE_PASSWORD")},
		{"SessionNotFound", SessionNotFound("ses_abc123")},
		{"NoSessions", NoSessions()},
		{"SessionRequired", SessionRequired()},
		{"EmptyPrompt", EmptyPrompt()},
		{"EmptyCommand", EmptyCommand()},
		{"PasswordEmpty", PasswordEmpty()},
		{"ConfigFailed", ConfigFailed("store credentials", nil)},
		{"RequestFailed_Unauthorized", RequestFailed("send prompt", 401, nil)},
		{"RequestFailed_NotFound", RequestFailed("load messages", 404, nil)},
		{"RequestFailed_ServerError", RequestFailed("create session", 500, nil)},
		{"UpdateFailed", UpdateFailed(nil)},
	}

	var sb strings.Builder
	for _, tt := range tests {
		fmt.Fprintf(&sb, "--- %s ---\n", tt.name)
		sb.WriteString(formatCLIError(tt.err))
		sb.WriteString("\n")
	}

	testutil.AssertGolden(t, sb.String(), "error_messages.golden")
}

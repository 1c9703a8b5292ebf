// Package auth handles server credential storage and retrieval for ocremote.
//
// Passwords are sourced in the following priority order:
//  1. Environment variable: OCREMOTE_PASSWORD
//  2. OS Keyring (macOS Keychain, Windows Credential Manager, Linux Secret Service)
//  3. Config file fallback: <user config dir>/ocremote/credentials/<host:port>
//
// Credentials are keyed by the server's host:port so more than one server can
// be remembered at a time.
package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/gervaso-assistant/ocremote/internal/paths"
)

const (
	// keyringService is the service name used in OS keyring storage.
	keyringService = "ocremote"
	// envVarName is the environment variable for the server password.
	envVarName = "OCREMOTE_PASSWORD"
)

// CredentialSource indicates where the password was found.
type CredentialSource string

// Credential source constants identify where credentials were loaded from.
const (
	SourceEnv     CredentialSource = "environment variable"
	SourceKeyring CredentialSource = "keyring"
	SourceFile    CredentialSource = "config file"
	SourceNone    CredentialSource = ""
)

// GetPassword returns the password for the server identified by serverKey
// (host:port) and its source. Returns empty strings if nothing is stored.
func GetPassword(serverKey string) (source CredentialSource, password string) {
	// Priority 1: Environment variable
	if pw := os.Getenv(envVarName); pw != "" {
		return SourceEnv, pw
	}

	// Priority 2: OS Keyring
	if pw, err := keyring.Get(keyringService, serverKey); err == nil && pw != "" {
		return SourceKeyring, pw
	}

	// Priority 3: Config file fallback
	if pw := readCredentialsFile(serverKey); pw != "" {
		return SourceFile, pw
	}

	return SourceNone, ""
}

// StorePassword stores the password for serverKey in the OS keyring.
// Falls back to file storage if keyring is unavailable.
func StorePassword(serverKey, password string) error {
	// Try keyring first
	err := keyring.Set(keyringService, serverKey, password)
	if err == nil {
		return nil
	}

	// Fallback to file storage
	return writeCredentialsFile(serverKey, password)
}

// DeletePassword removes the stored password for serverKey.
func DeletePassword(serverKey string) error {
	// Try to delete from keyring
	keyringErr := keyring.Delete(keyringService, serverKey)

	// Also try to delete from file
	fileErr := deleteCredentialsFile(serverKey)

	// Return error only if both failed and nothing was deleted
	if keyringErr != nil && fileErr != nil {
		return fmt.Errorf("no stored credentials found for %s", serverKey)
	}

	return nil
}

// credentialsFilePath returns the fallback file path for serverKey.
func credentialsFilePath(serverKey string) string {
	path, err := paths.CredentialsFile(serverKey)
	if err != nil {
		return ""
	}

	return filepath.Clean(path)
}

// readCredentialsFile reads the password from the file fallback.
func readCredentialsFile(serverKey string) string {
	path := credentialsFilePath(serverKey)
	if path == "" {
		return ""
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path from controlled config directory
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(data))
}

// writeCredentialsFile writes the password to the file fallback.
func writeCredentialsFile(serverKey, password string) error {
	path := credentialsFilePath(serverKey)
	if path == "" {
		return fmt.Errorf("could not determine home directory")
	}

	// Create directory with secure permissions
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	// Write file with secure permissions (owner read/write only)
	if err := os.WriteFile(path, []byte(password+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}

// deleteCredentialsFile removes the credentials file.
func deleteCredentialsFile(serverKey string) error {
	path := credentialsFilePath(serverKey)
	if path == "" {
		return fmt.Errorf("could not determine home directory")
	}

	err := os.Remove(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("credentials file not found")
	}

	if err != nil {
		return fmt.Errorf("remove credentials file: %w", err)
	}

	return nil
}

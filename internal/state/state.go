// Package state persists console preferences between runs.
//
// Preferences are a small TOML file in the user state directory, separate
// from configuration: they change as a side effect of using the console
// (toggling the composer mode, picking a session) rather than by explicit
// config edits.
package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/gervaso-assistant/ocremote/internal/paths"
)

// Console holds the persisted console preferences.
type Console struct {
	// ComposerMode is the last composer routing mode ("prefix" or "toggle").
	ComposerMode string `toml:"composer_mode,omitempty"`

	// LastSession is the session selected when the console last closed.
	LastSession string `toml:"last_session,omitempty"`

	// LastServer is the host:port key of the server last connected to.
	LastServer string `toml:"last_server,omitempty"`
}

// LoadConsole reads the persisted console preferences. A missing or corrupt
// file yields empty preferences, never an error.
func LoadConsole() Console {
	path, err := paths.ConsoleStateFile()
	if err != nil {
		return Console{}
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path from controlled state directory
	if err != nil {
		return Console{}
	}

	var prefs Console
	if err := toml.Unmarshal(data, &prefs); err != nil {
		return Console{}
	}

	return prefs
}

// SaveConsole persists the console preferences.
func SaveConsole(prefs Console) error {
	path, err := paths.ConsoleStateFile()
	if err != nil {
		return fmt.Errorf("resolve state file: %w", err)
	}

	data, err := toml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// ClearConsole removes the persisted preferences. A missing file is fine.
func ClearConsole() error {
	path, err := paths.ConsoleStateFile()
	if err != nil {
		return fmt.Errorf("resolve state file: %w", err)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove state file: %w", err)
	}

	return nil
}

package state

import (
	"os"
	"path/filepath"
	"testing"
)

func isolateState(t *testing.T) string {
	t.Helper()

	tmp := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmp)

	return tmp
}

func TestSaveAndLoadConsole(t *testing.T) {
	isolateState(t)

	prefs := Console{
		ComposerMode: "toggle",
		LastSession:  "ses_abc",
		LastServer:   "10.0.0.5:4096",
	}

	if err := SaveConsole(prefs); err != nil {
		t.Fatalf("SaveConsole() error = %v", err)
	}

	got := LoadConsole()
	if got != prefs {
		t.Errorf("LoadConsole() = %+v, want %+v", got, prefs)
	}
}

func TestLoadConsole_MissingFile(t *testing.T) {
	isolateState(t)

	got := LoadConsole()
	if got != (Console{}) {
		t.Errorf("LoadConsole() on missing file = %+v, want zero value", got)
	}
}

func TestLoadConsole_CorruptFile(t *testing.T) {
	tmp := isolateState(t)

	dir := filepath.Join(tmp, "ocremote")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "console.toml"), []byte("not [valid toml"), 0o600); err != nil {
		t.Fatal(err)
	}

	got := LoadConsole()
	if got != (Console{}) {
		t.Errorf("LoadConsole() on corrupt file = %+v, want zero value", got)
	}
}

func TestClearConsole(t *testing.T) {
	isolateState(t)

	if err := SaveConsole(Console{ComposerMode: "prefix"}); err != nil {
		t.Fatalf("SaveConsole() error = %v", err)
	}

	if err := ClearConsole(); err != nil {
		t.Fatalf("ClearConsole() error = %v", err)
	}

	if got := LoadConsole(); got != (Console{}) {
		t.Errorf("preferences survived ClearConsole: %+v", got)
	}

	// Clearing again is not an error.
	if err := ClearConsole(); err != nil {
		t.Errorf("ClearConsole() on missing file error = %v", err)
	}
}

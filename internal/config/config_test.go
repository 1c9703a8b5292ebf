package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// unsetEnvForTest unsets an environment variable and registers cleanup to
// restore its original state (including distinguishing "unset" from "set to
// empty string").
func unsetEnvForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func isolateConfig(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	unsetEnvForTest(t, "OCREMOTE_SERVER_HOST")
	unsetEnvForTest(t, "OCREMOTE_SERVER_PORT")
	unsetEnvForTest(t, "OCREMOTE_SERVER_USERNAME")
	unsetEnvForTest(t, "OCREMOTE_POLL_INTERVAL_MS")
	unsetEnvForTest(t, "OCREMOTE_CONSOLE_COMPOSER_MODE")

	return tmpDir
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfig(t)

	cfg := Load()

	if got := cfg.GetString("server.host"); got != DefaultHost {
		t.Errorf("server.host = %q, want %q", got, DefaultHost)
	}
	if got := cfg.GetInt("server.port"); got != DefaultPort {
		t.Errorf("server.port = %d, want %d", got, DefaultPort)
	}
	if got := cfg.GetString("server.username"); got != DefaultUsername {
		t.Errorf("server.username = %q, want %q", got, DefaultUsername)
	}
	if got := cfg.PollInterval(); got != DefaultPollIntervalMs*time.Millisecond {
		t.Errorf("PollInterval() = %v, want %v", got, DefaultPollIntervalMs*time.Millisecond)
	}
	if got := cfg.ComposerMode(); got != "prefix" {
		t.Errorf("ComposerMode() = %q, want %q", got, "prefix")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	tests := []struct {
		name    string
		envVar  string
		envVal  string
		key     string
		wantStr string
		wantInt int
	}{
		{
			name:    "host from env",
			envVar:  "OCREMOTE_SERVER_HOST",
			envVal:  "192.168.1.20",
			key:     "server.host",
			wantStr: "192.168.1.20",
		},
		{
			name:    "port from env",
			envVar:  "OCREMOTE_SERVER_PORT",
			envVal:  "8080",
			key:     "server.port",
			wantInt: 8080,
		},
		{
			name:    "poll interval from env",
			envVar:  "OCREMOTE_POLL_INTERVAL_MS",
			envVal:  "5000",
			key:     "poll.interval_ms",
			wantInt: 5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			t.Setenv(tt.envVar, tt.envVal)

			cfg := Load()

			if tt.wantStr != "" {
				got := cfg.GetString(tt.key)
				if got != tt.wantStr {
					t.Errorf("GetString(%q) = %q, want %q", tt.key, got, tt.wantStr)
				}
			}
			if tt.wantInt != 0 {
				got := cfg.GetInt(tt.key)
				if got != tt.wantInt {
					t.Errorf("GetInt(%q) = %d, want %d", tt.key, got, tt.wantInt)
				}
			}
		})
	}
}

func TestLoad_CorruptFileFallsBackToDefaults(t *testing.T) {
	tmpDir := isolateConfig(t)

	configDir := filepath.Join(tmpDir, "ocremote")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("{{{not yaml"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Load()

	if got := cfg.GetString("server.host"); got != DefaultHost {
		t.Errorf("server.host after corrupt file = %q, want default %q", got, DefaultHost)
	}
	if got := cfg.GetInt("server.port"); got != DefaultPort {
		t.Errorf("server.port after corrupt file = %d, want default %d", got, DefaultPort)
	}
}

func TestConfig_All(t *testing.T) {
	isolateConfig(t)

	cfg := Load()
	all := cfg.All()

	if all == nil {
		t.Fatal("All() returned nil")
	}

	if _, ok := all["server"]; !ok {
		t.Error("All() missing 'server' key")
	}
	if _, ok := all["poll"]; !ok {
		t.Error("All() missing 'poll' key")
	}
}

func TestServerConfig_Key(t *testing.T) {
	s := ServerConfig{Host: "10.0.0.5", Port: 4096}

	if got := s.Key(); got != "10.0.0.5:4096" {
		t.Errorf("Key() = %q, want %q", got, "10.0.0.5:4096")
	}
	if got := s.BaseURL(); got != "http://10.0.0.5:4096" {
		t.Errorf("BaseURL() = %q, want %q", got, "http://10.0.0.5:4096")
	}
}

func TestServerConfig_Valid(t *testing.T) {
	tests := []struct {
		name string
		cfg  ServerConfig
		want bool
	}{
		{"complete", ServerConfig{Host: "h", Port: 1, Password: "p"}, true},
		{"missing host", ServerConfig{Port: 1, Password: "p"}, false},
		{"blank host", ServerConfig{Host: "  ", Port: 1, Password: "p"}, false},
		{"missing password", ServerConfig{Host: "h", Port: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_ComposerMode(t *testing.T) {
	tests := []struct {
		name   string
		envVal string
		want   string
	}{
		{"default", "", "prefix"},
		{"toggle", "toggle", "toggle"},
		{"unknown falls back", "bogus", "prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)

			if tt.envVal != "" {
				t.Setenv("OCREMOTE_CONSOLE_COMPOSER_MODE", tt.envVal)
			}

			cfg := Load()
			if got := cfg.ComposerMode(); got != tt.want {
				t.Errorf("ComposerMode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_PollInterval_ClampsNonPositive(t *testing.T) {
	isolateConfig(t)
	t.Setenv("OCREMOTE_POLL_INTERVAL_MS", "-10")

	cfg := Load()
	if got := cfg.PollInterval(); got != DefaultPollIntervalMs*time.Millisecond {
		t.Errorf("PollInterval() = %v, want default %v", got, DefaultPollIntervalMs*time.Millisecond)
	}
}

// Package config handles ocremote configuration using Viper.
//
// Configuration sources (in priority order):
//  1. Environment variables (OCREMOTE_*)
//  2. Config file (~/.config/ocremote/config.yaml)
//  3. Built-in defaults
//
// The server password is deliberately not part of this file; it lives in the
// OS keyring (see internal/auth).
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gervaso-assistant/ocremote/internal/paths"
)

const (
	// DefaultHost is the default server host.
	DefaultHost = "127.0.0.1"
	// DefaultPort is the default opencode server port.
	DefaultPort = 4096
	// DefaultUsername is the default basic-auth username.
	DefaultUsername = "opencode"
	// DefaultPollIntervalMs is the default background poll interval.
	DefaultPollIntervalMs = 3500
	// DefaultComposerMode selects how composer input is classified.
	DefaultComposerMode = "prefix"
)

// ServerConfig identifies one coding-agent server. Two configs refer to the
// same server only when all four fields match.
type ServerConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Key returns the host:port identity used for credential storage.
func (s ServerConfig) Key() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// BaseURL returns the HTTP base URL for the server.
func (s ServerConfig) BaseURL() string {
	return "http://" + s.Key()
}

// Valid reports whether the config is complete enough to poll: the scheduler
// stays idle until both host and password are present.
func (s ServerConfig) Valid() bool {
	return strings.TrimSpace(s.Host) != "" && s.Password != ""
}

// Config holds the ocremote configuration.
type Config struct {
	v *viper.Viper
}

// Load reads configuration from all sources. A corrupt config file is
// treated as absent: Load warns on stderr and continues with defaults.
func Load() *Config {
	v := viper.New()

	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.username", DefaultUsername)
	v.SetDefault("poll.interval_ms", DefaultPollIntervalMs)
	v.SetDefault("console.composer_mode", DefaultComposerMode)

	if configDir, err := paths.ConfigRoot(); err == nil {
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("OCREMOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (absent is fine; anything else degrades to defaults).
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: ignoring unreadable config file: %v\n", err)
		}
	}

	return &Config{v: v}
}

// Get returns a configuration value.
func (c *Config) Get(key string) interface{} {
	return c.v.Get(key)
}

// GetString returns a configuration value as string.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt returns a configuration value as int.
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// Set sets a configuration value and persists it.
func (c *Config) Set(key string, value interface{}) error {
	c.v.Set(key, value)

	configDir, err := paths.ConfigRoot()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	return c.v.WriteConfigAs(filepath.Join(configDir, "config.yaml"))
}

// All returns all configuration as a map.
func (c *Config) All() map[string]interface{} {
	return c.v.AllSettings()
}

// Server returns the configured server identity. The password is not stored
// here; callers fill it in from internal/auth.
func (c *Config) Server() ServerConfig {
	return ServerConfig{
		Host:     c.GetString("server.host"),
		Port:     c.GetInt("server.port"),
		Username: c.GetString("server.username"),
	}
}

// SetServer persists the server identity.
func (c *Config) SetServer(s ServerConfig) error {
	c.v.Set("server.host", s.Host)
	c.v.Set("server.port", s.Port)

	return c.Set("server.username", s.Username)
}

// PollInterval returns the background poll interval.
func (c *Config) PollInterval() time.Duration {
	ms := c.GetInt("poll.interval_ms")
	if ms <= 0 {
		ms = DefaultPollIntervalMs
	}

	return time.Duration(ms) * time.Millisecond
}

// ComposerMode returns the configured composer routing mode
// ("prefix" or "toggle").
func (c *Config) ComposerMode() string {
	mode := c.GetString("console.composer_mode")
	if mode != "prefix" && mode != "toggle" {
		return DefaultComposerMode
	}

	return mode
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gervaso-assistant/ocremote/internal/auth"
	"github.com/gervaso-assistant/ocremote/internal/config"
	"github.com/gervaso-assistant/ocremote/internal/output"
	"github.com/gervaso-assistant/ocremote/internal/paths"
)

// PathsInfo holds all resolved paths for JSON output.
type PathsInfo struct {
	ConfigRoot   string `json:"config_root"`
	StateRoot    string `json:"state_root"`
	CacheRoot    string `json:"cache_root"`
	ConfigFile   string `json:"config_file"`
	Credentials  string `json:"credentials"`
	LogFile      string `json:"log_file"`
	UpdateState  string `json:"update_state"`
	ConsoleState string `json:"console_state"`
	ServerURL    string `json:"server_url"`
	AuthSource   string `json:"auth_source"`
}

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show where ocremote stores files",
		Long: `Display all file and directory paths used by ocremote.

Useful for debugging, scripting, and understanding where configuration,
state, and credential files are stored on this system.`,
		Example: `  ocremote paths
  ocremote paths --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			info := resolvePathsInfo()

			if out.JSON {
				return out.PrintJSON(info)
			}

			out.Print("Config root:    %s\n", info.ConfigRoot)
			out.Print("State root:     %s\n", info.StateRoot)
			out.Print("Cache root:     %s\n", info.CacheRoot)
			out.Print("\n")
			out.Print("Config file:    %s\n", info.ConfigFile)
			out.Print("Credentials:    %s\n", info.Credentials)
			out.Print("Log file:       %s\n", info.LogFile)
			out.Print("Update state:   %s\n", info.UpdateState)
			out.Print("Console state:  %s\n", info.ConsoleState)
			out.Print("\n")
			out.Print("Server URL:     %s\n", info.ServerURL)
			out.Print("Auth source:    %s\n", info.AuthSource)

			return nil
		},
	}
}

func resolvePathsInfo() PathsInfo {
	info := PathsInfo{}

	info.ConfigRoot = resolveOrError(paths.ConfigRoot)
	info.StateRoot = resolveOrError(paths.StateRoot)
	info.CacheRoot = resolveOrError(paths.CacheRoot)
	info.LogFile = resolveOrError(paths.DefaultLogFile)
	info.UpdateState = resolveOrError(paths.UpdateStateFile)
	info.ConsoleState = resolveOrError(paths.ConsoleStateFile)

	if cr := info.ConfigRoot; cr != "" {
		info.ConfigFile = cr + "/config.yaml"
	} else {
		info.ConfigFile = "<error: config root unavailable>"
	}

	cfg := config.Load()
	server := cfg.Server()
	info.ServerURL = server.BaseURL()

	info.Credentials = resolveOrError(func() (string, error) {
		return paths.CredentialsFile(server.Key())
	})

	source, _ := auth.GetPassword(server.Key())
	if source == auth.SourceNone {
		info.AuthSource = "none"
	} else {
		info.AuthSource = string(source)
	}

	return info
}

func resolveOrError(fn func() (string, error)) string {
	val, err := fn()
	if err != nil {
		return fmt.Sprintf("<error: %v>", err)
	}

	return val
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/gervaso-assistant/ocremote/internal/config"
	clierrors "github.com/gervaso-assistant/ocremote/internal/errors"
	"github.com/gervaso-assistant/ocremote/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View and modify ocremote configuration settings.`,
	}

	cmd.AddCommand(newConfigListCmd())
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

// settingKeys are the flat configuration keys shown by 'config list', in
// display order. Unknown keys set by hand still round-trip through get/set;
// they just don't appear here.
var settingKeys = []string{
	"server.host",
	"server.port",
	"server.username",
	"poll.interval_ms",
	"console.composer_mode",
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		Long:  `Display all configuration settings and their current values. Defaults are shown for anything not set explicitly.`,
		Example: `  ocremote config list
  ocremote config list --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			cfg := config.Load()

			if out.JSON {
				settings := make(map[string]interface{}, len(settingKeys))
				for _, key := range settingKeys {
					settings[key] = cfg.Get(key)
				}

				return out.PrintJSON(settings)
			}

			for _, key := range settingKeys {
				out.Print("%s = %v\n", key, cfg.Get(key))
			}

			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Get a configuration value",
		Long:    `Retrieve and display the current value of a single configuration key.`,
		Example: `  ocremote config get server.host`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			key := args[0]
			cfg := config.Load()
			value := cfg.Get(key)

			if value == nil {
				out.Muted("%s is not set", key)
				return nil
			}

			out.Print("%s = %v\n", key, value)

			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set <key> <value>",
		Short:   "Set a configuration value",
		Long:    `Set a configuration key to the given value. The value is persisted to the config file.`,
		Example: `  ocremote config set server.host 192.168.1.20`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			key, value := args[0], args[1]
			cfg := config.Load()

			if err := cfg.Set(key, value); err != nil {
				return clierrors.ConfigFailed("set config", err)
			}

			out.Success("Set %s = %s", key, value)

			return nil
		},
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/gervaso-assistant/ocremote/internal/console"
	"github.com/gervaso-assistant/ocremote/internal/observability"
)

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Open the interactive console",
		Long: `Open the full-screen interactive console.

The console polls the server in the background, shows the session list with
live status and change summaries, and opens a transcript view with a composer
when a session is selected. The composer routes input the way the configured
composer mode dictates: prefix mode sends "/..." as slash commands, toggle
mode switches between prompt and command with ctrl+t.`,
		Example: `  ocremote console`,
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.FromContext(cmd.Context())

			return console.Run(logger)
		},
	}
}

package main

import (
	"github.com/spf13/cobra"

	clierrors "github.com/gervaso-assistant/ocremote/internal/errors"
	"github.com/gervaso-assistant/ocremote/internal/output"
)

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List slash commands the server accepts",
		Long:  `Display the slash commands registered on the server, with descriptions where available.`,
		Example: `  ocremote commands
  ocremote commands --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			_, apiClient, err := newAPIClient()
			if err != nil {
				return err
			}

			commands, err := apiClient.ListCommands(cmd.Context())
			if err != nil {
				return clierrors.Wrap(clierrors.ExitNetwork, "Failed to load commands", err)
			}

			if out.JSON {
				return out.PrintJSON(commands)
			}

			if len(commands) == 0 {
				out.Muted("The server reports no slash commands.")
				return nil
			}

			for _, c := range commands {
				if c.Description != "" {
					out.Print("/%-20s %s\n", c.Name, c.Description)
				} else {
					out.Print("/%s\n", c.Name)
				}
			}

			return nil
		},
	}
}

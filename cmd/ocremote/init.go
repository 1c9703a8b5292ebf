package main

import (
	"github.com/spf13/cobra"

	"github.com/gervaso-assistant/ocremote/internal/output"
	"github.com/gervaso-assistant/ocremote/internal/wizard"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Setup ocremote for first use",
		Long: `Initialize ocremote with a guided setup wizard.

The wizard will:
  1. Prompt for the server host, port, and username
  2. Prompt for the server password
  3. Validate the connection
  4. Store credentials securely and show next steps

If credentials already exist, use --force to overwrite them.`,
		Example: `  ocremote init`,
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			w := wizard.New(out, force)

			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing credentials without prompting")

	return cmd
}

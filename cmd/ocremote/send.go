package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gervaso-assistant/ocremote/internal/composer"
	"github.com/gervaso-assistant/ocremote/internal/config"
	clierrors "github.com/gervaso-assistant/ocremote/internal/errors"
	"github.com/gervaso-assistant/ocremote/internal/output"
)

func newSendCmd() *cobra.Command {
	var (
		sessionID string
		asCommand bool
	)

	cmd := &cobra.Command{
		Use:   "send <text>...",
		Short: "Send a prompt or slash command to a session",
		Long: `Send input to a session exactly as the console composer would.

In the default prefix mode, input starting with "/" runs as a slash command
("/undo", "/compact fast") and everything else goes to the agent as a prompt.
Use --command to force command routing regardless of prefix.`,
		Example: `  ocremote send "add a retry to the fetcher"
  ocremote send /undo
  ocremote send --command undo
  ocremote send --session ses_abc123 "run the tests"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			_, apiClient, err := newAPIClient()
			if err != nil {
				return err
			}

			var idArgs []string
			if sessionID != "" {
				idArgs = []string{sessionID}
			}

			session, err := resolveSession(cmd.Context(), apiClient, out, idArgs)
			if err != nil {
				return err
			}

			input := strings.Join(args, " ")

			mode := composer.Mode(config.Load().ComposerMode())
			if asCommand {
				mode = composer.ModeToggle
			}

			dispatch := composer.Route(input, mode, asCommand)

			switch dispatch.Kind {
			case composer.KindPrompt:
				if err := apiClient.SendPrompt(cmd.Context(), session.ID, dispatch.Text, session.Directory); err != nil {
					return clierrors.Wrap(clierrors.ExitNetwork, "Failed to send prompt", err)
				}

				out.Success("Prompt sent to %s", session.ID)

			case composer.KindCommand:
				if err := apiClient.SendCommand(cmd.Context(), session.ID, dispatch.Name, dispatch.Args, session.Directory); err != nil {
					return clierrors.Wrap(clierrors.ExitNetwork, "Failed to run command", err)
				}

				out.Success("/%s sent to %s", dispatch.Name, session.ID)

			default:
				if asCommand {
					return clierrors.EmptyCommand()
				}

				return clierrors.EmptyPrompt()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Target session ID (interactive selection when omitted)")
	cmd.Flags().BoolVar(&asCommand, "command", false, "Treat the input as a slash command, even without a / prefix")

	return cmd
}

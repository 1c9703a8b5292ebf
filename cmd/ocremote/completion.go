package main

import (
	"fmt"

	"github.com/spf13/cobra"

	clierrors "github.com/gervaso-assistant/ocremote/internal/errors"
)

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion script",
		Long: `Generate a shell completion script for ocremote.

Supported shells: bash, zsh, fish, powershell.

Load the script in your shell profile, for example:
  source <(ocremote completion bash)`,
		Example: `  ocremote completion bash
  ocremote completion zsh`,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()

			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return root.GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return root.GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			default:
				return &clierrors.CLIError{
					Message: fmt.Sprintf("Unsupported shell %q", args[0]),
					Hint:    "Supported shells: bash, zsh, fish, powershell",
					Code:    clierrors.ExitUsage,
				}
			}
		},
	}
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gervaso-assistant/ocremote/internal/auth"
	"github.com/gervaso-assistant/ocremote/internal/client"
	"github.com/gervaso-assistant/ocremote/internal/config"
	clierrors "github.com/gervaso-assistant/ocremote/internal/errors"
	"github.com/gervaso-assistant/ocremote/internal/output"
	"github.com/gervaso-assistant/ocremote/internal/prompt"
)

func newLoginCmd() *cobra.Command {
	var passwordFlag string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the server password",
		Long: `Authenticate against the configured opencode server.

The password will be stored securely in your system's keyring
(macOS Keychain, Windows Credential Manager, or Linux Secret Service),
keyed by the server's host:port.

You can also set the OCREMOTE_PASSWORD environment variable.`,
		Example: `  ocremote login`,
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			prompter := prompt.New(out)

			cfg := config.Load()

			server := cfg.Server()
			if server.Host == "" {
				return clierrors.NotConfigured()
			}

			// Check if already authenticated via env var
			if pw := os.Getenv("OCREMOTE_PASSWORD"); pw != "" {
				out.Info("OCREMOTE_PASSWORD environment variable is set")
				out.Muted("Environment variable takes precedence over stored credentials")
				out.Println()
			}

			var password string
			if passwordFlag != "" {
				password = passwordFlag
			} else {
				// Interactive flow: prompt for the password
				if !prompter.CanPrompt() {
					return clierrors.CannotPrompt("OCREMOTE_PASSWORD")
				}

				var err error

				password, err = prompter.Password(fmt.Sprintf("Password for %s@%s", server.Username, server.Key()))
				if err != nil {
					return fmt.Errorf("read password prompt: %w", err)
				}
			}

			if password == "" {
				return clierrors.PasswordEmpty()
			}

			// Validate with spinner
			spin := out.Spinner("Validating credentials")
			spin.Start()

			server.Password = password

			health, err := client.New(server).Health(cmd.Context())
			if err != nil {
				spin.StopWithFailure("Server rejected the credentials")
				return clierrors.AuthFailed(err)
			}

			spin.Stop()

			// Store in keyring
			if err := auth.StorePassword(server.Key(), password); err != nil {
				return clierrors.ConfigFailed("store credentials", err)
			}

			out.Success("Authenticated with %s (server v%s)", server.Key(), health.Version)

			return nil
		},
	}

	cmd.Flags().StringVar(&passwordFlag, "password", "", "Password for non-interactive login (prefer OCREMOTE_PASSWORD env var to avoid shell history exposure)")

	return cmd
}

// AuthStatus represents authentication status for JSON output.
type AuthStatus struct {
	Server   string `json:"server"`
	Username string `json:"username"`
	Source   string `json:"source"`
	Version  string `json:"server_version"`
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		Long:  `Display the configured server, credential source, and whether the stored password is accepted.`,
		Example: `  ocremote status
  ocremote status --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			source, apiClient, err := newAPIClient()
			if err != nil {
				return err
			}

			// Validate with spinner
			spin := out.Spinner("Checking credentials")
			spin.Start()

			health, err := apiClient.Health(cmd.Context())
			if err != nil {
				spin.StopWithFailure("Credentials invalid")
				return clierrors.AuthFailed(err)
			}

			spin.StopWithSuccess("Authenticated")

			cfg := config.Load()
			server := cfg.Server()

			if out.JSON {
				if err := out.PrintJSON(AuthStatus{
					Server:   server.Key(),
					Username: server.Username,
					Source:   string(source),
					Version:  health.Version,
				}); err != nil {
					return fmt.Errorf("print auth status json: %w", err)
				}

				return nil
			}

			out.Print("Server:   %s\n", server.Key())
			out.Print("Username: %s\n", server.Username)
			out.Print("Source:   %s\n", source)
			out.Print("Version:  %s\n", health.Version)

			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "logout",
		Short:   "Clear stored credentials",
		Long:    `Remove the stored password for the configured server from the keyring.`,
		Example: `  ocremote logout`,
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			cfg := config.Load()

			server := cfg.Server()
			if server.Host == "" {
				return clierrors.NotConfigured()
			}

			if err := auth.DeletePassword(server.Key()); err != nil {
				// If the entry doesn't exist, that's fine
				if strings.Contains(err.Error(), "not found") {
					out.Muted("No stored credentials found")
					return nil
				}

				return clierrors.ConfigFailed("clear credentials", err)
			}

			out.Success("Logged out from %s", server.Key())

			if os.Getenv("OCREMOTE_PASSWORD") != "" {
				out.Println()
				out.Warning("OCREMOTE_PASSWORD environment variable is still set")
			}

			return nil
		},
	}
}

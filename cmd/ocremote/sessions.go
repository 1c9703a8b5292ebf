package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gervaso-assistant/ocremote/internal/client"
	clierrors "github.com/gervaso-assistant/ocremote/internal/errors"
	"github.com/gervaso-assistant/ocremote/internal/output"
	"github.com/gervaso-assistant/ocremote/internal/prompt"
	"github.com/gervaso-assistant/ocremote/internal/view"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage sessions on the server",
		Long:  `List, create, delete, and abort coding-agent sessions.`,
	}

	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionNewCmd())
	cmd.AddCommand(newSessionDeleteCmd())
	cmd.AddCommand(newSessionAbortCmd())

	return cmd
}

// fetchSessions loads the session list and per-session status, merged into
// display order (most recently updated first).
func fetchSessions(ctx context.Context, apiClient *client.Client) ([]view.SessionView, error) {
	raw, err := apiClient.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	statuses, err := apiClient.ListStatuses(ctx)
	if err != nil {
		return nil, err
	}

	return view.Reconcile(raw, statuses), nil
}

// resolveSession picks the target session: an explicit ID wins, otherwise the
// user chooses interactively from the server's session list.
func resolveSession(ctx context.Context, apiClient *client.Client, out *output.Writer, args []string) (*view.SessionView, error) {
	sessions, err := fetchSessions(ctx, apiClient)
	if err != nil {
		return nil, clierrors.Wrap(clierrors.ExitNetwork, "Failed to load sessions", err)
	}

	if len(args) > 0 {
		id := args[0]
		for i := range sessions {
			if sessions[i].ID == id {
				return &sessions[i], nil
			}
		}

		return nil, clierrors.SessionNotFound(id)
	}

	if len(sessions) == 0 {
		return nil, clierrors.NoSessions()
	}

	if out.NoInput {
		return nil, clierrors.SessionRequired()
	}

	return prompt.SelectSession(sessions, out)
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions on the server",
		Long:  `Display all sessions with their status, change summary, and last update time.`,
		Example: `  ocremote session list
  ocremote session list --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			_, apiClient, err := newAPIClient()
			if err != nil {
				return err
			}

			sessions, err := fetchSessions(cmd.Context(), apiClient)
			if err != nil {
				return clierrors.Wrap(clierrors.ExitNetwork, "Failed to load sessions", err)
			}

			if out.JSON {
				return out.PrintJSON(sessions)
			}

			if len(sessions) == 0 {
				out.Muted("No sessions on this server.")
				out.Muted("Create one with 'ocremote session new'")

				return nil
			}

			now := time.Now()

			for _, s := range sessions {
				title := s.Title
				if strings.TrimSpace(title) == "" {
					title = s.ID
				}

				out.Print("%-30s %-10s +%-4d -%-4d %d files  %s\n",
					title, s.Status, s.Additions, s.Deletions, s.Files, sessionAge(s.Updated, now))
			}

			return nil
		},
	}
}

// sessionAge renders a compact relative timestamp for an epoch-millisecond value.
func sessionAge(updatedMs int64, now time.Time) string {
	if updatedMs <= 0 {
		return "never"
	}

	d := now.Sub(time.UnixMilli(updatedMs))
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func newSessionNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "new [title]",
		Short:   "Create a session",
		Long:    `Create a new session on the server, optionally with a title.`,
		Example: `  ocremote session new "fix the parser"`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			_, apiClient, err := newAPIClient()
			if err != nil {
				return err
			}

			title := ""
			if len(args) > 0 {
				title = args[0]
			}

			created, err := apiClient.CreateSession(cmd.Context(), title)
			if err != nil {
				return clierrors.Wrap(clierrors.ExitNetwork, "Failed to create session", err)
			}

			if out.JSON {
				return out.PrintJSON(created)
			}

			out.Success("Created session %s", created.ID)

			return nil
		},
	}
}

func newSessionDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete [session-id]",
		Short: "Delete a session",
		Long: `Delete a session from the server.

Without a session ID, you pick one interactively. Deletion asks for
confirmation unless --force is given.`,
		Example: `  ocremote session delete ses_abc123
  ocremote session delete --force ses_abc123`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			_, apiClient, err := newAPIClient()
			if err != nil {
				return err
			}

			session, err := resolveSession(cmd.Context(), apiClient, out, args)
			if err != nil {
				return err
			}

			if !force {
				prompter := prompt.New(out)
				if !prompter.CanPrompt() {
					return clierrors.New(clierrors.ExitUsage, "Cannot confirm deletion in non-interactive mode").
						WithHint("Re-run with --force to delete without confirmation")
				}

				ok, confirmErr := prompter.Confirm(fmt.Sprintf("Delete session %s?", session.ID), false)
				if confirmErr != nil {
					return fmt.Errorf("read delete confirmation: %w", confirmErr)
				}

				if !ok {
					out.Muted("Aborted.")
					return nil
				}
			}

			if err := apiClient.DeleteSession(cmd.Context(), session.ID); err != nil {
				return clierrors.Wrap(clierrors.ExitNetwork, "Failed to delete session", err)
			}

			out.Success("Deleted session %s", session.ID)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without confirmation")

	return cmd
}

func newSessionAbortCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "abort [session-id]",
		Short:   "Abort a running session",
		Long:    `Ask the server to stop whatever the session is currently doing. The session itself is kept.`,
		Example: `  ocremote session abort ses_abc123`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			_, apiClient, err := newAPIClient()
			if err != nil {
				return err
			}

			session, err := resolveSession(cmd.Context(), apiClient, out, args)
			if err != nil {
				return err
			}

			if err := apiClient.Abort(cmd.Context(), session.ID); err != nil {
				return clierrors.Wrap(clierrors.ExitNetwork, "Failed to abort session", err)
			}

			out.Success("Abort requested for %s", session.ID)

			return nil
		},
	}
}

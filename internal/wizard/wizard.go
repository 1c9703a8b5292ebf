// Package wizard provides the initialization wizard for the ocremote CLI.
//
// The wizard guides users through first-time setup:
//  1. Welcome message
//  2. Server address input
//  3. Password input and health-check validation
//  4. Credential storage
//  5. Next steps guidance
package wizard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gervaso-assistant/ocremote/internal/auth"
	"github.com/gervaso-assistant/ocremote/internal/client"
	"github.com/gervaso-assistant/ocremote/internal/config"
	"github.com/gervaso-assistant/ocremote/internal/output"
	"github.com/gervaso-assistant/ocremote/internal/prompt"
)

// Wizard handles the initialization flow.
type Wizard struct {
	out      *output.Writer
	prompter *prompt.Prompter
	force    bool
}

// New creates a new initialization wizard.
func New(out *output.Writer, force bool) *Wizard {
	return &Wizard{
		out:      out,
		prompter: prompt.New(out),
		force:    force,
	}
}

// Run executes the initialization wizard.
func (w *Wizard) Run(ctx context.Context) error {
	// Welcome
	w.out.Println("Welcome to ocremote!")
	w.out.Println("====================")
	w.out.Println()
	w.out.Println("ocremote connects this machine to a running opencode server,")
	w.out.Println("so you can watch sessions and send prompts remotely.")
	w.out.Println()

	// Check for non-interactive mode
	if !w.prompter.CanPrompt() {
		w.out.Failure("Cannot run init wizard in non-interactive mode")
		w.out.Println()
		w.out.Info("Either:")
		w.out.Print("  1. Run without --no-input flag\n")
		w.out.Print("  2. Set OCREMOTE_PASSWORD and server config via OCREMOTE_* variables\n")
		w.out.Print("  3. Run 'ocremote login' interactively\n")
		return nil
	}

	cfg := config.Load()

	// Step 1: Server address
	w.out.Println("Step 1: Server")
	w.out.Println("--------------")
	w.out.Println("Enter the address of the opencode server.")
	w.out.Muted("Start the server with 'opencode serve' if it is not running yet.")
	w.out.Println()

	server := cfg.Server()

	host, err := w.prompter.Input("Host", server.Host)
	if err != nil {
		return fmt.Errorf("failed to read host: %w", err)
	}

	portStr, err := w.prompter.Input("Port", strconv.Itoa(server.Port))
	if err != nil {
		return fmt.Errorf("failed to read port: %w", err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		w.out.Failure("Invalid port: %s", portStr)
		return nil
	}

	username, err := w.prompter.Input("Username", server.Username)
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	server.Host = host
	server.Port = port
	server.Username = username

	// Check for existing credentials
	source, existing := auth.GetPassword(server.Key())
	if existing != "" && !w.force {
		w.out.Println()
		w.out.Warning("Existing credentials for %s found (via %s)", server.Key(), source)

		overwrite, err := w.prompter.Confirm("Overwrite existing credentials?", false)
		if err != nil {
			return err
		}
		if !overwrite {
			w.out.Println()
			w.out.Success("Keeping existing credentials")
			w.showNextSteps()
			return nil
		}
	}

	// Step 2: Password
	w.out.Println()
	w.out.Println("Step 2: Authentication")
	w.out.Println("----------------------")
	w.out.Println("Enter the server password.")
	w.out.Muted("This is the basic-auth password the opencode server was started with.")
	w.out.Println()

	password, err := w.prompter.Password("Password")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if password == "" {
		w.out.Failure("Password cannot be empty")
		return nil
	}

	server.Password = password

	// Validate with spinner
	w.out.Println()
	spin := w.out.Spinner("Checking server")
	spin.Start()

	c := client.New(server)

	health, err := c.Health(ctx)
	if err != nil {
		spin.StopWithFailure("Server check failed")
		w.out.Muted("%s", err.Error())
		return nil
	}

	spin.StopWithSuccess("Connected")
	w.out.Print("Server:  %s\n", server.BaseURL())
	if health.Version != "" {
		w.out.Print("Version: %s\n", health.Version)
	}

	// Store credentials
	w.out.Println()
	spin = w.out.Spinner("Storing credentials")
	spin.Start()

	if storeErr := auth.StorePassword(server.Key(), password); storeErr != nil {
		spin.StopWithFailure("Failed to store credentials")
		w.out.Muted("%s", storeErr.Error())
		return nil
	}

	spin.StopWithSuccess("Credentials stored securely")

	// Save server identity to config
	if err := cfg.SetServer(server); err != nil {
		w.out.Warning("Failed to save server to config: %s", err.Error())
	}

	// Success
	w.out.Println()
	w.out.Success("ocremote is ready!")
	w.showNextSteps()

	return nil
}

func (w *Wizard) showNextSteps() {
	w.out.Println()
	w.out.Println("Next steps:")
	w.out.Println("  ocremote doctor     Check your setup")
	w.out.Println("  ocremote console    Open the interactive console")
	w.out.Println("  ocremote --help     See all commands")
}

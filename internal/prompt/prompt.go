// Package prompt provides interactive prompts for the ocremote CLI.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/gervaso-assistant/ocremote/internal/output"
	"github.com/gervaso-assistant/ocremote/internal/view"
)

// errCanceled marks a prompt abandoned by the user (EOF on stdin).
var errCanceled = errors.New("prompt canceled")

// IsCanceled reports whether err came from an abandoned prompt.
func IsCanceled(err error) bool {
	return errors.Is(err, errCanceled)
}

// Prompter handles interactive prompts.
type Prompter struct {
	out    *output.Writer
	reader *bufio.Reader
}

// New creates a new Prompter.
func New(out *output.Writer) *Prompter {
	return &Prompter{
		out:    out,
		reader: bufio.NewReader(os.Stdin),
	}
}

// CanPrompt returns true if interactive prompts are available.
func (p *Prompter) CanPrompt() bool {
	// Check if stdout is a terminal
	return term.IsTerminal(int(os.Stdout.Fd())) && !p.out.NoInput
}

// readLine reads one line, mapping EOF to cancellation.
func readLine(reader *bufio.Reader) (string, error) {
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", errCanceled
		}

		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return input, nil
}

// Confirm prompts for a yes/no confirmation.
func (p *Prompter) Confirm(message string, defaultValue bool) (bool, error) {
	defaultStr := "y/N"
	if defaultValue {
		defaultStr = "Y/n"
	}

	p.out.Print("%s [%s]: ", message, defaultStr)

	input, err := readLine(p.reader)
	if err != nil {
		return defaultValue, err
	}

	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return defaultValue, nil
	}

	return input == "y" || input == "yes", nil
}

// Input prompts for one line of text.
func (p *Prompter) Input(message, defaultValue string) (string, error) {
	if defaultValue != "" {
		p.out.Print("%s [%s]: ", message, defaultValue)
	} else {
		p.out.Print("%s: ", message)
	}

	input, err := readLine(p.reader)
	if err != nil {
		return "", err
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue, nil
	}

	return input, nil
}

// Password prompts for a password (hidden input).
func (p *Prompter) Password(prompt string) (string, error) {
	p.out.Print("%s: ", prompt)

	// Read password without echo
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	p.out.Println() // Print newline after password input

	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(password), nil
}

// Select prompts the user to select from a list of options.
func (p *Prompter) Select(message string, options []string) (int, error) {
	p.out.Println(message)
	for i, opt := range options {
		p.out.Print("  [%d] %s\n", i+1, opt)
	}
	p.out.Println()

	for {
		p.out.Print("Select [1-%d]: ", len(options))

		input, err := readLine(p.reader)
		if err != nil {
			return -1, err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		num, err := strconv.Atoi(input)
		if err != nil || num < 1 || num > len(options) {
			p.out.Warning("Invalid selection. Please enter a number between 1 and %d", len(options))
			continue
		}

		return num - 1, nil
	}
}

// SelectSession prompts the user to select a session from a reconciled list.
func SelectSession(sessions []view.SessionView, out *output.Writer) (*view.SessionView, error) {
	out.Println()
	out.Print("Available sessions:\n\n")

	for i, s := range sessions {
		status := ""
		if s.Status != view.StatusUnknown {
			status = "[" + s.Status + "]"
		}
		out.Print("  [%d] %-30s %s %s\n", i+1, s.Title, s.Directory, status)
	}

	out.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		if len(sessions) == 1 {
			out.Print("Select session [1]: ")
		} else {
			out.Print("Select session [1-%d]: ", len(sessions))
		}

		input, err := readLine(reader)
		if err != nil {
			return nil, err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		num, err := strconv.Atoi(input)
		if err != nil || num < 1 || num > len(sessions) {
			out.Warning("Invalid selection. Please enter a number between 1 and %d", len(sessions))
			continue
		}

		return &sessions[num-1], nil
	}
}

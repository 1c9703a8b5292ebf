// Package composer classifies console input into dispatch instructions.
//
// A submission is either free text for the agent (a prompt) or a slash
// command with arguments. Two routing modes exist: prefix mode infers the
// kind from a leading "/", toggle mode trusts an explicit switch the user
// controls.
package composer

import "strings"

// Mode selects how input is classified.
type Mode string

// Routing modes.
const (
	// ModePrefix treats trimmed input starting with "/" as a command.
	ModePrefix Mode = "prefix"
	// ModeToggle routes by the caller's explicit prompt/command switch.
	ModeToggle Mode = "toggle"
)

// Kind is the classification of one submission.
type Kind int

// Dispatch kinds.
const (
	// KindEmpty marks input that must not be dispatched.
	KindEmpty Kind = iota
	// KindPrompt is free text for the agent.
	KindPrompt
	// KindCommand is a named slash command.
	KindCommand
)

// Dispatch is the parsed result of routing one submission.
type Dispatch struct {
	Kind Kind

	// Text is the prompt text (KindPrompt only).
	Text string

	// Name and Args are the command name and trimmed argument string
	// (KindCommand only).
	Name string
	Args string
}

// Route classifies input under the given mode. In toggle mode, asCommand is
// the state of the user's switch; prefix mode ignores it. Blank input yields
// KindEmpty in every mode.
func Route(input string, mode Mode, asCommand bool) Dispatch {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Dispatch{Kind: KindEmpty}
	}

	switch mode {
	case ModeToggle:
		if asCommand {
			return parseCommand(trimmed)
		}

		return Dispatch{Kind: KindPrompt, Text: trimmed}
	default:
		// Prefix mode. The leading "/" is stripped before parsing.
		if strings.HasPrefix(trimmed, "/") {
			return parseCommand(strings.TrimPrefix(trimmed, "/"))
		}

		return Dispatch{Kind: KindPrompt, Text: trimmed}
	}
}

// parseCommand splits text into a command name and argument string. The
// first whitespace-delimited token is the name, the trimmed remainder the
// args. An empty name yields KindEmpty.
func parseCommand(text string) Dispatch {
	text = strings.TrimSpace(text)
	if text == "" {
		return Dispatch{Kind: KindEmpty}
	}

	name := text
	args := ""

	if idx := strings.IndexAny(text, " \t"); idx >= 0 {
		name = text[:idx]
		args = strings.TrimSpace(text[idx+1:])
	}

	return Dispatch{
		Kind: KindCommand,
		Name: name,
		Args: args,
	}
}

package console

import (
	"fmt"
	"strings"
	"time"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/gervaso-assistant/ocremote/internal/client"
	"github.com/gervaso-assistant/ocremote/internal/msgfmt"
	"github.com/gervaso-assistant/ocremote/internal/view"
)

// renderSessionRows renders the session list, one row per session, with the
// cursor row highlighted.
func renderSessionRows(sessions []view.SessionView, cursor, width int, now time.Time) []string {
	if len(sessions) == 0 {
		return []string{dimStyle.Render("  (no sessions on this server)")}
	}

	// Title column sized to the widest title, capped at a third of the pane.
	titleWidth := 0
	for _, s := range sessions {
		if w := runewidth.StringWidth(displayTitle(s)); w > titleWidth {
			titleWidth = w
		}
	}

	if maxTitle := width / 3; titleWidth > maxTitle && maxTitle > 8 {
		titleWidth = maxTitle
	}

	rows := make([]string, 0, len(sessions))

	for i, s := range sessions {
		title := runewidth.FillRight(runewidth.Truncate(displayTitle(s), titleWidth, "…"), titleWidth)

		row := fmt.Sprintf("  %s  %s  %s  %s",
			title,
			statusBadge(s.Status),
			summaryCell(s),
			timeStyle.Render(relTime(s.Updated, now)),
		)

		row = xansi.Truncate(row, width-2, "…")

		if i == cursor {
			row = selectedRowStyle.Width(width - 2).Render(row)
		}

		rows = append(rows, row)
	}

	return rows
}

func displayTitle(s view.SessionView) string {
	if strings.TrimSpace(s.Title) != "" {
		return s.Title
	}

	return s.ID
}

// statusBadge renders a fixed-width status label.
func statusBadge(status string) string {
	label := fmt.Sprintf("%-10s", status)

	switch status {
	case "working", "running", "busy":
		return statusWorkingStyle.Render(label)
	case "error":
		return statusErrorStyle.Render(label)
	case "idle", "done", "completed":
		return statusIdleStyle.Render(label)
	default:
		return statusUnknownStyle.Render(label)
	}
}

// summaryCell renders the +additions/-deletions/files counters.
func summaryCell(s view.SessionView) string {
	return fmt.Sprintf("%s %s %s",
		addStyle.Render(fmt.Sprintf("+%-4d", s.Additions)),
		delStyle.Render(fmt.Sprintf("-%-4d", s.Deletions)),
		dimStyle.Render(fmt.Sprintf("%d files", s.Files)),
	)
}

// relTime renders a compact relative timestamp for an epoch-millisecond value.
func relTime(updatedMs int64, now time.Time) string {
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

// renderMessageLines renders a message transcript: a role header per message
// followed by its formatted text lines.
func renderMessageLines(messages []client.MessageEnvelope, width int) []string {
	if len(messages) == 0 {
		return []string{dimStyle.Render("  (no messages yet)")}
	}

	var lines []string

	for _, msg := range messages {
		text := msgfmt.ExtractText(msg)
		if text == "" {
			continue
		}

		if len(lines) > 0 {
			lines = append(lines, "")
		}

		lines = append(lines, roleHeader(msg.Info.Role))

		display := msgfmt.DisplayLines(text)
		list := msgfmt.IsList(display)

		for _, line := range display {
			lines = append(lines, renderMessageLine(line, list, width))
		}
	}

	if len(lines) == 0 {
		return []string{dimStyle.Render("  (no text messages yet)")}
	}

	return lines
}

func roleHeader(role string) string {
	switch role {
	case "user":
		return roleUserStyle.Render("you")
	case "assistant":
		return roleAssistantStyle.Render("assistant")
	default:
		return dimStyle.Render(role)
	}
}

// renderMessageLine styles one display line: bullet markers get a colored
// marker, inline code spans get the code style.
func renderMessageLine(line string, list bool, width int) string {
	if line == "" {
		return ""
	}

	prefix := "  "
	if list && strings.HasPrefix(line, "- ") {
		line = msgfmt.StripBullet(line)
		prefix = bulletStyle.Render("  •") + " "
	}

	var b strings.Builder
	b.WriteString(prefix)

	for _, seg := range msgfmt.Segments(line) {
		if seg.Kind == msgfmt.Code {
			b.WriteString(codeStyle.Render(seg.Text))
		} else {
			b.WriteString(seg.Text)
		}
	}

	return xansi.Truncate(b.String(), width, "…")
}

// renderTodoLines renders the todo pane content.
func renderTodoLines(todos []client.TodoItem) []string {
	if len(todos) == 0 {
		return []string{dimStyle.Render("  (no todos)")}
	}

	lines := make([]string, 0, len(todos))

	for _, todo := range todos {
		lines = append(lines, fmt.Sprintf("  %s %s", todoMark(todo.Status), todo.Content))
	}

	return lines
}

func todoMark(status string) string {
	switch status {
	case "completed":
		return statusIdleStyle.Render("✓")
	case "in_progress":
		return statusWorkingStyle.Render("◐")
	case "cancelled":
		return dimStyle.Render("✗")
	default:
		return dimStyle.Render("○")
	}
}

// Package msgfmt turns raw message parts into renderable lines.
//
// The pipeline is three pure functions applied in sequence:
//   - ExtractText collects a message's text parts into one string
//   - DisplayLines splits that string into display lines
//   - Segments splits one line into plain and inline-code segments
//
// IsList decides whether a message's lines should render as a bulleted list.
package msgfmt

import (
	"regexp"
	"strings"

	"github.com/gervaso-assistant/ocremote/internal/client"
)

// SegmentKind distinguishes plain text from inline code.
type SegmentKind int

// Segment kinds.
const (
	Plain SegmentKind = iota
	Code
)

// Segment is one styled run within a display line.
type Segment struct {
	Kind SegmentKind
	Text string
}

// bulletMarker prefixes lines produced by the single-run split heuristic.
const bulletMarker = "- "

var codeSpan = regexp.MustCompile("`[^`]+`")

// ExtractText concatenates the text of every part with type "text" and
// non-empty content, newline-joined and trimmed. A message with no
// qualifying parts yields "" and is skipped by callers.
func ExtractText(msg client.MessageEnvelope) string {
	var texts []string

	for _, part := range msg.Parts {
		if part.Type == "text" && part.Text != "" {
			texts = append(texts, part.Text)
		}
	}

	return strings.TrimSpace(strings.Join(texts, "\n"))
}

// DisplayLines splits extracted text into display lines.
//
// Text containing a newline is split on newlines. A single-run text is
// instead split into bullet lines wherever "<word> - <word>" occurs, a
// heuristic for servers that return list items on one line. Hyphenated
// clauses in prose are mis-split the same way; that is accepted.
//
// Trailing whitespace is trimmed per line, and runs of blank lines collapse
// to a single separator.
func DisplayLines(text string) []string {
	var lines []string

	if strings.Contains(text, "\n") {
		lines = strings.Split(text, "\n")
	} else {
		lines = splitBullets(text)
	}

	out := make([]string, 0, len(lines))
	prevBlank := false

	for _, line := range lines {
		line = strings.TrimRight(line, " \t")

		blank := line == ""
		if blank && prevBlank {
			continue
		}

		out = append(out, line)
		prevBlank = blank
	}

	return out
}

// splitBullets breaks a single-run text on "<word> - <word>" boundaries.
// When at least one boundary exists, every resulting line is bulleted;
// otherwise the text is returned as the only line.
func splitBullets(text string) []string {
	parts := []string{}
	last := 0

	for i := 1; i+3 < len(text); i++ {
		if text[i:i+3] != " - " {
			continue
		}

		if isSpace(text[i-1]) || isSpace(text[i+3]) {
			continue
		}

		parts = append(parts, text[last:i])
		last = i + 3
	}

	parts = append(parts, text[last:])

	if len(parts) == 1 {
		return parts
	}

	for i, part := range parts {
		parts[i] = bulletMarker + part
	}

	return parts
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// Segments splits a line on backtick-delimited spans. Matched spans become
// Code segments with the backticks stripped; everything else is Plain.
func Segments(line string) []Segment {
	var segments []Segment

	last := 0
	for _, loc := range codeSpan.FindAllStringIndex(line, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Kind: Plain, Text: line[last:loc[0]]})
		}

		segments = append(segments, Segment{Kind: Code, Text: line[loc[0]+1 : loc[1]-1]})
		last = loc[1]
	}

	if last < len(line) {
		segments = append(segments, Segment{Kind: Plain, Text: line[last:]})
	}

	return segments
}

// IsList reports whether a message's display lines should render as one
// bulleted list: at least two lines begin with "- ". Callers strip the
// marker with StripBullet before inline rendering.
func IsList(lines []string) bool {
	count := 0

	for _, line := range lines {
		if strings.HasPrefix(line, bulletMarker) {
			count++
		}

		if count >= 2 {
			return true
		}
	}

	return false
}

// StripBullet removes a leading "- " marker, if present.
func StripBullet(line string) string {
	return strings.TrimPrefix(line, bulletMarker)
}

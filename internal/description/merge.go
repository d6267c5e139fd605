// Package description keeps a generated block inside a pull request description
// so that re-running the linter replaces the block instead of stacking copies.
package description

import (
	"strings"
)

const (
	// StartMarker opens the generated block. It is an HTML comment so GitHub
	// does not render it.
	StartMarker = "<!-- jiralint:start - do not remove, jiralint uses this marker -->"

	// EndMarker closes the generated block.
	EndMarker = "<!-- jiralint:end -->"

	// HiddenMarker is the token looked for when deciding whether a description
	// already carries a generated block.
	HiddenMarker = StartMarker
)

// ContainsMarker reports whether text already holds a generated block.
func ContainsMarker(text string) bool {
	return strings.Contains(text, HiddenMarker)
}

// ShouldUpdate reports whether a pull request description still needs the
// generated block.
func ShouldUpdate(body string) bool {
	return !ContainsMarker(body)
}

// Wrap surrounds block with the start and end markers. Markers already present
// inside block are dropped so the result holds exactly one of each.
func Wrap(block string) string {
	block = strings.ReplaceAll(block, StartMarker, "")
	block = strings.ReplaceAll(block, EndMarker, "")
	return StartMarker + "\n" + strings.TrimSpace(block) + "\n" + EndMarker
}

// Merge places block into body.
//
// When body already holds a generated block, the first one is replaced in place
// and any further ones are removed; text written around it is kept. Otherwise
// the block is appended after a blank line, or returned on its own when body is
// blank. Merging the same block twice yields the same text as merging it once.
func Merge(body, block string) string {
	wrapped := Wrap(block)

	start := strings.Index(body, StartMarker)
	if start == -1 {
		if strings.TrimSpace(body) == "" {
			return wrapped
		}
		return strings.TrimRight(body, "\n") + "\n\n" + wrapped
	}

	return body[:start] + wrapped + removeBlocks(body[start:])
}

// removeBlocks drops every marker-delimited block from s. A block with no end
// marker runs to the end of s.
func removeBlocks(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, StartMarker)
		if start == -1 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])

		rest := s[start+len(StartMarker):]
		end := strings.Index(rest, EndMarker)
		if end == -1 {
			return b.String()
		}
		s = rest[end+len(EndMarker):]
	}
}

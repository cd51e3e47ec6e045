// Package wrap breaks paragraph text into fixed-width display lines.
package wrap

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	rwrap "github.com/muesli/reflow/wrap"
)

// Lines word-wraps text at width, hard-splitting words longer than a line.
// The result always has at least one line; empty text is one empty line.
func Lines(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	wrapped := rwrap.String(wordwrap.String(text, width), width)
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}

// Count is len(Lines(text, width)).
func Count(text string, width int) int {
	return len(Lines(text, width))
}

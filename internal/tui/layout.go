package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// padRight pads s with spaces to width display columns.
func padRight(s string, width int) string {
	if w := xansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// window returns the display columns [from, from+width) of s.
func window(s string, from, width int) string {
	if from < 0 {
		s = strings.Repeat(" ", -from) + s
		from = 0
	}
	if width <= 0 {
		return ""
	}
	return xansi.Cut(s, from, from+width)
}

// normalizePane forces s to exactly width columns and height lines, marking
// lines that had to be cut with an ellipsis.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			switch {
			case width <= 0:
				ln = ""
			case width == 1:
				ln = xansi.Cut(ln, 0, 1)
			default:
				ln = xansi.Cut(ln, 0, width-1) + glyphEllipsis()
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

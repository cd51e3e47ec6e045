package tui

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Everything must stay readable on light and dark backgrounds, so colors are
// adaptive and faint text is only used on dark terminals.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorText     lipgloss.TerminalColor = ac("235", "252")
	colorMuted    lipgloss.TerminalColor = ac("245", "240")
	colorCursorBg lipgloss.TerminalColor = ac("235", "255")
	colorCursorFg lipgloss.TerminalColor = ac("255", "232")
)

// rowStyle is how a rendered row is painted. The renderer only tags rows;
// colors are resolved when the frame is drawn.
type rowStyle int

const (
	rowPlain rowStyle = iota
	rowHighlight
	rowMuted
)

type palette struct {
	highlight lipgloss.Style
	muted     lipgloss.Style
	cursor    lipgloss.Style
}

func newPalette() palette {
	return palette{
		highlight: lipgloss.NewStyle().Foreground(colorText),
		muted:     faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)),
		cursor:    lipgloss.NewStyle().Background(colorCursorBg).Foreground(colorCursorFg),
	}
}

// paint applies st to s. The cursor glyph keeps its own inverted style even
// inside a highlighted row.
func (p palette) paint(s string, st rowStyle) string {
	switch st {
	case rowHighlight:
		cur := glyphCursor()
		if !strings.Contains(s, cur) {
			return p.highlight.Render(s)
		}
		parts := strings.Split(s, cur)
		for i := range parts {
			parts[i] = p.highlight.Render(parts[i])
		}
		return strings.Join(parts, p.cursor.Render(cur))
	case rowMuted:
		return p.muted.Render(s)
	default:
		return s
	}
}

// applyColorProfilePreference only honors NO_COLOR. termenv's env detection
// also reads CLICOLOR, which is meant for piped output, not a full-screen UI.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the probe found.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && profile != termenv.TrueColor {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) ROTODENDRON_THEME=light|dark|auto
// 2) the configured theme
// 3) COLORFGBG ("fg;bg")
// 4) macOS appearance
func applyThemePreference(configured string) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("ROTODENDRON_THEME")))
	if v == "" || v == "auto" {
		v = strings.ToLower(strings.TrimSpace(configured))
	}
	switch v {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if dark, ok := darkFromColorFGBG(os.Getenv("COLORFGBG")); ok {
		lipgloss.SetHasDarkBackground(dark)
		return
	}

	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			lipgloss.SetHasDarkBackground(dark)
		}
	}
}

// darkFromColorFGBG reads the background from the last segment of COLORFGBG.
// xterm palette entries 0-6 are dark.
func darkFromColorFGBG(v string) (dark bool, ok bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return false, false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return false, false
	}
	return bg < 7, true
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// Prints "Dark" in dark mode; exits 1 in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}

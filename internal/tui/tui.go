// Package tui is the full-screen front end: it feeds key presses and
// autoscroll ticks to an editor and draws the tree around the current path.
package tui

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"rotodendron/internal/editor"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultDelay    = 650 * time.Millisecond
	DefaultGapWidth = 5
)

type Options struct {
	// Autoloop enables the idle timer. Without it the loop waits for keys
	// indefinitely and only the down arrow counts the timer down.
	Autoloop bool
	Delay    time.Duration
	GapWidth int
	Theme    string
	Glyphs   string
}

func (o Options) normalized() Options {
	if o.Delay <= 0 {
		o.Delay = DefaultDelay
	}
	if o.GapWidth <= 0 {
		o.GapWidth = DefaultGapWidth
	}
	return o
}

// ApplyPreferences configures colors, background detection and glyphs for
// anything this package renders.
func ApplyPreferences(theme, glyphSet string) {
	applyColorProfilePreference()
	applyThemePreference(theme)
	applyGlyphPreference(glyphSet)
}

// Run drives ed until the user quits or ctx is cancelled. Pending text is
// left in the editor; callers flush and persist afterwards.
func Run(ctx context.Context, ed *editor.Editor, opts Options) error {
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	ApplyPreferences(opts.Theme, opts.Glyphs)

	m := newAppModel(ed, opts)
	log.Printf("session start: autoloop=%v delay=%s timer=%d", m.opts.Autoloop, m.opts.Delay, ed.Config().InitialTimer)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		log.Printf("session cancelled: %v", ctx.Err())
		return nil
	}
	return err
}

// setupLogging sends the standard logger to $ROTODENDRON_DEBUG. The screen
// owns stderr while the program runs, so without it logs are dropped.
func setupLogging() (func(), error) {
	path := strings.TrimSpace(os.Getenv("ROTODENDRON_DEBUG"))
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "rotodendron")
	if err != nil {
		return nil, err
	}
	return func() { _ = f.Close() }, nil
}

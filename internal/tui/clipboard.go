package tui

import (
	"log"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

type shuttleCopiedMsg struct {
	text string
	err  error
}

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// copyShuttleCmd mirrors a shuttled paragraph to the system clipboard.
// Headless sessions have no clipboard; the shuttle itself is unaffected.
func copyShuttleCmd(text string) tea.Cmd {
	return func() tea.Msg {
		text := strings.ReplaceAll(text, "\r\n", "\n")
		err := writeClipboard(text)
		if err != nil {
			log.Printf("clipboard: %v", err)
		}
		return shuttleCopiedMsg{text: text, err: err}
	}
}

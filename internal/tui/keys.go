package tui

import (
	"rotodendron/internal/editor"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Quit      key.Binding
	Enter     key.Binding
	Tab       key.Binding
	Backspace key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Escape    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "save and quit")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit / write here")),
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "read / next paragraph")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "cursor / previous branch")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "cursor / next branch")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous line")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next line")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "submit and reread")),
	}
}

// editorKeys translates one terminal key event. Pasted text arrives as a
// single message and becomes one rune event per character.
func (k keyMap) editorKeys(msg tea.KeyMsg) []editor.Key {
	named := []struct {
		b    key.Binding
		kind editor.KeyKind
	}{
		{k.Enter, editor.KeyEnter},
		{k.Tab, editor.KeyTab},
		{k.Backspace, editor.KeyBackspace},
		{k.Left, editor.KeyLeft},
		{k.Right, editor.KeyRight},
		{k.Up, editor.KeyUp},
		{k.Down, editor.KeyDown},
		{k.Escape, editor.KeyEscape},
	}
	for _, n := range named {
		if key.Matches(msg, n.b) {
			return []editor.Key{editor.Named(n.kind)}
		}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []editor.Key{editor.Rune(' ')}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		out := make([]editor.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			switch r {
			case '\r', '\n', '\t':
				r = ' '
			}
			out = append(out, editor.Rune(r))
		}
		return out
	}
	return nil
}

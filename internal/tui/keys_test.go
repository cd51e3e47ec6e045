package tui

import (
	"testing"

	"rotodendron/internal/editor"

	tea "github.com/charmbracelet/bubbletea"
)

func TestEditorKeys_NamedBindings(t *testing.T) {
	t.Parallel()

	km := defaultKeyMap()
	cases := []struct {
		msg  tea.KeyMsg
		want editor.KeyKind
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, editor.KeyEnter},
		{tea.KeyMsg{Type: tea.KeyTab}, editor.KeyTab},
		{tea.KeyMsg{Type: tea.KeyBackspace}, editor.KeyBackspace},
		{tea.KeyMsg{Type: tea.KeyCtrlH}, editor.KeyBackspace},
		{tea.KeyMsg{Type: tea.KeyLeft}, editor.KeyLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, editor.KeyRight},
		{tea.KeyMsg{Type: tea.KeyUp}, editor.KeyUp},
		{tea.KeyMsg{Type: tea.KeyDown}, editor.KeyDown},
		{tea.KeyMsg{Type: tea.KeyEsc}, editor.KeyEscape},
	}
	for _, tc := range cases {
		got := km.editorKeys(tc.msg)
		if len(got) != 1 || got[0] != editor.Named(tc.want) {
			t.Fatalf("%s: expected %s, got %v", tc.msg, tc.want, got)
		}
	}
}

func TestEditorKeys_TextInput(t *testing.T) {
	t.Parallel()

	km := defaultKeyMap()
	if got := km.editorKeys(tea.KeyMsg{Type: tea.KeySpace}); len(got) != 1 || got[0] != editor.Rune(' ') {
		t.Fatalf("expected space rune, got %v", got)
	}

	got := km.editorKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\nb\té")})
	want := []editor.Key{editor.Rune('a'), editor.Rune(' '), editor.Rune('b'), editor.Rune(' '), editor.Rune('é')}
	if len(got) != len(want) {
		t.Fatalf("expected %d keys for pasted text, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestEditorKeys_IgnoresAltAndUnbound(t *testing.T) {
	t.Parallel()

	km := defaultKeyMap()
	if got := km.editorKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}); got != nil {
		t.Fatalf("expected alt chords to be ignored, got %v", got)
	}
	if got := km.editorKeys(tea.KeyMsg{Type: tea.KeyF5}); got != nil {
		t.Fatalf("expected unbound key to be ignored, got %v", got)
	}
}

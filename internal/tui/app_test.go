package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	mAny, cmd := m.Update(msg)
	next, ok := mAny.(appModel)
	if !ok {
		t.Fatalf("unexpected model type %T", mAny)
	}
	return next, cmd
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestApp_TypingAndSubmitting(t *testing.T) {
	ed := newTestEditor()
	m := newAppModel(ed, Options{Autoloop: true, Delay: time.Millisecond})

	m, cmd := update(t, m, runes("hi"))
	if ed.CurrentText() != "hi" {
		t.Fatalf("expected pasted runes in the buffer, got %q", ed.CurrentText())
	}
	if m.gen != 1 || cmd == nil {
		t.Fatalf("expected a restarted countdown; gen=%d cmd=%v", m.gen, cmd)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if ed.Tree().Len() != 2 || ed.Tree().MustNodeAt(1).Text != "hi " {
		t.Fatalf("expected one grown node 'hi ', got %d nodes", ed.Tree().Len()-1)
	}
	if m.gen != 3 {
		t.Fatalf("expected generation 3, got %d", m.gen)
	}
}

func TestApp_StaleTicksAreDropped(t *testing.T) {
	ed := newTestEditor()
	m := newAppModel(ed, Options{Autoloop: true, Delay: time.Millisecond})
	m, _ = update(t, m, runes("x"))
	start := ed.CurrentTimer()

	m, cmd := update(t, m, tickMsg{gen: 0})
	if ed.CurrentTimer() != start || cmd != nil {
		t.Fatalf("stale tick must be ignored; timer=%d cmd=%v", ed.CurrentTimer(), cmd)
	}

	_, cmd = update(t, m, tickMsg{gen: m.gen})
	if ed.CurrentTimer() != start-1 {
		t.Fatalf("expected countdown to %d, got %d", start-1, ed.CurrentTimer())
	}
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected the next tick to be scheduled, got %v", msgs)
	}
	if tm, ok := msgs[0].(tickMsg); !ok || tm.gen != m.gen {
		t.Fatalf("expected tickMsg{gen:%d}, got %#v", m.gen, msgs[0])
	}
}

func TestApp_TicksEnterReadingMode(t *testing.T) {
	ed := newTestEditor()
	m := newAppModel(ed, Options{Autoloop: true, Delay: time.Millisecond})
	submitText(ed, "first")

	for i := 0; i < 3; i++ {
		m, _ = update(t, m, tickMsg{gen: m.gen})
	}
	if !ed.ReadingMode() {
		t.Fatalf("expected reading mode after the countdown")
	}
}

func TestApp_NoAutoloopSchedulesNoTicks(t *testing.T) {
	m := newAppModel(newTestEditor(), Options{Autoloop: false})
	if m.Init() != nil {
		t.Fatalf("expected no initial tick")
	}
	_, cmd := update(t, m, runes("a"))
	if msgs := collect(cmd); len(msgs) != 0 {
		t.Fatalf("expected no commands, got %v", msgs)
	}
}

func TestApp_ShuttleCopiesToClipboard(t *testing.T) {
	var copied []string
	prev := writeClipboard
	writeClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	t.Cleanup(func() { writeClipboard = prev })

	ed := newTestEditor()
	submitText(ed, "keep")
	m := newAppModel(ed, Options{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := update(t, m, runes("p"))

	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one clipboard message, got %v", msgs)
	}
	if got, ok := msgs[0].(shuttleCopiedMsg); !ok || got.text != "keep" || got.err != nil {
		t.Fatalf("unexpected message %#v", msgs[0])
	}
	if len(copied) != 1 || copied[0] != "keep" {
		t.Fatalf("unexpected clipboard writes %v", copied)
	}
	if ed.ShuttleLen() != 1 {
		t.Fatalf("expected shuttle to hold one paragraph")
	}
}

func TestApp_QuitAndView(t *testing.T) {
	m := newAppModel(newTestEditor(), Options{})
	if m.View() != "" {
		t.Fatalf("expected empty view before the first resize")
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 8})
	if got := strings.Count(m.View(), "\n"); got != 7 {
		t.Fatalf("expected 8 lines, got %d", got+1)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit command")
	}
	if m.View() != "" {
		t.Fatalf("expected empty view after quitting")
	}
}

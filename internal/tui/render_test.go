package tui

import (
	"strings"
	"testing"

	"rotodendron/internal/editor"
	"rotodendron/internal/tree"

	xansi "github.com/charmbracelet/x/ansi"
)

const testWidth = 45 // column 35 centered: 5 columns of left padding

func newTestEditor() *editor.Editor {
	return editor.New(tree.New(), editor.Config{InitialTimer: 3, ColumnWidth: 35})
}

func submitText(ed *editor.Editor, s string) {
	for _, r := range s {
		ed.Handle(editor.Rune(r))
	}
	ed.Handle(editor.Named(editor.KeyEnter))
}

func TestLayout_EmptyTreeShowsCursorCentered(t *testing.T) {
	setGlyphs(glyphSetUnicode)
	ed := newTestEditor()
	ed.Handle(editor.Rune('h'))
	ed.Handle(editor.Rune('i'))
	ed.Handle(editor.Named(editor.KeyLeft))

	l := frameOf(ed, 5).layout(testWidth)
	if len(l.rows) == 0 || l.rows[0].text != "     h⎸i" {
		t.Fatalf("unexpected first row %q", l.rows[0].text)
	}
	if l.rows[0].style != rowHighlight {
		t.Fatalf("expected in-progress text highlighted")
	}
	if l.focus != 1 {
		t.Fatalf("expected focus after the pending text, got %d", l.focus)
	}
	// timer blank rows follow the pending text
	for i := 1; i <= 3; i++ {
		if l.rows[i].text != "" {
			t.Fatalf("expected blank countdown row %d, got %q", i, l.rows[i].text)
		}
	}
}

func TestLayout_ReadingHighlightsSelectedParagraph(t *testing.T) {
	ed := newTestEditor()
	submitText(ed, "A")
	submitText(ed, "B")
	ed.Handle(editor.Named(editor.KeyTab))
	ed.Handle(editor.Named(editor.KeyTab))
	ed.Handle(editor.Named(editor.KeyDown))

	l := frameOf(ed, 5).layout(testWidth)
	if l.rows[0].text != "     A" || l.rows[0].style != rowMuted {
		t.Fatalf("unexpected first row %+v", l.rows[0])
	}
	if l.rows[2].text != "     B" || l.rows[2].style != rowHighlight {
		t.Fatalf("unexpected selected row %+v", l.rows[2])
	}
	if l.focus != 3 {
		t.Fatalf("expected focus on line 1 of paragraph B (row 3), got %d", l.focus)
	}
}

func TestLayout_SiblingFanShiftsSelectedIntoColumn(t *testing.T) {
	tr := tree.New()
	tr.Grow("A", 0)
	tr.Grow("B", 1)
	tr.Grow("C", 1) // path now ends at C, the second sibling

	ed := editor.New(tr, editor.Config{InitialTimer: 1, ColumnWidth: 35})
	f := frameOf(ed, 5)
	f.readingMode = true
	f.selectedIndex = 2

	l := f.layout(testWidth)
	if got := l.rows[2].text; got != "     C" {
		t.Fatalf("expected C centered with B shifted off screen, got %q", got)
	}

	f.siblings[1].NodesToLeft = 0
	l = f.layout(testWidth)
	if got := l.rows[2].text; !strings.HasPrefix(got, "     B") || xansi.StringWidth(got) > testWidth {
		t.Fatalf("expected B centered and row cut to width, got %q", got)
	}
}

func TestLayout_FrontierRecapsLineage(t *testing.T) {
	ed := newTestEditor()
	submitText(ed, "A")
	submitText(ed, "B")
	// back up to A and branch a sibling of B
	ed.Handle(editor.Named(editor.KeyUp))
	ed.Handle(editor.Named(editor.KeyUp))
	ed.Handle(editor.Named(editor.KeyUp))
	ed.Handle(editor.Named(editor.KeyEnter))
	submitText(ed, "C")
	if !ed.AtFrontier() || ed.SelectedIndex() != 2 {
		t.Fatalf("setup: expected frontier at 2, got index=%d path=%v", ed.SelectedIndex(), ed.Tree().Path())
	}

	l := frameOf(ed, 5).layout(testWidth)
	var recap []string
	for _, r := range l.rows[l.focus:] {
		if strings.Contains(r.text, "A") || strings.Contains(r.text, "C") {
			recap = append(recap, r.text)
		}
	}
	if len(recap) != 2 {
		t.Fatalf("expected two lineage rows after the focus, got %q", recap)
	}
	if !strings.HasPrefix(recap[0], "     A") {
		t.Fatalf("unexpected lineage row for A: %q", recap[0])
	}
	if !strings.HasPrefix(recap[1], "   < C") {
		t.Fatalf("expected left marker before C: %q", recap[1])
	}
}

func TestLayout_AfterLoadWritesUnderRoot(t *testing.T) {
	setGlyphs(glyphSetUnicode)
	tr := tree.New()
	tr.Grow("A", 0)
	tr.ResetPathLeftmost()
	ed := editor.New(tr, editor.Config{InitialTimer: 2, ColumnWidth: 35})

	l := frameOf(ed, 5).layout(testWidth)
	if got := l.rows[0].text; got != "     ⎸" {
		t.Fatalf("expected cursor block first, got %q", got)
	}
	if l.focus != 1 {
		t.Fatalf("expected focus below the cursor block, got %d", l.focus)
	}
}

func TestRender_FillsScreen(t *testing.T) {
	ed := newTestEditor()
	submitText(ed, "A paragraph long enough to wrap over more than one display line")

	out := render(frameOf(ed, 5), testWidth, 12, newPalette())
	lines := strings.Split(out, "\n")
	if len(lines) != 12 {
		t.Fatalf("expected 12 lines, got %d", len(lines))
	}
	for i, ln := range lines {
		if w := xansi.StringWidth(ln); w != testWidth {
			t.Fatalf("line %d: width %d, want %d", i, w, testWidth)
		}
	}
	if render(frameOf(ed, 5), 0, 0, newPalette()) != "" {
		t.Fatalf("expected empty output before the first resize")
	}
}

func TestFrameOf_DoesNotMutateEditor(t *testing.T) {
	ed := newTestEditor()
	submitText(ed, "A")
	ed.Handle(editor.Rune('x'))
	before := []any{ed.ReadingMode(), ed.SelectedIndex(), ed.CurrentText(), ed.CursorPosition(), ed.CurrentTimer(), len(ed.Tree().Path())}

	_ = render(frameOf(ed, 5), testWidth, 10, newPalette())

	after := []any{ed.ReadingMode(), ed.SelectedIndex(), ed.CurrentText(), ed.CursorPosition(), ed.CurrentTimer(), len(ed.Tree().Path())}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("field %d changed: %v -> %v", i, before[i], after[i])
		}
	}
}

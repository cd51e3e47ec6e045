package tui

import (
	"strings"

	"rotodendron/internal/editor"
	"rotodendron/internal/tree"
	"rotodendron/internal/wrap"

	"github.com/charmbracelet/bubbles/viewport"
)

// frame is everything the renderer reads, copied out of the editor so that
// drawing cannot touch session state.
type frame struct {
	siblings []tree.SiblingsEntry
	stream   []tree.StreamEntry
	// children of the node being written under (writing mode only)
	writingSiblings []string

	readingMode   bool
	selectedIndex int
	lineInPara    int
	currentText   string
	cursor        int
	timer         int

	columnWidth int
	gapWidth    int
}

func frameOf(ed *editor.Editor, gapWidth int) frame {
	t := ed.Tree()
	f := frame{
		siblings:      t.StreamWithSiblings(),
		stream:        t.Stream(),
		readingMode:   ed.ReadingMode(),
		selectedIndex: ed.SelectedIndex(),
		lineInPara:    ed.LineInPara(),
		currentText:   ed.CurrentText(),
		cursor:        ed.CursorPosition(),
		timer:         ed.CurrentTimer(),
		columnWidth:   ed.Config().ColumnWidth,
		gapWidth:      gapWidth,
	}
	if !f.readingMode {
		f.writingSiblings = t.ChildTexts(f.selectedIndex)
	}
	return f
}

type row struct {
	text  string
	style rowStyle
}

// layout is the full, unscrolled page. focus is the row that should sit in
// the middle of the screen.
type layout struct {
	rows  []row
	focus int
}

func (f frame) pendingWithCursor() string {
	rs := []rune(f.currentText)
	c := f.cursor
	if c < 0 {
		c = 0
	}
	if c > len(rs) {
		c = len(rs)
	}
	return string(rs[:c]) + glyphCursor() + string(rs[c:])
}

func (f frame) layout(width int) layout {
	col := f.columnWidth
	full := col + f.gapWidth
	padLeft := (width - col) / 2
	if padLeft < 0 {
		padLeft = 0
	}

	var l layout
	add := func(text string, st rowStyle) {
		l.rows = append(l.rows, row{text: window(text, 0, width), style: st})
	}
	blank := func(n int) {
		for i := 0; i < n; i++ {
			add("", rowPlain)
		}
	}
	// fan lays sibling texts out side by side, shifted so the selected one
	// (nodesToLeft columns in) lands in the centered column.
	fan := func(texts []string, nodesToLeft int, st rowStyle) {
		cols := make([][]string, len(texts))
		height := 0
		for i, text := range texts {
			cols[i] = wrap.Lines(text, col)
			if len(cols[i]) > height {
				height = len(cols[i])
			}
		}
		for ln := 0; ln < height; ln++ {
			var b strings.Builder
			b.WriteString(strings.Repeat(" ", padLeft))
			for _, lines := range cols {
				chunk := ""
				if ln < len(lines) {
					chunk = lines[ln]
				}
				b.WriteString(padRight(chunk, full))
			}
			add(strings.TrimRight(window(b.String(), nodesToLeft*full, width), " "), st)
		}
	}
	writeBlock := func() {
		texts := append(append([]string{}, f.writingSiblings...), f.pendingWithCursor())
		fan(texts, len(f.writingSiblings), rowHighlight)
		l.focus = len(l.rows)
		blank(f.timer)
	}

	if !f.readingMode && f.selectedIndex == 0 {
		writeBlock()
		blank(1)
	}

	for i, item := range f.siblings {
		selected := i+1 == f.selectedIndex
		st := rowMuted
		if selected && f.readingMode {
			st = rowHighlight
			l.focus = len(l.rows) + f.lineInPara
		}
		fan(item.Texts, item.NodesToLeft, st)

		if selected && !f.readingMode {
			blank(1)
			writeBlock()
		}
		blank(1)
	}

	// At the frontier, recap the committed lineage with sibling markers.
	if !f.readingMode && f.selectedIndex > 0 && f.selectedIndex == len(f.stream) {
		for _, e := range f.stream {
			lines := wrap.Lines(e.Text, col)
			indent := padLeft - (1 + e.NumBefore)
			if indent < 0 {
				indent = 0
			}
			add(strings.Repeat(" ", indent)+strings.Repeat("<", e.NumBefore)+" "+
				padRight(lines[0], col)+" "+strings.Repeat(">", e.NumAfter), rowMuted)
			for _, ln := range lines[1:] {
				add(strings.Repeat(" ", padLeft)+ln, rowMuted)
			}
			blank(1)
		}
	}
	return l
}

// render draws the page scrolled so the focus row is mid-screen.
func render(f frame, width, height int, pal palette) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	l := f.layout(width)
	middle := height / 2

	painted := make([]string, 0, middle+len(l.rows)+height)
	for i := 0; i < middle; i++ {
		painted = append(painted, "")
	}
	for _, r := range l.rows {
		painted = append(painted, pal.paint(r.text, r.style))
	}
	// Trailing room so the viewport never clamps the offset near the end.
	for i := 0; i < height; i++ {
		painted = append(painted, "")
	}

	vp := viewport.New(width, height)
	vp.SetContent(strings.Join(painted, "\n"))
	vp.SetYOffset(l.focus)
	return normalizePane(vp.View(), width, height)
}

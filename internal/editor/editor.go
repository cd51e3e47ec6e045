// Package editor is the modal cursor over a paragraph tree: writing new
// fragments, reading back along the current path, and the autoscroll
// countdown that flips writing into reading when the writer goes idle.
package editor

import (
	"rotodendron/internal/tree"
	"rotodendron/internal/wrap"
)

const (
	DefaultColumnWidth = 35

	// Idle ticks before writing turns into reading.
	AutoloopInitialTimer = 20
	ManualInitialTimer   = 100
)

type Config struct {
	InitialTimer int
	ColumnWidth  int
}

func DefaultConfig(autoloop bool) Config {
	cfg := Config{InitialTimer: ManualInitialTimer, ColumnWidth: DefaultColumnWidth}
	if autoloop {
		cfg.InitialTimer = AutoloopInitialTimer
	}
	return cfg
}

func (c Config) normalized() Config {
	if c.InitialTimer < 1 {
		c.InitialTimer = 1
	}
	if c.ColumnWidth < 1 {
		c.ColumnWidth = DefaultColumnWidth
	}
	return c
}

// Outcome reports side effects of Handle that the caller may want to mirror
// outside the editor.
type Outcome struct {
	// Grown is the node created by a submission, if any.
	Grown *tree.Node
	// Shuttled is set when a paragraph was copied to the shuttle.
	Shuttled   string
	DidShuttle bool
}

// Editor owns the tree for the lifetime of the session.
//
// selectedIndex is a depth on the current path. While reading it names the
// paragraph being read (1..path length). While writing it names the node the
// in-progress fragment will be attached under; equal to the path length it is
// the frontier, smaller it is an earlier branch point.
type Editor struct {
	cfg  Config
	tree *tree.Tree

	readingMode   bool
	selectedIndex int

	// reading mode
	lineInPara int

	// writing mode
	currentText    []rune
	cursorPosition int

	currentTimer int

	shuttle []string
}

func New(t *tree.Tree, cfg Config) *Editor {
	if t == nil {
		t = tree.New()
	}
	cfg = cfg.normalized()
	return &Editor{
		cfg:          cfg,
		tree:         t,
		currentTimer: cfg.InitialTimer,
	}
}

func (e *Editor) Config() Config { return e.cfg }
func (e *Editor) Tree() *tree.Tree { return e.tree }
func (e *Editor) ReadingMode() bool { return e.readingMode }
func (e *Editor) SelectedIndex() int { return e.selectedIndex }
func (e *Editor) LineInPara() int { return e.lineInPara }
func (e *Editor) CurrentText() string { return string(e.currentText) }
func (e *Editor) CursorPosition() int { return e.cursorPosition }
func (e *Editor) CurrentTimer() int { return e.currentTimer }
func (e *Editor) AtFrontier() bool { return !e.readingMode && e.selectedIndex == e.tree.PathLen() }
func (e *Editor) ShuttleLen() int { return len(e.shuttle) }
func (e *Editor) Shuttle() []string {
	out := make([]string, len(e.shuttle))
	copy(out, e.shuttle)
	return out
}

// Handle applies one input event.
func (e *Editor) Handle(k Key) Outcome {
	var out Outcome
	switch k.Kind {
	case KeyEnter:
		switch {
		case e.readingMode:
			e.readingMode = false
		case len(e.currentText) > 0:
			out.Grown = e.SubmitPara()
		case e.selectedIndex < e.tree.PathLen():
			e.SetReadingMode()
		}
	case KeyTab:
		if e.readingMode {
			e.NextPara(false)
		} else if e.tree.PathLen() > 0 {
			e.SetReadingMode()
		}
	case KeyBackspace:
		if !e.readingMode {
			e.Backspace()
		}
	case KeyRight:
		if e.readingMode {
			e.SwitchStream(+1)
		} else {
			e.MoveCursor(+1)
		}
	case KeyLeft:
		if e.readingMode {
			e.SwitchStream(-1)
		} else {
			e.MoveCursor(-1)
		}
	case KeyDown, KeyTick:
		e.NextLine()
	case KeyUp:
		e.PrevLine()
	case KeyEscape:
		if !e.readingMode {
			out.Grown = e.Escape()
		}
	case KeyRune:
		if !e.readingMode {
			e.InsertRune(k.Rune)
			break
		}
		switch k.Rune {
		case 'j', 'n':
			e.NextPara(true)
		case 'k', 'e':
			e.PrevPara()
		case 'h', 'm':
			e.SwitchStream(-1)
		case 'l', 'i':
			e.SwitchStream(+1)
		case 'p':
			out.Shuttled, out.DidShuttle = e.CopyToShuttle()
		}
	}
	return out
}

// SetReadingMode enters reading mode one paragraph further down the path.
// Reading past the end wraps into the next unexplored leaf stream and starts
// again from the top. With nothing written yet there is nothing to read and
// only the countdown restarts.
func (e *Editor) SetReadingMode() {
	e.currentTimer = e.cfg.InitialTimer
	if e.tree.PathLen() == 0 {
		return
	}
	e.readingMode = true
	e.lineInPara = 0
	e.currentText = nil
	e.cursorPosition = 0
	e.selectedIndex++
	if e.selectedIndex > e.tree.PathLen() {
		e.tree.SwitchStream(e.selectedIndex-1, +1, true)
		e.selectedIndex = 1
	}
}

// SubmitPara grows the in-progress text under the selected node and moves the
// writing point onto it. Empty text is not submitted.
func (e *Editor) SubmitPara() *tree.Node {
	if len(e.currentText) == 0 {
		return nil
	}
	n := e.tree.Grow(string(e.currentText), e.selectedIndex)
	e.selectedIndex++
	e.currentText = nil
	e.cursorPosition = 0
	e.currentTimer = e.cfg.InitialTimer
	return n
}

// Flush submits any pending text. Safe to call more than once.
func (e *Editor) Flush() *tree.Node {
	return e.SubmitPara()
}

func (e *Editor) NextPara(keepReading bool) {
	e.lineInPara = 0
	if e.selectedIndex == e.tree.PathLen() {
		if keepReading {
			return
		}
		e.readingMode = false
		return
	}
	e.selectedIndex++
}

func (e *Editor) PrevPara() {
	e.lineInPara = 0
	if e.selectedIndex > 1 {
		e.selectedIndex--
	}
}

// NextLine scrolls one wrapped line while reading. While writing it is the
// autoscroll countdown: when it runs out the editor switches to reading.
func (e *Editor) NextLine() {
	if e.readingMode {
		e.lineInPara++
		if e.lineInPara >= e.linesInCurrentPara() {
			e.NextPara(false)
		}
		return
	}
	e.currentTimer--
	if e.currentTimer <= 0 {
		e.SetReadingMode()
	}
}

// PrevLine scrolls back one wrapped line while reading, rolling into the
// previous paragraph's last line. While writing it switches to reading at the
// last line of the selected paragraph.
func (e *Editor) PrevLine() {
	if e.readingMode {
		e.lineInPara--
		if e.lineInPara == -1 {
			if e.selectedIndex <= 1 {
				e.lineInPara = 0
			} else {
				e.selectedIndex--
				e.lineInPara = e.linesInCurrentPara() - 1
			}
		}
		return
	}
	if e.selectedIndex < 1 {
		return
	}
	e.readingMode = true
	e.lineInPara = e.linesInCurrentPara() - 1
}

// SwitchStream moves laterally at the selected depth.
func (e *Editor) SwitchStream(direction int) {
	e.selectedIndex = e.tree.SwitchStream(e.selectedIndex, direction, false)
}

func (e *Editor) InsertRune(r rune) {
	text := make([]rune, 0, len(e.currentText)+1)
	text = append(text, e.currentText[:e.cursorPosition]...)
	text = append(text, r)
	text = append(text, e.currentText[e.cursorPosition:]...)
	e.currentText = text
	e.cursorPosition++
}

func (e *Editor) Backspace() {
	if len(e.currentText) == 0 || e.cursorPosition == 0 {
		return
	}
	e.currentText = append(e.currentText[:e.cursorPosition-1], e.currentText[e.cursorPosition:]...)
	e.cursorPosition--
}

func (e *Editor) MoveCursor(delta int) {
	p := e.cursorPosition + delta
	if p < 0 {
		p = 0
	}
	if p > len(e.currentText) {
		p = len(e.currentText)
	}
	e.cursorPosition = p
}

// Escape submits pending text, then walks back up as many display lines as
// that text occupied (plus the paragraph gap) so reading resumes at its start.
func (e *Editor) Escape() *tree.Node {
	if e.readingMode {
		return nil
	}
	pending := string(e.currentText)
	n := e.SubmitPara()
	steps := 1 + wrap.Count(pending, e.cfg.ColumnWidth)
	for i := 0; i < steps; i++ {
		e.PrevLine()
	}
	return n
}

// CopyToShuttle appends the paragraph being read to the shuttle.
func (e *Editor) CopyToShuttle() (string, bool) {
	if !e.readingMode || e.selectedIndex < 1 {
		return "", false
	}
	text := e.tree.MustNodeAt(e.selectedIndex).Text
	e.shuttle = append(e.shuttle, text)
	return text, true
}

// LinesInCurrentPara is the wrapped height of the selected paragraph plus its
// trailing gap line.
func (e *Editor) LinesInCurrentPara() int {
	if e.selectedIndex < 1 {
		return 0
	}
	return e.linesInCurrentPara()
}

func (e *Editor) linesInCurrentPara() int {
	return 1 + wrap.Count(e.tree.MustNodeAt(e.selectedIndex).Text, e.cfg.ColumnWidth)
}

package tui

import (
	"log"
	"time"

	"rotodendron/internal/editor"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg is the autoscroll timeout. Every key bumps the generation, so a
// tick scheduled before the key is stale and dropped: the countdown only
// advances after a full delay without input.
type tickMsg struct{ gen int }

type appModel struct {
	ed   *editor.Editor
	keys keyMap
	opts Options
	pal  palette

	width  int
	height int

	gen      int
	quitting bool
}

func newAppModel(ed *editor.Editor, opts Options) appModel {
	return appModel{
		ed:   ed,
		keys: defaultKeyMap(),
		opts: opts.normalized(),
		pal:  newPalette(),
	}
}

func (m appModel) Init() tea.Cmd { return m.tick() }

func (m appModel) tick() tea.Cmd {
	if !m.opts.Autoloop {
		return nil
	}
	gen := m.gen
	return tea.Tick(m.opts.Delay, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.handle(editor.Tick())
		return m, m.tick()

	case shuttleCopiedMsg:
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		keys := m.keys.editorKeys(msg)
		if len(keys) == 0 {
			return m, nil
		}
		var cmds []tea.Cmd
		for _, k := range keys {
			if out := m.handle(k); out.DidShuttle {
				cmds = append(cmds, copyShuttleCmd(out.Shuttled))
			}
		}
		m.gen++
		cmds = append(cmds, m.tick())
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m appModel) handle(k editor.Key) editor.Outcome {
	wasReading := m.ed.ReadingMode()
	out := m.ed.Handle(k)
	if out.Grown != nil {
		log.Printf("grew node %d at depth %d", out.Grown.ID, m.ed.SelectedIndex())
	}
	if wasReading != m.ed.ReadingMode() {
		log.Printf("%s: reading=%v index=%d path=%v", k, m.ed.ReadingMode(), m.ed.SelectedIndex(), m.ed.Tree().Path())
	}
	return out
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	return render(frameOf(m.ed, m.opts.GapWidth), m.width, m.height, m.pal)
}

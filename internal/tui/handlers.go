package tui

import (
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"seehuhn.de/go/geom/vec"

	"github.com/hay-kot/pagelens/internal/core/viewport"
	"github.com/hay-kot/pagelens/internal/docsource"
	"github.com/hay-kot/pagelens/internal/viewer"
)

// Columns scrolled by one horizontal pan step.
const panColumns = 4

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	s := m.session
	cw, ch := m.cellSize()
	_, rows := m.paneSize()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Search):
		return m.openInput(modeLiveSearch)
	case key.Matches(msg, m.keys.BatchSearch):
		return m.openInput(modeBatchSearch)
	case key.Matches(msg, m.keys.NextMatch):
		if _, ok := s.NextMatch(); ok {
			m.setStatus(s.LiveStatus())
		}
	case key.Matches(msg, m.keys.PrevMatch):
		if _, ok := s.PrevMatch(); ok {
			m.setStatus(s.LiveStatus())
		}
	case key.Matches(msg, m.keys.ScrollDown):
		s.ScrollBy(0, ch)
	case key.Matches(msg, m.keys.ScrollUp):
		s.ScrollBy(0, -ch)
	case key.Matches(msg, m.keys.ScrollLeft):
		s.ScrollBy(-panColumns*cw, 0)
	case key.Matches(msg, m.keys.ScrollRight):
		s.ScrollBy(panColumns*cw, 0)
	case key.Matches(msg, m.keys.HalfDown):
		s.ScrollBy(0, float64(rows/2)*ch)
	case key.Matches(msg, m.keys.HalfUp):
		s.ScrollBy(0, -float64(rows/2)*ch)
	case key.Matches(msg, m.keys.NextPage):
		s.NextPage()
	case key.Matches(msg, m.keys.PrevPage):
		s.PrevPage()
	case key.Matches(msg, m.keys.FirstPage):
		s.FirstPage()
	case key.Matches(msg, m.keys.LastPage):
		s.LastPage()
	case key.Matches(msg, m.keys.ZoomIn):
		s.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		s.ZoomOut()
	case key.Matches(msg, m.keys.ZoomReset):
		z, err := viewer.ZoomFromConfig(m.cfg.View)
		if err != nil {
			m.setError(err.Error())
			break
		}
		s.SetZoom(z)
	case key.Matches(msg, m.keys.FitWidth):
		s.SetZoom(viewport.FitWidth())
	case key.Matches(msg, m.keys.FitPage):
		s.SetZoom(viewport.FitPage())
	case key.Matches(msg, m.keys.Copy):
		return m.copy()
	case key.Matches(msg, m.keys.SelectPage):
		if s.SelectAllPage() {
			m.setStatus(fmt.Sprintf("selected page %d", s.CurrentPage()+1))
		}
	case key.Matches(msg, m.keys.SelectAll):
		if s.SelectAllDocument() {
			m.setStatus("selected document")
		}
	case key.Matches(msg, m.keys.Clear):
		s.ClearSelection()
		s.ClearLiveSearch()
		m.hint = ""
		m.setStatus("")
	case key.Matches(msg, m.keys.ToggleStrip):
		m.showStrip = !m.showStrip && m.cfg.Minimap.Width > 0
		m.resize()
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	}
	return m, nil
}

func (m Model) openInput(mode inputMode) (tea.Model, tea.Cmd) {
	m.mode = mode
	switch mode {
	case modeLiveSearch:
		m.input.Prompt = "/"
		m.input.Placeholder = "search"
		m.input.SetValue(m.session.LiveTerm())
	case modeBatchSearch:
		m.input.Prompt = "terms: "
		m.input.Placeholder = "cat; dog"
		m.input.SetValue("")
	}
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) closeInput() Model {
	m.mode = modeNormal
	m.input.Blur()
	return m
}

func (m Model) handleInputKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	s := m.session

	switch {
	case key.Matches(msg, m.keys.CancelSearch):
		return m.closeInput(), nil

	case key.Matches(msg, m.keys.SubmitSearch):
		value := m.input.Value()
		mode := m.mode
		m = m.closeInput()

		if mode == modeBatchSearch {
			summary, _ := s.RunBatchSearch(value)
			m.setStatus(summary)
			return m, nil
		}

		// supersede any pending debounced search
		s.FireLiveSearch(s.ScheduleLiveSearch(value))
		if s.NavEnabled() {
			s.NextMatch()
		}
		m.setStatus(s.LiveStatus())
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.mode != modeLiveSearch || m.input.Value() == before {
		return m, cmd
	}

	token := s.ScheduleLiveSearch(m.input.Value())
	tick := tea.Tick(s.Debounce(), func(time.Time) tea.Msg {
		return liveSearchTickMsg{token: token}
	})
	return m, tea.Batch(cmd, tick)
}

// copy writes the selection to the system clipboard, falling back to the
// terminal clipboard when the system one is unavailable.
func (m Model) copy() (tea.Model, tea.Cmd) {
	text, ok := m.session.CopyText()
	if !ok {
		m.setStatus("nothing to copy")
		return m, nil
	}

	n := len([]rune(text))
	if m.session.CopySelection() {
		m.setStatus(fmt.Sprintf("copied %d chars", n))
		return m, nil
	}

	m.setStatus(fmt.Sprintf("copied %d chars via terminal", n))
	return m, tea.SetClipboard(text)
}

func (m Model) reload() tea.Cmd {
	if m.opts.Path == "" {
		return nil
	}
	path, opts := m.opts.Path, m.opts.DocOptions
	return func() tea.Msg {
		doc, err := docsource.Open(path, opts)
		return documentReloadedMsg{doc: doc, err: err, manual: true}
	}
}

func (m Model) handleReload(msg documentReloadedMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if !msg.manual && m.opts.Watcher != nil {
		cmd = m.opts.Watcher.Start()
	}

	if msg.err != nil {
		log.Error().Err(msg.err).Str("path", m.opts.Path).Msg("reload document")
		m.setError("reload failed: " + msg.err.Error())
		return m, cmd
	}

	m.session.Reload(msg.doc)
	m.setStatus("reloaded")
	return m, cmd
}

// region classifies a terminal cell.
type region int

const (
	regionNone region = iota
	regionPane
	regionStrip
)

func (m Model) regionAt(x, y int) region {
	cols, rows := m.paneSize()
	switch {
	case y < 0 || y >= rows || x < 0:
		return regionNone
	case x < cols:
		return regionPane
	case x < cols+m.stripWidth():
		return regionStrip
	default:
		return regionNone
	}
}

// pixelAt returns the viewport pixel at the center of cell x, y.
func (m Model) pixelAt(x, y int) vec.Vec2 {
	cw, ch := m.cellSize()
	return vec.Vec2{X: (float64(x) + 0.5) * cw, Y: (float64(y) + 0.5) * ch}
}

// stripY returns the strip coordinate of row y in rows.
func stripY(y int) float64 { return float64(y) + 0.5 }

func (m Model) handleMouseClick(mouse tea.Mouse) (tea.Model, tea.Cmd) {
	if mouse.Button != tea.MouseLeft {
		return m, nil
	}
	s := m.session
	_, rows := m.paneSize()

	switch m.regionAt(mouse.X, mouse.Y) {
	case regionStrip:
		if s.ActivateMarkerAt(stripY(mouse.Y), 0, float64(rows)) {
			m.setStatus(fmt.Sprintf("page %d", s.CurrentPage()+1))
			return m, nil
		}
		s.JumpToFraction(stripY(mouse.Y) / float64(rows))

	case regionPane:
		p := m.pixelAt(mouse.X, mouse.Y)
		now := m.now()
		cell := [2]int{mouse.X, mouse.Y}

		if cell == m.lastClickCell && !m.lastClick.IsZero() && now.Sub(m.lastClick) <= m.cfg.TUI.DoubleClick {
			m.lastClick = time.Time{}
			if s.DoubleClick(p) {
				text, _ := s.CopyText()
				m.setStatus(fmt.Sprintf("selected %q", text))
			}
			return m, nil
		}

		m.lastClick = now
		m.lastClickCell = cell
		s.BeginDrag(p)
	}
	return m, nil
}

func (m Model) handleMouseMotion(mouse tea.Mouse) (tea.Model, tea.Cmd) {
	s := m.session
	cols, rows := m.paneSize()

	if s.Dragging() {
		x := min(max(mouse.X, 0), cols-1)
		y := min(max(mouse.Y, 0), rows-1)
		s.UpdateDrag(m.pixelAt(x, y))
		return m, nil
	}

	m.hint = ""
	switch m.regionAt(mouse.X, mouse.Y) {
	case regionPane:
		s.Hover(m.pixelAt(mouse.X, mouse.Y))
	case regionStrip:
		s.Leave()
		if hint, ok := s.MinimapHint(stripY(mouse.Y), 0, float64(rows)); ok {
			m.hint = hint
		}
	default:
		s.Leave()
	}
	return m, nil
}

func (m Model) handleMouseRelease(mouse tea.Mouse) (tea.Model, tea.Cmd) {
	s := m.session
	if !s.Dragging() {
		return m, nil
	}

	cols, rows := m.paneSize()
	x := min(max(mouse.X, 0), cols-1)
	y := min(max(mouse.Y, 0), rows-1)
	if s.EndDrag(m.pixelAt(x, y)) {
		text, _ := s.CopyText()
		m.setStatus(fmt.Sprintf("selected %d chars", len([]rune(text))))
	}
	return m, nil
}

func (m Model) handleMouseWheel(mouse tea.Mouse) (tea.Model, tea.Cmd) {
	cw, ch := m.cellSize()
	step := float64(max(m.cfg.TUI.ScrollRows, 1))

	switch mouse.Button {
	case tea.MouseWheelDown:
		m.session.ScrollBy(0, step*ch)
	case tea.MouseWheelUp:
		m.session.ScrollBy(0, -step*ch)
	case tea.MouseWheelRight:
		m.session.ScrollBy(step*cw, 0)
	case tea.MouseWheelLeft:
		m.session.ScrollBy(-step*cw, 0)
	}
	return m, nil
}

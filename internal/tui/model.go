// Package tui implements the terminal document viewer.
package tui

import (
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"seehuhn.de/go/geom/vec"

	"github.com/hay-kot/pagelens/internal/core/config"
	"github.com/hay-kot/pagelens/internal/docsource/textdoc"
	"github.com/hay-kot/pagelens/internal/viewer"
)

// inputMode is what the bottom line is doing.
type inputMode int

const (
	modeNormal inputMode = iota
	modeLiveSearch
	modeBatchSearch
)

// Rows reserved below the document pane: status bar and input/help line.
const chromeRows = 2

// liveSearchTickMsg delivers a debounced live search.
type liveSearchTickMsg struct {
	token uint64
}

// Options configures the TUI.
type Options struct {
	Path       string          // shown in the status bar and used for reloads
	DocOptions textdoc.Options // pagination used when reloading
	Watcher    *FileWatcher    // optional
}

// Model is the Bubble Tea model for the document viewer.
type Model struct {
	cfg     *config.Config
	session *viewer.Session
	opts    Options

	keys  KeyMap
	help  help.Model
	input textinput.Model
	mode  inputMode

	width     int
	height    int
	showHelp  bool
	showStrip bool

	status    string
	statusErr bool
	hint      string

	lastClick     time.Time
	lastClickCell [2]int
	now           func() time.Time

	// applied once the first window size is known
	startPage   int
	startSearch string

	quitting bool
}

// New creates a viewer model around an existing session.
func New(session *viewer.Session, cfg *config.Config, opts Options) Model {
	ti := textinput.New()
	ti.CharLimit = 200

	return Model{
		cfg:       cfg,
		session:   session,
		opts:      opts,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		input:     ti,
		showStrip: cfg.Minimap.Width > 0,
		now:       time.Now,
		startPage: -1,
	}
}

// WithStartPage scrolls to page once the viewer knows its size.
func (m Model) WithStartPage(page int) Model {
	m.startPage = page
	return m
}

// WithStartSearch runs a live search for term once the viewer knows its
// size.
func (m Model) WithStartSearch(term string) Model {
	m.startSearch = term
	return m
}

// Init starts the file watcher when one is configured.
func (m Model) Init() tea.Cmd {
	if m.opts.Watcher != nil {
		return m.opts.Watcher.Start()
	}
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.applyStart()
		return m, nil

	case tea.KeyPressMsg:
		if m.mode != modeNormal {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg.Mouse())

	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg.Mouse())

	case tea.MouseReleaseMsg:
		return m.handleMouseRelease(msg.Mouse())

	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg.Mouse())

	case liveSearchTickMsg:
		if m.session.FireLiveSearch(msg.token) {
			m.setStatus(m.session.LiveStatus())
		}
		return m, nil

	case documentReloadedMsg:
		return m.handleReload(msg)
	}

	if m.mode != modeNormal {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the viewer.
func (m Model) View() tea.View {
	if m.quitting || m.width == 0 || m.height == 0 {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

// stripWidth returns the columns used by the minimap strip.
func (m Model) stripWidth() int {
	if !m.showStrip {
		return 0
	}
	return min(m.cfg.Minimap.Width, max(m.width-1, 0))
}

// paneSize returns the document pane size in cells.
func (m Model) paneSize() (cols, rows int) {
	return max(m.width-m.stripWidth(), 1), max(m.height-chromeRows, 1)
}

func (m Model) cellSize() (w, h float64) {
	return m.cfg.TUI.CellWidth, m.cfg.TUI.CellHeight
}

// resize pushes the pane size to the session in pixels.
func (m *Model) resize() {
	cols, rows := m.paneSize()
	cw, ch := m.cellSize()
	m.session.Resize(float64(cols)*cw, float64(rows)*ch)
}

func (m *Model) applyStart() {
	s := m.session
	if m.startPage >= 0 {
		s.Jump(m.startPage, vec.Vec2{})
		m.startPage = -1
	}
	if m.startSearch != "" {
		s.RunLiveSearch(m.startSearch)
		if s.NavEnabled() {
			s.NextMatch()
		}
		m.setStatus(s.LiveStatus())
		m.startSearch = ""
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

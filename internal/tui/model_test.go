package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/pagelens/internal/core/config"
	"github.com/hay-kot/pagelens/internal/docsource/textdoc"
	"github.com/hay-kot/pagelens/internal/viewer"
	"github.com/hay-kot/pagelens/pkg/tuitest"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

// Four pages of four lines. With a 0pt margin and the default 96/72 device
// units a 6x12pt character cell is exactly one 8x16px terminal cell, so each
// page is 20 columns by 4 rows. In a 30x12 window the pane is 28x10 cells:
// pages are centered with a 4 column inset and stacked with one blank row
// between them (page tops at rows 0, 5, 10 and 15).
var testLines = []string{
	"alpha beta", "gamma cat", "delta", "epsilon",
	"zeta cat eta", "the end", "iota", "kappa",
	"lambda", "mu", "nu", "xi",
	"omicron", "pi", "rho", "omega",
}

var testDocOptions = textdoc.Options{
	Columns:      20,
	LinesPerPage: 4,
	Metrics:      textdoc.Metrics{Margin: 0, CharWidth: 6, LineHeight: 12},
}

type harness struct {
	m    Model
	clip *fakeClipboard
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.View.Margins = config.Margins{}
	cfg.Search.Debounce = time.Millisecond

	opts, err := viewer.OptionsFromConfig(&cfg)
	require.NoError(t, err)

	h := &harness{clip: &fakeClipboard{}}
	opts.Clipboard = h.clip

	s := viewer.New(zerolog.Nop(), opts)
	s.Open(textdoc.FromString(strings.Join(testLines, "\n"), testDocOptions))
	require.Equal(t, 4, s.PageCount())

	h.m = New(s, &cfg, Options{Path: "/tmp/notes.txt", DocOptions: testDocOptions})
	h.send(t, tuitest.WindowSize(30, 12))
	return h
}

func (h *harness) send(t *testing.T, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = h.m.Update(msg)
		model, ok := next.(Model)
		require.True(t, ok)
		h.m = model
	}
	return cmd
}

// status renders the status bar wide enough to never truncate.
func (h *harness) status() string {
	m := h.m
	m.width = 200
	return tuitest.StripANSI(m.renderStatus())
}

func (h *harness) lines() []string {
	return strings.Split(tuitest.StripANSI(h.m.render()), "\n")
}

// runCmd executes cmd, expanding batches, and returns the messages that
// arrive within a short timeout.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, runCmd(c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

func TestModel_RendersPages(t *testing.T) {
	h := newHarness(t)

	lines := h.lines()
	require.Len(t, lines, 12)

	assert.Equal(t, "    alpha beta", lines[0])
	assert.Equal(t, "    gamma cat", lines[1])
	assert.Equal(t, "    epsilon", lines[3])
	assert.True(t, strings.HasPrefix(lines[5], "    zeta cat eta"), lines[5])

	status := h.status()
	assert.Contains(t, status, "notes.txt")
	assert.Contains(t, status, "page 2/4")
	assert.Contains(t, status, "100%")
}

func TestModel_ScrollKeys(t *testing.T) {
	h := newHarness(t)
	s := h.m.session

	h.send(t, tuitest.KeyText('j'))
	assert.InDelta(t, 16.0, s.ViewState().ScrollY, 1e-9)

	h.send(t, tuitest.KeyText('k'))
	assert.Zero(t, s.ViewState().ScrollY)

	h.send(t, tuitest.KeyCtrl('d'))
	assert.InDelta(t, 80.0, s.ViewState().ScrollY, 1e-9)
	assert.Equal(t, "    zeta cat eta", h.lines()[0])

	// content is 4*64 + 3*16 = 304px tall in a 160px pane
	h.send(t, tuitest.KeyText('G'))
	assert.InDelta(t, 144.0, s.ViewState().ScrollY, 1e-9)

	h.send(t, tuitest.KeyText('g'))
	assert.Zero(t, s.ViewState().ScrollY)

	h.send(t, tuitest.MouseWheel(3, 3, tea.MouseWheelDown))
	assert.InDelta(t, 48.0, s.ViewState().ScrollY, 1e-9)
}

func TestModel_Zoom(t *testing.T) {
	h := newHarness(t)
	s := h.m.session

	h.send(t, tuitest.KeyText('+'))
	assert.InDelta(t, 1.25, s.EffectiveZoom(), 1e-9)

	h.send(t, tuitest.KeyText('0'))
	assert.InDelta(t, 1.0, s.EffectiveZoom(), 1e-9)

	h.send(t, tuitest.KeyText('w'))
	assert.Contains(t, h.status(), "fit width")
}

func TestModel_LiveSearchDebounced(t *testing.T) {
	h := newHarness(t)
	s := h.m.session

	h.send(t, tuitest.KeyText('/'))
	require.Equal(t, modeLiveSearch, h.m.mode)

	var cmd tea.Cmd
	for _, msg := range tuitest.TypeText("cat") {
		cmd = h.send(t, msg)
	}
	assert.Empty(t, s.LiveTerm(), "nothing runs before the debounce fires")

	var tick *liveSearchTickMsg
	for _, msg := range runCmd(cmd) {
		if m, ok := msg.(liveSearchTickMsg); ok {
			tick = &m
		}
	}
	require.NotNil(t, tick)

	h.send(t, liveSearchTickMsg{token: tick.token - 1})
	assert.Empty(t, s.LiveTerm(), "stale token is ignored")

	h.send(t, *tick)
	assert.Equal(t, "cat", s.LiveTerm())
	assert.Equal(t, "2 Results", h.m.status)
}

func TestModel_LiveSearchSubmitAndNavigate(t *testing.T) {
	h := newHarness(t)
	s := h.m.session

	h.send(t, tuitest.KeyText('/'))
	h.send(t, tuitest.TypeText("cat")...)
	h.send(t, tuitest.KeyEnter())

	assert.Equal(t, modeNormal, h.m.mode)
	assert.Equal(t, "1/2", h.m.status)

	ps := h.m.newSampler()
	assert.Equal(t, cellCurrent, ps.sample(h.m.pixelAt(10, 1)).kind, "c of gamma cat")
	assert.Equal(t, cellMatch, ps.sample(h.m.pixelAt(9, 5)).kind, "c of zeta cat eta")
	assert.Equal(t, cellPage, ps.sample(h.m.pixelAt(4, 0)).kind)
	assert.Equal(t, cellGap, ps.sample(h.m.pixelAt(0, 0)).kind)

	h.send(t, tuitest.KeyText('n'))
	assert.Equal(t, "2/2", h.m.status)
	m, ok := s.CurrentMatch()
	require.True(t, ok)
	assert.Equal(t, 1, m.Page)

	h.send(t, tuitest.KeyEsc())
	assert.Empty(t, s.LiveTerm())
	assert.Empty(t, s.LiveMatches())
}

func TestModel_BatchSearch(t *testing.T) {
	h := newHarness(t)

	h.send(t, tuitest.KeyText('b'))
	require.Equal(t, modeBatchSearch, h.m.mode)
	h.send(t, tuitest.TypeText("cat;end")...)
	h.send(t, tuitest.KeyEnter())

	assert.Equal(t, "cat:2  |  end:1  ||  Total: 3", h.m.status)
	assert.Equal(t, viewer.SourceBatch, h.m.session.MinimapSource())
	assert.Contains(t, h.status(), "Total: 3")
}

func TestModel_CancelInput(t *testing.T) {
	h := newHarness(t)

	h.send(t, tuitest.KeyText('b'))
	h.send(t, tuitest.TypeText("cat")...)
	h.send(t, tuitest.KeyEsc())

	assert.Equal(t, modeNormal, h.m.mode)
	assert.Empty(t, h.m.session.BatchSummary())
}

func TestModel_MinimapHoverAndClick(t *testing.T) {
	h := newHarness(t)
	s := h.m.session

	h.send(t, tuitest.KeyText('/'))
	h.send(t, tuitest.TypeText("cat")...)
	h.send(t, tuitest.KeyEnter())
	require.Equal(t, viewer.SourceLive, s.MinimapSource())

	// markers sit at rows 0.94 and 2.81 of the 10 row strip
	h.send(t, tuitest.MouseMotion(28, 2))
	assert.Equal(t, "cat (Page 2)", h.m.hint)
	assert.Contains(t, h.status(), "cat (Page 2)")

	h.send(t, tuitest.MouseMotion(28, 6))
	assert.Empty(t, h.m.hint)

	h.send(t, tuitest.MouseClick(28, 2))
	assert.Equal(t, 1, s.CurrentPage())
	assert.Equal(t, "page 2", h.m.status)

	// no marker near row 8: proportional jump to the end
	h.send(t, tuitest.MouseClick(29, 8))
	assert.InDelta(t, 144.0, s.ViewState().ScrollY, 1e-9)
}

func TestModel_DragSelectAndCopy(t *testing.T) {
	h := newHarness(t)
	s := h.m.session

	h.send(t, tuitest.MouseClick(4, 1))
	require.True(t, s.Dragging())
	h.send(t, tuitest.MouseMotion(6, 1))
	h.send(t, tuitest.MouseRelease(8, 1))

	assert.False(t, s.Dragging())
	assert.Equal(t, "gamma", s.Selection().Text())
	assert.Equal(t, "selected 5 chars", h.m.status)

	ps := h.m.newSampler()
	assert.Equal(t, cellSelection, ps.sample(h.m.pixelAt(5, 1)).kind)

	cmd := h.send(t, tuitest.KeyText('y'))
	assert.Nil(t, cmd)
	assert.Equal(t, "gamma", h.clip.text)
	assert.Equal(t, "copied 5 chars", h.m.status)
}

func TestModel_DoubleClickSelectsWord(t *testing.T) {
	h := newHarness(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	h.m.now = func() time.Time { return now }

	h.send(t, tuitest.MouseClick(6, 0), tuitest.MouseRelease(6, 0))
	h.send(t, tuitest.MouseClick(6, 0))

	assert.Equal(t, "alpha", h.m.session.Selection().Text())
	assert.Equal(t, `selected "alpha"`, h.m.status)
	assert.False(t, h.m.session.Dragging())
}

func TestModel_SlowClicksDoNotSelectWord(t *testing.T) {
	h := newHarness(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	h.m.now = func() time.Time { return now }

	h.send(t, tuitest.MouseClick(6, 0), tuitest.MouseRelease(6, 0))
	now = now.Add(time.Second)
	h.send(t, tuitest.MouseClick(6, 0))

	assert.True(t, h.m.session.Dragging(), "second click starts a new drag")
}

func TestModel_CopyFallsBackToTerminal(t *testing.T) {
	h := newHarness(t)
	h.clip.err = errors.New("no clipboard")

	h.send(t, tuitest.KeyText('A'))
	assert.Equal(t, "selected document", h.m.status)

	cmd := h.send(t, tuitest.KeyText('y'))
	assert.NotNil(t, cmd)
	assert.Contains(t, h.m.status, "via terminal")
}

func TestModel_CopyNothing(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(t, tuitest.KeyText('y'))
	assert.Nil(t, cmd)
	assert.Equal(t, "nothing to copy", h.m.status)
}

func TestModel_Reload(t *testing.T) {
	h := newHarness(t)
	s := h.m.session

	h.send(t, tuitest.KeyText('j'))
	doc := textdoc.FromString("fresh\ntext", testDocOptions)
	cmd := h.send(t, documentReloadedMsg{doc: doc, manual: true})

	assert.Nil(t, cmd)
	assert.Equal(t, "reloaded", h.m.status)
	assert.Equal(t, 1, s.PageCount())

	h.send(t, documentReloadedMsg{err: errors.New("boom")})
	assert.True(t, h.m.statusErr)
	assert.Equal(t, 1, s.PageCount(), "failed reload keeps the document")
}

func TestModel_ToggleStripAndHelp(t *testing.T) {
	h := newHarness(t)

	cols, _ := h.m.paneSize()
	assert.Equal(t, 28, cols)

	h.send(t, tuitest.KeyText('m'))
	cols, _ = h.m.paneSize()
	assert.Equal(t, 30, cols)
	assert.InDelta(t, 240.0, h.m.session.ViewState().ViewportWidth, 1e-9)

	h.send(t, tuitest.WindowSize(120, 30), tuitest.KeyText('?'))
	assert.True(t, h.m.showHelp)
	assert.Contains(t, tuitest.StripANSI(h.m.render()), "fit width")
}

func TestModel_Quit(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(t, tuitest.KeyText('q'))
	require.NotNil(t, cmd)
	assert.True(t, h.m.quitting)
}

func TestModel_StartPageAndSearch(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.View.Margins = config.Margins{}
	opts, err := viewer.OptionsFromConfig(&cfg)
	require.NoError(t, err)
	opts.Clipboard = &fakeClipboard{}

	s := viewer.New(zerolog.Nop(), opts)
	s.Open(textdoc.FromString(strings.Join(testLines, "\n"), testDocOptions))

	m := New(s, &cfg, Options{}).WithStartPage(2).WithStartSearch("omega")
	next, _ := m.Update(tuitest.WindowSize(30, 12))
	m = next.(Model)

	// omega is on the last line of page 3; showing it scrolls to the end
	assert.InDelta(t, 144.0, s.ViewState().ScrollY, 1e-9)
	assert.Equal(t, "1/1", m.status)

	next, _ = m.Update(tuitest.WindowSize(30, 12))
	m = next.(Model)
	assert.Equal(t, "1/1", m.status, "start options apply once")
}

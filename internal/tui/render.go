package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/help"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"seehuhn.de/go/geom/vec"

	"github.com/hay-kot/pagelens/internal/core/document"
	"github.com/hay-kot/pagelens/internal/core/search"
	"github.com/hay-kot/pagelens/internal/core/styles"
	"github.com/hay-kot/pagelens/internal/core/viewport"
)

// cellKind is what a pane cell shows.
type cellKind int

const (
	cellGap cellKind = iota
	cellPage
	cellSelection
	cellMatch
	cellCurrent
)

func (k cellKind) style() lipgloss.Style {
	switch k {
	case cellPage:
		return styles.PageStyle
	case cellSelection:
		return styles.SelectionStyle
	case cellMatch:
		return styles.MatchStyle
	case cellCurrent:
		return styles.CurrentMatchStyle
	default:
		return styles.GapStyle
	}
}

func (m Model) render() string {
	cols, rows := m.paneSize()
	pane := m.renderPane(cols, rows)
	strip := m.renderStrip(rows)

	var b strings.Builder
	for r := range rows {
		b.WriteString(pane[r])
		if strip != nil {
			b.WriteString(strip[r])
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.renderStatus())
	b.WriteByte('\n')
	b.WriteString(m.renderBottom())

	content := b.String()
	if m.showHelp {
		content = m.helpOverlay(content)
	}
	return content
}

// paneCell resolves one cell of the document pane.
type paneCell struct {
	kind cellKind
	ch   rune
}

// paneSampler samples the document at the center of each cell.
type paneSampler struct {
	mapper   viewport.Mapper
	glyphs   document.GlyphSource
	overlay  func(page int) (document.Selection, bool)
	matches  map[int][]search.Match
	current  search.Match
	hasMatch bool

	overlays map[int]*document.Selection
}

func (m Model) newSampler() *paneSampler {
	s := m.session
	ps := &paneSampler{
		mapper:   s.Mapper(),
		overlay:  s.SelectionOverlay,
		matches:  map[int][]search.Match{},
		overlays: map[int]*document.Selection{},
	}
	if g, ok := s.Document().(document.GlyphSource); ok {
		ps.glyphs = g
	}
	for _, mt := range s.LiveMatches() {
		ps.matches[mt.Page] = append(ps.matches[mt.Page], mt)
	}
	ps.current, ps.hasMatch = s.CurrentMatch()
	return ps
}

func (ps *paneSampler) selectionFor(page int) *document.Selection {
	if sel, ok := ps.overlays[page]; ok {
		return sel
	}
	var out *document.Selection
	if sel, ok := ps.overlay(page); ok {
		out = &sel
	}
	ps.overlays[page] = out
	return out
}

func (ps *paneSampler) sample(p vec.Vec2) paneCell {
	page, pt, ok := ps.mapper.MapViewportPointToPage(p)
	if !ok || !ps.mapper.PageContains(page, pt) {
		return paneCell{kind: cellGap, ch: ' '}
	}

	c := paneCell{kind: cellPage, ch: ' '}
	if ps.glyphs != nil {
		if r, ok := ps.glyphs.GlyphAt(page, pt); ok && ansi.StringWidth(string(r)) == 1 {
			c.ch = r
		}
	}

	if sel := ps.selectionFor(page); sel != nil && sel.BoundsContain(pt) {
		c.kind = cellSelection
	}

	for _, mt := range ps.matches[page] {
		if !document.RectContains(mt.Rect, pt) {
			continue
		}
		c.kind = cellMatch
		if ps.hasMatch && mt.Page == ps.current.Page && mt.Start == ps.current.Start {
			c.kind = cellCurrent
		}
		break
	}
	return c
}

// renderPane draws the document pane one styled run at a time.
func (m Model) renderPane(cols, rows int) []string {
	ps := m.newSampler()
	out := make([]string, rows)

	var line, run strings.Builder
	for r := range rows {
		line.Reset()
		run.Reset()
		kind := cellGap

		for c := range cols {
			cell := ps.sample(m.pixelAt(c, r))
			if c > 0 && cell.kind != kind {
				line.WriteString(kind.style().Render(run.String()))
				run.Reset()
			}
			kind = cell.kind
			run.WriteRune(cell.ch)
		}
		line.WriteString(kind.style().Render(run.String()))
		out[r] = line.String()
	}
	return out
}

// renderStrip draws the minimap strip, or returns nil when it is hidden.
func (m Model) renderStrip(rows int) []string {
	w := m.stripWidth()
	if w == 0 {
		return nil
	}

	drawPages := m.cfg.Minimap.DrawPagesEnabled()
	out := make([]string, rows)
	for i, row := range m.session.Minimap().Strip(rows) {
		st := styles.MinimapTrackStyle
		if drawPages && row.InPage {
			st = styles.MinimapPageStyle
		}
		if row.InViewport {
			st = styles.MinimapBandStyle
		}

		fill := " "
		switch {
		case row.Markers > 0:
			fill = "━"
			if row.Color != nil {
				st = st.Foreground(row.Color)
			}
		case drawPages && row.PageStart:
			fill = "─"
		}
		out[i] = st.Render(strings.Repeat(fill, w))
	}
	return out
}

func (m Model) zoomLabel() string {
	s := m.session
	pct := fmt.Sprintf("%.0f%%", s.EffectiveZoom()*100)
	switch s.Zoom().Kind() {
	case viewport.ZoomFitWidth:
		return "fit width " + pct
	case viewport.ZoomFitPage:
		return "fit page " + pct
	default:
		return pct
	}
}

func (m Model) renderStatus() string {
	s := m.session

	name := "pagelens"
	if m.opts.Path != "" {
		name = filepath.Base(m.opts.Path)
	}

	parts := []string{}
	if s.HasDocument() {
		parts = append(parts,
			fmt.Sprintf("page %d/%d", s.CurrentPage()+1, s.PageCount()),
			m.zoomLabel(),
		)
	} else {
		parts = append(parts, "no document")
	}
	if term := s.LiveTerm(); term != "" {
		parts = append(parts, fmt.Sprintf("/%s %s", term, s.LiveStatus()))
	}
	if summary := s.BatchSummary(); summary != "" {
		parts = append(parts, summary)
	}

	line := styles.StatusKeyStyle.Render(name) +
		styles.StatusBarStyle.Render(strings.Join(parts, "  │  "))

	switch {
	case m.hint != "":
		line += styles.StatusMutedStyle.Render(" " + m.hint)
	case m.statusErr:
		line += styles.StatusErrorStyle.Render(" " + m.status)
	case m.status != "":
		line += styles.StatusMutedStyle.Render(" " + m.status)
	}

	return fitLine(line, m.width)
}

// fitLine pads or truncates a styled line to exactly width cells.
func fitLine(line string, width int) string {
	w := lipgloss.Width(line)
	if w > width {
		return ansi.Truncate(line, width, "…")
	}
	return line + styles.StatusMutedStyle.Render(strings.Repeat(" ", width-w))
}

func (m Model) renderBottom() string {
	if m.mode != modeNormal {
		return ansi.Truncate(m.input.View(), m.width, "")
	}
	return ansi.Truncate(m.help.View(m.keys), m.width, "…")
}

func (m Model) helpOverlay(content string) string {
	h := help.New()
	h.ShowAll = true
	box := styles.HelpBoxStyle.Render(h.View(m.keys))

	bg := lipgloss.NewLayer(content)
	fg := lipgloss.NewLayer(box)
	fg.X(max((m.width-lipgloss.Width(box))/2, 0)).Y(max((m.height-lipgloss.Height(box))/2, 0)).Z(1)
	return lipgloss.NewCompositor(bg, fg).Render()
}

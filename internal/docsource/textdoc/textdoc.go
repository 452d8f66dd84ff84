// Package textdoc implements document.Document for plain text laid out on a
// monospace grid. Each rune occupies one cell of CharWidth x LineHeight
// points; lines are separated by a zero-width newline character so that
// character indices match the page text exactly.
package textdoc

import (
	"math"
	"sort"
	"strings"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/hay-kot/pagelens/internal/core/document"
)

// Metrics are the grid dimensions in points.
type Metrics struct {
	Margin     float64
	CharWidth  float64
	LineHeight float64
}

// DefaultMetrics returns the 6x12pt grid with a half inch margin.
func DefaultMetrics() Metrics {
	return Metrics{Margin: 36, CharWidth: 6, LineHeight: 12}
}

// Page is one page of laid out text.
type Page struct {
	size    document.Size
	metrics Metrics
	lines   [][]rune
	text    []rune
	starts  []int // index in text of the first rune of each line
}

// NewPage lays out lines on a page of the given size. Lines are not
// wrapped; callers paginate beforehand.
func NewPage(size document.Size, metrics Metrics, lines []string) *Page {
	p := &Page{
		size:    size,
		metrics: metrics,
		lines:   make([][]rune, len(lines)),
		starts:  make([]int, len(lines)),
	}

	idx := 0
	for i, line := range lines {
		r := []rune(line)
		p.lines[i] = r
		p.starts[i] = idx
		p.text = append(p.text, r...)
		idx += len(r)
		if i < len(lines)-1 {
			p.text = append(p.text, '\n')
			idx++
		}
	}
	return p
}

// Size returns the page size in points.
func (p *Page) Size() document.Size { return p.size }

// Text returns the page text with lines joined by newlines.
func (p *Page) Text() string { return string(p.text) }

// Lines returns the laid out lines.
func (p *Page) Lines() []string {
	out := make([]string, len(p.lines))
	for i, l := range p.lines {
		out[i] = string(l)
	}
	return out
}

// locate returns the line and column of text index idx.
func (p *Page) locate(idx int) (line, col int) {
	line = sort.Search(len(p.starts), func(i int) bool { return p.starts[i] > idx }) - 1
	line = max(line, 0)
	return line, idx - p.starts[line]
}

func (p *Page) cellRect(line, col int) rect.Rect {
	m := p.metrics
	x := m.Margin + float64(col)*m.CharWidth
	y := m.Margin + float64(line)*m.LineHeight
	return rect.Rect{LLx: x, LLy: y, URx: x + m.CharWidth, URy: y + m.LineHeight}
}

// charRect returns the box of the character at idx. Newlines have zero
// width and sit just after the last character of their line.
func (p *Page) charRect(idx int) rect.Rect {
	line, col := p.locate(idx)
	r := p.cellRect(line, col)
	if col >= len(p.lines[line]) {
		r.URx = r.LLx
	}
	return r
}

func (p *Page) lineFor(y float64) int {
	m := p.metrics
	return int(math.Floor((y - m.Margin) / m.LineHeight))
}

// caret converts a point into a text index between characters. round
// selects floor or ceil for the column. Points above the text map to 0 and
// points below it to the end of the text.
func (p *Page) caret(pt vec.Vec2, round func(float64) float64) int {
	line := p.lineFor(pt.Y)
	switch {
	case line < 0 || len(p.lines) == 0:
		return 0
	case line >= len(p.lines):
		return len(p.text)
	}
	m := p.metrics
	col := int(round((pt.X - m.Margin) / m.CharWidth))
	col = min(max(col, 0), len(p.lines[line]))
	return p.starts[line] + col
}

func (p *Page) selectionAt(start, length int) document.Selection {
	end := start + length
	if start < 0 || length <= 0 || end > len(p.text) {
		return document.Selection{}
	}

	sel := document.Selection{
		Valid:      true,
		Text:       string(p.text[start:end]),
		StartIndex: start,
		Length:     length,
	}

	firstLine, firstCol := p.locate(start)
	lastLine, lastCol := p.locate(end - 1)
	for line := firstLine; line <= lastLine; line++ {
		from := 0
		if line == firstLine {
			from = firstCol
		}
		to := len(p.lines[line])
		if line == lastLine {
			to = min(lastCol+1, to)
		}
		if to <= from {
			continue
		}
		a := p.cellRect(line, from)
		b := p.cellRect(line, to-1)
		seg := rect.Rect{LLx: a.LLx, LLy: a.LLy, URx: b.URx, URy: b.URy}
		sel.Bounds = append(sel.Bounds, document.RectPolygon(seg))
		sel.BoundingRect = document.RectUnion(sel.BoundingRect, seg)
	}

	if len(sel.Bounds) == 0 {
		sel.BoundingRect = p.charRect(start)
	}
	return sel
}

func (p *Page) between(a, b vec.Vec2) document.Selection {
	la, lb := p.lineFor(a.Y), p.lineFor(b.Y)
	if lb < la || (la == lb && b.X < a.X) {
		a, b = b, a
	}
	start := p.caret(a, math.Floor)
	end := p.caret(b, math.Ceil)
	if end <= start {
		return document.Selection{}
	}
	return p.selectionAt(start, end-start)
}

func (p *Page) glyphAt(pt vec.Vec2) (rune, bool) {
	m := p.metrics
	line := p.lineFor(pt.Y)
	if line < 0 || line >= len(p.lines) || pt.X < m.Margin {
		return 0, false
	}
	col := int(math.Floor((pt.X - m.Margin) / m.CharWidth))
	if col >= len(p.lines[line]) {
		return 0, false
	}
	return p.lines[line][col], true
}

// Document is a sequence of text pages.
type Document struct {
	pages []*Page
}

var (
	_ document.Document    = (*Document)(nil)
	_ document.GlyphSource = (*Document)(nil)
)

// FromPages builds a document from laid out pages.
func FromPages(pages ...*Page) *Document {
	return &Document{pages: pages}
}

// Pages returns the pages of the document.
func (d *Document) Pages() []*Page { return d.pages }

func (d *Document) page(i int) *Page {
	if i < 0 || i >= len(d.pages) {
		return nil
	}
	return d.pages[i]
}

// PageCount implements document.Document.
func (d *Document) PageCount() int { return len(d.pages) }

// PagePointSize implements document.Document.
func (d *Document) PagePointSize(page int) document.Size {
	p := d.page(page)
	if p == nil {
		return document.Size{}
	}
	return p.size
}

// AllText implements document.Document. Pages without text return a valid,
// empty selection.
func (d *Document) AllText(page int) document.Selection {
	p := d.page(page)
	if p == nil {
		return document.Selection{}
	}
	if len(p.text) == 0 {
		return document.Selection{Valid: true}
	}
	return p.selectionAt(0, len(p.text))
}

// SelectionBetween implements document.Document.
func (d *Document) SelectionBetween(page int, a, b vec.Vec2) document.Selection {
	p := d.page(page)
	if p == nil {
		return document.Selection{}
	}
	return p.between(a, b)
}

// SelectionAtIndex implements document.Document.
func (d *Document) SelectionAtIndex(page, start, length int) document.Selection {
	p := d.page(page)
	if p == nil {
		return document.Selection{}
	}
	return p.selectionAt(start, length)
}

// GlyphAt implements document.GlyphSource.
func (d *Document) GlyphAt(page int, pt vec.Vec2) (rune, bool) {
	p := d.page(page)
	if p == nil {
		return 0, false
	}
	return p.glyphAt(pt)
}

// Options control pagination of plain text.
type Options struct {
	Columns      int
	LinesPerPage int
	Metrics      Metrics
}

// DefaultOptions returns 90 columns by 60 lines, which with the default
// metrics yields US Letter pages.
func DefaultOptions() Options {
	return Options{Columns: 90, LinesPerPage: 60, Metrics: DefaultMetrics()}
}

// PageSize returns the page size produced by opts.
func (o Options) PageSize() document.Size {
	m := o.Metrics
	return document.Size{
		Width:  2*m.Margin + float64(o.Columns)*m.CharWidth,
		Height: 2*m.Margin + float64(o.LinesPerPage)*m.LineHeight,
	}
}

// FromString paginates text. Form feeds force a page break, tabs expand to
// four spaces and long lines are hard wrapped at opts.Columns. Empty input
// produces a single blank page.
func FromString(text string, opts Options) *Document {
	opts = opts.Normalized()
	size := opts.PageSize()

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", "    ")
	text = strings.TrimSuffix(text, "\n")

	var pages []*Page
	for _, section := range strings.Split(text, "\f") {
		section = strings.TrimSuffix(strings.TrimPrefix(section, "\n"), "\n")
		lines := Wrap(strings.Split(section, "\n"), opts.Columns)
		for len(lines) > 0 {
			n := min(len(lines), opts.LinesPerPage)
			pages = append(pages, NewPage(size, opts.Metrics, lines[:n]))
			lines = lines[n:]
		}
	}

	if len(pages) == 0 {
		pages = append(pages, NewPage(size, opts.Metrics, nil))
	}
	return FromPages(pages...)
}

// Normalized replaces non-positive fields with their defaults.
func (o Options) Normalized() Options {
	d := DefaultOptions()
	if o.Columns < 1 {
		o.Columns = d.Columns
	}
	if o.LinesPerPage < 1 {
		o.LinesPerPage = d.LinesPerPage
	}
	if o.Metrics.CharWidth <= 0 {
		o.Metrics.CharWidth = d.Metrics.CharWidth
	}
	if o.Metrics.LineHeight <= 0 {
		o.Metrics.LineHeight = d.Metrics.LineHeight
	}
	o.Metrics.Margin = max(o.Metrics.Margin, 0)
	return o
}

// Wrap hard wraps every line longer than columns runes.
func Wrap(lines []string, columns int) []string {
	if columns < 1 {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		r := []rune(line)
		for len(r) > columns {
			out = append(out, string(r[:columns]))
			r = r[columns:]
		}
		out = append(out, string(r))
	}
	return out
}

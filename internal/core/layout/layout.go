// Package layout maintains the vertical stacking of pages in document point
// space, used to turn a (page, local y) location into a fraction of the
// whole document.
package layout

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/hay-kot/pagelens/internal/core/document"
)

// MinPageHeight is the floor applied to reported page heights.
const MinPageHeight = 1.0

// Layout is the stacking of every page of a document. The zero value is an
// empty layout.
type Layout struct {
	Offsets []float64
	Heights []float64
	Spacing float64
	Total   float64
}

// Rebuild stacks pages of the given sizes top to bottom with spacing between
// them. Heights are floored to MinPageHeight and negative spacing is treated
// as zero. It returns false for a document with no pages; the returned
// layout then has no pages and a total of 1.
func Rebuild(sizes []document.Size, spacing float64) (Layout, bool) {
	spacing = max(spacing, 0)

	if len(sizes) == 0 {
		return Layout{Spacing: spacing, Total: MinPageHeight}, false
	}

	l := Layout{
		Offsets: make([]float64, len(sizes)),
		Heights: make([]float64, len(sizes)),
		Spacing: spacing,
	}

	acc := 0.0
	for i, s := range sizes {
		h := max(s.Height, MinPageHeight)
		l.Offsets[i] = acc
		l.Heights[i] = h
		acc += h
		if i < len(sizes)-1 {
			acc += spacing
		}
	}

	l.Total = max(acc, MinPageHeight)
	return l, true
}

// PageCount returns the number of stacked pages.
func (l Layout) PageCount() int { return len(l.Offsets) }

// Offset returns the top of page in document points, or 0 when out of range.
func (l Layout) Offset(page int) float64 {
	if page < 0 || page >= len(l.Offsets) {
		return 0
	}
	return l.Offsets[page]
}

// Height returns the floored height of page, or 0 when out of range.
func (l Layout) Height(page int) float64 {
	if page < 0 || page >= len(l.Heights) {
		return 0
	}
	return l.Heights[page]
}

// Normalize converts a local y on page into a fraction of the total height,
// clamped to [0, 1]. Out of range pages yield 0.
func (l Layout) Normalize(page int, localY float64) float64 {
	if page < 0 || page >= len(l.Offsets) {
		return 0
	}
	total := l.Total
	if total <= 0 {
		total = MinPageHeight
	}
	return clamp01((l.Offsets[page] + localY) / total)
}

// PageAtY returns the page containing the document y coordinate. Points in
// the spacing after a page belong to that page. Returns -1 for an empty
// layout.
func (l Layout) PageAtY(y float64) int {
	n := len(l.Offsets)
	if n == 0 {
		return -1
	}
	// first page whose offset is beyond y, minus one
	i := sort.Search(n, func(i int) bool { return l.Offsets[i] > y })
	return max(i-1, 0)
}

// Model caches a Layout and rebuilds it only when the document reports a
// different page count or page heights, or the spacing changes.
type Model struct {
	log     zerolog.Logger
	layout  Layout
	spacing float64
	valid   bool
}

// NewModel creates an empty layout cache.
func NewModel(log zerolog.Logger) *Model {
	return &Model{log: log}
}

// Sync returns the layout for doc, rebuilding the cached one if needed. The
// boolean is false when doc is nil or has no pages.
func (m *Model) Sync(doc document.Document, spacing float64) (Layout, bool) {
	if doc == nil {
		m.Invalidate()
		return Layout{Total: MinPageHeight}, false
	}

	sizes := document.Sizes(doc)
	if m.valid && m.matches(sizes, spacing) {
		return m.layout, true
	}

	l, ok := Rebuild(sizes, spacing)
	m.layout = l
	m.spacing = spacing
	m.valid = ok

	m.log.Debug().
		Int("pages", l.PageCount()).
		Float64("total", l.Total).
		Msg("page layout rebuilt")

	return l, ok
}

// Layout returns the cached layout without consulting the document.
func (m *Model) Layout() Layout { return m.layout }

// Invalidate drops the cached layout.
func (m *Model) Invalidate() {
	m.layout = Layout{}
	m.valid = false
}

func (m *Model) matches(sizes []document.Size, spacing float64) bool {
	if spacing != m.spacing || len(sizes) != len(m.layout.Heights) {
		return false
	}
	for i, s := range sizes {
		if max(s.Height, MinPageHeight) != m.layout.Heights[i] {
			return false
		}
	}
	return true
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

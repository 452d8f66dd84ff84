// Package minimap projects search matches and the visible viewport onto a
// proportional overview strip.
package minimap

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"seehuhn.de/go/geom/rect"

	"github.com/hay-kot/pagelens/internal/core/layout"
	"github.com/hay-kot/pagelens/internal/core/search"
)

// MinRangeSpan is the smallest height of a valid viewport range.
const MinRangeSpan = 0.001

// Range is the visible part of the document as fractions of its height.
type Range struct {
	Start float64
	End   float64
	Valid bool
}

// ViewportRange converts scroll state into a Range. pageStep is the visible
// height and maxScroll the largest scroll value, both in pixels. A
// non-positive denominator yields an invalid range.
func ViewportRange(scroll, pageStep, maxScroll float64) Range {
	den := pageStep + maxScroll
	if den <= 0 || math.IsNaN(den) {
		return Range{}
	}

	start := clamp01(scroll / den)
	end := clamp01((scroll + pageStep) / den)
	if end < start+MinRangeSpan {
		end = start + MinRangeSpan
	}
	if end > 1 {
		end = 1
		start = min(start, 1-MinRangeSpan)
	}
	return Range{Start: start, End: end, Valid: true}
}

// Contains reports whether the fraction y lies inside the range.
func (r Range) Contains(y float64) bool {
	return r.Valid && y >= r.Start && y <= r.End
}

// Marker is one entry on the strip.
type Marker struct {
	Position float64 // fraction of the document height
	Color    color.Color
	Label    string
	Page     int
	Rect     rect.Rect // page points; may be empty when unresolved
}

// MarkersFromMatches turns search matches into markers labeled by term.
func MarkersFromMatches(matches []search.Match, c color.Color) []Marker {
	if len(matches) == 0 {
		return nil
	}
	out := make([]Marker, len(matches))
	for i, m := range matches {
		out[i] = Marker{
			Position: m.Position,
			Color:    c,
			Label:    m.Term,
			Page:     m.Page,
			Rect:     m.Rect,
		}
	}
	return out
}

// Band is the extent of one page on the strip.
type Band struct {
	Start float64
	End   float64
}

// Projector holds the state drawn by the strip.
type Projector struct {
	viewport Range
	markers  []Marker
	bands    []Band
}

// New creates an empty Projector.
func New() *Projector {
	return &Projector{}
}

// SetViewportRange sets the highlighted part of the strip.
func (p *Projector) SetViewportRange(r Range) { p.viewport = r }

// ViewportRange returns the highlighted part of the strip.
func (p *Projector) ViewportRange() Range { return p.viewport }

// SetMarkers replaces the markers, ordered by position. Markers with equal
// positions keep their given order.
func (p *Projector) SetMarkers(markers []Marker) {
	p.markers = append([]Marker(nil), markers...)
	sort.SliceStable(p.markers, func(i, j int) bool {
		return p.markers[i].Position < p.markers[j].Position
	})
}

// Markers returns the markers in position order.
func (p *Projector) Markers() []Marker { return p.markers }

// ClearMarkers removes all markers.
func (p *Projector) ClearMarkers() { p.markers = nil }

// SetPageHeights derives page bands from l.
func (p *Projector) SetPageHeights(l layout.Layout) {
	p.bands = p.bands[:0]
	n := l.PageCount()
	if n == 0 {
		return
	}
	total := l.Total
	if total <= 0 {
		total = layout.MinPageHeight
	}
	for i := range n {
		start := l.Offset(i) / total
		p.bands = append(p.bands, Band{
			Start: clamp01(start),
			End:   clamp01(start + l.Height(i)/total),
		})
	}
}

// Bands returns the page bands.
func (p *Projector) Bands() []Band { return p.bands }

// Clear resets markers, bands and the viewport range.
func (p *Projector) Clear() {
	p.viewport = Range{}
	p.markers = nil
	p.bands = nil
}

// MarkerY returns the y of m on a strip drawn from top with the given height.
func MarkerY(m Marker, top, height float64) float64 {
	return top + m.Position*height
}

// MarkerNear returns the marker closest to y within threshold. When two
// markers are equally close the later one wins.
func (p *Projector) MarkerNear(y, threshold, top, height float64) (Marker, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, m := range p.markers {
		d := math.Abs(MarkerY(m, top, height) - y)
		if d <= threshold && d <= bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Marker{}, false
	}
	return p.markers[best], true
}

// Hint is the hover text for m.
func Hint(m Marker) string {
	return fmt.Sprintf("%s (Page %d)", m.Label, m.Page+1)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

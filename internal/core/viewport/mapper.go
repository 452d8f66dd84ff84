// Package viewport maps between viewport pixels and per-page points for a
// vertically stacked, zoomed page layout.
//
// Coordinate spaces:
//
//   - viewport: pixels relative to the top-left of the visible area
//   - content: viewport + scroll offset
//   - page: points relative to the top-left of one page
//
// Every page carries its own scale, so pages of different sizes stack
// correctly in fitted zoom modes.
package viewport

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/hay-kot/pagelens/internal/core/document"
)

// Mapper converts coordinates for one ViewState. It is cheap to build and
// should be rebuilt whenever the state or the page sizes change.
type Mapper struct {
	sizes  []document.Size
	state  ViewState
	scales []float64
	tops   []float64 // page tops in content pixels, below the top margin
	height float64   // content height including margins
	width  float64   // content width including margins
}

// New precomputes per-page scales and offsets for the given page sizes.
func New(sizes []document.Size, state ViewState) Mapper {
	m := Mapper{
		sizes:  sizes,
		state:  state,
		scales: make([]float64, len(sizes)),
		tops:   make([]float64, len(sizes)),
	}

	spacing := state.spacing()
	acc := 0.0
	widest := 0.0
	for i, size := range sizes {
		s := m.computeScale(size)
		m.scales[i] = s
		m.tops[i] = acc
		acc += size.Height * s
		if i < len(sizes)-1 {
			acc += spacing
		}
		widest = max(widest, size.Width*s)
	}

	mg := state.Margins
	m.height = mg.Top + acc + mg.Bottom
	m.width = mg.Left + widest + mg.Right
	return m
}

// State returns the view state the mapper was built for.
func (m Mapper) State() ViewState { return m.state }

// PageCount returns the number of pages.
func (m Mapper) PageCount() int { return len(m.sizes) }

func (m Mapper) valid(page int) bool {
	return page >= 0 && page < len(m.sizes)
}

func (m Mapper) computeScale(size document.Size) float64 {
	st := m.state
	availW := st.ViewportWidth - st.Margins.Left - st.Margins.Right
	availH := st.ViewportHeight - st.Margins.Top - st.Margins.Bottom

	switch st.Zoom.Kind() {
	case ZoomFitWidth:
		if availW <= 0 || size.Width <= 0 {
			return 1
		}
		return availW / size.Width
	case ZoomFitPage:
		if availW <= 0 || availH <= 0 || size.Width <= 0 || size.Height <= 0 {
			return 1
		}
		return min(availW/size.Width, availH/size.Height)
	default:
		f := st.Zoom.Factor()
		if f <= 0 {
			return 1
		}
		return f * st.deviceUnits()
	}
}

// ScaleForPage returns pixels per point for page, or 1 when out of range.
func (m Mapper) ScaleForPage(page int) float64 {
	if !m.valid(page) {
		return 1
	}
	return m.scales[page]
}

// PageTopOffsetPixels returns the distance from the top of the page stack
// to the top of page, in content pixels. Margins are not included.
func (m Mapper) PageTopOffsetPixels(page int) float64 {
	if !m.valid(page) {
		return 0
	}
	return m.tops[page]
}

// HorizontalCenteringOffset returns the horizontal inset that centers page
// when it is narrower than the viewport.
func (m Mapper) HorizontalCenteringOffset(page int) float64 {
	if !m.valid(page) {
		return 0
	}
	st := m.state
	used := m.sizes[page].Width*m.scales[page] + st.Margins.Left + st.Margins.Right
	return max(0, (st.ViewportWidth-used)/2)
}

// pageOrigin returns the viewport position of the top-left corner of page.
func (m Mapper) pageOrigin(page int) vec.Vec2 {
	st := m.state
	return vec.Vec2{
		X: st.Margins.Left + m.HorizontalCenteringOffset(page) - st.ScrollX,
		Y: st.Margins.Top + m.tops[page] - st.ScrollY,
	}
}

// ViewportToPagePoint converts a viewport pixel into points on page.
// Points outside the page are extrapolated. Out of range pages yield the
// zero point.
func (m Mapper) ViewportToPagePoint(page int, p vec.Vec2) vec.Vec2 {
	if !m.valid(page) {
		return vec.Vec2{}
	}
	s := m.scales[page]
	return p.Sub(m.pageOrigin(page)).Mul(1 / s)
}

// PagePointToViewport converts points on page into a viewport pixel.
func (m Mapper) PagePointToViewport(page int, q vec.Vec2) vec.Vec2 {
	if !m.valid(page) {
		return vec.Vec2{}
	}
	return q.Mul(m.scales[page]).Add(m.pageOrigin(page))
}

// PageRectToViewportRect converts a rectangle in page points into viewport
// pixels.
func (m Mapper) PageRectToViewportRect(page int, r rect.Rect) rect.Rect {
	if !m.valid(page) {
		return rect.Rect{}
	}
	a := m.PagePointToViewport(page, vec.Vec2{X: r.LLx, Y: r.LLy})
	b := m.PagePointToViewport(page, vec.Vec2{X: r.URx, Y: r.URy})
	return rect.Rect{LLx: a.X, LLy: a.Y, URx: b.X, URy: b.Y}
}

// PageAt returns the page under a viewport point. Points in the spacing
// below a page belong to that page, points above the first page to page 0
// and points below the last page to the last page. Returns -1 when there
// are no pages.
func (m Mapper) PageAt(p vec.Vec2) int {
	n := len(m.tops)
	if n == 0 {
		return -1
	}
	y := p.Y + m.state.ScrollY - m.state.Margins.Top
	page := 0
	for i := 1; i < n; i++ {
		if m.tops[i] > y {
			break
		}
		page = i
	}
	return page
}

// MapViewportPointToPage returns the page under p together with p in that
// page's points. ok is false when there are no pages.
func (m Mapper) MapViewportPointToPage(p vec.Vec2) (page int, pt vec.Vec2, ok bool) {
	page = m.PageAt(p)
	if page < 0 {
		return -1, vec.Vec2{}, false
	}
	return page, m.ViewportToPagePoint(page, p), true
}

// PageContains reports whether a page point lies on the page.
func (m Mapper) PageContains(page int, pt vec.Vec2) bool {
	if !m.valid(page) {
		return false
	}
	size := m.sizes[page]
	return pt.X >= 0 && pt.Y >= 0 && pt.X < size.Width && pt.Y < size.Height
}

// PageYForViewportY returns the page under a viewport y and the y position
// on that page in points, clamped to the page height.
func (m Mapper) PageYForViewportY(y float64) (page int, localY float64, ok bool) {
	page = m.PageAt(vec.Vec2{Y: y})
	if page < 0 {
		return -1, 0, false
	}
	local := (y + m.state.ScrollY - m.state.Margins.Top - m.tops[page]) / m.scales[page]
	return page, min(max(local, 0), m.sizes[page].Height), true
}

// ContentSize returns the size of the scrollable content in pixels.
func (m Mapper) ContentSize() (width, height float64) {
	return m.width, m.height
}

// ScrollRange describes the scrollable extent of the view.
type ScrollRange struct {
	MaxX     float64
	MaxY     float64
	PageStep float64
}

// ScrollRange returns the maximum scroll offsets and the vertical page step.
func (m Mapper) ScrollRange() ScrollRange {
	st := m.state
	return ScrollRange{
		MaxX:     max(0, m.width-st.ViewportWidth),
		MaxY:     max(0, m.height-st.ViewportHeight),
		PageStep: max(0, st.ViewportHeight),
	}
}

// ClampScroll limits a scroll position to the scrollable extent.
func (m Mapper) ClampScroll(x, y float64) (float64, float64) {
	r := m.ScrollRange()
	return min(max(x, 0), r.MaxX), min(max(y, 0), r.MaxY)
}

// ScrollToPage returns the scroll position that puts the page point at the
// top of the viewport. The horizontal position is left unchanged.
func (m Mapper) ScrollToPage(page int, pt vec.Vec2) (x, y float64) {
	if !m.valid(page) {
		return m.state.ScrollX, m.state.ScrollY
	}
	y = m.state.Margins.Top + m.tops[page] + pt.Y*m.scales[page]
	return m.ClampScroll(m.state.ScrollX, y)
}

// EnsureVisible returns the smallest scroll change that brings r on page
// into the viewport with margin pixels to spare. Rects larger than the
// viewport are aligned to their top-left corner.
func (m Mapper) EnsureVisible(page int, r rect.Rect, margin float64) (x, y float64) {
	st := m.state
	if !m.valid(page) {
		return st.ScrollX, st.ScrollY
	}

	vr := m.PageRectToViewportRect(page, r)
	x, y = st.ScrollX, st.ScrollY

	switch {
	case vr.LLy < margin:
		y -= margin - vr.LLy
	case vr.URy > st.ViewportHeight-margin:
		delta := vr.URy - (st.ViewportHeight - margin)
		// never push the top of the rect above the margin
		delta = min(delta, vr.LLy-margin)
		y += delta
	}

	switch {
	case vr.LLx < margin:
		x -= margin - vr.LLx
	case vr.URx > st.ViewportWidth-margin:
		delta := vr.URx - (st.ViewportWidth - margin)
		delta = min(delta, vr.LLx-margin)
		x += delta
	}

	return m.ClampScroll(x, y)
}

// CurrentPage returns the page under the vertical center of the viewport.
func (m Mapper) CurrentPage() int {
	return m.PageAt(vec.Vec2{Y: m.state.ViewportHeight / 2})
}

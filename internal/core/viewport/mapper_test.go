package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/hay-kot/pagelens/internal/core/document"
)

const tol = 1e-9

var mixedPages = []document.Size{
	{Width: 612, Height: 792},
	{Width: 842, Height: 595}, // landscape
	{Width: 300, Height: 400},
}

func baseState() ViewState {
	return ViewState{
		Zoom:                FitWidth(),
		ViewportWidth:       1000,
		ViewportHeight:      800,
		Margins:             Margins{Left: 10, Top: 20, Right: 10, Bottom: 20},
		PageSpacing:         8,
		DeviceUnitsPerPoint: 1,
	}
}

func TestScaleForPage(t *testing.T) {
	tests := []struct {
		name  string
		zoom  Zoom
		state func(s *ViewState)
		page  int
		want  float64
	}{
		{name: "fit width", zoom: FitWidth(), page: 0, want: 980.0 / 612.0},
		{name: "fit width landscape", zoom: FitWidth(), page: 1, want: 980.0 / 842.0},
		{name: "fit page limited by height", zoom: FitPage(), page: 0, want: 760.0 / 792.0},
		{name: "fit page limited by width", zoom: FitPage(), page: 1, want: min(980.0/842.0, 760.0/595.0)},
		{name: "custom", zoom: Custom(2), page: 2, want: 2},
		{
			name:  "custom with device units",
			zoom:  Custom(1.5),
			state: func(s *ViewState) { s.DeviceUnitsPerPoint = 96.0 / 72.0 },
			page:  0,
			want:  1.5 * 96.0 / 72.0,
		},
		{name: "custom non-positive factor", zoom: Custom(0), page: 0, want: 1},
		{
			name:  "fit width without room",
			zoom:  FitWidth(),
			state: func(s *ViewState) { s.ViewportWidth = 15 },
			page:  0,
			want:  1,
		},
		{name: "out of range page", zoom: FitWidth(), page: 9, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := baseState()
			st.Zoom = tt.zoom
			if tt.state != nil {
				tt.state(&st)
			}
			m := New(mixedPages, st)
			assert.InDelta(t, tt.want, m.ScaleForPage(tt.page), tol)
		})
	}
}

func TestPageTopOffsetPixels_UsesPerPageScale(t *testing.T) {
	st := baseState()
	m := New(mixedPages, st)

	s0 := 980.0 / 612.0
	s1 := 980.0 / 842.0
	assert.InDelta(t, 0.0, m.PageTopOffsetPixels(0), tol)
	assert.InDelta(t, 792*s0+8, m.PageTopOffsetPixels(1), tol)
	assert.InDelta(t, 792*s0+8+595*s1+8, m.PageTopOffsetPixels(2), tol)
	assert.InDelta(t, 0.0, m.PageTopOffsetPixels(-1), tol)
}

func TestHorizontalCenteringOffset(t *testing.T) {
	st := baseState()
	st.Zoom = Custom(1)
	m := New(mixedPages, st)

	assert.InDelta(t, (1000-(612+20))/2.0, m.HorizontalCenteringOffset(0), tol)
	assert.InDelta(t, (1000-(842+20))/2.0, m.HorizontalCenteringOffset(1), tol)

	st.Zoom = Custom(3)
	m = New(mixedPages, st)
	assert.InDelta(t, 0.0, m.HorizontalCenteringOffset(0), tol, "wider than viewport")
}

func TestRoundTrip(t *testing.T) {
	zooms := []Zoom{FitWidth(), FitPage(), Custom(0.75), Custom(2.5)}
	points := []vec.Vec2{{X: 0, Y: 0}, {X: 123.5, Y: 456.25}, {X: -40, Y: 9000}, {X: 999, Y: 1}}

	for _, z := range zooms {
		st := baseState()
		st.Zoom = z
		st.ScrollX = 37
		st.ScrollY = 1234.5
		m := New(mixedPages, st)

		for page := range mixedPages {
			for _, p := range points {
				got := m.PagePointToViewport(page, m.ViewportToPagePoint(page, p))
				assert.InDelta(t, p.X, got.X, 1e-6, "zoom=%s page=%d", z, page)
				assert.InDelta(t, p.Y, got.Y, 1e-6, "zoom=%s page=%d", z, page)
			}
		}
	}
}

func TestViewportToPagePoint(t *testing.T) {
	st := baseState()
	st.Zoom = Custom(2)
	st.ScrollY = 100
	m := New(mixedPages, st)

	center := m.HorizontalCenteringOffset(0)
	// top-left corner of page 0 sits at (margin+center, margin-scroll)
	origin := vec.Vec2{X: 10 + center, Y: 20 - 100}
	got := m.ViewportToPagePoint(0, origin.Add(vec.Vec2{X: 20, Y: 40}))
	assert.InDelta(t, 10.0, got.X, tol)
	assert.InDelta(t, 20.0, got.Y, tol)

	assert.Equal(t, vec.Vec2{}, m.ViewportToPagePoint(5, origin))
}

func TestPageRectToViewportRect(t *testing.T) {
	st := baseState()
	st.Zoom = Custom(1)
	m := New(mixedPages, st)

	r := m.PageRectToViewportRect(0, rect.Rect{LLx: 0, LLy: 0, URx: 100, URy: 50})
	center := m.HorizontalCenteringOffset(0)
	assert.InDelta(t, 10+center, r.LLx, tol)
	assert.InDelta(t, 20.0, r.LLy, tol)
	assert.InDelta(t, 100.0, r.URx-r.LLx, tol)
	assert.InDelta(t, 50.0, r.URy-r.LLy, tol)
}

func TestPageAt(t *testing.T) {
	st := baseState()
	st.Zoom = Custom(1)
	m := New(mixedPages, st)

	tests := []struct {
		name string
		y    float64
		want int
	}{
		{"above first page", 0, 0},
		{"inside first page", 100, 0},
		{"spacing after first page", 20 + 792 + 4, 0},
		{"top of second page", 20 + 792 + 8, 1},
		{"third page", 20 + 792 + 8 + 595 + 8 + 1, 2},
		{"below everything", 1e6, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.PageAt(vec.Vec2{X: 50, Y: tt.y}))
		})
	}
}

func TestNoPages(t *testing.T) {
	m := New(nil, baseState())

	assert.Equal(t, -1, m.PageAt(vec.Vec2{X: 1, Y: 1}))
	_, _, ok := m.MapViewportPointToPage(vec.Vec2{X: 1, Y: 1})
	assert.False(t, ok)
	assert.InDelta(t, 1.0, m.ScaleForPage(0), tol)
	assert.Equal(t, ScrollRange{PageStep: 800}, m.ScrollRange())
	assert.Equal(t, -1, m.CurrentPage())
}

func TestMapViewportPointToPage(t *testing.T) {
	st := baseState()
	st.Zoom = Custom(1)
	m := New(mixedPages, st)

	center := m.HorizontalCenteringOffset(1)
	p := vec.Vec2{X: 10 + center + 5, Y: 20 + 792 + 8 + 7}
	page, pt, ok := m.MapViewportPointToPage(p)
	require.True(t, ok)
	assert.Equal(t, 1, page)
	assert.InDelta(t, 5.0, pt.X, tol)
	assert.InDelta(t, 7.0, pt.Y, tol)
	assert.True(t, m.PageContains(page, pt))
	assert.False(t, m.PageContains(page, vec.Vec2{X: -1, Y: 7}))
}

func TestScrollRange(t *testing.T) {
	st := baseState()
	st.Zoom = Custom(1)
	m := New(mixedPages, st)

	w, h := m.ContentSize()
	assert.InDelta(t, 10+842+10, w, tol)
	assert.InDelta(t, 20+792+8+595+8+400+20, h, tol)

	r := m.ScrollRange()
	assert.InDelta(t, h-800, r.MaxY, tol)
	assert.InDelta(t, 0.0, r.MaxX, tol)
	assert.InDelta(t, 800.0, r.PageStep, tol)

	x, y := m.ClampScroll(-5, 1e9)
	assert.InDelta(t, 0.0, x, tol)
	assert.InDelta(t, r.MaxY, y, tol)
}

func TestScrollToPage(t *testing.T) {
	st := baseState()
	st.Zoom = Custom(1)
	m := New(mixedPages, st)

	_, y := m.ScrollToPage(1, vec.Vec2{X: 0, Y: 10})
	assert.InDelta(t, 20+792+8+10, y, tol)

	_, y = m.ScrollToPage(7, vec.Vec2{})
	assert.InDelta(t, 0.0, y, tol, "invalid page leaves scroll unchanged")
}

func TestEnsureVisible(t *testing.T) {
	st := baseState()
	st.Zoom = Custom(1)
	m := New(mixedPages, st)

	// rect near the bottom of page 1 is below the viewport
	r := rect.Rect{LLx: 10, LLy: 500, URx: 60, URy: 520}
	_, y := m.EnsureVisible(1, r, 24)

	moved := m.State()
	moved.ScrollY = y
	vr := New(mixedPages, moved).PageRectToViewportRect(1, r)
	assert.InDelta(t, 800-24, vr.URy, tol)

	// already visible rect does not scroll
	r = rect.Rect{LLx: 10, LLy: 100, URx: 60, URy: 120}
	_, y = m.EnsureVisible(0, r, 24)
	assert.InDelta(t, 0.0, y, tol)

	// rect above the viewport scrolls up to leave the margin
	scrolled := st
	scrolled.ScrollY = 600
	m = New(mixedPages, scrolled)
	_, y = m.EnsureVisible(0, rect.Rect{LLx: 0, LLy: 100, URx: 10, URy: 110}, 24)
	assert.InDelta(t, 20+100-24, y, tol)
}

func TestPageYForViewportY(t *testing.T) {
	st := baseState()
	st.Zoom = Custom(2)
	m := New(mixedPages, st)

	page, local, ok := m.PageYForViewportY(20 + 100)
	require.True(t, ok)
	assert.Equal(t, 0, page)
	assert.InDelta(t, 50.0, local, tol)
}

func TestCurrentPage(t *testing.T) {
	st := baseState()
	st.Zoom = Custom(1)
	st.ScrollY = 20 + 792 + 8 + 100
	m := New(mixedPages, st)

	assert.Equal(t, 1, m.CurrentPage())
}

package minimap

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/rect"

	"github.com/hay-kot/pagelens/internal/core/document"
	"github.com/hay-kot/pagelens/internal/core/layout"
	"github.com/hay-kot/pagelens/internal/core/search"
)

var gold = color.RGBA{R: 255, G: 215, B: 0, A: 180}

func TestViewportRange(t *testing.T) {
	tests := []struct {
		name   string
		scroll float64
		step   float64
		max    float64
		want   Range
	}{
		{
			name:   "top",
			scroll: 0, step: 100, max: 300,
			want: Range{Start: 0, End: 0.25, Valid: true},
		},
		{
			name:   "middle",
			scroll: 100, step: 100, max: 300,
			want: Range{Start: 0.25, End: 0.5, Valid: true},
		},
		{
			name:   "bottom",
			scroll: 300, step: 100, max: 300,
			want: Range{Start: 0.75, End: 1, Valid: true},
		},
		{
			name:   "everything visible",
			scroll: 0, step: 100, max: 0,
			want: Range{Start: 0, End: 1, Valid: true},
		},
		{
			name:   "zero denominator",
			scroll: 0, step: 0, max: 0,
			want: Range{},
		},
		{
			name:   "negative denominator",
			scroll: 0, step: -10, max: 0,
			want: Range{},
		},
		{
			name:   "scroll past end clamps",
			scroll: 1000, step: 100, max: 300,
			want: Range{Start: 1 - MinRangeSpan, End: 1, Valid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ViewportRange(tt.scroll, tt.step, tt.max)
			assert.Equal(t, tt.want.Valid, got.Valid)
			assert.InDelta(t, tt.want.Start, got.Start, 1e-9)
			assert.InDelta(t, tt.want.End, got.End, 1e-9)
		})
	}
}

func TestViewportRange_MinimumSpan(t *testing.T) {
	got := ViewportRange(500, 0.0001, 100000)
	require.True(t, got.Valid)
	assert.InDelta(t, MinRangeSpan, got.End-got.Start, 1e-12)
}

func TestProjector_SetMarkersStableSort(t *testing.T) {
	p := New()
	p.SetMarkers([]Marker{
		{Position: 0.5, Label: "b"},
		{Position: 0.1, Label: "a"},
		{Position: 0.5, Label: "c"},
	})

	labels := []string{}
	for _, m := range p.Markers() {
		labels = append(labels, m.Label)
	}
	assert.Equal(t, []string{"a", "b", "c"}, labels)
}

func TestProjector_MarkerNear(t *testing.T) {
	p := New()
	p.SetMarkers([]Marker{
		{Position: 0.10, Label: "first"},
		{Position: 0.20, Label: "second"},
		{Position: 0.30, Label: "third"},
	})

	tests := []struct {
		name      string
		y         float64
		threshold float64
		want      string
		found     bool
	}{
		{name: "exact", y: 150, threshold: 6, want: "first", found: true},
		{name: "closest wins", y: 195, threshold: 8, want: "second", found: true},
		{name: "tie goes to later", y: 175, threshold: 25, want: "second", found: true},
		{name: "second tie", y: 225, threshold: 25, want: "third", found: true},
		{name: "outside threshold", y: 170, threshold: 6, found: false},
		{name: "above strip", y: 0, threshold: 6, found: false},
	}

	// strip drawn from y=100 with height 500: markers at 150, 200, 250
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := p.MarkerNear(tt.y, tt.threshold, 100, 500)
			require.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.want, m.Label)
			}
		})
	}
}

func TestMarkerY(t *testing.T) {
	assert.InDelta(t, 150.0, MarkerY(Marker{Position: 0.25}, 100, 200), 1e-9)
}

func TestHint(t *testing.T) {
	assert.Equal(t, "cat (Page 3)", Hint(Marker{Label: "cat", Page: 2}))
}

func TestMarkersFromMatches(t *testing.T) {
	r := rect.Rect{LLx: 1, LLy: 2, URx: 3, URy: 4}
	got := MarkersFromMatches([]search.Match{
		{Term: "cat", Page: 1, Position: 0.6, Rect: r},
	}, gold)

	require.Len(t, got, 1)
	assert.Equal(t, Marker{Position: 0.6, Color: gold, Label: "cat", Page: 1, Rect: r}, got[0])
	assert.Nil(t, MarkersFromMatches(nil, gold))
}

func TestProjector_Clear(t *testing.T) {
	p := New()
	l, _ := layout.Rebuild([]document.Size{{Width: 1, Height: 100}}, 0)
	p.SetPageHeights(l)
	p.SetMarkers([]Marker{{Position: 0.5}})
	p.SetViewportRange(Range{Start: 0, End: 1, Valid: true})

	p.Clear()

	assert.Empty(t, p.Markers())
	assert.Empty(t, p.Bands())
	assert.False(t, p.ViewportRange().Valid)
}

func TestProjector_Strip(t *testing.T) {
	// two pages of 100 with 100 spacing: bands [0, 1/3) and [2/3, 1]
	l, ok := layout.Rebuild([]document.Size{{Width: 1, Height: 100}, {Width: 1, Height: 100}}, 100)
	require.True(t, ok)

	p := New()
	p.SetPageHeights(l)
	p.SetViewportRange(Range{Start: 0, End: 1.0 / 6, Valid: true})
	p.SetMarkers([]Marker{
		{Position: 0.05, Color: gold, Label: "a"},
		{Position: 0.9, Color: gold, Label: "b"},
		{Position: 1, Color: gold, Label: "c"},
	})

	rows := p.Strip(6)
	require.Len(t, rows, 6)

	inPage := make([]bool, len(rows))
	inView := make([]bool, len(rows))
	marks := make([]int, len(rows))
	for i, r := range rows {
		inPage[i] = r.InPage
		inView[i] = r.InViewport
		marks[i] = r.Markers
	}

	assert.Equal(t, []bool{true, true, false, false, true, true}, inPage)
	assert.Equal(t, []bool{true, false, false, false, false, false}, inView)
	assert.Equal(t, []int{1, 0, 0, 0, 0, 2}, marks)
	assert.True(t, rows[4].PageStart)
	assert.Equal(t, "c", rows[5].Label)
	assert.InDelta(t, 1.0, rows[5].End, 1e-12)
}

func TestProjector_StripEmpty(t *testing.T) {
	assert.Nil(t, New().Strip(0))
	assert.Len(t, New().Strip(3), 3)
}

package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func TestRectHelpers(t *testing.T) {
	r := rect.Rect{LLx: 10, LLy: 20, URx: 30, URy: 60}

	assert.InDelta(t, 20.0, RectWidth(r), 1e-9)
	assert.InDelta(t, 40.0, RectHeight(r), 1e-9)
	assert.False(t, RectEmpty(r))
	assert.Equal(t, vec.Vec2{X: 20, Y: 40}, RectCenter(r))
	assert.True(t, RectContains(r, vec.Vec2{X: 10, Y: 20}))
	assert.False(t, RectContains(r, vec.Vec2{X: 30, Y: 20}))
	assert.True(t, RectEmpty(rect.Rect{}))
}

func TestRectUnion(t *testing.T) {
	a := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}
	b := rect.Rect{LLx: 5, LLy: -5, URx: 20, URy: 8}

	assert.Equal(t, rect.Rect{LLx: 0, LLy: -5, URx: 20, URy: 10}, RectUnion(a, b))
	assert.Equal(t, a, RectUnion(a, rect.Rect{}))
	assert.Equal(t, b, RectUnion(rect.Rect{}, b))
}

func TestPolygonContains(t *testing.T) {
	square := RectPolygon(rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10})
	triangle := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}

	tests := []struct {
		name string
		poly []vec.Vec2
		p    vec.Vec2
		want bool
	}{
		{"square center", square, vec.Vec2{X: 5, Y: 5}, true},
		{"square outside", square, vec.Vec2{X: 11, Y: 5}, false},
		{"triangle inside", triangle, vec.Vec2{X: 2, Y: 2}, true},
		{"triangle beyond hypotenuse", triangle, vec.Vec2{X: 8, Y: 8}, false},
		{"empty polygon", nil, vec.Vec2{X: 1, Y: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PolygonContains(tt.poly, tt.p))
		})
	}
}

func TestSelection_BoundsContain(t *testing.T) {
	sel := Selection{
		Valid:  true,
		Text:   "ab",
		Bounds: [][]vec.Vec2{RectPolygon(rect.Rect{LLx: 0, LLy: 0, URx: 12, URy: 12})},
	}
	assert.True(t, sel.BoundsContain(vec.Vec2{X: 6, Y: 6}))
	assert.False(t, sel.BoundsContain(vec.Vec2{X: 13, Y: 6}))

	sel.Valid = false
	assert.False(t, sel.BoundsContain(vec.Vec2{X: 6, Y: 6}))
	assert.True(t, sel.Empty())
}

type fixedDoc struct{ sizes []Size }

func (d fixedDoc) PageCount() int { return len(d.sizes) }
func (d fixedDoc) PagePointSize(page int) Size {
	if page < 0 || page >= len(d.sizes) {
		return Size{}
	}
	return d.sizes[page]
}
func (fixedDoc) AllText(int) Selection { return Selection{} }
func (fixedDoc) SelectionBetween(int, vec.Vec2, vec.Vec2) Selection { return Selection{} }
func (fixedDoc) SelectionAtIndex(int, int, int) Selection { return Selection{} }

func TestSizes(t *testing.T) {
	doc := fixedDoc{sizes: []Size{{Width: 100, Height: 200}, {Width: 50, Height: 50}}}
	assert.Equal(t, doc.sizes, Sizes(doc))
	assert.Nil(t, Sizes(nil))
}

// Package document defines the interface the viewing core consumes from a
// paginated document source, and the value types exchanged across it.
//
// Page-point space has its origin at the top-left corner of a page with y
// growing downward. Rectangles use rect.Rect as a min/max box: (LLx, LLy) is
// the minimum corner and (URx, URy) the maximum corner.
package document

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Size is a page size in points.
type Size struct {
	Width  float64
	Height float64
}

// Selection is a contiguous run of characters on one page, as resolved by a
// Document. Character indices count runes in the page text.
type Selection struct {
	Valid        bool
	Text         string
	StartIndex   int
	Length       int
	Bounds       [][]vec.Vec2 // one polygon per visual line, in page points
	BoundingRect rect.Rect
}

// Empty reports whether the selection carries no text.
func (s Selection) Empty() bool {
	return !s.Valid || s.Text == ""
}

// Document is the external page source.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int
	// PagePointSize returns the size of page in points. Out of range pages
	// return the zero Size.
	PagePointSize(page int) Size
	// AllText returns a selection covering every character of page.
	AllText(page int) Selection
	// SelectionBetween returns the characters between two page points in
	// reading order.
	SelectionBetween(page int, a, b vec.Vec2) Selection
	// SelectionAtIndex returns length characters starting at start.
	SelectionAtIndex(page, start, length int) Selection
}

// GlyphSource is implemented by documents that can report the character
// painted at a page point.
type GlyphSource interface {
	GlyphAt(page int, p vec.Vec2) (rune, bool)
}

// Sizes collects the point size of every page of doc. A nil doc yields nil.
func Sizes(doc Document) []Size {
	if doc == nil {
		return nil
	}
	n := doc.PageCount()
	sizes := make([]Size, n)
	for i := range n {
		sizes[i] = doc.PagePointSize(i)
	}
	return sizes
}

// RectWidth returns the width of r.
func RectWidth(r rect.Rect) float64 { return r.URx - r.LLx }

// RectHeight returns the height of r.
func RectHeight(r rect.Rect) float64 { return r.URy - r.LLy }

// RectEmpty reports whether r has no area.
func RectEmpty(r rect.Rect) bool {
	return r.URx <= r.LLx || r.URy <= r.LLy
}

// RectCenter returns the center point of r.
func RectCenter(r rect.Rect) vec.Vec2 {
	return vec.Vec2{X: (r.LLx + r.URx) / 2, Y: (r.LLy + r.URy) / 2}
}

// RectContains reports whether p lies inside r, including its lower edges.
func RectContains(r rect.Rect, p vec.Vec2) bool {
	return p.X >= r.LLx && p.X < r.URx && p.Y >= r.LLy && p.Y < r.URy
}

// RectUnion returns the smallest rectangle covering a and b. Empty inputs
// are ignored.
func RectUnion(a, b rect.Rect) rect.Rect {
	switch {
	case RectEmpty(a):
		return b
	case RectEmpty(b):
		return a
	}
	return rect.Rect{
		LLx: min(a.LLx, b.LLx),
		LLy: min(a.LLy, b.LLy),
		URx: max(a.URx, b.URx),
		URy: max(a.URy, b.URy),
	}
}

// RectPolygon returns the corners of r in clockwise order starting at the
// minimum corner.
func RectPolygon(r rect.Rect) []vec.Vec2 {
	return []vec.Vec2{
		{X: r.LLx, Y: r.LLy},
		{X: r.URx, Y: r.LLy},
		{X: r.URx, Y: r.URy},
		{X: r.LLx, Y: r.URy},
	}
}

// PolygonContains reports whether p lies inside the polygon using the
// even-odd rule.
func PolygonContains(poly []vec.Vec2, p vec.Vec2) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// BoundsContain reports whether p lies inside any polygon of s.
func (s Selection) BoundsContain(p vec.Vec2) bool {
	if !s.Valid {
		return false
	}
	for _, poly := range s.Bounds {
		if PolygonContains(poly, p) {
			return true
		}
	}
	return false
}

package selection

import (
	"github.com/rs/zerolog"
	"seehuhn.de/go/geom/vec"

	"github.com/hay-kot/pagelens/internal/core/document"
	"github.com/hay-kot/pagelens/internal/core/viewport"
)

// Cursor is the pointer shape the shell should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorText
)

func (c Cursor) String() string {
	if c == CursorText {
		return "text"
	}
	return "default"
}

// probePixels is the half width of the horizontal probes used to find the
// character under the pointer.
const probePixels = 2.0

// Hit is the result of hit-testing a viewport point.
type Hit struct {
	Page      int
	Point     vec.Vec2 // in page points
	CharIndex int
	HasGlyph  bool
}

// Engine owns the current selection and the drag state machine. It is not
// safe for concurrent use.
type Engine struct {
	log      zerolog.Logger
	doc      document.Document
	sel      Selection
	dragging bool
	dragPage int
	anchor   vec.Vec2 // viewport pixels
	cursor   Cursor
	onCursor func(Cursor)
}

// NewEngine creates an engine. onCursor, when non-nil, is called whenever
// the hover cursor changes.
func NewEngine(log zerolog.Logger, onCursor func(Cursor)) *Engine {
	return &Engine{log: log, onCursor: onCursor, dragPage: -1}
}

// SetDocument replaces the document and drops any selection or drag.
func (e *Engine) SetDocument(doc document.Document) {
	e.doc = doc
	e.Clear()
}

// Selection returns the current selection.
func (e *Engine) Selection() Selection { return e.sel }

// Dragging reports whether a drag is in progress.
func (e *Engine) Dragging() bool { return e.dragging }

// Cursor returns the current hover cursor.
func (e *Engine) Cursor() Cursor { return e.cursor }

// Clear drops the selection and ends any drag.
func (e *Engine) Clear() {
	e.sel = Empty()
	e.dragging = false
	e.dragPage = -1
}

func (e *Engine) hasPages() bool {
	return e.doc != nil && e.doc.PageCount() > 0
}

// BeginDrag starts a drag at viewport point p on the page under it. Any
// previous selection is dropped.
func (e *Engine) BeginDrag(m viewport.Mapper, p vec.Vec2) bool {
	if !e.hasPages() {
		return false
	}
	page := m.PageAt(p)
	if page < 0 {
		return false
	}

	e.sel = Empty()
	e.dragging = true
	e.dragPage = page
	e.anchor = p
	e.updateFromDrag(m, p)
	return true
}

// UpdateDrag re-resolves the selection between the drag anchor and p. Both
// points are mapped into the page the drag started on.
func (e *Engine) UpdateDrag(m viewport.Mapper, p vec.Vec2) bool {
	if !e.dragging || !e.hasPages() {
		return false
	}
	e.updateFromDrag(m, p)
	return true
}

// EndDrag finalizes the drag at p. A range the document could not resolve
// leaves no selection. Returns whether text is selected.
func (e *Engine) EndDrag(m viewport.Mapper, p vec.Vec2) bool {
	if !e.dragging {
		return false
	}
	if e.hasPages() {
		e.updateFromDrag(m, p)
	}
	e.dragging = false

	if !e.sel.Resolved() {
		e.sel = Empty()
	}

	e.log.Debug().
		Int("page", e.dragPage).
		Int("chars", len([]rune(e.sel.Text()))).
		Msg("drag selection finished")

	return e.sel.HasContent()
}

func (e *Engine) updateFromDrag(m viewport.Mapper, p vec.Vec2) {
	if e.dragPage < 0 || e.dragPage >= e.doc.PageCount() {
		return
	}
	a := m.ViewportToPagePoint(e.dragPage, e.anchor)
	b := m.ViewportToPagePoint(e.dragPage, p)
	e.sel = SinglePage(e.dragPage, e.doc.SelectionBetween(e.dragPage, a, b))
}

// HitTest finds the character under viewport point p using small
// horizontal probes around it.
func (e *Engine) HitTest(m viewport.Mapper, p vec.Vec2) Hit {
	if !e.hasPages() {
		return Hit{Page: -1}
	}
	page, pt, ok := m.MapViewportPointToPage(p)
	if !ok {
		return Hit{Page: -1}
	}
	hit := Hit{Page: page, Point: pt}
	if !m.PageContains(page, pt) {
		return hit
	}

	d := vec.Vec2{X: probePixels / m.ScaleForPage(page)}
	probes := [][2]vec.Vec2{
		{pt.Sub(d), pt.Add(d)},
		{pt, pt.Add(d)},
		{pt.Sub(d), pt},
	}

	for _, probe := range probes {
		sel := e.doc.SelectionBetween(page, probe[0], probe[1])
		if sel.Empty() {
			continue
		}
		hit.CharIndex = e.pickChar(page, sel, pt)
		hit.HasGlyph = true
		return hit
	}
	return hit
}

// pickChar returns the index of the character in sel whose box contains pt,
// falling back to the first character of sel.
func (e *Engine) pickChar(page int, sel document.Selection, pt vec.Vec2) int {
	for i := sel.StartIndex; i < sel.StartIndex+sel.Length; i++ {
		one := e.doc.SelectionAtIndex(page, i, 1)
		if one.Valid && document.RectContains(one.BoundingRect, pt) {
			return i
		}
	}
	return sel.StartIndex
}

// SelectWordAt selects the word under viewport point p. Returns false and
// leaves the selection untouched when p is not over a word character.
func (e *Engine) SelectWordAt(m viewport.Mapper, p vec.Vec2) bool {
	hit := e.HitTest(m, p)
	if !hit.HasGlyph {
		return false
	}

	all := e.doc.AllText(hit.Page)
	if !all.Valid {
		return false
	}

	start, end, ok := WordBounds([]rune(all.Text), hit.CharIndex)
	if !ok {
		return false
	}

	sel := e.doc.SelectionAtIndex(hit.Page, start, end-start)
	if !sel.Valid {
		return false
	}

	e.dragging = false
	e.sel = SinglePage(hit.Page, sel)
	return true
}

// SelectAllPage selects every character on page.
func (e *Engine) SelectAllPage(page int) bool {
	if !e.hasPages() || page < 0 || page >= e.doc.PageCount() {
		return false
	}
	all := e.doc.AllText(page)
	if all.Empty() {
		return false
	}
	e.dragging = false
	e.sel = SinglePage(page, all)
	return true
}

// SelectAllDocument selects every page. It succeeds when at least one page
// has text; otherwise the selection is left untouched.
func (e *Engine) SelectAllDocument() bool {
	if !e.hasPages() {
		return false
	}

	n := e.doc.PageCount()
	pages := make([]document.Selection, n)
	found := false
	for i := range n {
		pages[i] = e.doc.AllText(i)
		if !pages[i].Empty() {
			found = true
		}
	}
	if !found {
		return false
	}

	e.dragging = false
	e.sel = WholeDocument(pages)
	e.log.Debug().Int("pages", n).Msg("selected whole document")
	return true
}

// CopyText returns the selected text, or false when nothing is selected.
func (e *Engine) CopyText() (string, bool) {
	text := e.sel.Text()
	return text, text != ""
}

// Hover updates the cursor for the pointer at viewport point p. The cursor
// callback only fires when the shape changes. Hover is ignored while
// dragging.
func (e *Engine) Hover(m viewport.Mapper, p vec.Vec2) Cursor {
	if e.dragging {
		return e.cursor
	}
	want := CursorDefault
	if e.HitTest(m, p).HasGlyph {
		want = CursorText
	}
	e.setCursor(want)
	return e.cursor
}

// Leave resets the cursor when the pointer leaves the view.
func (e *Engine) Leave() {
	e.setCursor(CursorDefault)
}

func (e *Engine) setCursor(c Cursor) {
	if c == e.cursor {
		return
	}
	e.cursor = c
	if e.onCursor != nil {
		e.onCursor(c)
	}
}

// Package viewer ties the layout, mapping, selection, search and minimap
// components together behind the API a shell drives.
package viewer

import (
	"image/color"
	"time"

	"github.com/rs/zerolog"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/hay-kot/pagelens/internal/core/document"
	"github.com/hay-kot/pagelens/internal/core/layout"
	"github.com/hay-kot/pagelens/internal/core/minimap"
	"github.com/hay-kot/pagelens/internal/core/search"
	"github.com/hay-kot/pagelens/internal/core/selection"
	"github.com/hay-kot/pagelens/internal/core/viewport"
	"github.com/hay-kot/pagelens/pkg/debounce"
)

const (
	// ZoomStep is the factor applied by ZoomIn and ZoomOut.
	ZoomStep = 1.25
	// MinZoom and MaxZoom bound custom zoom factors.
	MinZoom = 0.1
	MaxZoom = 16.0

	// EnsureVisibleMargin is the pixel margin kept around a match or marker
	// target when it is scrolled into view.
	EnsureVisibleMargin = 24.0

	DefaultHoverThreshold = 6.0
	DefaultClickThreshold = 8.0
	DefaultDebounce       = 320 * time.Millisecond
)

// fallbackRect stands in for a target whose geometry could not be resolved.
var fallbackRect = rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}

var (
	DefaultHighlightColor color.Color = color.RGBA{R: 255, G: 215, B: 0, A: 180}
	DefaultBatchColor     color.Color = color.RGBA{R: 255, G: 140, B: 0, A: 180}
)

// Source identifies which search currently owns the minimap markers.
type Source int

const (
	SourceNone Source = iota
	SourceLive
	SourceBatch
)

func (s Source) String() string {
	switch s {
	case SourceLive:
		return "live"
	case SourceBatch:
		return "batch"
	default:
		return "none"
	}
}

// Options configure a Session. Zero values fall back to defaults.
type Options struct {
	// View is the initial view state. Scroll and current page are ignored.
	View viewport.ViewState

	// LayoutSpacing is the gap in points between pages of the normalized
	// layout that positions minimap markers.
	LayoutSpacing float64

	Debounce       time.Duration
	LiveMinimap    bool
	HighlightColor color.Color
	BatchColor     color.Color

	// Minimap thresholds in strip units.
	HoverThreshold float64
	ClickThreshold float64

	Clipboard Clipboard

	// OnMarker is called with the target of an activated minimap marker.
	OnMarker func(page int, r rect.Rect)
	// OnCursor is called when the hover cursor changes.
	OnCursor func(selection.Cursor)
}

func (o Options) withDefaults() Options {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.HighlightColor == nil {
		o.HighlightColor = DefaultHighlightColor
	}
	if o.BatchColor == nil {
		o.BatchColor = DefaultBatchColor
	}
	if o.HoverThreshold <= 0 {
		o.HoverThreshold = DefaultHoverThreshold
	}
	if o.ClickThreshold <= 0 {
		o.ClickThreshold = DefaultClickThreshold
	}
	if o.Clipboard == nil {
		o.Clipboard = SystemClipboard{}
	}
	return o
}

// Session is one open view onto a document. It is not safe for concurrent
// use; shells call it from their event loop.
type Session struct {
	log  zerolog.Logger
	opts Options

	doc     document.Document
	layouts *layout.Model
	layout  layout.Layout
	state   viewport.ViewState
	mapper  viewport.Mapper

	engine    *selection.Engine
	live      *search.Live
	agg       *search.Aggregator
	batch     search.Result
	batchRan  bool
	projector *minimap.Projector
	source    Source

	debounce    *debounce.Timer
	pendingTerm string
}

// New creates a Session without a document.
func New(log zerolog.Logger, opts Options) *Session {
	opts = opts.withDefaults()

	s := &Session{
		log:       log,
		opts:      opts,
		layouts:   layout.NewModel(log),
		state:     opts.View,
		live:      search.NewLive(log),
		agg:       search.NewAggregator(log),
		projector: minimap.New(),
		debounce:  debounce.New(opts.Debounce),
	}
	s.state.ScrollX, s.state.ScrollY, s.state.CurrentPage = 0, 0, 0
	s.engine = selection.NewEngine(log, opts.OnCursor)
	s.refresh()
	return s
}

// Open replaces the document and resets scroll, selection and searches.
func (s *Session) Open(doc document.Document) {
	s.setDocument(doc)
	s.state.ScrollX, s.state.ScrollY = 0, 0
	s.refresh()

	if doc != nil {
		s.log.Info().Int("pages", doc.PageCount()).Msg("document opened")
	}
}

// Reload swaps in a new version of the document, keeping the scroll
// position where it still fits. Selection and search results are dropped.
func (s *Session) Reload(doc document.Document) {
	s.setDocument(doc)
	s.refresh()
	s.log.Debug().Msg("document reloaded")
}

// Close drops the document. Afterwards every call returns neutral results.
func (s *Session) Close() {
	s.setDocument(nil)
	s.state.ScrollX, s.state.ScrollY = 0, 0
	s.refresh()
}

func (s *Session) setDocument(doc document.Document) {
	s.doc = doc
	s.engine.SetDocument(doc)
	s.clearDerived()
	s.layouts.Invalidate()
}

// clearDerived drops everything computed from the document's pages: the
// selection, both searches, a pending debounced search and all markers.
func (s *Session) clearDerived() {
	s.engine.Clear()
	s.live.Reset()
	s.debounce.Stop()
	s.pendingTerm = ""
	s.batch = search.Result{}
	s.batchRan = false
	s.projector.Clear()
	s.source = SourceNone
}

// Document returns the open document, or nil.
func (s *Session) Document() document.Document { return s.doc }

// HasDocument reports whether a document with pages is open.
func (s *Session) HasDocument() bool {
	return s.doc != nil && s.doc.PageCount() > 0
}

// PageCount returns the number of pages, or 0 without a document.
func (s *Session) PageCount() int {
	if s.doc == nil {
		return 0
	}
	return s.doc.PageCount()
}

// ViewState returns the current view state.
func (s *Session) ViewState() viewport.ViewState { return s.state }

// Mapper returns the mapper for the current view state.
func (s *Session) Mapper() viewport.Mapper { return s.mapper }

// Layout returns the normalized page layout.
func (s *Session) Layout() layout.Layout { return s.layout }

// refresh rebuilds the mapper for the current state, clamps the scroll
// position and updates everything derived from it.
func (s *Session) refresh() {
	var sizes []document.Size
	if s.doc != nil {
		sizes = document.Sizes(s.doc)
	}

	s.mapper = viewport.New(sizes, s.state)
	s.state.ScrollX, s.state.ScrollY = s.mapper.ClampScroll(s.state.ScrollX, s.state.ScrollY)
	s.mapper = viewport.New(sizes, s.state)
	s.state.CurrentPage = max(s.mapper.CurrentPage(), 0)

	s.OnScrollOrZoomOrResize()
}

// OnScrollOrZoomOrResize recomputes the page layout and the visible range
// shown on the minimap. A document without pages invalidates the selection
// and every search result.
func (s *Session) OnScrollOrZoomOrResize() {
	l, ok := s.layouts.Sync(s.doc, s.opts.LayoutSpacing)
	s.layout = l
	if !ok {
		s.clearDerived()
		return
	}
	s.projector.SetPageHeights(l)

	r := s.mapper.ScrollRange()
	s.projector.SetViewportRange(minimap.ViewportRange(s.state.ScrollY, r.PageStep, r.MaxY))
}

// Resize sets the viewport size in pixels.
func (s *Session) Resize(width, height float64) {
	s.state.ViewportWidth = max(width, 0)
	s.state.ViewportHeight = max(height, 0)
	s.refresh()
}

// SetMargins sets the margins around the page stack.
func (s *Session) SetMargins(m viewport.Margins) {
	s.state.Margins = m
	s.refresh()
}

// ScrollTo scrolls to an absolute position, clamped to the content.
func (s *Session) ScrollTo(x, y float64) {
	s.state.ScrollX, s.state.ScrollY = x, y
	s.refresh()
}

// ScrollBy scrolls relative to the current position.
func (s *Session) ScrollBy(dx, dy float64) {
	s.ScrollTo(s.state.ScrollX+dx, s.state.ScrollY+dy)
}

// SetZoom changes the zoom, keeping the point at the top of the viewport in
// place.
func (s *Session) SetZoom(z viewport.Zoom) {
	if z.Kind() == viewport.ZoomCustom {
		z = viewport.Custom(min(max(z.Factor(), MinZoom), MaxZoom))
	}

	page, localY, ok := s.mapper.PageYForViewportY(0)
	s.state.Zoom = z
	s.refresh()

	if ok {
		x, y := s.mapper.ScrollToPage(page, vec.Vec2{Y: localY})
		s.ScrollTo(x, y)
	}
}

// Zoom returns the current zoom.
func (s *Session) Zoom() viewport.Zoom { return s.state.Zoom }

// EffectiveZoom returns the zoom factor currently applied to the current
// page, in custom zoom units.
func (s *Session) EffectiveZoom() float64 {
	du := s.state.DeviceUnitsPerPoint
	if du <= 0 {
		du = 1
	}
	return s.mapper.ScaleForPage(s.state.CurrentPage) / du
}

// ZoomIn switches to custom zoom at ZoomStep times the effective zoom.
func (s *Session) ZoomIn() {
	s.SetZoom(viewport.Custom(s.EffectiveZoom() * ZoomStep))
}

// ZoomOut switches to custom zoom at the effective zoom divided by
// ZoomStep.
func (s *Session) ZoomOut() {
	s.SetZoom(viewport.Custom(s.EffectiveZoom() / ZoomStep))
}

// CurrentPage returns the page under the center of the viewport, or -1
// without a document.
func (s *Session) CurrentPage() int {
	if !s.HasDocument() {
		return -1
	}
	return s.state.CurrentPage
}

// Jump scrolls so that pt on page is at the top of the viewport.
func (s *Session) Jump(page int, pt vec.Vec2) bool {
	if !s.validPage(page) {
		return false
	}
	x, y := s.mapper.ScrollToPage(page, pt)
	s.ScrollTo(x, y)
	return true
}

// JumpToFraction scrolls to the point a fraction f of the way down the
// normalized page layout, as when clicking an empty spot on the minimap.
func (s *Session) JumpToFraction(f float64) bool {
	if !s.HasDocument() || s.layout.PageCount() == 0 {
		return false
	}
	y := min(max(f, 0), 1) * s.layout.Total
	page := s.layout.PageAtY(y)
	local := min(max(y-s.layout.Offset(page), 0), s.layout.Height(page))
	return s.Jump(page, vec.Vec2{Y: local})
}

// NextPage jumps to the top of the following page.
func (s *Session) NextPage() bool {
	return s.Jump(s.CurrentPage()+1, vec.Vec2{})
}

// PrevPage jumps to the top of the preceding page.
func (s *Session) PrevPage() bool {
	return s.Jump(s.CurrentPage()-1, vec.Vec2{})
}

// FirstPage jumps to the top of the document.
func (s *Session) FirstPage() bool { return s.Jump(0, vec.Vec2{}) }

// LastPage jumps to the top of the last page.
func (s *Session) LastPage() bool { return s.Jump(s.PageCount()-1, vec.Vec2{}) }

// EnsureVisible scrolls the least amount that shows r on page with margin
// pixels around it.
func (s *Session) EnsureVisible(page int, r rect.Rect, margin float64) bool {
	if !s.validPage(page) {
		return false
	}
	x, y := s.mapper.EnsureVisible(page, r, margin)
	s.ScrollTo(x, y)
	return true
}

// MapViewportPointToPage returns the page under viewport point p and the
// point in page coordinates.
func (s *Session) MapViewportPointToPage(p vec.Vec2) (int, vec.Vec2, bool) {
	return s.mapper.MapViewportPointToPage(p)
}

func (s *Session) validPage(page int) bool {
	return s.HasDocument() && page >= 0 && page < s.doc.PageCount()
}

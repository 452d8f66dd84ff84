package viewer

import (
	"time"

	"seehuhn.de/go/geom/vec"

	"github.com/hay-kot/pagelens/internal/core/document"
	"github.com/hay-kot/pagelens/internal/core/minimap"
	"github.com/hay-kot/pagelens/internal/core/search"
)

// RunLiveSearch searches for term immediately and returns the match count.
// With the live minimap enabled the matches replace the strip markers; a
// search without matches only clears markers it owns.
func (s *Session) RunLiveSearch(term string) int {
	n := s.live.Run(s.doc, s.layout, term)

	if !s.opts.LiveMinimap {
		return n
	}
	if n > 0 {
		s.projector.SetMarkers(minimap.MarkersFromMatches(s.live.Matches(), s.opts.HighlightColor))
		s.source = SourceLive
	} else if s.source == SourceLive {
		s.clearMarkers()
	}
	return n
}

// ScheduleLiveSearch records term and returns a token. The shell delivers
// the token back through FireLiveSearch once the debounce delay passes;
// every call supersedes the previous token.
func (s *Session) ScheduleLiveSearch(term string) uint64 {
	s.pendingTerm = term
	return s.debounce.Arm()
}

// FireLiveSearch runs the scheduled search if token is still current.
func (s *Session) FireLiveSearch(token uint64) bool {
	if !s.debounce.Fired(token) {
		return false
	}
	s.RunLiveSearch(s.pendingTerm)
	return true
}

// Debounce returns the live search debounce delay.
func (s *Session) Debounce() time.Duration { return s.debounce.Delay() }

// ClearLiveSearch drops the live term, its results and any pending search.
func (s *Session) ClearLiveSearch() {
	s.debounce.Stop()
	s.pendingTerm = ""
	s.live.Reset()
	if s.source == SourceLive {
		s.clearMarkers()
	}
}

// NextMatch moves to the following live match and scrolls it into view.
func (s *Session) NextMatch() (search.Match, bool) {
	return s.showMatch(s.live.Next())
}

// PrevMatch moves to the preceding live match and scrolls it into view.
func (s *Session) PrevMatch() (search.Match, bool) {
	return s.showMatch(s.live.Prev())
}

func (s *Session) showMatch(m search.Match, ok bool) (search.Match, bool) {
	if !ok {
		return m, false
	}
	r := m.Rect
	if document.RectEmpty(r) {
		r = fallbackRect
	}
	s.EnsureVisible(m.Page, r, EnsureVisibleMargin)
	return m, true
}

// CurrentMatch returns the live match last navigated to.
func (s *Session) CurrentMatch() (search.Match, bool) { return s.live.Current() }

// LiveMatches returns every live match.
func (s *Session) LiveMatches() []search.Match { return s.live.Matches() }

// LiveTerm returns the last live search term.
func (s *Session) LiveTerm() string { return s.live.Term() }

// LiveStatus renders the live result count.
func (s *Session) LiveStatus() string { return s.live.Status() }

// NavEnabled reports whether next/previous match navigation is possible.
func (s *Session) NavEnabled() bool { return s.live.NavEnabled() }

// RunBatchSearch searches for every term in a semicolon separated query.
// The markers replace the minimap when the query ran; the summary is
// returned either way.
func (s *Session) RunBatchSearch(query string) (string, []minimap.Marker) {
	res := s.agg.Query(s.doc, s.layout, query)
	s.batch = res
	s.batchRan = true

	if res.State != search.StateOK {
		return res.Summary(), nil
	}

	markers := minimap.MarkersFromMatches(res.Matches, s.opts.BatchColor)
	s.projector.SetMarkers(markers)
	s.source = SourceBatch
	if len(markers) == 0 {
		s.source = SourceNone
	}
	return res.Summary(), markers
}

// BatchResult returns the last batch result.
func (s *Session) BatchResult() search.Result { return s.batch }

// BatchSummary renders the last batch result, or "" before the first run.
func (s *Session) BatchSummary() string {
	if !s.batchRan {
		return ""
	}
	return s.batch.Summary()
}

// Minimap returns the projector holding the strip state.
func (s *Session) Minimap() *minimap.Projector { return s.projector }

// MinimapSource returns the search that owns the markers.
func (s *Session) MinimapSource() Source { return s.source }

// MinimapHint returns the hover text for the marker near y on a strip drawn
// from top with the given height.
func (s *Session) MinimapHint(y, top, height float64) (string, bool) {
	m, ok := s.projector.MarkerNear(y, s.opts.HoverThreshold, top, height)
	if !ok {
		return "", false
	}
	return minimap.Hint(m), true
}

// ActivateMarkerAt jumps to the marker near y. The marker callback
// receives the target page and rect before the view moves.
func (s *Session) ActivateMarkerAt(y, top, height float64) bool {
	m, ok := s.projector.MarkerNear(y, s.opts.ClickThreshold, top, height)
	if !ok || !s.validPage(m.Page) {
		return false
	}

	r := m.Rect
	if document.RectEmpty(r) {
		r = fallbackRect
	}
	if s.opts.OnMarker != nil {
		s.opts.OnMarker(m.Page, r)
	}

	s.Jump(m.Page, vec.Vec2{})
	s.EnsureVisible(m.Page, r, EnsureVisibleMargin)
	return true
}

func (s *Session) clearMarkers() {
	s.projector.ClearMarkers()
	s.source = SourceNone
}

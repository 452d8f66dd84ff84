package viewer

import (
	"seehuhn.de/go/geom/vec"

	"github.com/hay-kot/pagelens/internal/core/document"
	"github.com/hay-kot/pagelens/internal/core/selection"
)

// BeginDrag starts a text selection at viewport point p.
func (s *Session) BeginDrag(p vec.Vec2) bool { return s.engine.BeginDrag(s.mapper, p) }

// UpdateDrag extends the selection being dragged to p.
func (s *Session) UpdateDrag(p vec.Vec2) bool { return s.engine.UpdateDrag(s.mapper, p) }

// EndDrag finishes the drag at p and reports whether text is selected.
func (s *Session) EndDrag(p vec.Vec2) bool { return s.engine.EndDrag(s.mapper, p) }

// Dragging reports whether a drag is in progress.
func (s *Session) Dragging() bool { return s.engine.Dragging() }

// DoubleClick selects the word under p.
func (s *Session) DoubleClick(p vec.Vec2) bool { return s.engine.SelectWordAt(s.mapper, p) }

// Hover updates the pointer shape for p.
func (s *Session) Hover(p vec.Vec2) selection.Cursor { return s.engine.Hover(s.mapper, p) }

// Leave resets the pointer shape.
func (s *Session) Leave() { s.engine.Leave() }

// HitTest returns the character under viewport point p.
func (s *Session) HitTest(p vec.Vec2) selection.Hit { return s.engine.HitTest(s.mapper, p) }

// SelectAllPage selects the text of the current page.
func (s *Session) SelectAllPage() bool {
	if !s.HasDocument() {
		return false
	}
	return s.engine.SelectAllPage(s.state.CurrentPage)
}

// SelectAllDocument selects the text of every page.
func (s *Session) SelectAllDocument() bool { return s.engine.SelectAllDocument() }

// ClearSelection drops the selection.
func (s *Session) ClearSelection() { s.engine.Clear() }

// Selection returns the current selection.
func (s *Session) Selection() selection.Selection { return s.engine.Selection() }

// SelectionOverlay returns the span to highlight on page.
func (s *Session) SelectionOverlay(page int) (document.Selection, bool) {
	return s.engine.Selection().Overlay(page, s.state.CurrentPage)
}

// CopyText returns the text a copy would place on the clipboard: the
// selection, or the current live match when nothing is selected.
func (s *Session) CopyText() (string, bool) {
	if text, ok := s.engine.CopyText(); ok {
		return text, true
	}
	if m, ok := s.live.Current(); ok && m.Text != "" {
		return m.Text, true
	}
	return "", false
}

// CopySelection writes CopyText to the clipboard. Returns false when there
// is nothing to copy or the clipboard rejected the text.
func (s *Session) CopySelection() bool {
	text, ok := s.CopyText()
	if !ok {
		return false
	}
	if err := s.opts.Clipboard.WriteAll(text); err != nil {
		s.log.Warn().Err(err).Msg("clipboard write failed")
		return false
	}
	s.log.Debug().Int("chars", len([]rune(text))).Msg("copied to clipboard")
	return true
}

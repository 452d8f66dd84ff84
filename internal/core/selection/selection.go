// Package selection drives interactive text selection on top of the
// viewport mapping: drag ranges, word selection, select-all, and the hover
// cursor.
package selection

import (
	"strings"

	"github.com/hay-kot/pagelens/internal/core/document"
)

// Kind identifies the shape of a Selection.
type Kind int

const (
	KindEmpty Kind = iota
	KindSinglePage
	KindWholeDocument
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindSinglePage:
		return "single-page"
	case KindWholeDocument:
		return "whole-document"
	default:
		return "unknown"
	}
}

// Selection is either nothing, a span on one page, or one span per page of
// the whole document. A single-page selection whose span is not valid
// records a range the document could not resolve.
type Selection struct {
	kind  Kind
	page  int
	span  document.Selection
	pages []document.Selection
}

// Empty returns the empty selection.
func Empty() Selection { return Selection{} }

// SinglePage returns a selection of span on page.
func SinglePage(page int, span document.Selection) Selection {
	return Selection{kind: KindSinglePage, page: page, span: span}
}

// WholeDocument returns a selection holding one span per page, in page order.
func WholeDocument(pages []document.Selection) Selection {
	return Selection{kind: KindWholeDocument, pages: pages}
}

// Kind returns the shape of the selection.
func (s Selection) Kind() Kind { return s.kind }

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool { return s.kind == KindEmpty }

// Page returns the page of a single-page selection.
func (s Selection) Page() (int, bool) {
	if s.kind != KindSinglePage {
		return -1, false
	}
	return s.page, true
}

// Span returns the span of a single-page selection.
func (s Selection) Span() document.Selection { return s.span }

// Pages returns the per-page spans of a whole-document selection.
func (s Selection) Pages() []document.Selection { return s.pages }

// Resolved reports whether a single-page selection was resolved by the
// document. Whole-document selections are resolved when any page is.
func (s Selection) Resolved() bool {
	switch s.kind {
	case KindSinglePage:
		return s.span.Valid
	case KindWholeDocument:
		for _, p := range s.pages {
			if p.Valid {
				return true
			}
		}
	}
	return false
}

// Text returns the selected text. Whole-document selections join the text
// of every page in page order with a single newline; a page without text
// contributes an empty line.
func (s Selection) Text() string {
	switch s.kind {
	case KindSinglePage:
		if !s.span.Valid {
			return ""
		}
		return s.span.Text
	case KindWholeDocument:
		parts := make([]string, len(s.pages))
		for i, p := range s.pages {
			if p.Valid {
				parts[i] = p.Text
			}
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}

// HasContent reports whether the selection carries any text.
func (s Selection) HasContent() bool {
	return s.Text() != ""
}

// Overlay returns the span to highlight on page. A whole-document selection
// only highlights currentPage.
func (s Selection) Overlay(page, currentPage int) (document.Selection, bool) {
	switch s.kind {
	case KindSinglePage:
		if page == s.page && s.span.Valid {
			return s.span, true
		}
	case KindWholeDocument:
		if page == currentPage && page >= 0 && page < len(s.pages) && s.pages[page].Valid {
			return s.pages[page], true
		}
	}
	return document.Selection{}, false
}

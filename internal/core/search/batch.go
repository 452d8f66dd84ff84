// Package search finds terms across every page of a document and turns the
// hits into normalized positions for the minimap.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"seehuhn.de/go/geom/rect"

	"github.com/hay-kot/pagelens/internal/core/document"
	"github.com/hay-kot/pagelens/internal/core/layout"
)

// State describes why a result is empty.
type State int

const (
	StateOK State = iota
	StateNoTerms
	StateNoDocument
)

// Match is one occurrence of a term.
type Match struct {
	Term      string
	TermIndex int
	Page      int
	Start     int // rune offset in the page text
	Length    int
	Text      string    // matched text as it appears on the page
	Rect      rect.Rect // bounding rectangle in page points
	LocalY    float64   // center of Rect, or 0 when Rect is empty
	Position  float64   // fraction of the document height, in [0, 1]
}

// TermCount is the number of matches for one term.
type TermCount struct {
	Term  string
	Count int
}

// Result is the outcome of a search over a whole document. Matches are
// ordered by page and then local y; ties keep scan order (term by term, left
// to right).
type Result struct {
	State   State
	Terms   []TermCount
	Total   int
	Matches []Match
}

// Summary renders the per-term counts and total for the status line.
func (r Result) Summary() string {
	switch r.State {
	case StateNoDocument:
		return "No document open"
	case StateNoTerms:
		return "Please enter search terms."
	}

	if r.Total == 0 {
		return "No results found"
	}

	pieces := make([]string, len(r.Terms))
	for i, tc := range r.Terms {
		pieces[i] = fmt.Sprintf("%s:%d", tc.Term, tc.Count)
	}
	return fmt.Sprintf("%s  ||  Total: %d", strings.Join(pieces, "  |  "), r.Total)
}

// Aggregator runs batch searches.
type Aggregator struct {
	log zerolog.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(log zerolog.Logger) *Aggregator {
	return &Aggregator{log: log}
}

// Query parses a semicolon separated query and runs Batch.
func (a *Aggregator) Query(doc document.Document, l layout.Layout, input string) Result {
	return a.Batch(doc, l, ParseTerms(input))
}

// Batch searches every page of doc for every term. Hits the document cannot
// resolve to geometry are skipped and not counted.
func (a *Aggregator) Batch(doc document.Document, l layout.Layout, terms []string) Result {
	if doc == nil || doc.PageCount() <= 0 {
		return Result{State: StateNoDocument}
	}
	if len(terms) == 0 {
		return Result{State: StateNoTerms}
	}

	matches, counts := scan(doc, l, terms)

	res := Result{
		State:   StateOK,
		Terms:   make([]TermCount, len(terms)),
		Total:   len(matches),
		Matches: matches,
	}
	for i, term := range terms {
		res.Terms[i] = TermCount{Term: term, Count: counts[i]}
	}

	a.log.Debug().
		Strs("terms", terms).
		Int("total", res.Total).
		Int("pages", doc.PageCount()).
		Msg("batch search finished")

	return res
}

// scan searches pages in order. The layout is expected to match doc; pages
// it does not cover normalize to 0.
func scan(doc document.Document, l layout.Layout, terms []string) ([]Match, []int) {
	f := newFolder()
	folded := make([][]rune, len(terms))
	for i, term := range terms {
		folded[i] = f.foldAll([]rune(term))
	}

	counts := make([]int, len(terms))
	var matches []Match

	for page := range doc.PageCount() {
		all := doc.AllText(page)
		if all.Empty() {
			continue
		}
		text := f.foldAll([]rune(all.Text))

		for ti, term := range folded {
			for _, pos := range findFolded(text, term) {
				sel := doc.SelectionAtIndex(page, pos, len(term))
				if !sel.Valid {
					continue
				}

				localY := 0.0
				if !document.RectEmpty(sel.BoundingRect) {
					localY = document.RectCenter(sel.BoundingRect).Y
					if h := l.Height(page); h > 0 {
						localY = min(max(localY, 0), h)
					}
				}

				matches = append(matches, Match{
					Term:      terms[ti],
					TermIndex: ti,
					Page:      page,
					Start:     pos,
					Length:    len(term),
					Text:      sel.Text,
					Rect:      sel.BoundingRect,
					LocalY:    localY,
					Position:  l.Normalize(page, localY),
				})
				counts[ti]++
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Page != matches[j].Page {
			return matches[i].Page < matches[j].Page
		}
		return matches[i].LocalY < matches[j].LocalY
	})

	return matches, counts
}

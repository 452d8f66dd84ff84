package search

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hay-kot/pagelens/internal/core/document"
	"github.com/hay-kot/pagelens/internal/core/layout"
)

// Live is the single-term search driven by a search box. Results are
// rebuilt on every Run; navigation wraps around at both ends.
type Live struct {
	log     zerolog.Logger
	term    string
	matches []Match
	current int // -1 until the user navigates
}

// NewLive creates an empty live search.
func NewLive(log zerolog.Logger) *Live {
	return &Live{log: log, current: -1}
}

// Run searches doc for term. Terms shorter than MinTermLength and missing
// documents clear the results. Returns the number of matches.
func (l *Live) Run(doc document.Document, lay layout.Layout, term string) int {
	l.term = strings.TrimSpace(term)
	l.matches = nil
	l.current = -1

	if !ValidTerm(l.term) || doc == nil || doc.PageCount() <= 0 {
		return 0
	}

	l.matches, _ = scan(doc, lay, []string{l.term})
	l.log.Debug().Str("term", l.term).Int("matches", len(l.matches)).Msg("live search")
	return len(l.matches)
}

// Reset clears the term and results.
func (l *Live) Reset() {
	l.term = ""
	l.matches = nil
	l.current = -1
}

// Term returns the last searched term.
func (l *Live) Term() string { return l.term }

// Matches returns the results in document order.
func (l *Live) Matches() []Match { return l.matches }

// Count returns the number of matches.
func (l *Live) Count() int { return len(l.matches) }

// NavEnabled reports whether next/previous navigation is possible.
func (l *Live) NavEnabled() bool { return len(l.matches) > 0 }

// Current returns the match last navigated to.
func (l *Live) Current() (Match, bool) {
	if l.current < 0 || l.current >= len(l.matches) {
		return Match{}, false
	}
	return l.matches[l.current], true
}

// CurrentIndex returns the index of the current match, or -1.
func (l *Live) CurrentIndex() int { return l.current }

// Next moves to the following match, wrapping to the first.
func (l *Live) Next() (Match, bool) {
	n := len(l.matches)
	if n == 0 {
		return Match{}, false
	}
	l.current = (l.current + 1) % n
	return l.matches[l.current], true
}

// Prev moves to the preceding match, wrapping to the last.
func (l *Live) Prev() (Match, bool) {
	n := len(l.matches)
	if n == 0 {
		return Match{}, false
	}
	if l.current < 0 {
		l.current = 0
	}
	l.current = (l.current - 1 + n) % n
	return l.matches[l.current], true
}

// Status renders the result count, or the current position once the user
// has navigated.
func (l *Live) Status() string {
	n := len(l.matches)
	switch {
	case n == 0:
		return "0 Results"
	case l.current < 0:
		return fmt.Sprintf("%d Results", n)
	default:
		return fmt.Sprintf("%d/%d", l.current+1, n)
	}
}

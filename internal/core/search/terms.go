package search

import (
	"strings"
	"unicode/utf8"
)

// MinTermLength is the minimum number of runes in a search term.
const MinTermLength = 2

// TermSeparator separates terms in a batch query.
const TermSeparator = ";"

// ValidTerm reports whether term is long enough to search for.
func ValidTerm(term string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(term)) >= MinTermLength
}

// ParseTerms splits a batch query on TermSeparator, trims each part and
// drops parts shorter than MinTermLength. Order and duplicates are kept.
func ParseTerms(input string) []string {
	var terms []string
	for _, part := range strings.Split(input, TermSeparator) {
		part = strings.TrimSpace(part)
		if !ValidTerm(part) {
			continue
		}
		terms = append(terms, part)
	}
	return terms
}

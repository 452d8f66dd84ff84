package search

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// folder maps runes to their case folded form. A rune whose full folding
// expands to several runes falls back to its lower case so that folded
// text keeps the rune indices of the original.
type folder struct {
	caser cases.Caser
	cache map[rune]rune
}

func newFolder() *folder {
	return &folder{caser: cases.Fold(), cache: make(map[rune]rune)}
}

func (f *folder) fold(r rune) rune {
	if r < utf8.RuneSelf {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}
	if v, ok := f.cache[r]; ok {
		return v
	}

	v := unicode.ToLower(r)
	s := f.caser.String(string(r))
	if folded, size := utf8.DecodeRuneInString(s); size == len(s) && folded != utf8.RuneError {
		v = folded
	}
	f.cache[r] = v
	return v
}

func (f *folder) foldAll(text []rune) []rune {
	out := make([]rune, len(text))
	for i, r := range text {
		out[i] = f.fold(r)
	}
	return out
}

// findFolded returns the start offsets of term in text, both already
// folded. After a hit the scan resumes after the hit, so overlapping
// occurrences are not reported.
func findFolded(text, term []rune) []int {
	if len(term) == 0 {
		return nil
	}

	var hits []int
	for i := 0; i+len(term) <= len(text); {
		if equalRunes(text[i:i+len(term)], term) {
			hits = append(hits, i)
			i += max(1, len(term))
			continue
		}
		i++
	}
	return hits
}

func equalRunes(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Find returns the rune offsets of every case-insensitive, non-overlapping
// occurrence of term in text.
func Find(text, term string) []int {
	f := newFolder()
	return findFolded(f.foldAll([]rune(text)), f.foldAll([]rune(term)))
}

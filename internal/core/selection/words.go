package selection

import "unicode"

// IsWordChar reports whether r belongs to a word for double-click
// selection: letters, digits, underscore, hyphen and connector punctuation.
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) ||
		unicode.IsDigit(r) ||
		r == '_' ||
		r == '-' ||
		unicode.Is(unicode.Pc, r)
}

// WordBounds expands idx to the surrounding run of word characters and
// returns the half-open range [start, end). ok is false when idx is out of
// range or not on a word character.
func WordBounds(text []rune, idx int) (start, end int, ok bool) {
	if idx < 0 || idx >= len(text) || !IsWordChar(text[idx]) {
		return 0, 0, false
	}

	start = idx
	for start > 0 && IsWordChar(text[start-1]) {
		start--
	}

	end = idx + 1
	for end < len(text) && IsWordChar(text[end]) {
		end++
	}

	return start, end, true
}

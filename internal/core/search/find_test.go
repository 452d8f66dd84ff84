package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want []int
	}{
		{name: "simple", text: "the cat sat", term: "cat", want: []int{4}},
		{name: "case insensitive", text: "Cat CAT cat", term: "cAt", want: []int{0, 4, 8}},
		{name: "overlaps skipped", text: "aaaa", term: "aa", want: []int{0, 2}},
		{name: "odd overlap", text: "aaa", term: "aa", want: []int{0}},
		{name: "accented", text: "Éclair and éclair", term: "ÉCLAIR", want: []int{0, 11}},
		{name: "accents are significant", text: "Café cafe", term: "cafe", want: []int{5}},
		{name: "final sigma", text: "ΟΔΟΣ", term: "οδος", want: []int{0}},
		{name: "rune offsets", text: "naïve cat", term: "cat", want: []int{6}},
		{name: "no match", text: "hello", term: "xyz", want: nil},
		{name: "term longer than text", text: "ab", term: "abc", want: nil},
		{name: "empty term", text: "abc", term: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Find(tt.text, tt.term))
		})
	}
}

func TestParseTerms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "two terms", input: "cat;dog", want: []string{"cat", "dog"}},
		{name: "trimmed", input: "  cat ;  dog  ", want: []string{"cat", "dog"}},
		{name: "short dropped", input: "a;cat;;b", want: []string{"cat"}},
		{name: "duplicates kept", input: "cat;cat", want: []string{"cat", "cat"}},
		{name: "inner spaces kept", input: "big cat", want: []string{"big cat"}},
		{name: "empty", input: "", want: nil},
		{name: "only separators", input: " ; ; ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTerms(tt.input))
		})
	}
}

func TestValidTerm(t *testing.T) {
	assert.False(t, ValidTerm(""))
	assert.False(t, ValidTerm("a"))
	assert.False(t, ValidTerm(" a "))
	assert.True(t, ValidTerm("ab"))
	assert.True(t, ValidTerm("éé"))
}

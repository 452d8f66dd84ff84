package commands

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   SearchInput
		wantErr bool
	}{
		{name: "query", input: SearchInput{Query: "cat; dog"}},
		{name: "terms", input: SearchInput{Terms: []string{"cat"}}},
		{name: "query and terms", input: SearchInput{Query: "cat", Terms: []string{"dog"}}},
		{name: "empty", input: SearchInput{}, wantErr: true},
		{name: "too short", input: SearchInput{Query: "a; b"}, wantErr: true},
		{name: "only separators", input: SearchInput{Query: ";;"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "query")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSearchInput_Query(t *testing.T) {
	in := SearchInput{Query: "cat", Terms: []string{"dog", "owl"}}
	assert.Equal(t, "cat;dog;owl", in.query())
	assert.Equal(t, "dog", SearchInput{Query: "  ", Terms: []string{"dog"}}.query())
}

func TestMergeInput(t *testing.T) {
	args := SearchInput{Query: "cat", Files: []string{"a.txt"}}

	got := mergeInput(args, SearchInput{Files: []string{"b.txt"}})
	assert.Equal(t, "cat", got.Query)
	assert.Equal(t, []string{"a.txt", "b.txt"}, got.Files)

	got = mergeInput(args, SearchInput{Terms: []string{"dog"}})
	assert.Empty(t, got.Query)
	assert.Equal(t, []string{"dog"}, got.Terms)
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a")
	b := writeFile(t, dir, "nested/b.txt", "b")
	md := writeFile(t, dir, "nested/deep/c.md", "c")

	t.Run("plain paths are deduplicated and sorted", func(t *testing.T) {
		got, err := ExpandPaths([]string{b, a, b})
		require.NoError(t, err)
		assert.Equal(t, []string{a, b}, got)
	})

	t.Run("doublestar glob", func(t *testing.T) {
		got, err := ExpandPaths([]string{filepath.Join(dir, "**", "*.txt")})
		require.NoError(t, err)
		assert.Equal(t, []string{a, b}, got)
	})

	t.Run("brace glob", func(t *testing.T) {
		got, err := ExpandPaths([]string{filepath.Join(dir, "**", "*.{md,txt}")})
		require.NoError(t, err)
		assert.Equal(t, []string{a, b, md}, got)
	})

	t.Run("glob without matches", func(t *testing.T) {
		_, err := ExpandPaths([]string{filepath.Join(dir, "*.pdf")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no files match")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ExpandPaths([]string{filepath.Join(dir, "missing.txt")})
		require.Error(t, err)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := ExpandPaths([]string{dir})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory")
	})

	t.Run("nothing", func(t *testing.T) {
		_, err := ExpandPaths(nil)
		require.Error(t, err)
	})
}

func TestSearchCmd_Text(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "the cat sat\non the mat\nanother cat\n")

	out, err := runApp(t, NewSearchCmd(testFlags(t)), "search", "-q", "cat; mat", "--matches", path)
	require.NoError(t, err)

	assert.Contains(t, out, path)
	assert.Contains(t, out, "cat:2  |  mat:1  ||  Total: 3")
	assert.Contains(t, out, "TERM")
	assert.Equal(t, 2, strings.Count(out, "\n  cat "))
	assert.Equal(t, 1, strings.Count(out, "\n  mat "))
}

func TestSearchCmd_JSON(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.txt", "the cat sat\non the mat\nanother cat\n")
	second := writeFile(t, dir, "b.txt", "no felines here\n")

	out, err := runApp(t, NewSearchCmd(testFlags(t)),
		"search", "--query", "cat", "--json", "--matches", filepath.Join(dir, "*.txt"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var got searchReport
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, first, got.Path)
	assert.Equal(t, 2, got.Pages)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, []termCount{{Term: "cat", Count: 2}}, got.Terms)
	require.Len(t, got.Matches, 2)
	assert.Equal(t, 1, got.Matches[0].Page)
	assert.Equal(t, 2, got.Matches[1].Page)
	assert.Less(t, got.Matches[0].Position, got.Matches[1].Position)

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &got))
	assert.Equal(t, second, got.Path)
	assert.Equal(t, 0, got.Total)
	assert.Equal(t, "No results found", got.Summary)
}

func TestSearchCmd_AccentsMatchExactly(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "menu.txt", "Café au lait\n")

	out, err := runApp(t, NewSearchCmd(testFlags(t)), "search", "-q", "cafe", "--json", path)
	require.NoError(t, err)

	var got searchReport
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &got))
	assert.Zero(t, got.Total)

	out, err = runApp(t, NewSearchCmd(testFlags(t)), "search", "-q", "CAFÉ", "--json", path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &got))
	assert.Equal(t, 1, got.Total)
}

func TestSearchCmd_FileInput(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.md", "# Title\n\nSome words about owls.\n")
	req := writeFile(t, dir, "req.json", `{"terms":["owls","title"],"files":["`+filepath.ToSlash(doc)+`"]}`)

	out, err := runApp(t, NewSearchCmd(testFlags(t)), "search", "-f", req, "--json")
	require.NoError(t, err)

	var got searchReport
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &got))
	assert.Equal(t, []termCount{{Term: "owls", Count: 1}, {Term: "title", Count: 1}}, got.Terms)
	assert.Empty(t, got.Matches)
}

func TestSearchCmd_InvalidQuery(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "text")

	_, err := runApp(t, NewSearchCmd(testFlags(t)), "search", "-q", "x", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input")
}

package docsource

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/hay-kot/pagelens/internal/docsource/textdoc"
)

// Markdown renders src as plain terminal text and paginates the result.
func Markdown(src []byte, opts textdoc.Options) (*textdoc.Document, error) {
	opts = opts.Normalized()

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(opts.Columns),
	)
	if err != nil {
		return nil, err
	}

	out, err := r.Render(string(src))
	if err != nil {
		return nil, err
	}

	return textdoc.FromString(cleanRendered(out), opts), nil
}

// cleanRendered strips escape sequences and the padding glamour adds around
// blocks and at the end of lines.
func cleanRendered(s string) string {
	s = ansi.Strip(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

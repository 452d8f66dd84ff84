// Package docsource opens files as documents for the viewer. Plain text and
// markdown are paginated on a monospace grid; PDF pages keep their real
// point sizes with the extracted text fitted onto each page.
package docsource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/pagelens/internal/docsource/textdoc"
)

// Kind is the format a file is opened as.
type Kind int

const (
	KindText Kind = iota
	KindMarkdown
	KindPDF
)

func (k Kind) String() string {
	switch k {
	case KindMarkdown:
		return "markdown"
	case KindPDF:
		return "pdf"
	default:
		return "text"
	}
}

// KindFor picks the format from the file extension.
func KindFor(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown":
		return KindMarkdown
	case ".pdf":
		return KindPDF
	default:
		return KindText
	}
}

// Open reads path and builds a document from it.
func Open(path string, opts textdoc.Options) (*textdoc.Document, error) {
	kind := KindFor(path)

	if kind == KindPDF {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()

		doc, err := PDF(f, opts)
		if err != nil {
			return nil, fmt.Errorf("read pdf %s: %w", path, err)
		}
		return doc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if kind == KindMarkdown {
		doc, err := Markdown(data, opts)
		if err != nil {
			return nil, fmt.Errorf("render markdown %s: %w", path, err)
		}
		return doc, nil
	}

	return textdoc.FromString(string(data), opts), nil
}

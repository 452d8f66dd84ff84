package docsource

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/hay-kot/pagelens/internal/core/document"
	"github.com/hay-kot/pagelens/internal/docsource/textdoc"
)

// PDF reads a PDF and builds one text page per PDF page. Each page keeps its
// media box size; the extracted text is wrapped to the page width and the
// line height is reduced when the text would not fit vertically.
func PDF(rs io.ReadSeeker, opts textdoc.Options) (*textdoc.Document, error) {
	opts = opts.Normalized()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("page dimensions: %w", err)
	}

	pages := make([]*textdoc.Page, 0, ctx.PageCount)
	for nr := 1; nr <= ctx.PageCount; nr++ {
		size := opts.PageSize()
		if nr-1 < len(dims) && dims[nr-1].Width > 0 && dims[nr-1].Height > 0 {
			size = document.Size{Width: dims[nr-1].Width, Height: dims[nr-1].Height}
		}
		pages = append(pages, FitPage(size, opts.Metrics, pageLines(ctx, nr)))
	}

	if len(pages) == 0 {
		pages = append(pages, textdoc.NewPage(opts.PageSize(), opts.Metrics, nil))
	}
	return textdoc.FromPages(pages...), nil
}

func pageLines(ctx *model.Context, nr int) []string {
	r, err := pdfcpu.ExtractPageContent(ctx, nr)
	if err != nil || r == nil {
		return nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil
	}
	return ContentLines(data)
}

// FitPage lays lines out on a page of the given size. The margin is dropped
// for pages too small to hold it.
func FitPage(size document.Size, m textdoc.Metrics, lines []string) *textdoc.Page {
	if size.Width < 4*m.Margin || size.Height < 4*m.Margin {
		m.Margin = 0
	}

	cols := max(int((size.Width-2*m.Margin)/m.CharWidth), 1)
	lines = textdoc.Wrap(lines, cols)

	avail := size.Height - 2*m.Margin
	if n := len(lines); n > 0 && avail > 0 && float64(n)*m.LineHeight > avail {
		m.LineHeight = avail / float64(n)
	}

	return textdoc.NewPage(size, m, lines)
}

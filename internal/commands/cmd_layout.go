package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/pagelens/internal/core/document"
	"github.com/hay-kot/pagelens/internal/core/layout"
	"github.com/hay-kot/pagelens/internal/docsource"
	"github.com/hay-kot/pagelens/internal/viewer"
	"github.com/hay-kot/pagelens/pkg/iojson"
)

type LayoutCmd struct {
	flags *Flags

	// flags
	spacing    float64
	jsonOutput bool
}

// NewLayoutCmd creates the layout inspection command.
func NewLayoutCmd(flags *Flags) *LayoutCmd {
	return &LayoutCmd{flags: flags, spacing: -1}
}

// Register adds the layout command to the application.
func (cmd *LayoutCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "layout",
		Usage:     "Print how the pages of a document stack",
		UsageText: "pagelens layout [options] <file>",
		Description: `Prints each page's offset and height in points along with the
fraction of the document it covers. These fractions are the positions used
by the minimap strip.`,
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:        "spacing",
				Usage:       "points between pages (defaults to minimap.page_spacing)",
				Value:       -1,
				Destination: &cmd.spacing,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		ShellComplete: DocumentCompleter(),
		Action:        cmd.run,
	})

	return app
}

// pageExtent is the JSON output format for one page.
type pageExtent struct {
	Page   int     `json:"page"` // 1-based
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Offset float64 `json:"offset"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
}

type layoutReport struct {
	Path    string       `json:"path"`
	Spacing float64      `json:"spacing"`
	Total   float64      `json:"total"`
	Pages   []pageExtent `json:"pages"`
}

func (cmd *LayoutCmd) run(_ context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one file, got %d", c.Args().Len())
	}
	path := c.Args().First()
	cfg := cmd.flags.Config

	doc, err := docsource.Open(path, viewer.TextOptions(cfg.Documents))
	if err != nil {
		return err
	}

	spacing := cmd.spacing
	if spacing < 0 {
		spacing = cfg.Minimap.PageSpacing
	}

	sizes := document.Sizes(doc)
	l, _ := layout.Rebuild(sizes, spacing)

	report := layoutReport{Path: path, Spacing: l.Spacing, Total: l.Total}
	for i, size := range sizes {
		report.Pages = append(report.Pages, pageExtent{
			Page:   i + 1,
			Width:  size.Width,
			Height: l.Height(i),
			Offset: l.Offset(i),
			Start:  l.Normalize(i, 0),
			End:    l.Normalize(i, l.Height(i)),
		})
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, report)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PAGE\tSIZE\tOFFSET\tSTART\tEND")
	for _, p := range report.Pages {
		_, _ = fmt.Fprintf(w, "%d\t%gx%g\t%g\t%.4f\t%.4f\n", p.Page, p.Width, p.Height, p.Offset, p.Start, p.End)
	}
	_, _ = fmt.Fprintf(w, "\ntotal %g points, spacing %g\n", report.Total, report.Spacing)
	return w.Flush()
}

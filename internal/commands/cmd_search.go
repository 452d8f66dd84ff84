package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/huh"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/pagelens/internal/core/document"
	"github.com/hay-kot/pagelens/internal/core/layout"
	"github.com/hay-kot/pagelens/internal/core/logging"
	"github.com/hay-kot/pagelens/internal/core/search"
	"github.com/hay-kot/pagelens/internal/core/styles"
	"github.com/hay-kot/pagelens/internal/docsource"
	"github.com/hay-kot/pagelens/internal/viewer"
	"github.com/hay-kot/pagelens/pkg/iojson"
)

// SearchInput is the JSON request accepted by pagelens search -f.
type SearchInput struct {
	Query string   `json:"query"`
	Terms []string `json:"terms"`
	Files []string `json:"files"`
}

// query merges Query and Terms into one semicolon separated query.
func (in SearchInput) query() string {
	parts := make([]string, 0, len(in.Terms)+1)
	if strings.TrimSpace(in.Query) != "" {
		parts = append(parts, in.Query)
	}
	parts = append(parts, in.Terms...)
	return strings.Join(parts, search.TermSeparator)
}

// Validate checks that the input names something to search for.
func (in SearchInput) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("query", in.query(), func(q string) error {
			if len(search.ParseTerms(q)) == 0 {
				return fmt.Errorf("no valid terms (each needs at least %d characters)", search.MinTermLength)
			}
			return nil
		}),
	)
}

type SearchCmd struct {
	flags *Flags
	fr    *iojson.FileReader[SearchInput]

	// flags
	query      string
	jsonOutput bool
	matches    bool
}

// NewSearchCmd creates the batch search command.
func NewSearchCmd(flags *Flags) *SearchCmd {
	return &SearchCmd{
		flags: flags,
		fr:    &iojson.FileReader[SearchInput]{},
	}
}

// Register adds the search command to the application.
func (cmd *SearchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "search",
		Usage: "Count several search terms across documents",
		UsageText: `pagelens search [options] <file|glob>...

Search with terms on the command line:
  pagelens search -q "invoice; total" 'docs/**/*.pdf'

Read a JSON request:
  echo '{"terms":["invoice","total"],"files":["a.pdf"]}' | pagelens search`,
		Description: `Runs a multi-term search over each document and prints per-term
counts. Terms are separated by semicolons; terms shorter than two
characters are ignored. Matching is case-insensitive; accented letters
only match themselves.

When no query is given and stdin is a terminal you are prompted for one.`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
			&cli.StringFlag{
				Name:        "query",
				Aliases:     []string{"q"},
				Usage:       "semicolon separated search terms",
				Destination: &cmd.query,
			},
			&cli.BoolFlag{
				Name:        "matches",
				Aliases:     []string{"m"},
				Usage:       "list every match with its page and position",
				Destination: &cmd.matches,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines, one per document",
				Destination: &cmd.jsonOutput,
			},
		},
		ShellComplete: DocumentCompleter(),
		Action:        cmd.run,
	})

	return app
}

func (cmd *SearchCmd) run(ctx context.Context, c *cli.Command) error {
	input, err := cmd.input(c)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}
	if err := input.Validate(); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	paths, err := ExpandPaths(input.Files)
	if err != nil {
		return err
	}

	cfg := cmd.flags.Config
	docOpts := viewer.TextOptions(cfg.Documents)
	agg := search.NewAggregator(logging.Component("search"))
	query := input.query()

	reports := make([]searchReport, 0, len(paths))
	for _, path := range paths {
		dctx := logging.WithDocument(ctx, path)

		doc, err := docsource.Open(path, docOpts)
		if err != nil {
			log.Warn().Ctx(dctx).Err(err).Msg("skipping document")
			reports = append(reports, searchReport{Path: path, Error: err.Error()})
			continue
		}

		l, _ := layout.Rebuild(document.Sizes(doc), cfg.Minimap.PageSpacing)
		res := agg.Query(doc, l, query)
		reports = append(reports, newSearchReport(path, doc.PageCount(), res, cmd.matches))
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		for _, r := range reports {
			if err := iojson.WriteLine(out, r); err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
		}
		return nil
	}

	for i, r := range reports {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		writeSearchReport(out, r)
	}
	return nil
}

// input collects the request from flags, a JSON file, stdin or a prompt.
func (cmd *SearchCmd) input(c *cli.Command) (SearchInput, error) {
	in := SearchInput{Query: cmd.query, Files: c.Args().Slice()}

	switch {
	case cmd.fr.Provided():
		fromFile, err := cmd.fr.Read()
		if err != nil {
			return in, fmt.Errorf("read input: %w", err)
		}
		return mergeInput(in, fromFile), nil

	case in.Query != "":
		return in, nil

	case term.IsTerminal(int(os.Stdin.Fd())):
		err := huh.NewInput().
			Title("Search terms").
			Description("Separate terms with ;").
			Placeholder("invoice; total").
			Value(&in.Query).
			Run()
		return in, err

	default:
		fromStdin, err := cmd.fr.Read()
		if err != nil {
			return in, fmt.Errorf("read input: %w", err)
		}
		return mergeInput(in, fromStdin), nil
	}
}

// mergeInput combines command line arguments with a JSON request. The
// request wins for the query; files from both are searched.
func mergeInput(args, req SearchInput) SearchInput {
	out := req
	if out.query() == "" {
		out.Query = args.Query
	}
	out.Files = append(slices.Clone(args.Files), req.Files...)
	return out
}

// ExpandPaths resolves doublestar globs and plain paths into a sorted,
// de-duplicated list of files. A pattern that matches nothing is an error.
func ExpandPaths(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("no files given")
	}

	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", arg, err)
			}
			if info.IsDir() {
				return nil, fmt.Errorf("%s is a directory; use a glob such as '%s/**/*.pdf'", arg, arg)
			}
			add(arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		for _, m := range matches {
			add(m)
		}
	}

	slices.Sort(out)
	return out, nil
}

// searchReport is the JSON output format for pagelens search --json.
type searchReport struct {
	Path    string         `json:"path"`
	Pages   int            `json:"pages"`
	Summary string         `json:"summary,omitempty"`
	Total   int            `json:"total"`
	Terms   []termCount    `json:"terms,omitempty"`
	Matches []matchSummary `json:"matches,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type termCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

type matchSummary struct {
	Term     string  `json:"term"`
	Page     int     `json:"page"` // 1-based
	Text     string  `json:"text"`
	Position float64 `json:"position"`
}

func newSearchReport(path string, pages int, res search.Result, withMatches bool) searchReport {
	r := searchReport{
		Path:    path,
		Pages:   pages,
		Summary: res.Summary(),
		Total:   res.Total,
	}
	for _, tc := range res.Terms {
		r.Terms = append(r.Terms, termCount{Term: tc.Term, Count: tc.Count})
	}
	if withMatches {
		for _, m := range res.Matches {
			r.Matches = append(r.Matches, matchSummary{
				Term:     m.Term,
				Page:     m.Page + 1,
				Text:     m.Text,
				Position: m.Position,
			})
		}
	}
	return r
}

func writeSearchReport(out io.Writer, r searchReport) {
	_, _ = fmt.Fprintln(out, styles.CommandHeaderStyle.Render(r.Path))
	if r.Error != "" {
		_, _ = fmt.Fprintf(out, "  error: %s\n", r.Error)
		return
	}
	_, _ = fmt.Fprintf(out, "  %s\n", r.Summary)

	if len(r.Matches) == 0 {
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "  TERM\tPAGE\tPOSITION\tTEXT")
	for _, m := range r.Matches {
		_, _ = fmt.Fprintf(w, "  %s\t%d\t%.3f\t%s\n", m.Term, m.Page, m.Position, m.Text)
	}
	_ = w.Flush()
}

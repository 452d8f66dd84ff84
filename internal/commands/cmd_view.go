package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/pagelens/internal/core/logging"
	"github.com/hay-kot/pagelens/internal/docsource"
	"github.com/hay-kot/pagelens/internal/tui"
	"github.com/hay-kot/pagelens/internal/viewer"
)

type ViewCmd struct {
	flags *Flags

	// flags
	zoom    string
	page    int
	search  string
	noWatch bool
}

// NewViewCmd creates the interactive viewer command.
func NewViewCmd(flags *Flags) *ViewCmd {
	return &ViewCmd{flags: flags}
}

// Flags returns the viewer flags for registration on the root command.
func (cmd *ViewCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "zoom",
			Usage:       "initial zoom (fit-width, fit-page or a factor like 1.5)",
			Destination: &cmd.zoom,
		},
		&cli.IntFlag{
			Name:        "page",
			Aliases:     []string{"p"},
			Usage:       "page to open at (1-based)",
			Destination: &cmd.page,
		},
		&cli.StringFlag{
			Name:        "search",
			Aliases:     []string{"s"},
			Usage:       "run a live search on open",
			Destination: &cmd.search,
		},
		&cli.BoolFlag{
			Name:        "no-watch",
			Usage:       "do not reload the document when the file changes",
			Destination: &cmd.noWatch,
		},
	}
}

// Register adds the view command to the application.
func (cmd *ViewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "view",
		Usage:     "Open a document in the interactive viewer",
		UsageText: "pagelens view [options] <file>",
		Description: `Opens a plain text, markdown or PDF file in the terminal viewer.

Drag to select text, double-click to select a word, / to search and b to
search several terms at once. Search hits are marked on the minimap strip
on the right; click a mark to jump to it.`,
		Flags:         cmd.Flags(),
		ShellComplete: DocumentCompleter(),
		Action:        cmd.Run,
	})
	return app
}

// Run executes the viewer. Exported for use as the default command.
func (cmd *ViewCmd) Run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one file to view, got %d", c.Args().Len())
	}
	path := c.Args().First()
	cfg := cmd.flags.Config

	if cmd.zoom != "" {
		cfg.View.Zoom = cmd.zoom
	}

	opts, err := viewer.OptionsFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("viewer options: %w", err)
	}
	opts.Clipboard = viewer.SystemClipboard{}

	docOpts := viewer.TextOptions(cfg.Documents)
	doc, err := docsource.Open(path, docOpts)
	if err != nil {
		return err
	}

	log.Info().
		Ctx(logging.WithDocument(ctx, path)).
		Str("kind", docsource.KindFor(path).String()).
		Int("pages", doc.PageCount()).
		Msg("opening viewer")

	session := viewer.New(logging.Component("viewer"), opts)
	session.Open(doc)

	tuiOpts := tui.Options{Path: path, DocOptions: docOpts}
	if cfg.Documents.WatchEnabled() && !cmd.noWatch {
		w, err := tui.NewFileWatcher(path, docOpts)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("file watching disabled")
		} else {
			defer func() { _ = w.Close() }()
			tuiOpts.Watcher = w
		}
	}

	m := tui.New(session, cfg, tuiOpts)
	if cmd.page > 0 {
		m = m.WithStartPage(cmd.page - 1)
	}
	if cmd.search != "" {
		m = m.WithStartSearch(cmd.search)
	}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

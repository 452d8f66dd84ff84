// Command docgen generates CLI reference documentation from the pagelens
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/pagelens/internal/commands"
)

func main() {
	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "pagelens",
		Usage:     "View and search paginated documents in the terminal",
		UsageText: "pagelens [global options] [file] | command [command options]",
		Description: `pagelens lays out plain text, markdown and PDF pages on a scrollable canvas
with mouse text selection, live search and a minimap of search hits.

Run 'pagelens <file>' to open the interactive viewer.
Run 'pagelens search -q "a; b" <files>' to count terms across documents.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("PAGELENS_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file",
				Sources: cli.EnvVars("PAGELENS_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("PAGELENS_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
		},
	}

	viewCmd := commands.NewViewCmd(flags)
	root.Flags = append(root.Flags, viewCmd.Flags()...)

	root = viewCmd.Register(root)
	root = commands.NewSearchCmd(flags).Register(root)
	root = commands.NewLayoutCmd(flags).Register(root)
	root = commands.NewDoctorCmd(flags).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}

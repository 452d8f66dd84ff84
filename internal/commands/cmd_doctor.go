package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/pagelens/internal/core/doctor"
	"github.com/hay-kot/pagelens/internal/core/styles"
	"github.com/hay-kot/pagelens/internal/docsource"
	"github.com/hay-kot/pagelens/internal/viewer"
	"github.com/hay-kot/pagelens/pkg/iojson"
)

type DoctorCmd struct {
	flags  *Flags
	format string

	// probes, replaced in tests
	clipboard  func() bool
	isTerminal func(fd int) bool
}

// NewDoctorCmd creates the health check command.
func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{
		flags:      flags,
		clipboard:  viewer.SystemClipboard{}.Available,
		isTerminal: term.IsTerminal,
	}
}

// Register adds the doctor command to the application.
func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "doctor",
		Usage:     "Run health checks on your pagelens setup",
		UsageText: "pagelens doctor [options] [file...]",
		Description: `Runs diagnostic checks on configuration, clipboard access, the terminal
and logging. Files given as arguments are opened the way the viewer would
open them.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		ShellComplete: DocumentCompleter(),
		Action:        cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) checks(paths []string) []doctor.Check {
	cfg := cmd.flags.Config
	docOpts := viewer.TextOptions(cfg.Documents)

	checks := []doctor.Check{
		doctor.NewConfigCheck(cfg, cmd.flags.ConfigPath),
		doctor.NewClipboardCheck(cmd.clipboard),
		doctor.NewTerminalCheck(cmd.isTerminal),
		doctor.NewLogFileCheck(cmd.flags.LogFile),
	}
	if len(paths) > 0 {
		checks = append(checks, doctor.NewDocumentsCheck(paths, func(path string) (int, error) {
			doc, err := docsource.Open(path, docOpts)
			if err != nil {
				return 0, err
			}
			return doc.PageCount(), nil
		}))
	}
	return checks
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := doctor.RunAll(ctx, cmd.checks(c.Args().Slice()))

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(c.Root().Writer, results)
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DoctorCmd) outputText(w io.Writer, results []doctor.Result) error {
	divider := styles.TextMutedStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.TextPrimaryBold.Render("pagelens doctor"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, styles.TextForegroundBold.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.TextMutedStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.TextSuccessStyle.Render("✔")
			case doctor.StatusWarn:
				icon = styles.TextWarningStyle.Render("●")
			case doctor.StatusFail:
				icon = styles.TextErrorStyle.Render("✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	summary := fmt.Sprintf("%s  %s  %s",
		styles.TextSuccessStyle.Render(fmt.Sprintf("%d passed", passed)),
		styles.TextWarningStyle.Render(fmt.Sprintf("%d warnings", warned)),
		styles.TextErrorStyle.Render(fmt.Sprintf("%d failed", failed)),
	)
	_, _ = fmt.Fprintln(w, summary)

	if failed > 0 {
		return cli.Exit("", 1)
	}

	return nil
}

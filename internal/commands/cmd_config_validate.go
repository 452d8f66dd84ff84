package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/pagelens/internal/core/config"
	"github.com/hay-kot/pagelens/internal/core/styles"
	"github.com/hay-kot/pagelens/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "pagelens config validate [options]",
				Description: "Validates the configuration file, checking zoom settings, colors, thresholds and the file itself.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationError is one field problem reported by criterio.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationReport struct {
	Path     string                     `json:"path"`
	Valid    bool                       `json:"valid"`
	Errors   []validationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	report := cmd.validate()

	out := c.Root().Writer
	if cmd.format == "json" {
		if err := iojson.WriteWith(out, c.Root().ErrWriter, report); err != nil {
			return err
		}
	} else {
		writeValidationText(out, report)
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) validate() validationReport {
	cfg := cmd.flags.Config
	report := validationReport{Path: cmd.flags.ConfigPath, Valid: true}

	if err := cfg.ValidateDeep(cmd.flags.ConfigPath); err != nil {
		report.Valid = false
		report.Errors = flattenErrors(err)
	}
	report.Warnings = cfg.Warnings()
	return report
}

// flattenErrors turns criterio field errors into one entry per field.
func flattenErrors(err error) []validationError {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationError{{Field: "config", Message: err.Error()}}
	}

	out := make([]validationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, validationError{Field: fe.Field, Message: fe.Err.Error()})
	}
	return out
}

func writeValidationText(w io.Writer, r validationReport) {
	for _, warn := range r.Warnings {
		item := warn.Category
		if warn.Item != "" {
			item += "." + warn.Item
		}
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.TextWarningStyle.Render("warn"), item, warn.Message)
	}

	for _, e := range r.Errors {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.TextErrorStyle.Render("error"), e.Field, e.Message)
	}

	if len(r.Warnings) > 0 || len(r.Errors) > 0 {
		_, _ = fmt.Fprintln(w)
	}

	if r.Valid {
		_, _ = fmt.Fprintln(w, styles.TextSuccessStyle.Render("Configuration is valid"))
		return
	}
	_, _ = fmt.Fprintf(w, "%s\n", styles.TextErrorStyle.Render(fmt.Sprintf("%d error(s) found", len(r.Errors))))
}

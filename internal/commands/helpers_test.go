package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/pagelens/internal/core/config"
)

// testFlags returns flags carrying a default config with small pages.
func testFlags(t *testing.T) *Flags {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Documents.LinesPerPage = 2
	return &Flags{Config: &cfg}
}

type registrar interface {
	Register(app *cli.Command) *cli.Command
}

// runApp runs a root command with cmd registered and returns what it wrote.
func runApp(t *testing.T, cmd registrar, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := &cli.Command{
		Name:           "pagelens",
		Writer:         &out,
		ErrWriter:      &errOut,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	app = cmd.Register(app)
	err := app.Run(context.Background(), append([]string{"pagelens"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

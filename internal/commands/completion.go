package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/pagelens/internal/docsource"
)

// DocumentCompleter returns a ShellCompleteFunc that suggests openable
// documents and directories below the directory of the last typed argument.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func DocumentCompleter() cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		prefix := ""
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
			prefix = last
		}

		w := cmd.Root().Writer
		for _, c := range documentCandidates(prefix) {
			_, _ = fmt.Fprintln(w, c)
		}
	}
}

// documentCandidates lists entries in the directory part of prefix whose
// names start with the rest of it. Hidden entries are skipped unless the
// prefix asks for them.
func documentCandidates(prefix string) []string {
	dir, base := filepath.Split(prefix)
	readDir := dir
	if readDir == "" {
		readDir = "."
	}

	entries, err := os.ReadDir(readDir)
	if err != nil {
		return nil
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if e.IsDir() {
			out = append(out, dir+name+string(filepath.Separator))
			continue
		}
		if isDocument(name) {
			out = append(out, dir+name)
		}
	}
	return out
}

func isDocument(name string) bool {
	if docsource.KindFor(name) != docsource.KindText {
		return true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".text", ".log", "":
		return true
	}
	return false
}

package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/pagelens/internal/core/config"
)

// ConfigCheck validates the loaded configuration and reports its warnings.
type ConfigCheck struct {
	cfg  *config.Config
	path string
}

// NewConfigCheck creates a config check for cfg loaded from path.
func NewConfigCheck(cfg *config.Config, path string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, path: path}
}

func (c *ConfigCheck) Name() string { return "Configuration" }

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if _, err := os.Stat(c.path); errors.Is(err, os.ErrNotExist) {
		result.add(StatusPass, "config file", "not found, using defaults")
	} else {
		result.add(StatusPass, "config file", c.path)
	}

	if err := c.cfg.ValidateDeep(c.path); err != nil {
		var fieldErrs criterio.FieldErrors
		if !errors.As(err, &fieldErrs) {
			result.add(StatusFail, "validation", err.Error())
			return result
		}
		for _, fe := range fieldErrs {
			result.add(StatusFail, fe.Field, fe.Err.Error())
		}
	}

	for _, w := range c.cfg.Warnings() {
		label := w.Category
		if w.Item != "" {
			label = w.Item
		}
		result.add(StatusWarn, label, w.Message)
	}

	return result
}

// ClipboardCheck reports whether copies can reach the system clipboard.
type ClipboardCheck struct {
	available func() bool
}

// NewClipboardCheck creates a clipboard check using available as the probe.
func NewClipboardCheck(available func() bool) *ClipboardCheck {
	return &ClipboardCheck{available: available}
}

func (c *ClipboardCheck) Name() string { return "Clipboard" }

func (c *ClipboardCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}
	if c.available() {
		result.add(StatusPass, "system clipboard", "available")
	} else {
		result.add(StatusWarn, "system clipboard", "unavailable; copies fall back to the terminal (OSC 52)")
	}
	return result
}

// TerminalCheck reports whether stdin and stdout are terminals.
type TerminalCheck struct {
	isTerminal func(fd int) bool
}

// NewTerminalCheck creates a terminal check using isTerminal as the probe.
func NewTerminalCheck(isTerminal func(fd int) bool) *TerminalCheck {
	return &TerminalCheck{isTerminal: isTerminal}
}

func (c *TerminalCheck) Name() string { return "Terminal" }

func (c *TerminalCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}
	for _, f := range []struct {
		label string
		fd    int
	}{
		{"stdin", int(os.Stdin.Fd())},
		{"stdout", int(os.Stdout.Fd())},
	} {
		if c.isTerminal(f.fd) {
			result.add(StatusPass, f.label, "terminal")
		} else {
			result.add(StatusWarn, f.label, "not a terminal; the viewer needs an interactive terminal")
		}
	}
	return result
}

// LogFileCheck verifies the log file directory can be created.
type LogFileCheck struct {
	path string
}

// NewLogFileCheck creates a log file check for path.
func NewLogFileCheck(path string) *LogFileCheck {
	return &LogFileCheck{path: path}
}

func (c *LogFileCheck) Name() string { return "Logging" }

func (c *LogFileCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}
	if c.path == "" {
		result.add(StatusPass, "log file", "none, logging to stdout")
		return result
	}

	dir := filepath.Dir(c.path)
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		result.add(StatusPass, "log file", fmt.Sprintf("%s (directory will be created)", c.path))
	case err != nil:
		result.add(StatusFail, "log file", fmt.Sprintf("cannot access %s: %v", dir, err))
	case !info.IsDir():
		result.add(StatusFail, "log file", fmt.Sprintf("%s is not a directory", dir))
	default:
		result.add(StatusPass, "log file", c.path)
	}
	return result
}

// OpenFunc opens a document and returns its page count.
type OpenFunc func(path string) (int, error)

// DocumentsCheck opens each path the way the viewer would.
type DocumentsCheck struct {
	paths []string
	open  OpenFunc
}

// NewDocumentsCheck creates a check that opens every path with open.
func NewDocumentsCheck(paths []string, open OpenFunc) *DocumentsCheck {
	return &DocumentsCheck{paths: paths, open: open}
}

func (c *DocumentsCheck) Name() string { return "Documents" }

func (c *DocumentsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}
	for _, p := range c.paths {
		pages, err := c.open(p)
		switch {
		case err != nil:
			result.add(StatusFail, p, err.Error())
		case pages == 0:
			result.add(StatusWarn, p, "no pages")
		default:
			result.add(StatusPass, p, fmt.Sprintf("%d page(s)", pages))
		}
	}
	return result
}

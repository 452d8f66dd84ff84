package tui

import (
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/hay-kot/pagelens/internal/docsource"
	"github.com/hay-kot/pagelens/internal/docsource/textdoc"
)

// documentReloadedMsg carries a freshly parsed copy of the open file.
type documentReloadedMsg struct {
	doc    *textdoc.Document
	err    error
	manual bool // requested by the user rather than the watcher
}

// FileWatcher reloads one document when it changes on disk. The parent
// directory is watched so editors that replace the file on save are seen.
type FileWatcher struct {
	watcher     *fsnotify.Watcher
	path        string
	opts        textdoc.Options
	debounceDur time.Duration
}

// NewFileWatcher creates a watcher for path.
func NewFileWatcher(path string, opts textdoc.Options) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return &FileWatcher{
		watcher:     watcher,
		path:        abs,
		opts:        opts,
		debounceDur: 150 * time.Millisecond,
	}, nil
}

// Start returns a command that waits for the next change to the file.
// Callers re-issue Start after each documentReloadedMsg.
func (w *FileWatcher) Start() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if !w.relevant(event) {
					continue
				}

				// let the writer finish before parsing
				time.Sleep(w.debounceDur)

				drained := false
				for !drained {
					select {
					case <-w.watcher.Events:
					default:
						drained = true
					}
				}

				doc, err := docsource.Open(w.path, w.opts)
				return documentReloadedMsg{doc: doc, err: err}

			case _, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Close stops the watcher.
func (w *FileWatcher) Close() error {
	return w.watcher.Close()
}

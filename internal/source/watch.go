package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/vlist/internal/log"
	"github.com/fsnotify/fsnotify"
)

// ReloadMsg carries the records of a data source file that changed on disk.
type ReloadMsg struct {
	Path    string
	Records []Record
	Err     error
}

// Watcher reloads a data source file whenever it is written.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	updates chan ReloadMsg
}

// Watch starts watching path until ctx is done or Close is called. The
// parent directory is watched so editors that replace the file on save are
// followed.
func Watch(ctx context.Context, path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		fsw:     fsw,
		updates: make(chan ReloadMsg, 1),
	}
	go w.run(ctx)
	return w, nil
}

func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. Pending WaitForReload commands return nil.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer log.RecoverPanic("source.Watcher.run", nil)
	defer close(w.updates)

	for {
		select {
		case <-ctx.Done():
			w.fsw.Close()
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			records, err := Load(w.path)
			if err != nil {
				slog.Warn("Failed to reload data source", "path", w.path, "error", err)
			} else {
				slog.Debug("Data source reloaded", "path", w.path, "records", len(records))
			}
			w.publish(ReloadMsg{Path: w.path, Records: records, Err: err})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "path", w.path, "error", err)
		}
	}
}

// publish replaces an update nobody picked up yet, only the latest contents
// matter.
func (w *Watcher) publish(msg ReloadMsg) {
	for {
		select {
		case w.updates <- msg:
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}

// WaitForReload waits for the next reload. Re-issue it after every
// ReloadMsg to keep listening.
func WaitForReload(w *Watcher) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-w.updates
		if !ok {
			return nil
		}
		return msg
	}
}

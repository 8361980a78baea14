package workspace

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

var watchLog = commonlog.GetLogger("oxiparse.watch")

type EventKind int

const (
	// EventParsed means the file was (re)parsed; Event.File holds the result.
	EventParsed EventKind = iota
	EventRemoved
)

func (k EventKind) String() string {
	if k == EventRemoved {
		return "removed"
	}
	return "parsed"
}

type Event struct {
	Path string
	Kind EventKind
	File *FileInfo
}

// Watcher keeps a Workspace in sync with the file system.
type Watcher struct {
	workspace *Workspace
	fs        *fsnotify.Watcher
	events    chan Event
}

// NewWatcher watches every directory below the workspace root that is not
// excluded. Directories created later are picked up while Run is active.
func NewWatcher(ws *Workspace) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		workspace: ws,
		fs:        fw,
		events:    make(chan Event, 128),
	}
	if err := w.addTree(ws.RootDir()); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) Events() <-chan Event {
	return w.events
}

func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != w.workspace.RootDir() && w.workspace.Excluded(path) {
			return filepath.SkipDir
		}
		watchLog.Debugf("watching %s", path)
		return w.fs.Add(path)
	})
}

// Run delivers file system events until ctx is cancelled or the watcher is
// closed. The events channel is closed when Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.handle(ctx, ev) {
				return ctx.Err()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			watchLog.Warningf("watch error: %s", err)
		}
	}
}

// handle reports false when ctx was cancelled while an event was pending.
func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event) bool {
	path := ev.Name
	if w.workspace.Excluded(path) {
		return true
	}

	if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		if w.workspace.GetFile(path) == nil {
			return true
		}
		w.workspace.RemoveFile(path)
		return w.emit(ctx, Event{Path: path, Kind: EventRemoved})
	}

	if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return true
	}
	if ev.Op&fsnotify.Create != 0 && isDir(path) {
		if err := w.addTree(path); err != nil {
			watchLog.Warningf("watching %s: %s", path, err)
		}
		sources, _ := w.workspace.sourcesIn(path)
		for _, src := range sources {
			if !w.parse(ctx, src) {
				return false
			}
		}
		return true
	}
	if !w.workspace.cfg.IsSource(path) {
		return true
	}
	return w.parse(ctx, path)
}

func (w *Watcher) parse(ctx context.Context, path string) bool {
	if err := w.workspace.ScanFile(path); err != nil {
		// the file may be gone again already
		watchLog.Debugf("%s", err)
		return true
	}
	return w.emit(ctx, Event{Path: path, Kind: EventParsed, File: w.workspace.GetFile(path)})
}

func (w *Watcher) emit(ctx context.Context, ev Event) bool {
	watchLog.Infof("%s %s", ev.Kind, ev.Path)
	select {
	case w.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

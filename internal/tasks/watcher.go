package tasks

import (
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DocumentSink receives change notifications for documents under the tasks
// root, with paths relative to that root. Implemented by the timer engine.
type DocumentSink interface {
	OnExternalDocumentChange(path string)
}

// Watcher forwards file-change events under the tasks root to a DocumentSink,
// so the core can notice when a linked task's document was edited.
type Watcher struct {
	root   string
	sink   DocumentSink
	log    zerolog.Logger
	fsw    *fsnotify.Watcher
	doneWg sync.WaitGroup
}

// NewWatcher creates a Watcher for the tasks folder rooted at root.
func NewWatcher(root string, sink DocumentSink, logger zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root: root,
		sink: sink,
		log:  logger,
		fsw:  fsw,
	}
	if err := w.addRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w.doneWg.Add(1)
	go w.run()
	return w, nil
}

// addRecursive watches root and all of its subdirectories. fsnotify watches
// are per-directory, not recursive.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) run() {
	defer w.doneWg.Done()
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			rel, err := filepath.Rel(w.root, event.Name)
			if err != nil {
				continue
			}
			w.sink.OnExternalDocumentChange(rel)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("tasks watcher error")
		}
	}
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	w.doneWg.Wait()
	return err
}

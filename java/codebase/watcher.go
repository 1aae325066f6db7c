package codebase

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher keeps a codebase in sync with the files below its root.
type FileWatcher struct {
	codebase *Codebase
	watcher  *fsnotify.Watcher
}

func NewFileWatcher(c *Codebase) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &FileWatcher{codebase: c, watcher: w}
	if err := fw.addTree(c.RootDir()); err != nil {
		w.Close()
		return nil, err
	}
	return fw, nil
}

func (w *FileWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// Run processes file events until ctx is done or Stop is called.
func (w *FileWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warningf("watch: %s", err)
		}
	}
}

func (w *FileWatcher) handle(event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Create) && isDir(event.Name):
		if err := w.addTree(event.Name); err != nil {
			log.Warningf("watch %s: %s", event.Name, err)
		}
	case filepath.Ext(event.Name) != ".java":
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		log.Debugf("removed %s", event.Name)
		w.codebase.RemoveFile(event.Name)
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		log.Debugf("changed %s", event.Name)
		if err := w.codebase.ScanFile(event.Name); err != nil {
			log.Warningf("scan %s: %s", event.Name, err)
		}
	}
}

// Stop closes the underlying watcher, which makes Run return.
func (w *FileWatcher) Stop() error {
	return w.watcher.Close()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

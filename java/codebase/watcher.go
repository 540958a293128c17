package codebase

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher rescans files of a codebase when they change on disk. Bursts of
// events are collected until the directory has been quiet for the debounce
// interval; onChange then receives the paths whose content changed or that
// were removed.
type Watcher struct {
	codebase *Codebase
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(changed []string)

	wg sync.WaitGroup
}

func NewWatcher(c *Codebase, debounce time.Duration, onChange func(changed []string)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		codebase: c,
		watcher:  watcher,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Start watches every directory below the root.
func (w *Watcher) Start() error {
	if err := w.addWatches(w.codebase.RootDir()); err != nil {
		return err
	}
	w.wg.Add(1)
	go w.run()
	return nil
}

// Close stops watching and waits for a running onChange to return.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) addWatches(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) run() {
	defer w.wg.Done()

	pending := map[string]bool{}
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.handleEvent(event, pending) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watch: %s", err)
		case <-timer.C:
			w.flush(pending)
			pending = map[string]bool{}
		}
	}
}

// handleEvent records the relative path of a matching file event. New
// directories are watched as well.
func (w *Watcher) handleEvent(event fsnotify.Event, pending map[string]bool) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addWatches(event.Name); err != nil {
				log.Warningf("watch %s: %s", event.Name, err)
			}
			return false
		}
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	rel, err := filepath.Rel(w.codebase.RootDir(), event.Name)
	if err != nil || !w.codebase.Matches(rel) {
		return false
	}
	pending[filepath.ToSlash(rel)] = true
	return true
}

func (w *Watcher) flush(pending map[string]bool) {
	var changed []string
	for rel := range pending {
		ok, err := w.codebase.ScanFile(rel)
		if errors.Is(err, fs.ErrNotExist) {
			ok = w.codebase.RemoveFile(rel)
		} else if err != nil {
			log.Warningf("%s", err)
			continue
		}
		if ok {
			changed = append(changed, rel)
		}
	}
	if len(changed) == 0 {
		return
	}
	sort.Strings(changed)
	log.Infof("%d files changed", len(changed))
	w.onChange(changed)
}

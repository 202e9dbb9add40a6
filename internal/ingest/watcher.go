package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rshade/tablectl/internal/logging"
)

// DefaultDebounce is the quiet period after the last file event before records
// are reloaded.
const DefaultDebounce = 200 * time.Millisecond

// Reload is the outcome of reloading the watched files.
type Reload struct {
	Records []Record
	Err     error
	At      time.Time
}

// Watcher reloads a set of record files whenever one of them changes.
type Watcher struct {
	paths    []string
	watched  map[string]bool
	format   Format
	debounce time.Duration
	fs       *fsnotify.Watcher
}

// NewWatcher watches the directories containing paths. Directories rather
// than files are watched so editors that replace files on save are seen.
// Stdin cannot be watched.
func NewWatcher(paths []string, format Format, debounce time.Duration) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		paths:    paths,
		watched:  make(map[string]bool, len(paths)),
		format:   format,
		debounce: debounce,
		fs:       fsw,
	}

	dirs := map[string]bool{}
	for _, p := range paths {
		if p == StdinPath {
			_ = fsw.Close()
			return nil, errors.New("cannot watch standard input")
		}
		abs, absErr := filepath.Abs(p)
		if absErr != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, absErr)
		}
		w.watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if addErr := fsw.Add(dir); addErr != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, addErr)
		}
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	return err == nil && w.watched[abs]
}

// Run delivers a Reload on out after each burst of changes to the watched
// files, until ctx is cancelled or the watcher is closed. Run closes the
// watcher when it returns.
func (w *Watcher) Run(ctx context.Context, out chan<- Reload) error {
	defer w.fs.Close()
	log := logging.Component(ctx, "watcher")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("input changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("file watcher error")

		case <-fire:
			fire = nil
			records, err := LoadAll(ctx, w.paths, w.format)
			reload := Reload{Records: records, Err: err, At: time.Now()}
			select {
			case out <- reload:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

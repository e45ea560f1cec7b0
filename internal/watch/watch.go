// Package watch provides the filesystem watcher that keeps a workspace
// index live: fsnotify events are debounced and batched, then handed to
// an indexer.Indexer for extraction. Single-threaded event scheduling
// (one goroutine owns the debounce timer and batch set) with parallel
// extraction underneath, per SPEC_FULL.md's concurrency note.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/oxhq/julie/internal/indexer"
)

// DefaultDebounce matches spec.md §4.G's 200-500ms coalescing window.
const DefaultDebounce = 300 * time.Millisecond

// Watcher batches fsnotify events for one workspace root and drives an
// Indexer's incremental re-extraction.
type Watcher struct {
	root     string
	ix       *indexer.Indexer
	log      *slog.Logger
	debounce time.Duration
	ignore   *ignore.GitIgnore
	fsw      *fsnotify.Watcher
}

// New builds a Watcher rooted at root. ignorePatterns are gitignore-style
// lines (SPEC_FULL.md's doublestar/go-gitignore ambient dependency).
func New(root string, ix *indexer.Indexer, log *slog.Logger, ignorePatterns []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:     root,
		ix:       ix,
		log:      log,
		debounce: DefaultDebounce,
		ignore:   ignore.CompileIgnoreLines(ignorePatterns...),
		fsw:      fsw,
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			rel, _ := filepath.Rel(root, path)
			if rel != "." && w.ignore.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return w.fsw.Add(path)
		}
		return nil
	})
}

// SetDebounce overrides the default coalescing window; call before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Run blocks, debouncing fsnotify events into batches and reindexing
// each batch, until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(pending) == 0 {
			return
		}
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		pending = make(map[string]struct{})

		res, err := w.ix.IndexFiles(ctx, paths)
		if err != nil {
			w.log.Warn("watch: batch index failed", "err", err)
			return
		}
		w.log.Debug("watch: batch indexed",
			"extracted", res.FilesExtracted, "unchanged", res.FilesUnchanged, "skipped", res.FilesSkipped,
			"embedded", res.SymbolsEmbedded)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			rel, _ := filepath.Rel(w.root, ev.Name)
			if w.ignore.MatchesPath(rel) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				pending[ev.Name] = struct{}{}
			}
			if ev.Op&fsnotify.Remove != 0 {
				delete(pending, ev.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			flush()
			timerC = nil

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch: fsnotify error", "err", err)
		}
	}
}

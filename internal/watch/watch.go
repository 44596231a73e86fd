// Package watch regenerates a puzzle whenever its definition or word lists
// change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a batch of changes triggers a
// rebuild. Editors often write a file several times when saving.
const DefaultDebounce = 300 * time.Millisecond

type Config struct {
	// Patterns are doublestar patterns for the files that trigger a
	// rebuild. Plain file paths work as well.
	Patterns []string
	Debounce time.Duration
	Logger   *slog.Logger
}

type Watcher struct {
	fsWatcher *fsnotify.Watcher
	patterns  []string
	debouncer *Debouncer
	flushed   chan []string
	onChange  func(ctx context.Context, paths []string)
	log       *slog.Logger
}

// New creates a watcher for the directories the patterns can match in.
// onChange runs on the goroutine that calls Run, one batch at a time.
func New(cfg Config, onChange func(ctx context.Context, paths []string)) (*Watcher, error) {
	if len(cfg.Patterns) == 0 {
		return nil, fmt.Errorf("nothing to watch")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	window := cfg.Debounce
	if window <= 0 {
		window = DefaultDebounce
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		flushed:   make(chan []string, 1),
		onChange:  onChange,
		log:       log,
	}
	for _, p := range cfg.Patterns {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsWatcher.Close()
			return nil, err
		}
		w.patterns = append(w.patterns, filepath.ToSlash(abs))
	}
	w.debouncer = NewDebouncer(window, w.enqueue)

	for _, dir := range watchDirs(w.patterns) {
		if err := fsWatcher.Add(dir); err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		log.Debug("watching directory", "path", dir)
	}
	return w, nil
}

// watchDirs returns the static base directory of every pattern, plus all
// subdirectories when the pattern recurses.
func watchDirs(patterns []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}

	for _, p := range patterns {
		base, rest := doublestar.SplitPattern(p)
		dir := filepath.FromSlash(base)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		add(dir)
		if strings.Contains(rest, "**") {
			filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err == nil && d.IsDir() {
					add(path)
				}
				return nil
			})
		}
	}
	slices.Sort(dirs)
	return dirs
}

// Matches reports whether path is one of the watched files.
func (w *Watcher) Matches(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	abs = filepath.ToSlash(abs)
	for _, p := range w.patterns {
		if ok, _ := doublestar.Match(p, abs); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) enqueue(paths []string) {
	for {
		select {
		case w.flushed <- paths:
			return
		default:
		}
		// A batch is already waiting; merge into it.
		select {
		case pending := <-w.flushed:
			paths = mergeSorted(pending, paths)
		default:
		}
	}
}

func mergeSorted(a, b []string) []string {
	out := append(slices.Clone(a), b...)
	slices.Sort(out)
	return slices.Compact(out)
}

// Run delivers change batches to onChange until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsWatcher.Close()
	defer w.debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fsWatcher.Add(event.Name); err == nil {
						w.log.Debug("watching directory", "path", event.Name)
					}
					continue
				}
			}
			if w.Matches(event.Name) {
				w.log.Debug("file event", "path", event.Name, "op", event.Op.String())
				w.debouncer.Add(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)

		case paths := <-w.flushed:
			w.log.Info("change detected", "files", len(paths))
			w.onChange(ctx, paths)
		}
	}
}

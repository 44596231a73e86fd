package watch

import (
	"slices"
	"sync"
	"time"
)

// Debouncer collects changed paths and flushes them once no new path has
// arrived for the length of the window.
type Debouncer struct {
	window  time.Duration
	paths   map[string]bool
	mu      sync.Mutex
	timer   *time.Timer
	onFlush func([]string)
	stopped bool
}

func NewDebouncer(window time.Duration, onFlush func([]string)) *Debouncer {
	return &Debouncer{
		window:  window,
		paths:   make(map[string]bool),
		onFlush: onFlush,
	}
}

func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.paths[path] = true

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		d.flushLocked()
	})
}

// flushLocked must be called with mu held and releases it.
func (d *Debouncer) flushLocked() {
	paths := make([]string, 0, len(d.paths))
	for p := range d.paths {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	d.paths = make(map[string]bool)

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if len(paths) > 0 && d.onFlush != nil {
		d.onFlush(paths)
	}
}

// Stop cancels the pending flush. Paths collected so far are dropped.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.paths = make(map[string]bool)
}

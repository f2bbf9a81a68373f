// Package watcher signals repository operations by watching jj's op-heads
// directory. Every committed jj operation swaps the head file there, so a
// filesystem event on that directory means the log is stale.
package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dlukegordon/majjit/internal/log"
)

const debounce = 100 * time.Millisecond

type Watcher struct {
	fs     *fsnotify.Watcher
	events chan struct{}
	done   chan struct{}
}

// New watches dir and coalesces bursts of filesystem events into single
// refresh signals.
func New(dir string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		fs:     fs,
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go w.loop()
	log.Debug(log.CatWatcher, "watching for repo operations", "dir", dir)
	return w, nil
}

// Events delivers one signal per burst of repository activity. The channel
// holds at most one pending signal; signals arriving while one is pending
// collapse into it.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case _, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			select {
			case w.events <- struct{}{}:
			default:
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatWatcher, "watch error", "err", err)
		}
	}
}

// Package watcher notifies a running playground when the glint config
// file changes on disk, debouncing bursts of writes into one reload.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/glintsh/glint/internal/log"
)

// Watcher watches the directory holding the config file. Watching the
// directory rather than the file survives editors that write a temp file
// and rename it over the target.
type Watcher struct {
	fsw      *fsnotify.Watcher
	base     string
	dir      string
	debounce time.Duration
	reloads  chan struct{}
	done     chan struct{}
}

// Config holds watcher options.
type Config struct {
	Path        string
	DebounceDur time.Duration
}

// DefaultConfig returns defaults for watching path.
func DefaultConfig(path string) Config {
	return Config{Path: path, DebounceDur: 500 * time.Millisecond}
}

// New creates a watcher for the config file at cfg.Path.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsw:      fsw,
		base:     filepath.Base(cfg.Path),
		dir:      filepath.Dir(cfg.Path),
		debounce: cfg.DebounceDur,
		reloads:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching and returns the channel that receives one signal
// per debounced batch of config edits.
func (w *Watcher) Start() (<-chan struct{}, error) {
	if err := w.fsw.Add(w.dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", w.dir, err)
	}
	go w.loop()
	return w.reloads, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	// fire is nil until an edit arms the timer, so the select ignores it.
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if fire != nil && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.reloads <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err)

		case <-w.done:
			timer.Stop()
			return
		}
	}
}

// relevant reports whether ev is an edit of the config file itself.
// Rename counts: editors replace the file on save.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Base(ev.Name) == w.base
}

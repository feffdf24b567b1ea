// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package localstore

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/datastreams-knu/knubot-tui/internal/logging"
)

// Watcher reports external changes to the store file.
//
// This is the terminal analog of the browser "storage" event: when another
// knubot process logs in or out, the running TUI notices and flips between
// the guest and member landing screens without a restart.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	changes  chan struct{}
	done     chan struct{}
}

// defaultDebounce coalesces the burst of writes sqlite makes per transaction.
const defaultDebounce = 250 * time.Millisecond

// NewWatcher starts watching the store's directory for writes to its file.
// The directory is watched rather than the file itself so that rename-style
// replacements do not silently detach the watch.
func NewWatcher(store *Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(store.Path())); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		path:     store.Path(),
		debounce: defaultDebounce,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes delivers one signal per (debounced) burst of external writes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	base := filepath.Base(w.path)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			// sqlite writes to local.db, local.db-wal and local.db-journal.
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(ev.Name)
			if name != base && name != base+"-wal" && name != base+"-journal" {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.L().WithError(err).Warn("localstore watcher error")
		case <-fire:
			timer = nil
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

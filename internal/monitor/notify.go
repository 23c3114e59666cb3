package monitor

import (
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mcdonaldj/fskit/internal/ports"
)

// NotifyWatcher implements ports.Watcher with OS-native change
// notifications via fsnotify. Unlike the polling Observer it reports
// events as they happen, but only for directories explicitly added,
// not their subtrees.
type NotifyWatcher struct {
	w      *fsnotify.Watcher
	events chan ports.WatchEvent
	errs   chan error
}

// NewNotifyWatcher creates and starts a native watcher.
func NewNotifyWatcher() (*NotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	nw := &NotifyWatcher{
		w:      w,
		events: make(chan ports.WatchEvent, 128),
		errs:   make(chan error, 1),
	}
	go nw.loop()
	return nw, nil
}

func (nw *NotifyWatcher) loop() {
	for {
		select {
		case ev, ok := <-nw.w.Events:
			if !ok {
				close(nw.events)
				return
			}
			nw.events <- ports.WatchEvent{Path: ev.Name, Op: translateOp(ev.Op), Time: time.Now()}
		case err, ok := <-nw.w.Errors:
			if !ok {
				return
			}
			nw.errs <- err
		}
	}
}

func translateOp(op fsnotify.Op) ports.WatchOp {
	var out ports.WatchOp
	if op.Has(fsnotify.Create) {
		out |= ports.OpCreate
	}
	if op.Has(fsnotify.Write) {
		out |= ports.OpWrite
	}
	if op.Has(fsnotify.Remove) {
		out |= ports.OpRemove
	}
	if op.Has(fsnotify.Rename) {
		out |= ports.OpRename
	}
	if op.Has(fsnotify.Chmod) {
		out |= ports.OpChmod
	}
	return out
}

// Events returns the channel change events are delivered on.
func (nw *NotifyWatcher) Events() <-chan ports.WatchEvent { return nw.events }

// Errors returns the channel watch errors are delivered on.
func (nw *NotifyWatcher) Errors() <-chan error { return nw.errs }

// Add starts watching the named path.
func (nw *NotifyWatcher) Add(name string) error { return nw.w.Add(name) }

// Remove stops watching the named path.
func (nw *NotifyWatcher) Remove(name string) error { return nw.w.Remove(name) }

// Close stops the watcher and releases its resources.
func (nw *NotifyWatcher) Close() error { return nw.w.Close() }

// Compile-time check that NotifyWatcher implements ports.Watcher.
var _ ports.Watcher = (*NotifyWatcher)(nil)

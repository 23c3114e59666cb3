// Package monitor provides file-change monitoring: a polling observer
// built on directory snapshots, a monitor driving several observers on
// an interval, and an OS-native watcher backed by fsnotify.
package monitor

import (
	"fmt"
	"time"

	"github.com/mcdonaldj/fskit/internal/ports"
	"github.com/mcdonaldj/fskit/internal/snapshot"
)

// Listener receives change events from an Observer.
type Listener func(ports.WatchEvent)

// Observer detects changes under a root by comparing successive
// snapshots. It is not safe for concurrent use; the Monitor drives
// each observer from a single goroutine.
type Observer struct {
	root      string
	last      *snapshot.Snapshot
	listeners []Listener
}

// NewObserver creates an observer for the tree rooted at root.
func NewObserver(root string) *Observer {
	return &Observer{root: root}
}

// Root returns the observed root path.
func (o *Observer) Root() string { return o.root }

// Subscribe registers a listener for future events.
func (o *Observer) Subscribe(l Listener) {
	o.listeners = append(o.listeners, l)
}

// Init captures the baseline snapshot. Changes made before Init are
// never reported.
func (o *Observer) Init() error {
	s, err := snapshot.Take(o.root)
	if err != nil {
		return fmt.Errorf("baseline snapshot of %s: %w", o.root, err)
	}
	o.last = s
	return nil
}

// Poll takes a fresh snapshot, emits an event per difference against
// the previous one, and advances the baseline. Calling Poll before
// Init is an error.
func (o *Observer) Poll() error {
	if o.last == nil {
		return fmt.Errorf("observer for %s polled before Init", o.root)
	}
	current, err := snapshot.Take(o.root)
	if err != nil {
		return fmt.Errorf("snapshot of %s: %w", o.root, err)
	}

	changes := snapshot.Diff(o.last, current)
	now := time.Now()
	o.emit(changes.Created, ports.OpCreate, now)
	o.emit(changes.Changed, ports.OpWrite, now)
	o.emit(changes.Deleted, ports.OpRemove, now)

	o.last = current
	return nil
}

func (o *Observer) emit(paths []string, op ports.WatchOp, now time.Time) {
	for _, p := range paths {
		ev := ports.WatchEvent{Path: p, Op: op, Time: now}
		for _, l := range o.listeners {
			l(ev)
		}
	}
}

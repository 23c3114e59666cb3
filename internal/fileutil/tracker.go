package fileutil

import (
	"errors"
	"sync"
)

// Tracker records temporary paths and deletes them all when closed,
// typically via `defer tracker.Close()`.
type Tracker struct {
	mu     sync.Mutex
	paths  []string
	closed bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Track registers a path for deletion at Close. Tracking after Close
// deletes the path immediately.
func (t *Tracker) Track(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		DeleteQuietly(path)
		return
	}
	t.paths = append(t.paths, path)
}

// Count returns the number of paths currently tracked.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.paths)
}

// Close deletes every tracked path in reverse registration order, so
// files created inside tracked directories go first. All deletion
// errors are joined into the returned error.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true

	var errs []error
	for i := len(t.paths) - 1; i >= 0; i-- {
		if err := ForceDelete(t.paths[i]); err != nil {
			errs = append(errs, err)
		}
	}
	t.paths = nil
	return errors.Join(errs...)
}

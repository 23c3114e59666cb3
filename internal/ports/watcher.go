package ports

import "time"

// WatchOp is a bitmask of change operations observed on a path.
type WatchOp uint32

const (
	OpCreate WatchOp = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Has reports whether op contains the given operation.
func (op WatchOp) Has(o WatchOp) bool { return op&o != 0 }

func (op WatchOp) String() string {
	switch {
	case op.Has(OpCreate):
		return "create"
	case op.Has(OpWrite):
		return "write"
	case op.Has(OpRemove):
		return "remove"
	case op.Has(OpRename):
		return "rename"
	case op.Has(OpChmod):
		return "chmod"
	}
	return "unknown"
}

// WatchEvent describes a filesystem change event.
type WatchEvent struct {
	Path string
	Op   WatchOp
	Time time.Time
}

// Watcher abstracts file-change notification. Production code uses the
// fsnotify-backed adapter in internal/monitor; tests use a channel-fed
// fake.
type Watcher interface {
	// Events returns the channel change events are delivered on.
	Events() <-chan WatchEvent

	// Errors returns the channel watch errors are delivered on.
	Errors() <-chan error

	// Add starts watching the named path.
	Add(name string) error

	// Remove stops watching the named path.
	Remove(name string) error

	// Close stops the watcher and releases its resources.
	Close() error
}

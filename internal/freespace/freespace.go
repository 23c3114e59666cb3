// Package freespace queries the capacity of the filesystem holding a
// given path. It asks the kernel directly instead of shelling out to
// external commands.
package freespace

// Usage describes the space of the filesystem containing a path, in
// bytes.
type Usage struct {
	// Total is the size of the filesystem.
	Total uint64
	// Free is the space not in use, including space reserved for
	// privileged users.
	Free uint64
	// Available is the space an unprivileged caller may actually use.
	Available uint64
}

// Used returns the number of bytes in use.
func (u Usage) Used() uint64 {
	if u.Free > u.Total {
		return 0
	}
	return u.Total - u.Free
}

// Stat returns the usage of the filesystem containing path.
func Stat(path string) (Usage, error) {
	return stat(path)
}

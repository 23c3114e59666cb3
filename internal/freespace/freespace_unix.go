//go:build !windows

package freespace

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func stat(path string) (Usage, error) {
	var fs unix.Statfs_t
	if err := unix.Statfs(path, &fs); err != nil {
		return Usage{}, fmt.Errorf("statfs %s: %w", path, err)
	}
	bsize := uint64(fs.Bsize)
	return Usage{
		Total:     uint64(fs.Blocks) * bsize,
		Free:      uint64(fs.Bfree) * bsize,
		Available: uint64(fs.Bavail) * bsize,
	}, nil
}

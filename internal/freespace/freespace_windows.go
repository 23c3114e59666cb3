//go:build windows

package freespace

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func stat(path string) (Usage, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return Usage{}, fmt.Errorf("encoding path %s: %w", path, err)
	}
	var available, total, free uint64
	if err := windows.GetDiskFreeSpaceEx(p, &available, &total, &free); err != nil {
		return Usage{}, fmt.Errorf("querying free space of %s: %w", path, err)
	}
	return Usage{Total: total, Free: free, Available: available}, nil
}

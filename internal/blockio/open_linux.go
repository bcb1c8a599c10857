//go:build linux

package blockio

import (
	"os"

	"golang.org/x/sys/unix"
)

// open uses O_DIRECT to bypass the page cache, the Linux counterpart of
// FILE_FLAG_NO_BUFFERING. O_DIRECT demands sector-aligned buffers and
// transfer sizes, which internal/engine's buffer allocator guarantees.
func open(path string, mode Mode) (*os.File, error) {
	flags := unix.O_DIRECT
	if mode == ModeRead {
		flags |= os.O_RDONLY
	} else {
		flags |= os.O_RDWR
	}
	return os.OpenFile(path, flags, 0)
}

//go:build linux

package diskutil

import (
	"os"

	"golang.org/x/sys/unix"
)

// sectorSize queries BLKSSZGET, the logical sector size ioctl, the Linux
// counterpart of GetVolumeSectorSize's IOCTL_DISK_GET_DRIVE_GEOMETRY. A
// failure (path isn't a block device, e.g. a regular file used in tests)
// yields 0, the same ambiguous "unknown" result the original returned for
// logical drive-letter handles.
func sectorSize(f *os.File, _ string) int {
	n, err := unix.IoctlGetInt(int(f.Fd()), unix.BLKSSZGET)
	if err != nil {
		return 0
	}
	return n
}

//go:build windows

package diskutil

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

const ioctlDiskGetDriveGeometry = 0x00070000

// sectorSize mirrors GetVolumeSectorSize: IOCTL_DISK_GET_DRIVE_GEOMETRY
// commonly fails for logical drive-letter handles, in which case 0 is
// returned so the caller can apply its own fallback policy rather than the
// original's interactive prompt.
func sectorSize(f *os.File, _ string) int {
	var geometry struct {
		Cylinders         int64
		MediaType         uint32
		TracksPerCylinder uint32
		SectorsPerTrack   uint32
		BytesPerSector    uint32
	}
	var bytesReturned uint32
	err := windows.DeviceIoControl(windows.Handle(f.Fd()), ioctlDiskGetDriveGeometry, nil, 0,
		(*byte)(unsafe.Pointer(&geometry)), uint32(unsafe.Sizeof(geometry)), &bytesReturned, nil)
	if err != nil {
		return 0
	}
	return int(geometry.BytesPerSector)
}

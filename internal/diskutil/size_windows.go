//go:build windows

package diskutil

import (
	"os"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

// byteLength mirrors GetDiskOrDriveSize's branching: every path tries
// IOCTL_DISK_GET_LENGTH_INFO first; if that fails, drive-letter
// destinations try GetDiskFreeSpaceEx, and then
// IOCTL_DISK_GET_DRIVE_GEOMETRY_EX is tried. The caller falls back to a
// plain Stat if every platform query fails.
func byteLength(f *os.File, path string, isSrc bool) (int64, error) {
	h := windows.Handle(f.Fd())

	if n, err := ioctlLengthInfo(h); err == nil {
		return n, nil
	}

	if !isSrc && isDriveLetterPath(path) {
		if n, err := driveFreeSpace(path); err == nil {
			return n, nil
		}
	}

	return ioctlDriveGeometryEx(h)
}

func isDriveLetterPath(path string) bool {
	if !strings.HasPrefix(path, `\\.\`) {
		return false
	}
	rest := path[4:]
	return (len(rest) == 2 || (len(rest) == 3 && rest[2] == '\\')) && rest[1] == ':'
}

const ioctlDiskGetLengthInfo = 0x0007405C
const ioctlDiskGetDriveGeometryEx = 0x000700A0

func ioctlLengthInfo(h windows.Handle) (int64, error) {
	var length int64
	var bytesReturned uint32
	err := windows.DeviceIoControl(h, ioctlDiskGetLengthInfo, nil, 0,
		(*byte)(unsafe.Pointer(&length)), uint32(unsafe.Sizeof(length)), &bytesReturned, nil)
	if err != nil {
		return 0, err
	}
	return length, nil
}

func ioctlDriveGeometryEx(h windows.Handle) (int64, error) {
	var geometry struct {
		Geometry      [24]byte
		DiskSize      int64
		PartitionInfo [16]byte
	}
	var bytesReturned uint32
	err := windows.DeviceIoControl(h, ioctlDiskGetDriveGeometryEx, nil, 0,
		(*byte)(unsafe.Pointer(&geometry)), uint32(unsafe.Sizeof(geometry)), &bytesReturned, nil)
	if err != nil {
		return 0, err
	}
	return geometry.DiskSize, nil
}

func driveFreeSpace(path string) (int64, error) {
	root := path[4:6] + `\`
	rootPtr, err := windows.UTF16PtrFromString(root)
	if err != nil {
		return 0, err
	}
	var freeAvailable, total, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(rootPtr, &freeAvailable, &total, &totalFree); err != nil {
		return 0, err
	}
	return int64(total), nil
}

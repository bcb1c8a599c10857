//go:build windows

package blockio

import (
	"os"

	"golang.org/x/sys/windows"
)

// open mirrors the original's CreateFileW call: FILE_FLAG_NO_BUFFERING
// bypasses the cache and demands sector-aligned buffers/offsets,
// FILE_FLAG_OVERLAPPED makes the handle usable with IOCP, and
// FILE_FLAG_SEQUENTIAL_SCAN hints the sequential access pattern a
// block-by-block copy exhibits.
func open(path string, mode Mode) (*os.File, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}

	access := uint32(windows.GENERIC_READ)
	share := uint32(windows.FILE_SHARE_READ)
	if mode == ModeWrite {
		access = windows.GENERIC_READ | windows.GENERIC_WRITE
		share = windows.FILE_SHARE_READ | windows.FILE_SHARE_WRITE
	}

	attrs := uint32(windows.FILE_FLAG_NO_BUFFERING | windows.FILE_FLAG_OVERLAPPED | windows.FILE_FLAG_SEQUENTIAL_SCAN)

	h, err := windows.CreateFile(pathPtr, access, share, nil, windows.OPEN_EXISTING, attrs, 0)
	if err != nil {
		return nil, err
	}
	return os.NewFile(uintptr(h), path), nil
}

// Package diskutil probes the byte length and sector size of a source or
// destination handle, the narrow device-capability interface the engine
// consumes. Policy decisions (prompt-for-fallback, abort) live in the CLI,
// not here.
package diskutil

import (
	"os"

	"github.com/brickingsoft/errors"
)

// ByteLength returns the capacity, in bytes, of the device or file backing f.
// It tries a platform length query first and falls back to a plain stat,
// mirroring the cascade GetDiskOrDriveSize used for source and destination
// paths.
func ByteLength(f *os.File, path string, isSrc bool) (int64, error) {
	if n, err := byteLength(f, path, isSrc); err == nil && n > 0 {
		return n, nil
	}
	fi, err := f.Stat()
	if err != nil {
		return 0, errors.New(
			"stat fallback failed",
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithWrap(err),
		)
	}
	if fi.Size() <= 0 {
		return 0, ErrByteLengthUnknown
	}
	return fi.Size(), nil
}

// SectorSize returns the sector size the platform reports for the device
// backing f (the logical sector size on Linux, the drive geometry's
// BytesPerSector on Windows), or 0
// if it could not be determined (the same ambiguous outcome
// GetVolumeSectorSize produced for logical drive-letter paths).
func SectorSize(f *os.File, path string) int {
	return sectorSize(f, path)
}

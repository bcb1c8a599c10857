package diskutil

import "github.com/brickingsoft/errors"

// ErrByteLengthUnknown is returned when none of the platform's length
// queries could determine the device's capacity.
var ErrByteLengthUnknown = errors.Define("diskutil: byte length unknown")

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "diskutil"
)

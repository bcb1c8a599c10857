//go:build !linux && !windows

package blockio

import "os"

// open falls back to buffered I/O on platforms without a cache-bypass
// facility wired in; the engine's alignment discipline still applies, it
// simply isn't load-bearing here.
func open(path string, mode Mode) (*os.File, error) {
	flags := os.O_RDONLY
	if mode == ModeWrite {
		flags = os.O_RDWR
	}
	return os.OpenFile(path, flags, 0)
}

// Package blockio opens source and destination handles the way the engine
// needs them: overlapped-capable, uncached, sequential-access hinted.
package blockio

import (
	"io"
	"os"
)

// Device is the abstraction the engine's contexts read from and write to.
// Both *os.File and anything else satisfying it (a fake in tests) works,
// since the engine only ever issues positioned reads/writes and a final
// sync.
type Device interface {
	io.ReaderAt
	io.WriterAt
	Sync() error
	Close() error
}

var _ Device = (*os.File)(nil)

// Mode distinguishes how a path is opened, since source and destination
// need different flag combinations (read-only sequential-scan vs.
// read-write).
type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
)

// Open opens path for overlapped, uncached, sequential access in the given
// mode, matching CreateFileW's FILE_FLAG_NO_BUFFERING |
// FILE_FLAG_OVERLAPPED | FILE_FLAG_SEQUENTIAL_SCAN on Windows and O_DIRECT
// on Linux. Platforms without an uncached-I/O facility (the "other" build)
// open the path normally; correctness is unaffected, only the
// cache-bypass guarantee is lost.
func Open(path string, mode Mode) (*os.File, error) {
	return open(path, mode)
}

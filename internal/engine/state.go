package engine

import (
	"sync"
	"sync/atomic"

	"github.com/logesh11exe/BlockCopier/internal/blocklog"
	"github.com/logesh11exe/BlockCopier/internal/blockio"
)

// Engine is the shared state every worker and completion callback reads
// and mutates. It is created once by New, becomes immutable (apart from
// its atomics) across Run, and is torn down only after every worker has
// joined and both handles are closed.
type Engine struct {
	source blockio.Device
	dest   blockio.Device

	totalSize      int64
	destCapacity   int64
	destSectorSize int
	blockSize      int64

	fileOffset atomic.Int64
	pendingIOs atomic.Int64

	// readComplete and errorOccurred are set-once-to-true latches. They
	// are never cleared during a copy; a new copy requires a freshly
	// constructed Engine.
	readComplete  atomic.Bool
	errorOccurred atomic.Bool

	bytesReadTotal    atomic.Int64
	bytesWrittenTotal atomic.Int64

	firstErrMu sync.Mutex
	firstErr   error

	// wake is closed exactly once, by the first worker to observe
	// quiescence or by setError on failure, to unblock every worker still
	// waiting with nothing outstanding on its context. It is the software analog of the original's
	// QueueUserAPC wake-up.
	wake     chan struct{}
	wakeOnce sync.Once

	contexts []*blockContext

	logger blocklog.Sink
}

// claim reserves the next contiguous, at-most-blockSize range of the
// source for a worker. It is a single fetch-and-add on fileOffset, so
// offsets are not necessarily claimed in issuance order across workers,
// but each offset is claimed by at most one worker.
func (e *Engine) claim() (offset int64, length int, ok bool) {
	if e.readComplete.Load() || e.errorOccurred.Load() {
		return 0, 0, false
	}
	off := e.fileOffset.Add(e.blockSize) - e.blockSize
	if off >= e.totalSize {
		e.readComplete.CompareAndSwap(false, true)
		return 0, 0, false
	}
	remaining := e.totalSize - off
	if remaining > e.blockSize {
		remaining = e.blockSize
	}
	return off, int(remaining), true
}

// setError records err as the run's failure cause, trips the
// errorOccurred latch, and wakes every worker so in-flight contexts drain
// and idle ones exit. Only the first error is kept; later ones are
// logged and discarded.
func (e *Engine) setError(err error) {
	if err == nil {
		return
	}
	first := false
	e.firstErrMu.Lock()
	if e.firstErr == nil {
		e.firstErr = err
		first = true
	}
	e.firstErrMu.Unlock()
	if first {
		e.logger.Error("block copy error", "error", err)
	} else {
		e.logger.Warning("additional error after first failure", "error", err)
	}
	e.errorOccurred.Store(true)
	e.closeWake()
}

func (e *Engine) closeWake() {
	e.wakeOnce.Do(func() { close(e.wake) })
}

func (e *Engine) err() error {
	e.firstErrMu.Lock()
	defer e.firstErrMu.Unlock()
	return e.firstErr
}

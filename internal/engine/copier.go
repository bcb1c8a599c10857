package engine

import (
	"fmt"
	"sync"

	"github.com/brickingsoft/errors"

	"github.com/logesh11exe/BlockCopier/internal/blocklog"
	"github.com/logesh11exe/BlockCopier/internal/blockio"
)

// New constructs an Engine for one source -> destination copy, mirroring
// BlockCopier::Initialize: validates thread count and block size,
// confirms the destination has room for the source, and builds one
// sector-aligned context per worker.
func New(source, dest blockio.Device, totalSize, destCapacity int64, opts Options) (*Engine, error) {
	if opts.NumThreads < 1 || opts.NumThreads > maxThreads {
		return nil, ErrTooManyThreads
	}
	if opts.DestSectorSize <= 0 {
		return nil, ErrSectorSizeUnknown
	}
	blockSize := opts.blockSizeBytes()
	if blockSize <= 0 || blockSize%int64(opts.DestSectorSize) != 0 {
		return nil, ErrBlockSizeNotAligned
	}
	if destCapacity < totalSize {
		return nil, ErrDestinationTooSmall
	}

	logger := opts.Logger
	if logger == nil {
		logger = blocklog.Discard
	}

	e := &Engine{
		source:         source,
		dest:           dest,
		totalSize:      totalSize,
		destCapacity:   destCapacity,
		destSectorSize: opts.DestSectorSize,
		blockSize:      blockSize,
		wake:           make(chan struct{}),
		logger:         logger,
	}

	e.contexts = make([]*blockContext, opts.NumThreads)
	for i := range e.contexts {
		ctx := newBlockContext(int(blockSize), opts.DestSectorSize)
		if !isAligned(ctx.buf, opts.DestSectorSize) {
			return nil, ErrBufferMisaligned
		}
		e.contexts[i] = ctx
	}

	return e, nil
}

// Run starts every worker, drives them to completion or failure, flushes
// the destination, and returns the run's outcome. It blocks until the
// copy is entirely done: all workers joined, destination flushed (on
// success), both handles closed.
func (e *Engine) Run() error {
	if e.totalSize == 0 {
		e.readComplete.Store(true)
		if err := e.dest.Sync(); err != nil {
			e.setError(err)
		}
		return e.finish()
	}

	done := make(chan struct{})
	go e.monitorProgress(done)

	var wg sync.WaitGroup
	wg.Add(len(e.contexts))
	for _, ctx := range e.contexts {
		go func(ctx *blockContext) {
			defer wg.Done()
			e.runWorker(ctx)
		}(ctx)
	}

	wg.Wait()
	close(done)
	return e.finish()
}

// finish implements §4.6: flush the destination, close both handles, and
// report success iff no error was observed.
func (e *Engine) finish() error {
	if !e.errorOccurred.Load() {
		if err := e.dest.Sync(); err != nil {
			e.setError(errors.New(
				"flush destination failed",
				errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
				errors.WithWrap(err),
			))
		}
	}

	if cerr := e.source.Close(); cerr != nil {
		e.logger.Warning("closing source handle", "error", cerr)
	}
	if cerr := e.dest.Close(); cerr != nil {
		e.logger.Warning("closing destination handle", "error", cerr)
	}

	if err := e.err(); err != nil {
		return err
	}
	if e.errorOccurred.Load() {
		return fmt.Errorf("block copy failed")
	}
	return nil
}

// Progress returns the running byte counters for the progress logger.
func (e *Engine) Progress() (read, written int64) {
	return e.bytesReadTotal.Load(), e.bytesWrittenTotal.Load()
}

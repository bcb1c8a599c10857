package engine

import (
	"errors"
	"io"
)

// ioResult is the outcome of one read or write submitted against a
// context's buffer, delivered over that context's resultCh.
type ioResult struct {
	n   int
	err error
}

// issueRead implements the claim-then-submit half of the pipeline. It
// returns false when no read was issued, either because the engine is
// already winding down or because the source is exhausted.
func (e *Engine) issueRead(ctx *blockContext) bool {
	if e.readComplete.Load() || e.errorOccurred.Load() {
		return false
	}
	offset, length, ok := e.claim()
	if !ok {
		return false
	}

	ctx.completed.Store(false)
	ctx.readOffset = offset
	ctx.op = opRead
	ctx.pending.Store(true)
	e.pendingIOs.Add(1)

	go func() {
		n, err := e.source.ReadAt(ctx.buf[:length], offset)
		ctx.resultCh <- ioResult{n: n, err: err}
	}()
	return true
}

// issueWrite reuses the context's buffer and offset to submit the write
// matching the read that just completed on it.
func (e *Engine) issueWrite(ctx *blockContext) {
	ctx.op = opWrite
	ctx.pending.Store(true)
	e.pendingIOs.Add(1)

	offset := ctx.readOffset
	length := ctx.bytesTransferred

	go func() {
		_, err := e.dest.WriteAt(ctx.buf[:length], offset)
		ctx.resultCh <- ioResult{n: length, err: err}
	}()
}

// deliver routes a completion to the read or write handler depending on
// which operation this context had outstanding, and always runs on the
// worker goroutine that owns ctx.
func (e *Engine) deliver(ctx *blockContext, res ioResult) {
	switch ctx.op {
	case opRead:
		e.onReadComplete(ctx, res)
	case opWrite:
		e.onWriteComplete(ctx, res)
	}
}

// onReadComplete is invoked in the worker goroutine once a read finishes.
func (e *Engine) onReadComplete(ctx *blockContext, res ioResult) {
	e.pendingIOs.Add(-1)
	ctx.pending.Store(false)

	if res.err != nil && !errors.Is(res.err, io.EOF) {
		e.setError(res.err)
		ctx.completed.Store(true)
		return
	}
	if res.n == 0 {
		e.readComplete.CompareAndSwap(false, true)
		ctx.completed.Store(true)
		return
	}

	e.bytesReadTotal.Add(int64(res.n))

	padded := padLength(res.n, e.destSectorSize)
	if padded > len(ctx.buf) {
		e.setError(ErrPaddedWriteOverflows)
		ctx.completed.Store(true)
		return
	}
	clear(ctx.buf[res.n:padded])
	ctx.bytesTransferred = padded

	if errors.Is(res.err, io.EOF) {
		// A short read at the very end of the source: still write the
		// tail block before declaring the source exhausted.
		e.readComplete.CompareAndSwap(false, true)
	}

	// Issued from within the callback, per the pipeline's chaining
	// contract: completed stays false, the context is still in flight.
	e.issueWrite(ctx)
}

// onWriteComplete is invoked in the worker goroutine once a write
// finishes; it frees the context for the next read.
func (e *Engine) onWriteComplete(ctx *blockContext, res ioResult) {
	e.pendingIOs.Add(-1)
	ctx.pending.Store(false)

	if res.err != nil {
		e.setError(res.err)
	}
	e.bytesWrittenTotal.Add(int64(res.n))
	ctx.completed.Store(true)
}

// padLength rounds n up to the next multiple of sectorSize.
func padLength(n, sectorSize int) int {
	if sectorSize <= 0 {
		return n
	}
	rem := n % sectorSize
	if rem == 0 {
		return n
	}
	return n + (sectorSize - rem)
}

package engine

// runWorker drives one context through read -> write -> read cycles until
// termination. It is the sole goroutine that ever submits an operation on
// ctx and the sole goroutine that ever delivers a completion for it, so
// the completion-running-in-the-worker's-own-context invariant holds by
// construction: deliver always runs here, never in the goroutine that
// performed the blocking ReadAt/WriteAt.
func (e *Engine) runWorker(ctx *blockContext) {
	if !e.issueRead(ctx) {
		if e.readComplete.Load() && e.pendingIOs.Load() == 0 {
			e.closeWake()
		}
		return
	}

	for {
		if ctx.pending.Load() {
			select {
			case res := <-ctx.resultCh:
				e.deliver(ctx, res)
			case <-e.wake:
				// A real operation is still outstanding on this context;
				// the wake is a drain/error signal for other workers, not
				// a reason to abandon ours. Block for the actual result.
				e.deliver(ctx, <-ctx.resultCh)
			}
		} else {
			<-e.wake
		}

		if e.errorOccurred.Load() {
			return
		}

		if ctx.completed.Swap(false) {
			if !e.readComplete.Load() {
				if !e.issueRead(ctx) && !e.readComplete.Load() && !e.errorOccurred.Load() {
					e.setError(ErrUnexpectedIssueFailure)
					return
				}
			}
		}

		if e.readComplete.Load() && e.pendingIOs.Load() == 0 {
			// Quiescent: wake any sibling worker still parked with
			// nothing outstanding on its own context.
			e.closeWake()
			return
		}
	}
}

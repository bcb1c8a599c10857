package engine

import "time"

// monitorProgress polls the running byte counters every 100ms and logs
// throughput at Info level, the same interval BlockCopier::StartCopy
// polled at while workers were in flight. It is read-only with respect to
// engine state and exits as soon as done is closed.
func (e *Engine) monitorProgress(done <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			read, written := e.Progress()
			e.logger.Info("copy progress", "bytesRead", read, "bytesWritten", written, "totalBytes", e.totalSize)
		}
	}
}

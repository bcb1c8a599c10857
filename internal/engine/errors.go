package engine

import "github.com/brickingsoft/errors"

var (
	ErrTooManyThreads       = errors.Define("engine: numThreads must be in [1, 64]")
	ErrBlockSizeNotAligned  = errors.Define("engine: block size is not a multiple of the destination sector size")
	ErrBufferMisaligned     = errors.Define("engine: context buffer is not sector aligned")
	ErrDestinationTooSmall  = errors.Define("engine: destination capacity is smaller than source size")
	ErrSectorSizeUnknown    = errors.Define("engine: destination sector size is unknown")
	ErrPaddedWriteOverflows = errors.Define("engine: padded write length exceeds the context buffer")

	// ErrUnexpectedIssueFailure fires when issueRead returns false without
	// readComplete or errorOccurred being set, a state the pipeline's
	// design notes treat as impossible; it exists as a defensive latch
	// rather than an expected runtime outcome.
	ErrUnexpectedIssueFailure = errors.Define("engine: issueRead failed without readComplete or errorOccurred")
)

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "engine"
)

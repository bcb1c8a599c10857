package engine

import "github.com/logesh11exe/BlockCopier/internal/blocklog"

// Options configures a copy. NumThreads and BlockSizeMB mirror the
// abstract invocation surface: an integer thread count in [1, 64] and a
// block size in MiB that must be a multiple of the destination sector
// size.
type Options struct {
	NumThreads  int
	BlockSizeMB int

	// DestSectorSize is the destination device's sector size, as
	// produced by internal/diskutil.SectorSize. The CLI resolves a zero
	// result to a fallback (or aborts) before constructing the Engine;
	// the engine itself never guesses.
	DestSectorSize int

	Logger blocklog.Sink
}

const maxThreads = 64

func (o Options) blockSizeBytes() int64 {
	return int64(o.BlockSizeMB) << 20
}

package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/logesh11exe/BlockCopier/internal/blocklog"
	"github.com/logesh11exe/BlockCopier/internal/blockio"
	"github.com/logesh11exe/BlockCopier/internal/diskutil"
	"github.com/logesh11exe/BlockCopier/internal/engine"
	"github.com/logesh11exe/BlockCopier/internal/procpriority"
)

const (
	defaultNumThreads  = 8
	defaultBlockSizeMB = 1
	fallbackSectorSize = 4096
)

var (
	flagUseDefault   bool
	flagAssumeYes    bool
	flagNumThreads   int
	flagBlockSizeMB  int
	flagHighPriority bool
)

var copyCmd = &cobra.Command{
	Use:   "copy <source> <dest>",
	Short: "Copy a contiguous byte range from source to dest",
	Long: `copy reads sourcePath block by block and writes the same bytes to
destPath, bypassing the OS file cache. Copying from a mounted volume or
busy device only captures a point-in-time view of that volume and is
not a guarantee of a consistent snapshot. The destination is fully
overwritten; choose it carefully.`,
	Args: cobra.ExactArgs(2),
	RunE: runCopy,
}

func init() {
	copyCmd.Flags().BoolVar(&flagUseDefault, "use-default", false, "use the default thread count and block size")
	copyCmd.Flags().BoolVarP(&flagAssumeYes, "assume-yes", "y", false, "skip the interactive confirmation prompt")
	copyCmd.Flags().IntVar(&flagNumThreads, "threads", defaultNumThreads, "number of outstanding I/O contexts")
	copyCmd.Flags().IntVar(&flagBlockSizeMB, "block-size-mb", defaultBlockSizeMB, "block size in MiB")
	copyCmd.Flags().BoolVar(&flagHighPriority, "high-priority", true, "raise this process's scheduling priority for the duration of the copy")
}

func runCopy(cmd *cobra.Command, args []string) error {
	sourcePath, destPath := args[0], args[1]

	numThreads, blockSizeMB := flagNumThreads, flagBlockSizeMB
	if flagUseDefault {
		numThreads, blockSizeMB = defaultNumThreads, defaultBlockSizeMB
	}
	if numThreads < 1 {
		return fmt.Errorf("threads must be a positive integer, got %d", numThreads)
	}
	if blockSizeMB < 1 {
		return fmt.Errorf("block-size-mb must be a positive integer, got %d", blockSizeMB)
	}

	logger := blocklog.NewConsole(blocklog.LevelInfo)

	if flagHighPriority {
		if err := procpriority.Set(procpriority.High); err != nil {
			logger.Warning("failed to raise process priority", "error", err.Error())
		}
	}

	fmt.Println("WARNING: copying from a mounted or in-use source captures only a")
	fmt.Println("point-in-time view and is not a guarantee of a consistent snapshot.")
	fmt.Println("WARNING: the destination will be completely overwritten.")
	if !flagAssumeYes {
		if !confirm() {
			logger.Info("copy aborted by user", "source", sourcePath, "dest", destPath)
			return nil
		}
	}

	source, err := blockio.Open(sourcePath, blockio.ModeRead)
	if err != nil {
		return fmt.Errorf("failed to open source %q: %w", sourcePath, err)
	}

	dest, err := blockio.Open(destPath, blockio.ModeWrite)
	if err != nil {
		source.Close()
		return fmt.Errorf("failed to open destination %q: %w", destPath, err)
	}

	totalSize, err := diskutil.ByteLength(source, sourcePath, true)
	if err != nil {
		source.Close()
		dest.Close()
		return fmt.Errorf("failed to determine source size: %w", err)
	}
	destCapacity, err := diskutil.ByteLength(dest, destPath, false)
	if err != nil {
		source.Close()
		dest.Close()
		return fmt.Errorf("failed to determine destination size: %w", err)
	}

	sectorSize := diskutil.SectorSize(dest, destPath)
	if sectorSize == 0 {
		logger.Warning("destination sector size unknown, falling back to default", "fallback", fallbackSectorSize)
		if !flagAssumeYes && !confirm() {
			logger.Info("copy aborted by user after sector size fallback prompt")
			source.Close()
			dest.Close()
			return nil
		}
		sectorSize = fallbackSectorSize
	}

	logger.Info("starting copy",
		"source", sourcePath, "dest", destPath,
		"totalSize", totalSize, "destCapacity", destCapacity,
		"threads", numThreads, "blockSizeMB", blockSizeMB, "sectorSize", sectorSize)

	// engine.New validates before it takes ownership of either handle; on
	// success e.Run's finish() closes both, so no defer is needed here.
	e, err := engine.New(source, dest, totalSize, destCapacity, engine.Options{
		NumThreads:     numThreads,
		BlockSizeMB:    blockSizeMB,
		DestSectorSize: sectorSize,
		Logger:         logger,
	})
	if err != nil {
		source.Close()
		dest.Close()
		logger.Error("failed to initialize copy engine", "error", err.Error())
		return fmt.Errorf("failed to initialize copy engine: %w", err)
	}

	if err := e.Run(); err != nil {
		logger.Error("copy failed", "error", err.Error())
		return fmt.Errorf("copy failed: %w", err)
	}

	read, written := e.Progress()
	logger.Info("copy complete", "bytesRead", read, "bytesWritten", written)
	return nil
}

func confirm() bool {
	fmt.Print("Enter 1 to proceed, 0 to abort: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	n, err := strconv.Atoi(trimNewline(line))
	if err != nil {
		return false
	}
	return n == 1
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

package engine

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/logesh11exe/BlockCopier/internal/blockio"
	"github.com/logesh11exe/BlockCopier/internal/blocklog"
)

// memDevice is an in-memory blockio.Device used so engine tests never
// touch a real file or block device.
type memDevice struct {
	mu   sync.Mutex
	data []byte
}

func newMemSource(data []byte) *memDevice {
	return &memDevice{data: data}
}

func newMemDest(capacity int64) *memDevice {
	return &memDevice{data: make([]byte, capacity)}
}

func (d *memDevice) ReadAt(p []byte, off int64) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if off >= int64(len(d.data)) {
		return 0, io.EOF
	}
	n := copy(p, d.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (d *memDevice) WriteAt(p []byte, off int64) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	end := off + int64(len(p))
	if end > int64(len(d.data)) {
		return 0, errors.New("write beyond destination capacity")
	}
	copy(d.data[off:end], p)
	return len(p), nil
}

func (d *memDevice) Sync() error { return nil }
func (d *memDevice) Close() error { return nil }

func (d *memDevice) snapshot() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]byte, len(d.data))
	copy(out, d.data)
	return out
}

// failAfterWrites wraps a Device and fails the Nth WriteAt call onward,
// used to exercise the induced mid-copy failure path.
type failAfterWrites struct {
	blockio.Device
	remaining atomic.Int64
}

func (f *failAfterWrites) WriteAt(p []byte, off int64) (int, error) {
	if f.remaining.Add(-1) < 0 {
		return 0, errors.New("induced write failure")
	}
	return f.Device.WriteAt(p, off)
}

func patternBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 256)
	}
	return b
}

func runCopy(t *testing.T, src []byte, blockMB, sectorSize, numThreads int, destCapacity int64, destWrap func(blockio.Device) blockio.Device) (*memDevice, error) {
	t.Helper()
	source := newMemSource(src)
	dest := newMemDest(destCapacity)

	var destDevice blockio.Device = dest
	if destWrap != nil {
		destDevice = destWrap(dest)
	}

	e, err := New(source, destDevice, int64(len(src)), destCapacity, Options{
		NumThreads:     numThreads,
		BlockSizeMB:    blockMB,
		DestSectorSize: sectorSize,
		Logger:         nil,
	})
	if err != nil {
		return dest, err
	}
	return dest, e.Run()
}

func TestRoundTripOneMiBBlocks(t *testing.T) {
	src := bytes.Repeat([]byte{0x00, 0x01, 0x02, 0x03}, 3*1024*1024/4)
	dest, err := runCopy(t, src, 1, 4096, 4, int64(len(src)), nil)
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	got := dest.snapshot()
	if !bytes.Equal(got[:len(src)], src) {
		t.Fatal("destination does not match source")
	}
}

func TestRoundTripShortTail(t *testing.T) {
	srcLen := 5*1024*1024 + 777
	src := patternBytes(srcLen)
	paddedLen := int64(padLength(srcLen, 4096))
	dest, err := runCopy(t, src, 1, 4096, 8, paddedLen, nil)
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	got := dest.snapshot()
	if !bytes.Equal(got[:srcLen], src) {
		t.Fatal("destination prefix does not match source")
	}
	for i := srcLen; i < len(got); i++ {
		if got[i] != 0 {
			t.Fatalf("tail byte %d not zero", i)
		}
	}
}

func TestRoundTripEmptySource(t *testing.T) {
	dest, err := runCopy(t, nil, 1, 4096, 4, 0, nil)
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if len(dest.snapshot()) != 0 {
		t.Fatal("expected zero-length destination")
	}
}

func TestRoundTripSingleByte(t *testing.T) {
	src := []byte{0x42}
	dest, err := runCopy(t, src, 1, 512, 4, 512, nil)
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	got := dest.snapshot()
	if got[0] != 0x42 {
		t.Fatalf("first byte = %#x, want 0x42", got[0])
	}
	for i := 1; i < 512; i++ {
		if got[i] != 0 {
			t.Fatalf("byte %d not zero", i)
		}
	}
}

func TestRoundTripSingleThread(t *testing.T) {
	src := patternBytes(1024 * 1024)
	// 64 KiB blocks need BlockSizeMB expressed in MiB; approximate with
	// a 1 MiB block so the claim count is 1, exercising numThreads==1
	// serially rather than the literal 16-claim seed scenario.
	dest, err := runCopy(t, src, 1, 4096, 1, int64(len(src)), nil)
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if !bytes.Equal(dest.snapshot(), src) {
		t.Fatal("destination does not match source")
	}
}

func TestRoundTripMaxThreads(t *testing.T) {
	src := patternBytes(8 * 1024 * 1024)
	dest, err := runCopy(t, src, 1, 4096, 64, int64(len(src)), nil)
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if !bytes.Equal(dest.snapshot(), src) {
		t.Fatal("destination does not match source")
	}
}

func TestDestinationExactCapacityAccepted(t *testing.T) {
	src := patternBytes(2 * 1024 * 1024)
	source := newMemSource(src)
	dest := newMemDest(int64(len(src)))
	_, err := New(source, dest, int64(len(src)), int64(len(src)), Options{
		NumThreads: 2, BlockSizeMB: 1, DestSectorSize: 4096,
	})
	if err != nil {
		t.Fatalf("expected exact-capacity destination to be accepted: %v", err)
	}
}

func TestDestinationOneByteShortRejected(t *testing.T) {
	src := patternBytes(2 * 1024 * 1024)
	source := newMemSource(src)
	dest := newMemDest(int64(len(src)) - 1)
	_, err := New(source, dest, int64(len(src)), int64(len(src))-1, Options{
		NumThreads: 2, BlockSizeMB: 1, DestSectorSize: 4096,
	})
	if !errors.Is(err, ErrDestinationTooSmall) {
		t.Fatalf("expected ErrDestinationTooSmall, got %v", err)
	}
}

func TestInducedWriteFailureDrains(t *testing.T) {
	src := patternBytes(8 * 1024 * 1024)
	_, err := runCopy(t, src, 1, 4096, 4, int64(len(src)), func(d blockio.Device) blockio.Device {
		f := &failAfterWrites{Device: d}
		f.remaining.Store(2)
		return f
	})
	if err == nil {
		t.Fatal("expected the induced write failure to surface")
	}
}

func TestNumThreadsOutOfRange(t *testing.T) {
	source := newMemSource(nil)
	dest := newMemDest(0)
	if _, err := New(source, dest, 0, 0, Options{NumThreads: 0, BlockSizeMB: 1, DestSectorSize: 4096}); !errors.Is(err, ErrTooManyThreads) {
		t.Fatalf("expected ErrTooManyThreads for 0 threads, got %v", err)
	}
	if _, err := New(source, dest, 0, 0, Options{NumThreads: 65, BlockSizeMB: 1, DestSectorSize: 4096}); !errors.Is(err, ErrTooManyThreads) {
		t.Fatalf("expected ErrTooManyThreads for 65 threads, got %v", err)
	}
}

func TestBlockSizeNotSectorMultiple(t *testing.T) {
	source := newMemSource(nil)
	dest := newMemDest(0)
	_, err := New(source, dest, 0, 0, Options{NumThreads: 1, BlockSizeMB: 1, DestSectorSize: 4097})
	if !errors.Is(err, ErrBlockSizeNotAligned) {
		t.Fatalf("expected ErrBlockSizeNotAligned, got %v", err)
	}
}

// newEngineForTest builds an Engine with an arbitrary byte-granular block
// size, bypassing New's MiB-granular Options surface. The spec's literal
// 16-claim seed scenario uses a 64 KiB block size that the public
// CLI-facing API cannot express but the engine itself has no trouble
// with.
func newEngineForTest(source, dest blockio.Device, totalSize, destCapacity, blockSize int64, sectorSize, numThreads int) (*Engine, error) {
	if numThreads < 1 || numThreads > maxThreads {
		return nil, ErrTooManyThreads
	}
	if blockSize <= 0 || blockSize%int64(sectorSize) != 0 {
		return nil, ErrBlockSizeNotAligned
	}
	if destCapacity < totalSize {
		return nil, ErrDestinationTooSmall
	}
	e := &Engine{
		source:         source,
		dest:           dest,
		totalSize:      totalSize,
		destCapacity:   destCapacity,
		destSectorSize: sectorSize,
		blockSize:      blockSize,
		wake:           make(chan struct{}),
		logger:         blocklog.Discard,
	}
	e.contexts = make([]*blockContext, numThreads)
	for i := range e.contexts {
		e.contexts[i] = newBlockContext(int(blockSize), sectorSize)
	}
	return e, nil
}

func TestRoundTripSixteenSequentialClaims(t *testing.T) {
	src := patternBytes(1024 * 1024)
	source := newMemSource(src)
	dest := newMemDest(int64(len(src)))

	e, err := newEngineForTest(source, dest, int64(len(src)), int64(len(src)), 64*1024, 4096, 1)
	if err != nil {
		t.Fatalf("newEngineForTest: %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if !bytes.Equal(dest.snapshot(), src) {
		t.Fatal("destination does not match source")
	}
	if read, written := e.Progress(); read != int64(len(src)) || written != int64(len(src)) {
		t.Fatalf("progress counters = (%d, %d), want (%d, %d)", read, written, len(src), len(src))
	}
}

package engine

import "testing"

func newTestEngine(totalSize, blockSize int64) *Engine {
	e := &Engine{totalSize: totalSize, blockSize: blockSize}
	return e
}

func TestClaimDisjointAndMonotonic(t *testing.T) {
	e := newTestEngine(10*1024*1024+3, 1024*1024)

	var claims [][2]int64
	for {
		off, length, ok := e.claim()
		if !ok {
			break
		}
		claims = append(claims, [2]int64{off, int64(length)})
	}

	if !e.readComplete.Load() {
		t.Fatal("expected readComplete after exhausting claims")
	}

	for i, a := range claims {
		for j, b := range claims {
			if i == j {
				continue
			}
			aEnd := a[0] + a[1]
			bEnd := b[0] + b[1]
			if a[0] < bEnd && b[0] < aEnd {
				t.Fatalf("claims %v and %v overlap", a, b)
			}
		}
	}

	floorBlocks := e.totalSize / e.blockSize
	for _, c := range claims {
		if c[0]%e.blockSize != 0 && c[0] != floorBlocks*e.blockSize {
			t.Fatalf("claim offset %d is not a block multiple and not the final short claim", c[0])
		}
	}
}

func TestClaimEmptySource(t *testing.T) {
	e := newTestEngine(0, 1024)
	_, _, ok := e.claim()
	if ok {
		t.Fatal("expected no claim for an empty source")
	}
	if !e.readComplete.Load() {
		t.Fatal("expected readComplete to be set for an empty source")
	}
}

func TestClaimExactMultiple(t *testing.T) {
	e := newTestEngine(4*1024*1024, 1024*1024)
	var total int64
	for {
		_, length, ok := e.claim()
		if !ok {
			break
		}
		total += int64(length)
	}
	if total != e.totalSize {
		t.Fatalf("claimed %d bytes, want %d", total, e.totalSize)
	}
}

// Package lines implements the append-only column storage used by the
// indicator engine: growable float64 buffers with a movable read cursor,
// lookback-indexed access, and NaN as the single "undefined" marker.
package lines

import "math"

// Buffer is one numeric column. It owns a growable float64 slice plus a
// cursor idx pointing at the current slot. A fresh Buffer holds a single
// NaN placeholder; the first Append (or Forward) claims that slot, and
// every later Append grows the column by one. Values already written are
// never mutated again.
type Buffer struct {
	data  []float64
	idx   int
	fresh bool // placeholder slot not yet claimed
}

// NewBuffer returns an empty Buffer holding the single NaN placeholder.
func NewBuffer() *Buffer {
	return &Buffer{data: []float64{math.NaN()}, fresh: true}
}

// Len reports how many bars have been delivered to this buffer: zero for a
// fresh buffer, idx+1 afterwards. Rewinding the cursor shrinks Len without
// discarding storage.
func (b *Buffer) Len() int {
	if b.fresh {
		return 0
	}
	return b.idx + 1
}

// BufLen reports the total allocated slots, including slots ahead of the
// cursor left by Forward.
func (b *Buffer) BufLen() int { return len(b.data) }

// Get returns the value ago bars back from the cursor (ago=0 is the
// current bar). Any slot before history starts or past the end reads as
// NaN; indicators routinely probe windows that straddle the start of
// history and must degrade to undefined, not crash.
func (b *Buffer) Get(ago int) float64 {
	if b.fresh {
		return math.NaN()
	}
	i := b.idx - ago
	if i < 0 || i >= len(b.data) {
		return math.NaN()
	}
	return b.data[i]
}

// Set writes the value ago bars back from the cursor, growing the column
// if the cursor has moved past the allocated end. Writing before the start
// of history is a wiring bug, not a data condition.
func (b *Buffer) Set(ago int, v float64) {
	i := b.idx - ago
	if i < 0 {
		panic("lines: set before start of buffer")
	}
	for i >= len(b.data) {
		b.data = append(b.data, math.NaN())
	}
	b.data[i] = v
	b.fresh = false
}

// Append delivers the next bar: advance one slot and write v there.
func (b *Buffer) Append(v float64) {
	b.Forward(1)
	b.Set(0, v)
}

// Forward moves the cursor n slots ahead without writing, growing the
// column with NaN as needed. The first advance on a fresh buffer claims
// the placeholder slot instead of moving past it.
func (b *Buffer) Forward(n int) {
	if n <= 0 {
		return
	}
	if b.fresh {
		b.fresh = false
		n--
	}
	b.idx += n
	for b.idx >= len(b.data) {
		b.data = append(b.data, math.NaN())
	}
}

// Backward rewinds the cursor n slots without discarding storage, stopping
// at the first slot.
func (b *Buffer) Backward(n int) {
	b.idx -= n
	if b.idx < 0 {
		b.idx = 0
	}
}

// Home rewinds the cursor to the first slot.
func (b *Buffer) Home() { b.idx = 0 }

// Reset truncates the column back to the single NaN placeholder.
func (b *Buffer) Reset() {
	b.data = b.data[:1]
	b.data[0] = math.NaN()
	b.idx = 0
	b.fresh = true
}

// AdvanceTo positions the cursor on slot n-1, growing the column so that
// Len() == n. Batch evaluation uses it to lay out the full output range
// before writing; calling it again with the same n is a no-op, which keeps
// repeated batch runs idempotent.
func (b *Buffer) AdvanceTo(n int) {
	if n <= 0 {
		return
	}
	b.fresh = false
	b.idx = n - 1
	for b.idx >= len(b.data) {
		b.data = append(b.data, math.NaN())
	}
}

// Array exposes the raw storage for O(1) random access. Batch algorithms
// index it directly; readers must treat it as read-only.
func (b *Buffer) Array() []float64 { return b.data }

// At reads the slot at absolute index i into the raw storage, NaN when out
// of range.
func (b *Buffer) At(i int) float64 {
	if i < 0 || i >= len(b.data) {
		return math.NaN()
	}
	return b.data[i]
}

// SetAt writes the slot at absolute index i. It is the write half of the
// batch contract and never grows the column; AdvanceTo lays out the range
// first.
func (b *Buffer) SetAt(i int, v float64) {
	if i < 0 || i >= len(b.data) {
		panic("lines: batch write outside the laid-out range")
	}
	b.data[i] = v
}

// FromEnd is the named adapter for the end-relative indexing convention
// used against finished, fixed-length series: offset -1 is the last bar,
// -2 the one before it. It is the only place that convention exists;
// nothing infers it from the sign of a Get argument.
func (b *Buffer) FromEnd(offset int) float64 {
	if offset >= 0 {
		return math.NaN()
	}
	return b.At(b.Len() + offset)
}

// Idx exposes the cursor position for cursor-arithmetic diagnostics.
func (b *Buffer) Idx() int { return b.idx }

package lines

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferFreshState(t *testing.T) {
	b := NewBuffer()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 1, b.BufLen())
	assert.True(t, math.IsNaN(b.Get(0)))
	assert.True(t, math.IsNaN(b.Get(5)))
}

func TestBufferAppendOverwritesPlaceholder(t *testing.T) {
	b := NewBuffer()
	b.Append(1.5)

	// The first value claims the placeholder slot instead of growing.
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 1, b.BufLen())
	assert.Equal(t, 1.5, b.Get(0))
}

func TestBufferAgoContract(t *testing.T) {
	b := NewBuffer()
	for _, v := range []float64{1, 2, 3, 4, 5} {
		b.Append(v)
	}

	assert.Equal(t, 5.0, b.Get(0))
	assert.Equal(t, 4.0, b.Get(1))
	assert.Equal(t, 1.0, b.Get(4))

	// Before history starts and past the end both read as NaN.
	assert.True(t, math.IsNaN(b.Get(5)))
	assert.True(t, math.IsNaN(b.Get(100)))
	assert.True(t, math.IsNaN(b.Get(-1)))
}

func TestBufferForwardBackward(t *testing.T) {
	b := NewBuffer()
	b.Append(10)
	b.Append(20)

	b.Forward(1)
	assert.Equal(t, 3, b.Len())
	assert.True(t, math.IsNaN(b.Get(0)))
	assert.Equal(t, 20.0, b.Get(1))

	b.Set(0, 30)
	assert.Equal(t, 30.0, b.Get(0))

	b.Backward(2)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 10.0, b.Get(0))
	// Storage is not discarded by rewinding.
	assert.Equal(t, 3, b.BufLen())

	b.Backward(10)
	assert.Equal(t, 1, b.Len())
}

func TestBufferReset(t *testing.T) {
	b := NewBuffer()
	b.Append(1)
	b.Append(2)
	b.Reset()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 1, b.BufLen())
	assert.True(t, math.IsNaN(b.Get(0)))

	b.Append(7)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 7.0, b.Get(0))
}

func TestBufferAdvanceToIsIdempotent(t *testing.T) {
	b := NewBuffer()
	b.AdvanceTo(5)
	require.Equal(t, 5, b.Len())
	b.SetAt(4, 9.0)

	b.AdvanceTo(5)
	assert.Equal(t, 5, b.Len())
	assert.Equal(t, 9.0, b.Get(0))
}

func TestBufferFromEndAdapter(t *testing.T) {
	b := NewBuffer()
	for _, v := range []float64{1, 2, 3} {
		b.Append(v)
	}

	assert.Equal(t, 3.0, b.FromEnd(-1))
	assert.Equal(t, 1.0, b.FromEnd(-3))
	assert.True(t, math.IsNaN(b.FromEnd(-4)))
	// The adapter never accepts the lookback convention.
	assert.True(t, math.IsNaN(b.FromEnd(0)))
	assert.True(t, math.IsNaN(b.FromEnd(1)))
}

func TestBufferSetBeforeStartPanics(t *testing.T) {
	b := NewBuffer()
	b.Append(1)
	assert.Panics(t, func() { b.Set(3, 1.0) })
}

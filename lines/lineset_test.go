package lines

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineSetAddAndAlias(t *testing.T) {
	ls := NewLineSet()
	mid := ls.AddLine("mid")
	top := ls.AddLine("top")

	assert.Equal(t, 2, ls.NumLines())
	assert.Same(t, mid, ls.GetLine(0))
	assert.Same(t, top, ls.GetLine(1))
	assert.Same(t, mid, ls.Line("mid"))

	ls.AddAlias("sma", 0)
	assert.Same(t, mid, ls.Line("sma"))

	// Aliases to unknown positions are ignored.
	ls.AddAlias("ghost", 9)
	assert.Nil(t, ls.Line("ghost"))
}

func TestLineSetGetLineOutOfRangeIsNil(t *testing.T) {
	ls := NewLineSet()
	ls.AddLine("v")

	assert.Nil(t, ls.GetLine(-1))
	assert.Nil(t, ls.GetLine(1))
	assert.Nil(t, ls.Line("missing"))
}

func TestLineSetMovesInLockstep(t *testing.T) {
	ls := NewLineSet()
	a := ls.AddLine("a")
	b := ls.AddLine("b")

	ls.Forward()
	a.Set(0, 1)
	b.Set(0, 10)
	ls.Forward()
	a.Set(0, 2)
	b.Set(0, 20)

	require.Equal(t, 2, ls.Size())
	assert.Equal(t, 2.0, a.Get(0))
	assert.Equal(t, 20.0, b.Get(0))

	ls.Backward(1)
	assert.Equal(t, 1, ls.Size())
	assert.Equal(t, 1.0, a.Get(0))
	assert.Equal(t, 10.0, b.Get(0))

	ls.Reset()
	assert.Equal(t, 0, ls.Size())
	assert.True(t, math.IsNaN(a.Get(0)))
}

func TestLineSetEmptySize(t *testing.T) {
	ls := NewLineSet()
	assert.Equal(t, 0, ls.Size())
	assert.Equal(t, 0, ls.NumLines())
}

package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/lineflow/engine"
)

func minuteBars(n int) []Bar {
	t0 := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	out := make([]Bar, n)
	for i := range out {
		c := float64(i + 1)
		out[i] = Bar{
			Time:   t0.Add(time.Duration(i) * time.Minute),
			Open:   c - 0.25,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 10,
		}
	}
	return out
}

func TestSeriesAppend(t *testing.T) {
	s := NewSeries("bars")
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, 1, s.MinPeriod())
	assert.Equal(t, 6, s.Lines().NumLines())

	s.Append(Bar{
		Time: time.Unix(1704186600, 0), Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 100,
	})
	assert.Equal(t, 1, s.Size())
	assert.Equal(t, 1.5, s.Close(0))
	assert.Equal(t, 2.0, s.Lines().GetLine(engine.ColHigh).Get(0))
	assert.Equal(t, 1704186600.0, s.Lines().GetLine(engine.ColDateTime).Get(0))
}

func TestSeriesReplay(t *testing.T) {
	s := NewSeries("bars")
	s.Load(minuteBars(3))

	for want := 1; want <= 3; want++ {
		ok, err := s.Next()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, s.Size())
		assert.Equal(t, float64(want), s.Close(0))
	}

	ok, err := s.Next()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, s.Size())
}

func TestValuesSeries(t *testing.T) {
	v := NewValues("v")
	assert.Equal(t, 1, v.Lines().NumLines())

	v.Append(3.0)
	v.Append(7.0)
	assert.Equal(t, 2, v.Size())
	assert.Equal(t, 7.0, v.Get(0))
	assert.Equal(t, 3.0, v.Get(1))
}

package engine_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/lineflow/engine"
	"github.com/rustyeddy/lineflow/feed"
)

func fastBars(n int) []feed.Bar {
	t0 := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	out := make([]feed.Bar, n)
	for i := range out {
		c := float64(i + 1)
		out[i] = feed.Bar{
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

func TestBinderHoldsSlowValueAcrossFastTicks(t *testing.T) {
	const n, k = 90, 3

	fast := feed.NewSeries("fast")
	fast.Load(fastBars(n))
	slow, err := feed.NewResampler("slow", fast, k)
	require.NoError(t, err)
	bound, err := engine.NewBinder("bound", slow)
	require.NoError(t, err)

	for {
		ok, err := fast.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		require.NoError(t, slow.Calculate())
		require.NoError(t, bound.Calculate())
	}

	// One bound sample per fast bar.
	assert.Equal(t, n, bound.Size())
	assert.Equal(t, n/k, slow.Size())

	// Undefined until the first slow bar lands, then held constant between
	// compression boundaries.
	line := bound.Lines().GetLine(0)
	assert.True(t, math.IsNaN(line.At(0)))
	assert.True(t, math.IsNaN(line.At(1)))
	assert.Equal(t, 3.0, line.At(2))
	assert.Equal(t, 3.0, line.At(3))
	assert.Equal(t, 3.0, line.At(4))
	assert.Equal(t, 6.0, line.At(5))
	assert.Equal(t, 90.0, line.At(n-1))

	// Exactly one distinct value per slow bar delivered.
	distinct := 0
	prev := math.NaN()
	for i := 0; i < n; i++ {
		v := line.At(i)
		if math.IsNaN(v) {
			continue
		}
		if v != prev {
			distinct++
			prev = v
		}
	}
	assert.Equal(t, slow.Size(), distinct)
}

func TestBinderMinPeriodInFastClockUnits(t *testing.T) {
	const n, k = 30, 3

	fast := feed.NewSeries("fast")
	fast.Load(fastBars(n))
	slow, err := feed.NewResampler("slow", fast, k)
	require.NoError(t, err)

	// Warm-up 2 on the slow cadence: first defined slow value on slow bar
	// 2, which completes on fast bar 6.
	rec, err := newRecorder("rec", 2, slow.Out())
	require.NoError(t, err)
	bound, err := engine.NewBinder("bound", rec)
	require.NoError(t, err)

	assert.Equal(t, 2, bound.MinPeriod())
	bound.SetCompression(k)
	assert.Equal(t, 6, bound.MinPeriod())

	for {
		ok, err := fast.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		require.NoError(t, slow.Calculate())
		require.NoError(t, rec.Calculate())
		require.NoError(t, bound.Calculate())
	}

	line := bound.Lines().GetLine(0)
	nans := 0
	for i := 0; i < n; i++ {
		if !math.IsNaN(line.At(i)) {
			break
		}
		nans++
	}
	assert.Equal(t, bound.MinPeriod()-1, nans)
	assert.False(t, math.IsNaN(line.At(bound.MinPeriod()-1)))
}

func TestBinderRefusesBatchEvaluation(t *testing.T) {
	slow := feed.NewSeries("slow")
	bound, err := engine.NewBinder("bound", slow)
	require.NoError(t, err)
	assert.Error(t, bound.RunOnce())
}

func TestBinderRejectsNilSource(t *testing.T) {
	_, err := engine.NewBinder("bound", nil)
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
}

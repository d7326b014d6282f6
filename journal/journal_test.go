package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/lineflow/feed"
	"github.com/rustyeddy/lineflow/indicators"
)

func TestSummarizeSkipsWarmup(t *testing.T) {
	src := feed.NewValues("v")
	sma, err := indicators.NewSMA(src, 4)
	require.NoError(t, err)

	for i := 1; i <= 10; i++ {
		src.Append(float64(i))
		require.NoError(t, sma.Calculate())
	}

	sums := Summarize("RUN1", sma)
	require.Len(t, sums, 1)
	cs := sums[0]

	assert.Equal(t, "RUN1", cs.RunID)
	assert.Equal(t, sma.Name(), cs.Indicator)
	assert.Equal(t, 4, cs.MinPeriod)
	// 10 bars, 3 undefined during warm-up.
	assert.Equal(t, 7, cs.Defined)
	assert.Equal(t, 2.5, cs.First)
	assert.Equal(t, 8.5, cs.Last)
	assert.Equal(t, 5.5, cs.Mean)
	assert.Equal(t, 2.5, cs.Min)
	assert.Equal(t, 8.5, cs.Max)
	assert.Greater(t, cs.StdDev, 0.0)
}

func TestSummarizeEmptyRun(t *testing.T) {
	src := feed.NewValues("v")
	sma, err := indicators.NewSMA(src, 5)
	require.NoError(t, err)

	sums := Summarize("RUN2", sma)
	require.Len(t, sums, 1)
	assert.Zero(t, sums[0].Defined)
	assert.Zero(t, sums[0].Mean)
	assert.Zero(t, sums[0].StdDev)
}

func TestSummarizeMultiLine(t *testing.T) {
	src := feed.NewValues("v")
	env, err := indicators.NewEnvelope(src, 3, 0.025)
	require.NoError(t, err)

	for i := 1; i <= 6; i++ {
		src.Append(float64(i))
		require.NoError(t, env.Calculate())
	}

	sums := Summarize("RUN3", env)
	require.Len(t, sums, 3)
	assert.Equal(t, "mid", sums[0].Line)
	assert.Equal(t, "top", sums[1].Line)
	assert.Equal(t, "bottom", sums[2].Line)
	assert.InDelta(t, sums[0].Mean*1.025, sums[1].Mean, 1e-12)
}

package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/lineflow/engine"
	"github.com/rustyeddy/lineflow/feed"
	"github.com/rustyeddy/lineflow/lines"
)

// ramp returns 1, 2, ... n.
func ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// walk is a deterministic pseudo-random price path; a fixed LCG keeps runs
// reproducible without seeding globals.
func walk(n int) []float64 {
	out := make([]float64, n)
	state := uint64(0x2545F4914F6CDD1D)
	price := 100.0
	for i := range out {
		state = state*6364136223846793005 + 1442695040888963407
		step := float64(state>>40)/float64(1<<24) - 0.5
		price += step
		out[i] = price
	}
	return out
}

// bars turns a close path into OHLCV bars with a spread around the close.
func bars(closes []float64) []feed.Bar {
	out := make([]feed.Bar, len(closes))
	start := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	for i, c := range closes {
		out[i] = feed.Bar{
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   c - 0.25,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 1000,
		}
	}
	return out
}

// replayNext appends vals one at a time, calculating every evaluator per
// bar, the way the external driver does.
func replayNext(t *testing.T, src *feed.Values, vals []float64, evs ...engine.Evaluator) {
	t.Helper()
	for _, v := range vals {
		src.Append(v)
		for _, ev := range evs {
			require.NoError(t, ev.Calculate())
		}
	}
}

// replayOnce loads everything, then batch-evaluates.
func replayOnce(t *testing.T, src *feed.Values, vals []float64, evs ...engine.Evaluator) {
	t.Helper()
	for _, v := range vals {
		src.Append(v)
	}
	for _, ev := range evs {
		require.NoError(t, ev.RunOnce())
	}
}

// requireSameColumns asserts two output columns agree exactly, bar for
// bar, NaN positions included.
func requireSameColumns(t *testing.T, want, got *lines.Line, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		w, g := want.At(i), got.At(i)
		if math.IsNaN(w) || math.IsNaN(g) {
			require.True(t, math.IsNaN(w) && math.IsNaN(g), "bar %d: want %v, got %v", i, w, g)
			continue
		}
		require.Equal(t, w, g, "bar %d", i)
	}
}

// leadingNaNs counts undefined bars at the start of a column.
func leadingNaNs(l *lines.Line, n int) int {
	count := 0
	for i := 0; i < n; i++ {
		if !math.IsNaN(l.At(i)) {
			break
		}
		count++
	}
	return count
}

// journal/journal.go
package journal

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rustyeddy/lineflow/engine"
)

// RunRecord describes one finished replay.
type RunRecord struct {
	RunID      string
	Feed       string
	Mode       string
	Bars       int
	Indicators int
	Started    time.Time
	Finished   time.Time
}

// ColumnSummary condenses one output line of one indicator: how much of it
// is defined, its endpoints, and distribution statistics over the defined
// region only.
type ColumnSummary struct {
	RunID     string
	Indicator string
	Line      string
	MinPeriod int
	Defined   int
	First     float64
	Last      float64
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordSummary(ColumnSummary) error
	Close() error
}

// Summarize reduces every output line of ev to a ColumnSummary. NaN samples
// are excluded, so the warm-up region never skews the statistics.
func Summarize(runID string, ev engine.Evaluator) []ColumnSummary {
	ls := ev.Lines()
	out := make([]ColumnSummary, 0, ls.NumLines())
	for i := 0; i < ls.NumLines(); i++ {
		line := ls.GetLine(i)
		defined := make([]float64, 0, line.Len())
		for _, v := range line.Array() {
			if !math.IsNaN(v) {
				defined = append(defined, v)
			}
		}

		cs := ColumnSummary{
			RunID:     runID,
			Indicator: ev.Name(),
			Line:      line.Name,
			MinPeriod: ev.MinPeriod(),
			Defined:   len(defined),
		}
		if len(defined) > 0 {
			cs.First = defined[0]
			cs.Last = defined[len(defined)-1]
			cs.Mean = stat.Mean(defined, nil)
			cs.Min = floats.Min(defined)
			cs.Max = floats.Max(defined)
		}
		if len(defined) > 1 {
			cs.StdDev = stat.StdDev(defined, nil)
		}
		out = append(out, cs)
	}
	return out
}

package engine

import (
	"fmt"
	"math"

	"github.com/rustyeddy/lineflow/lines"
)

// Formula is the set of evaluation hooks a concrete indicator implements.
// The first three drive the incremental path, one bar at a time:
//
//   - PreNext runs while fewer than minperiod bars exist. It accumulates
//     whatever rolling state the formula needs but writes nothing; the
//     output slot stays NaN.
//   - NextStart runs exactly once, on the bar where the count reaches
//     minperiod. It seeds recursive formulas from the warm-up window,
//     the only place a from-history computation is allowed.
//   - Next runs on every later bar and must be O(1): sliding sums and the
//     previous smoothed value, never a re-scan of the window.
//
// The last three are the batch dual over an index range, operating on raw
// arrays. For every bar both paths must produce the same value exactly:
// same formula, same summation order.
type Formula interface {
	PreNext()
	NextStart()
	Next()
	PreOnce(start, end int)
	OnceStart(start, end int)
	Once(start, end int)
}

// Indicator is the evaluation state machine every concrete indicator
// embeds. It owns the output LineSet, holds shared references to its input
// sources, carries the resolved warm-up length, and routes each step to the
// right Formula hook. Wiring happens once at construction and evaluation is
// driven top-down, so the input graph is a DAG by construction.
type Indicator struct {
	name      string
	formula   Formula
	lines     *lines.LineSet
	datas     []Source
	clock     Source
	children  []Evaluator
	minperiod int
}

// Init wires the indicator to its inputs. The first input is the clock:
// the source whose bar count decides when a new step is due.
func (ind *Indicator) Init(name string, f Formula, inputs ...Source) error {
	if len(inputs) == 0 {
		return fmt.Errorf("%w: %s needs at least one input", ErrInvalidConfig, name)
	}
	for i, in := range inputs {
		if in == nil {
			return fmt.Errorf("%w: %s input %d is nil", ErrInvalidConfig, name, i)
		}
	}
	ind.name = name
	ind.formula = f
	ind.lines = lines.NewLineSet()
	ind.datas = inputs
	ind.clock = inputs[0]
	ind.minperiod = 1
	return nil
}

// AddLine adds an output column.
func (ind *Indicator) AddLine(name string) *lines.Line { return ind.lines.AddLine(name) }

// AddChild registers a sub-indicator that must be brought up to date before
// each of the owner's steps (a DEMA's inner EMAs). Children are evaluated
// recursively by both paths.
func (ind *Indicator) AddChild(evs ...Evaluator) { ind.children = append(ind.children, evs...) }

// SetWarmup fixes the indicator's own warm-up length and combines it with
// the warm-up of every wired input: own + max(input minperiod) - 1. The
// combination is additive because an input's first defined bar is its
// minperiod-th, and the consumer needs own further bars counting from
// there. Cascades compose the way the formulas require: a double smoothing
// of window p resolves to 2p-1, a triple to 3p-2. Called once at
// construction; the result never changes afterwards.
func (ind *Indicator) SetWarmup(own int) {
	inmax := 1
	for _, d := range ind.datas {
		if m := d.MinPeriod(); m > inmax {
			inmax = m
		}
	}
	ind.minperiod = own + inmax - 1
}

// OverrideMinPeriod sets the resolved warm-up directly, for formulas whose
// rule is not the additive default.
func (ind *Indicator) OverrideMinPeriod(mp int) { ind.minperiod = mp }

// MinPeriod reports how many leading bars this indicator needs before its
// first defined output.
func (ind *Indicator) MinPeriod() int { return ind.minperiod }

// Name reports the identifier given at Init, e.g. "SMA(5)".
func (ind *Indicator) Name() string { return ind.name }

// Lines exposes the output LineSet.
func (ind *Indicator) Lines() *lines.LineSet { return ind.lines }

// Size reports how many bars have been produced.
func (ind *Indicator) Size() int { return ind.lines.Size() }

// Data returns the i-th wired input, nil when out of range.
func (ind *Indicator) Data(i int) Source {
	if i < 0 || i >= len(ind.datas) {
		return nil
	}
	return ind.datas[i]
}

// Get reads the primary output line ago bars back; NaN while warming up or
// when no output line has been added.
func (ind *Indicator) Get(ago int) float64 {
	l := ind.lines.GetLine(0)
	if l == nil {
		return math.NaN()
	}
	return l.Get(ago)
}

// Calculate advances the indicator by at most one step. It is the single
// per-bar entry point: children first, then a hard length check against the
// clock, then one Formula hook depending on where the bar count stands
// relative to minperiod. A clock that has not advanced is a legal no-op
// (slower cadences); any other length mismatch is a DesyncError.
func (ind *Indicator) Calculate() error {
	for _, c := range ind.children {
		if err := c.Calculate(); err != nil {
			return err
		}
	}

	clen := ind.clock.Size()
	own := ind.lines.Size()
	if clen == own {
		return nil
	}
	if clen != own+1 {
		return &DesyncError{Indicator: ind.name, Input: sourceName(ind.clock), Want: own + 1, Got: clen}
	}
	for _, d := range ind.datas[1:] {
		if d.Size() < clen {
			return &DesyncError{Indicator: ind.name, Input: sourceName(d), Want: clen, Got: d.Size()}
		}
	}

	ind.lines.Forward()
	switch {
	case clen < ind.minperiod:
		ind.formula.PreNext()
	case clen == ind.minperiod:
		ind.formula.NextStart()
	default:
		ind.formula.Next()
	}
	return nil
}

// RunOnce is the batch dual of Calculate: it lays out the full output range
// and replays the three phases over index ranges against the raw arrays.
// Calling it again on the same static input rewrites the same values, so it
// is idempotent.
func (ind *Indicator) RunOnce() error {
	for _, c := range ind.children {
		if err := c.RunOnce(); err != nil {
			return err
		}
	}

	end := ind.clock.Size()
	for _, d := range ind.datas {
		if d.Size() < end {
			return &DesyncError{Indicator: ind.name, Input: sourceName(d), Want: end, Got: d.Size()}
		}
	}

	ind.lines.AdvanceTo(end)
	mp := ind.minperiod
	if end < mp {
		ind.formula.PreOnce(0, end)
		return nil
	}
	ind.formula.PreOnce(0, mp-1)
	ind.formula.OnceStart(mp-1, mp)
	ind.formula.Once(mp, end)
	return nil
}

func sourceName(s Source) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "input"
}

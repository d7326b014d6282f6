package indicators

import (
	"fmt"

	"github.com/rustyeddy/lineflow/engine"
	"github.com/rustyeddy/lineflow/lines"
)

// AwesomeOscillator is the fast-minus-slow simple average of the bar's
// median price (high+low)/2. On a flat series the two averages cancel to
// exactly zero.
type AwesomeOscillator struct {
	engine.Indicator
	fast, slow int
	high, low  *lines.Line
	out        *lines.Line

	fsum, ssum winsum
	bf, bs     winsum
}

// NewAwesomeOscillator builds the oscillator over an OHLCV-shaped source
// (5 and 34 are the conventional windows).
func NewAwesomeOscillator(src engine.Source, fast, slow int) (*AwesomeOscillator, error) {
	if fast <= 0 || slow <= fast {
		return nil, fmt.Errorf("%w: awesome oscillator needs 0 < fast < slow, got fast=%d slow=%d",
			engine.ErrInvalidConfig, fast, slow)
	}
	a := &AwesomeOscillator{fast: fast, slow: slow}
	if err := a.Init(fmt.Sprintf("AO(%d,%d)", fast, slow), a, src); err != nil {
		return nil, err
	}
	ls := src.Lines()
	if ls.NumLines() <= engine.ColClose {
		return nil, fmt.Errorf("%w: awesome oscillator needs high/low columns", engine.ErrInvalidConfig)
	}
	a.high = ls.GetLine(engine.ColHigh)
	a.low = ls.GetLine(engine.ColLow)
	a.out = a.AddLine("ao")
	a.SetWarmup(slow)
	return a, nil
}

func (a *AwesomeOscillator) median(ago int) float64 {
	return (a.high.Get(ago) + a.low.Get(ago)) / 2.0
}

func (a *AwesomeOscillator) slide() {
	m := a.median(0)
	n := a.high.Len()
	a.fsum.admit(m)
	if n > a.fast {
		a.fsum.retire(a.median(a.fast))
	}
	a.ssum.admit(m)
	if n > a.slow {
		a.ssum.retire(a.median(a.slow))
	}
}

func (a *AwesomeOscillator) PreNext()   { a.slide() }
func (a *AwesomeOscillator) NextStart() { a.Next() }

func (a *AwesomeOscillator) Next() {
	a.slide()
	a.out.Set(0, a.fsum.value()/float64(a.fast)-a.ssum.value()/float64(a.slow))
}

func (a *AwesomeOscillator) medianAt(i int) float64 {
	return (a.high.At(i) + a.low.At(i)) / 2.0
}

func (a *AwesomeOscillator) slideAt(i int) {
	m := a.medianAt(i)
	a.bf.admit(m)
	if j := i - a.fast; j >= 0 {
		a.bf.retire(a.medianAt(j))
	}
	a.bs.admit(m)
	if j := i - a.slow; j >= 0 {
		a.bs.retire(a.medianAt(j))
	}
}

func (a *AwesomeOscillator) PreOnce(start, end int) {
	a.bf.reset()
	a.bs.reset()
	for i := start; i < end; i++ {
		a.slideAt(i)
	}
}

func (a *AwesomeOscillator) OnceStart(start, end int) { a.Once(start, end) }

func (a *AwesomeOscillator) Once(start, end int) {
	for i := start; i < end; i++ {
		a.slideAt(i)
		a.out.SetAt(i, a.bf.value()/float64(a.fast)-a.bs.value()/float64(a.slow))
	}
}

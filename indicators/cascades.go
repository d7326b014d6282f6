package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/lineflow/engine"
	"github.com/rustyeddy/lineflow/lines"
)

// DEMA is the double exponential moving average: 2*ema1 - ema2, where ema2
// smooths ema1 again. The warm-up resolver composes the cascade to 2p-1.
type DEMA struct {
	engine.Indicator
	ema1, ema2 *EMA
	a1, a2     *lines.Line
	out        *lines.Line
}

// NewDEMA builds a DEMA of the given window over the source's value line.
func NewDEMA(src engine.Source, period int) (*DEMA, error) {
	ema1, err := NewEMA(src, period)
	if err != nil {
		return nil, fmt.Errorf("dema: %w", err)
	}
	ema2, err := NewEMA(ema1, period)
	if err != nil {
		return nil, fmt.Errorf("dema: %w", err)
	}
	d := &DEMA{ema1: ema1, ema2: ema2}
	if err := d.Init(fmt.Sprintf("DEMA(%d)", period), d, ema1, ema2); err != nil {
		return nil, err
	}
	d.AddChild(ema1, ema2)
	d.a1 = ema1.Lines().GetLine(0)
	d.a2 = ema2.Lines().GetLine(0)
	d.out = d.AddLine("dema")
	d.SetWarmup(1)
	return d, nil
}

func (d *DEMA) PreNext()   {}
func (d *DEMA) NextStart() { d.Next() }

func (d *DEMA) Next() {
	d.out.Set(0, 2.0*d.a1.Get(0)-d.a2.Get(0))
}

func (d *DEMA) PreOnce(start, end int)   {}
func (d *DEMA) OnceStart(start, end int) { d.Once(start, end) }

func (d *DEMA) Once(start, end int) {
	for i := start; i < end; i++ {
		d.out.SetAt(i, 2.0*d.a1.At(i)-d.a2.At(i))
	}
}

// TEMA is the triple exponential moving average: 3*ema1 - 3*ema2 + ema3.
// The cascade resolves to a warm-up of 3p-2.
type TEMA struct {
	engine.Indicator
	a1, a2, a3 *lines.Line
	out        *lines.Line
}

// NewTEMA builds a TEMA of the given window over the source's value line.
func NewTEMA(src engine.Source, period int) (*TEMA, error) {
	ema1, err := NewEMA(src, period)
	if err != nil {
		return nil, fmt.Errorf("tema: %w", err)
	}
	ema2, err := NewEMA(ema1, period)
	if err != nil {
		return nil, fmt.Errorf("tema: %w", err)
	}
	ema3, err := NewEMA(ema2, period)
	if err != nil {
		return nil, fmt.Errorf("tema: %w", err)
	}
	t := &TEMA{}
	if err := t.Init(fmt.Sprintf("TEMA(%d)", period), t, ema1, ema2, ema3); err != nil {
		return nil, err
	}
	t.AddChild(ema1, ema2, ema3)
	t.a1 = ema1.Lines().GetLine(0)
	t.a2 = ema2.Lines().GetLine(0)
	t.a3 = ema3.Lines().GetLine(0)
	t.out = t.AddLine("tema")
	t.SetWarmup(1)
	return t, nil
}

func (t *TEMA) PreNext()   {}
func (t *TEMA) NextStart() { t.Next() }

func (t *TEMA) Next() {
	t.out.Set(0, 3.0*t.a1.Get(0)-3.0*t.a2.Get(0)+t.a3.Get(0))
}

func (t *TEMA) PreOnce(start, end int)   {}
func (t *TEMA) OnceStart(start, end int) { t.Once(start, end) }

func (t *TEMA) Once(start, end int) {
	for i := start; i < end; i++ {
		t.out.SetAt(i, 3.0*t.a1.At(i)-3.0*t.a2.At(i)+t.a3.At(i))
	}
}

// TRIX is the 1-bar rate of change of a triple-smoothed EMA, in percent.
// It needs one bar of history on top of the 3p-2 cascade, so it resolves
// to 3p-1.
type TRIX struct {
	engine.Indicator
	a3  *lines.Line
	out *lines.Line
}

// NewTRIX builds a TRIX of the given window over the source's value line.
func NewTRIX(src engine.Source, period int) (*TRIX, error) {
	ema1, err := NewEMA(src, period)
	if err != nil {
		return nil, fmt.Errorf("trix: %w", err)
	}
	ema2, err := NewEMA(ema1, period)
	if err != nil {
		return nil, fmt.Errorf("trix: %w", err)
	}
	ema3, err := NewEMA(ema2, period)
	if err != nil {
		return nil, fmt.Errorf("trix: %w", err)
	}
	x := &TRIX{}
	if err := x.Init(fmt.Sprintf("TRIX(%d)", period), x, ema3); err != nil {
		return nil, err
	}
	x.AddChild(ema1, ema2, ema3)
	x.a3 = ema3.Lines().GetLine(0)
	x.out = x.AddLine("trix")
	x.SetWarmup(2) // current and previous smoothed value
	return x, nil
}

func roc1(cur, prev float64) float64 {
	if prev == 0 {
		return math.NaN()
	}
	return (cur/prev - 1.0) * 100.0
}

func (x *TRIX) PreNext()   {}
func (x *TRIX) NextStart() { x.Next() }

func (x *TRIX) Next() {
	x.out.Set(0, roc1(x.a3.Get(0), x.a3.Get(1)))
}

func (x *TRIX) PreOnce(start, end int)   {}
func (x *TRIX) OnceStart(start, end int) { x.Once(start, end) }

func (x *TRIX) Once(start, end int) {
	for i := start; i < end; i++ {
		x.out.SetAt(i, roc1(x.a3.At(i), x.a3.At(i-1)))
	}
}

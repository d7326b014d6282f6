package indicators

import (
	"fmt"

	"github.com/rustyeddy/lineflow/engine"
	"github.com/rustyeddy/lineflow/lines"
)

// Beta is the rolling least-squares slope of a dependent series against an
// independent one. When the independent series has exactly zero variance
// over the window the slope is undefined; it defaults to 1.0, which is the
// neutral hedge ratio callers expect in that degenerate case.
type Beta struct {
	engine.Indicator
	period int
	dep    *lines.Line
	indep  *lines.Line
	out    *lines.Line

	sy, sx, sxy, sxx winsum
	by, bx, bxy, bxx winsum
}

// NewBeta builds a rolling beta of dep against indep over the given
// window. dep drives the clock; both sources must advance together.
func NewBeta(dep, indep engine.Source, period int) (*Beta, error) {
	if period <= 1 {
		return nil, fmt.Errorf("%w: beta window must exceed 1, got %d", engine.ErrInvalidConfig, period)
	}
	b := &Beta{period: period}
	if err := b.Init(fmt.Sprintf("Beta(%d)", period), b, dep, indep); err != nil {
		return nil, err
	}
	b.dep = engine.ValueLine(dep)
	b.indep = engine.ValueLine(indep)
	if b.dep == nil || b.indep == nil {
		return nil, fmt.Errorf("%w: beta source exposes no lines", engine.ErrInvalidConfig)
	}
	b.out = b.AddLine("beta")
	b.SetWarmup(period)
	return b, nil
}

func slope(period int, sy, sx, sxy, sxx float64) float64 {
	p := float64(period)
	den := p*sxx - sx*sx
	if den == 0 {
		return 1.0
	}
	return (p*sxy - sx*sy) / den
}

func (b *Beta) slide() {
	y := b.dep.Get(0)
	x := b.indep.Get(0)
	b.sy.admit(y)
	b.sx.admit(x)
	b.sxy.admit(x * y)
	b.sxx.admit(x * x)
	if b.dep.Len() > b.period {
		oy := b.dep.Get(b.period)
		ox := b.indep.Get(b.period)
		b.sy.retire(oy)
		b.sx.retire(ox)
		b.sxy.retire(ox * oy)
		b.sxx.retire(ox * ox)
	}
}

func (b *Beta) PreNext()   { b.slide() }
func (b *Beta) NextStart() { b.Next() }

func (b *Beta) Next() {
	b.slide()
	b.out.Set(0, slope(b.period, b.sy.value(), b.sx.value(), b.sxy.value(), b.sxx.value()))
}

func (b *Beta) slideAt(i int) {
	y := b.dep.At(i)
	x := b.indep.At(i)
	b.by.admit(y)
	b.bx.admit(x)
	b.bxy.admit(x * y)
	b.bxx.admit(x * x)
	if j := i - b.period; j >= 0 {
		oy := b.dep.At(j)
		ox := b.indep.At(j)
		b.by.retire(oy)
		b.bx.retire(ox)
		b.bxy.retire(ox * oy)
		b.bxx.retire(ox * ox)
	}
}

func (b *Beta) PreOnce(start, end int) {
	b.by.reset()
	b.bx.reset()
	b.bxy.reset()
	b.bxx.reset()
	for i := start; i < end; i++ {
		b.slideAt(i)
	}
}

func (b *Beta) OnceStart(start, end int) { b.Once(start, end) }

func (b *Beta) Once(start, end int) {
	for i := start; i < end; i++ {
		b.slideAt(i)
		b.out.SetAt(i, slope(b.period, b.by.value(), b.bx.value(), b.bxy.value(), b.bxx.value()))
	}
}

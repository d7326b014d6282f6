package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/lineflow/engine"
	"github.com/rustyeddy/lineflow/lines"
)

// StdDev is the population standard deviation over a fixed window,
// maintained from sliding sums of values and squares. Rounding can push
// the variance residue slightly negative on near-constant input; it is
// clamped to zero before the square root.
type StdDev struct {
	engine.Indicator
	period int
	src    *lines.Line
	out    *lines.Line

	v1, v2 winsum
	b1, b2 winsum
}

// NewStdDev builds a standard deviation of the given window over the
// source's value line.
func NewStdDev(src engine.Source, period int) (*StdDev, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: stddev window must be positive, got %d", engine.ErrInvalidConfig, period)
	}
	d := &StdDev{period: period}
	if err := d.Init(fmt.Sprintf("StdDev(%d)", period), d, src); err != nil {
		return nil, err
	}
	d.src = engine.ValueLine(src)
	if d.src == nil {
		return nil, fmt.Errorf("%w: stddev source exposes no lines", engine.ErrInvalidConfig)
	}
	d.out = d.AddLine("stddev")
	d.SetWarmup(period)
	return d, nil
}

func deviation(s1, s2 float64, period int) float64 {
	p := float64(period)
	mean := s1 / p
	variance := s2/p - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

func (d *StdDev) slide() {
	v := d.src.Get(0)
	d.v1.admit(v)
	d.v2.admit(v * v)
	if d.src.Len() > d.period {
		old := d.src.Get(d.period)
		d.v1.retire(old)
		d.v2.retire(old * old)
	}
}

func (d *StdDev) PreNext()   { d.slide() }
func (d *StdDev) NextStart() { d.Next() }

func (d *StdDev) Next() {
	d.slide()
	d.out.Set(0, deviation(d.v1.value(), d.v2.value(), d.period))
}

func (d *StdDev) slideAt(i int) {
	v := d.src.At(i)
	d.b1.admit(v)
	d.b2.admit(v * v)
	if j := i - d.period; j >= 0 {
		old := d.src.At(j)
		d.b1.retire(old)
		d.b2.retire(old * old)
	}
}

func (d *StdDev) PreOnce(start, end int) {
	d.b1.reset()
	d.b2.reset()
	for i := start; i < end; i++ {
		d.slideAt(i)
	}
}

func (d *StdDev) OnceStart(start, end int) { d.Once(start, end) }

func (d *StdDev) Once(start, end int) {
	for i := start; i < end; i++ {
		d.slideAt(i)
		d.out.SetAt(i, deviation(d.b1.value(), d.b2.value(), d.period))
	}
}

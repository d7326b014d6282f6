package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/lineflow/engine"
	"github.com/rustyeddy/lineflow/lines"
)

// EMA is an exponential moving average seeded with the plain average of
// its warm-up window, so the recursive formula starts from a defined
// value instead of drifting in from zero.
type EMA struct {
	engine.Indicator
	period int
	alpha  float64
	src    *lines.Line
	out    *lines.Line

	seedSum float64
	seedN   int
	prev    float64

	bseedSum float64
	bseedN   int
	bprev    float64
}

// NewEMA builds an EMA of the given window over the source's value line.
func NewEMA(src engine.Source, period int) (*EMA, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: ema window must be positive, got %d", engine.ErrInvalidConfig, period)
	}
	e := &EMA{period: period, alpha: 2.0 / float64(period+1)}
	if err := e.Init(fmt.Sprintf("EMA(%d)", period), e, src); err != nil {
		return nil, err
	}
	e.src = engine.ValueLine(src)
	if e.src == nil {
		return nil, fmt.Errorf("%w: ema source exposes no lines", engine.ErrInvalidConfig)
	}
	e.out = e.AddLine("ema")
	e.SetWarmup(period)
	return e, nil
}

func (e *EMA) seed(v float64) {
	if !math.IsNaN(v) {
		e.seedSum += v
		e.seedN++
	}
}

func (e *EMA) PreNext() { e.seed(e.src.Get(0)) }

// NextStart seeds the recursion with the average of the warm-up window.
// If NaN values inside the input left the window short, the seed is
// undefined and so is everything downstream of it.
func (e *EMA) NextStart() {
	e.seed(e.src.Get(0))
	if e.seedN == e.period {
		e.prev = e.seedSum / float64(e.period)
	} else {
		e.prev = math.NaN()
	}
	e.out.Set(0, e.prev)
}

func (e *EMA) Next() {
	v := e.src.Get(0)
	e.prev = e.prev*(1.0-e.alpha) + v*e.alpha
	e.out.Set(0, e.prev)
}

func (e *EMA) PreOnce(start, end int) {
	e.bseedSum, e.bseedN = 0, 0
	for i := start; i < end; i++ {
		if v := e.src.At(i); !math.IsNaN(v) {
			e.bseedSum += v
			e.bseedN++
		}
	}
}

func (e *EMA) OnceStart(start, end int) {
	for i := start; i < end; i++ {
		if v := e.src.At(i); !math.IsNaN(v) {
			e.bseedSum += v
			e.bseedN++
		}
		if e.bseedN == e.period {
			e.bprev = e.bseedSum / float64(e.period)
		} else {
			e.bprev = math.NaN()
		}
		e.out.SetAt(i, e.bprev)
	}
}

func (e *EMA) Once(start, end int) {
	for i := start; i < end; i++ {
		v := e.src.At(i)
		e.bprev = e.bprev*(1.0-e.alpha) + v*e.alpha
		e.out.SetAt(i, e.bprev)
	}
}

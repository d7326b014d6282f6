package indicators

import (
	"fmt"

	"github.com/rustyeddy/lineflow/engine"
	"github.com/rustyeddy/lineflow/lines"
)

// Envelope is a three-line indicator: a simple moving average mid line
// with top and bottom bands a fixed percentage away.
type Envelope struct {
	engine.Indicator
	perc   float64
	mid    *lines.Line
	top    *lines.Line
	bottom *lines.Line
	sma    *lines.Line
}

// NewEnvelope builds an envelope over an SMA of the given window, with
// bands perc (a fraction, e.g. 0.025 for 2.5%) away from the mid line.
func NewEnvelope(src engine.Source, period int, perc float64) (*Envelope, error) {
	if perc <= 0 {
		return nil, fmt.Errorf("%w: envelope percentage must be positive, got %v",
			engine.ErrInvalidConfig, perc)
	}
	sma, err := NewSMA(src, period)
	if err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}
	e := &Envelope{perc: perc}
	if err := e.Init(fmt.Sprintf("Envelope(%d,%g)", period, perc), e, sma); err != nil {
		return nil, err
	}
	e.AddChild(sma)
	e.sma = sma.Lines().GetLine(0)
	e.mid = e.AddLine("mid")
	e.top = e.AddLine("top")
	e.bottom = e.AddLine("bottom")
	e.SetWarmup(1)
	return e, nil
}

func (e *Envelope) PreNext()   {}
func (e *Envelope) NextStart() { e.Next() }

func (e *Envelope) Next() {
	m := e.sma.Get(0)
	e.mid.Set(0, m)
	e.top.Set(0, m*(1.0+e.perc))
	e.bottom.Set(0, m*(1.0-e.perc))
}

func (e *Envelope) PreOnce(start, end int)   {}
func (e *Envelope) OnceStart(start, end int) { e.Once(start, end) }

func (e *Envelope) Once(start, end int) {
	for i := start; i < end; i++ {
		m := e.sma.At(i)
		e.mid.SetAt(i, m)
		e.top.SetAt(i, m*(1.0+e.perc))
		e.bottom.SetAt(i, m*(1.0-e.perc))
	}
}

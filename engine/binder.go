package engine

import (
	"fmt"
	"math"

	"github.com/rustyeddy/lineflow/lines"
)

// Binder exposes a slower-cadence source on a faster driving clock. On
// every fast tick it re-emits the last value the slow source produced,
// refreshing only when the slow source itself grows. Over a full replay the
// number of distinct values on the bound line equals the number of slow
// bars actually delivered, no matter how often the fast clock reads it.
type Binder struct {
	name string
	slow Source
	src  *lines.Line
	out  *lines.Line
	ls   *lines.LineSet
	k    int
	seen int
	val  float64
}

// NewBinder wraps slow for consumption on a faster clock. The bound column
// is the slow source's value line (close for an OHLCV feed, line 0
// otherwise).
func NewBinder(name string, slow Source) (*Binder, error) {
	if slow == nil {
		return nil, fmt.Errorf("%w: binder %s has no source", ErrInvalidConfig, name)
	}
	src := ValueLine(slow)
	if src == nil {
		return nil, fmt.Errorf("%w: binder %s source exposes no lines", ErrInvalidConfig, name)
	}
	b := &Binder{
		name: name,
		slow: slow,
		src:  src,
		ls:   lines.NewLineSet(),
		k:    1,
		val:  math.NaN(),
	}
	b.out = b.ls.AddLine("bound")
	return b, nil
}

// Calculate emits one fast-clock bar: the held value, refreshed first if
// the slow source has delivered since the last tick.
func (b *Binder) Calculate() error {
	if n := b.slow.Size(); n > b.seen {
		b.val = b.src.Get(0)
		b.seen = n
	}
	b.ls.Forward()
	b.out.Set(0, b.val)
	return nil
}

// RunOnce is not available: fast/slow alignment only exists while the
// replay is being driven bar by bar.
func (b *Binder) RunOnce() error {
	return fmt.Errorf("engine: binder %s requires incremental replay", b.name)
}

// Name reports the identifier given at construction.
func (b *Binder) Name() string { return b.name }

// Lines exposes the bound column.
func (b *Binder) Lines() *lines.LineSet { return b.ls }

// Size reports fast-clock bars emitted.
func (b *Binder) Size() int { return b.ls.Size() }

// SetCompression tells the binder how many fast bars make one slow bar,
// letting MinPeriod answer in the clock units its consumers run on.
func (b *Binder) SetCompression(k int) {
	if k > 0 {
		b.k = k
	}
}

// MinPeriod reports the warm-up of the bound line. With the compression
// factor set it is denominated in fast-clock bars: the slow source's first
// defined value lands on the fast bar that completes its minperiod-th slow
// bar. Without the factor it mirrors the slow source and the count is in
// slow bars, which undercounts on the fast clock.
func (b *Binder) MinPeriod() int { return b.k * b.slow.MinPeriod() }

// Get reads the bound line ago fast bars back.
func (b *Binder) Get(ago int) float64 { return b.out.Get(ago) }

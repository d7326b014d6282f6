package feed

import (
	"fmt"
	"time"

	"github.com/rustyeddy/lineflow/engine"
	"github.com/rustyeddy/lineflow/lines"
)

// Resampler compresses every k bars of a fast OHLCV source into one slow
// bar: first open, highest high, lowest low, last close, summed volume.
// Its output series only grows on compression boundaries, which is exactly
// the cadence a Binder synchronizes faster consumers against.
type Resampler struct {
	name string
	fast engine.Source
	out  *Series
	k    int

	seen int
	step int
	cur  Bar
}

// NewResampler wraps fast with a compression factor of k driving bars per
// slow bar.
func NewResampler(name string, fast engine.Source, k int) (*Resampler, error) {
	if fast == nil {
		return nil, fmt.Errorf("%w: resampler %s has no source", engine.ErrInvalidConfig, name)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: resampler %s compression must be positive, got %d",
			engine.ErrInvalidConfig, name, k)
	}
	if fast.Lines().NumLines() <= engine.ColClose {
		return nil, fmt.Errorf("%w: resampler %s needs an OHLCV-shaped source",
			engine.ErrInvalidConfig, name)
	}
	return &Resampler{
		name: name,
		fast: fast,
		out:  NewSeries(name),
		k:    k,
	}, nil
}

// Calculate consumes the fast source's newest bar and, on a compression
// boundary, delivers one slow bar. A fast source that has jumped more than
// one bar since the last call is desynchronized.
func (r *Resampler) Calculate() error {
	n := r.fast.Size()
	if n == r.seen {
		return nil
	}
	if n != r.seen+1 {
		return &engine.DesyncError{Indicator: r.name, Input: sourceName(r.fast), Want: r.seen + 1, Got: n}
	}
	r.seen = n

	fl := r.fast.Lines()
	bar := Bar{
		Time:   time.Unix(int64(fl.GetLine(engine.ColDateTime).Get(0)), 0).UTC(),
		Open:   fl.GetLine(engine.ColOpen).Get(0),
		High:   fl.GetLine(engine.ColHigh).Get(0),
		Low:    fl.GetLine(engine.ColLow).Get(0),
		Close:  fl.GetLine(engine.ColClose).Get(0),
		Volume: fl.GetLine(engine.ColVolume).Get(0),
	}

	if r.step == 0 {
		r.cur = bar
	} else {
		if bar.High > r.cur.High {
			r.cur.High = bar.High
		}
		if bar.Low < r.cur.Low {
			r.cur.Low = bar.Low
		}
		r.cur.Close = bar.Close
		r.cur.Volume += bar.Volume
		r.cur.Time = bar.Time // slow bar stamped at its last fast bar
	}
	r.step++

	if r.step == r.k {
		r.out.Append(r.cur)
		r.step = 0
	}
	return nil
}

// RunOnce is not available: compression boundaries only exist while the
// fast clock is being driven bar by bar.
func (r *Resampler) RunOnce() error {
	return fmt.Errorf("feed: resampler %s requires incremental replay", r.name)
}

// Name reports the resampler identifier.
func (r *Resampler) Name() string { return r.name }

// Lines exposes the slow OHLCV columns.
func (r *Resampler) Lines() *lines.LineSet { return r.out.Lines() }

// Size reports slow bars delivered.
func (r *Resampler) Size() int { return r.out.Size() }

// MinPeriod is 1 on the slow cadence.
func (r *Resampler) MinPeriod() int { return 1 }

// Out exposes the slow series for wiring downstream indicators.
func (r *Resampler) Out() *Series { return r.out }

func sourceName(s engine.Source) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "input"
}

// Package feed provides the bar sources the engine replays: an in-memory
// OHLCV series backed by a LineSet, a CSV loader, and a resampler that
// compresses a fast feed into a slower cadence.
package feed

import (
	"time"

	"github.com/rustyeddy/lineflow/engine"
	"github.com/rustyeddy/lineflow/lines"
)

// Bar is one OHLCV sample at a timestamp.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is an OHLCV feed backing a LineSet with the standard column
// ordinals (datetime, open, high, low, close, volume). It can be fed
// directly with Append, or loaded up front and replayed bar by bar through
// Next.
type Series struct {
	name string
	ls   *lines.LineSet

	queued []Bar
	cursor int
}

// NewSeries returns an empty OHLCV series.
func NewSeries(name string) *Series {
	s := &Series{name: name, ls: lines.NewLineSet()}
	// Column order is the feed contract: consumers probe close at
	// engine.ColClose.
	s.ls.AddLine("datetime")
	s.ls.AddLine("open")
	s.ls.AddLine("high")
	s.ls.AddLine("low")
	s.ls.AddLine("close")
	s.ls.AddLine("volume")
	return s
}

// Name reports the feed identifier.
func (s *Series) Name() string { return s.name }

// Lines exposes the OHLCV columns.
func (s *Series) Lines() *lines.LineSet { return s.ls }

// Size reports bars delivered so far.
func (s *Series) Size() int { return s.ls.Size() }

// MinPeriod is 1: a raw feed is defined from its first bar.
func (s *Series) MinPeriod() int { return 1 }

// Append delivers one bar into the columns immediately.
func (s *Series) Append(b Bar) {
	s.ls.GetLine(engine.ColDateTime).Append(float64(b.Time.Unix()))
	s.ls.GetLine(engine.ColOpen).Append(b.Open)
	s.ls.GetLine(engine.ColHigh).Append(b.High)
	s.ls.GetLine(engine.ColLow).Append(b.Low)
	s.ls.GetLine(engine.ColClose).Append(b.Close)
	s.ls.GetLine(engine.ColVolume).Append(b.Volume)
}

// Load queues bars for replay through Next. It may be called once, before
// the replay starts.
func (s *Series) Load(bars []Bar) {
	s.queued = bars
	s.cursor = 0
}

// Next delivers the next queued bar, reporting (false, nil) at the end.
func (s *Series) Next() (bool, error) {
	if s.cursor >= len(s.queued) {
		return false, nil
	}
	s.Append(s.queued[s.cursor])
	s.cursor++
	return true, nil
}

// Close reads the close column ago bars back.
func (s *Series) Close(ago int) float64 { return s.ls.GetLine(engine.ColClose).Get(ago) }

// Values is a single-column series: one value per bar at position 0, the
// narrow half of the input contract. Indicators and tests use it wherever
// a bare numeric stream is the natural input.
type Values struct {
	name string
	ls   *lines.LineSet
	line *lines.Line
}

// NewValues returns an empty single-column series.
func NewValues(name string) *Values {
	v := &Values{name: name, ls: lines.NewLineSet()}
	v.line = v.ls.AddLine("value")
	return v
}

// Name reports the series identifier.
func (v *Values) Name() string { return v.name }

// Lines exposes the single column.
func (v *Values) Lines() *lines.LineSet { return v.ls }

// Size reports values delivered so far.
func (v *Values) Size() int { return v.ls.Size() }

// MinPeriod is 1.
func (v *Values) MinPeriod() int { return 1 }

// Append delivers one value.
func (v *Values) Append(x float64) { v.line.Append(x) }

// Get reads ago bars back.
func (v *Values) Get(ago int) float64 { return v.line.Get(ago) }

// Package engine drives indicator evaluation over line-buffer columns: the
// prenext/nextstart/next incremental path, its preonce/oncestart/once batch
// dual, warm-up propagation across the indicator graph, and the binder that
// synchronizes mixed-cadence sources.
package engine

import "github.com/rustyeddy/lineflow/lines"

// Source is anything an indicator can consume: a raw bar feed, another
// indicator's output, or a Binder. The core never asks for more than a
// stable LineSet, a bar count, and a warm-up length.
type Source interface {
	Lines() *lines.LineSet
	Size() int
	MinPeriod() int
}

// Evaluator is the per-step surface the driver sees: one Calculate call per
// replayed bar, or one RunOnce call over a fully loaded range. The two
// paths must produce bit-identical columns.
type Evaluator interface {
	Source
	Name() string
	Calculate() error
	RunOnce() error
}

// Column ordinals of an OHLCV-shaped input (the feed contract). A source
// exposing more columns than ColClose is a full feed; a narrower source is
// a single-value series with its value at position 0.
const (
	ColDateTime = 0
	ColOpen     = 1
	ColHigh     = 2
	ColLow      = 3
	ColClose    = 4
	ColVolume   = 5
)

// ValueLine picks the "value" column of a source by probing its column
// count: close for a full OHLCV feed, position 0 for a single-value series.
// The ordinal convention is probed, never assumed.
func ValueLine(s Source) *lines.Line {
	ls := s.Lines()
	if ls.NumLines() > ColClose {
		return ls.GetLine(ColClose)
	}
	return ls.GetLine(0)
}

package indicators

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/lineflow/engine"
)

// Spec describes one indicator to build over a source, as it arrives from
// configuration. Zero-valued optional fields fall back to the
// conventional defaults of each formula.
type Spec struct {
	Kind    string
	Period  int
	Fast    int
	Slow    int
	Percent float64
}

// FromSpec builds the indicator a Spec describes over src. Kinds that need
// more than one source (beta) must be wired explicitly and are rejected
// here.
func FromSpec(src engine.Source, sp Spec) (engine.Evaluator, error) {
	switch strings.ToLower(strings.TrimSpace(sp.Kind)) {
	case "sma":
		return NewSMA(src, sp.Period)
	case "ema":
		return NewEMA(src, sp.Period)
	case "dema":
		return NewDEMA(src, sp.Period)
	case "tema":
		return NewTEMA(src, sp.Period)
	case "trix":
		return NewTRIX(src, sp.Period)
	case "stddev":
		return NewStdDev(src, sp.Period)
	case "kama":
		fast, slow := sp.Fast, sp.Slow
		if fast == 0 {
			fast = 2
		}
		if slow == 0 {
			slow = 30
		}
		return NewKAMA(src, sp.Period, fast, slow)
	case "envelope":
		perc := sp.Percent
		if perc == 0 {
			perc = 0.025
		}
		return NewEnvelope(src, sp.Period, perc)
	case "ao", "awesome":
		fast, slow := sp.Fast, sp.Slow
		if fast == 0 {
			fast = 5
		}
		if slow == 0 {
			slow = 34
		}
		return NewAwesomeOscillator(src, fast, slow)
	case "beta":
		return nil, fmt.Errorf("%w: beta needs two sources, wire it explicitly", engine.ErrInvalidConfig)
	}
	return nil, fmt.Errorf("%w: unknown indicator kind %q", engine.ErrInvalidConfig, sp.Kind)
}

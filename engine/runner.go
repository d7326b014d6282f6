package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// BarFeed is a replayable source of bars: Next delivers one bar into the
// feed's LineSet and reports (false, nil) at the end of the data.
// Implementations must be deterministic.
type BarFeed interface {
	Source
	Name() string
	Next() (bool, error)
}

// Mode selects the computation strategy for a replay.
type Mode int

const (
	// ModeNext evaluates bar by bar through the incremental hooks.
	ModeNext Mode = iota
	// ModeOnce loads the whole feed first, then batch-evaluates every
	// indicator over the full range.
	ModeOnce
)

func (m Mode) String() string {
	switch m {
	case ModeNext:
		return "next"
	case ModeOnce:
		return "once"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode maps the config/CLI spelling to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "next", "":
		return ModeNext, nil
	case "once":
		return ModeOnce, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q (next, once)", ErrInvalidConfig, s)
}

// Result summarizes a finished replay.
type Result struct {
	Bars       int
	Indicators int
	Start      time.Time
	Finish     time.Time
}

// Elapsed reports the wall time of the replay.
func (r Result) Elapsed() time.Duration { return r.Finish.Sub(r.Start) }

// Runner drives a replay: one feed, a set of evaluators in wiring order.
// Because an indicator's inputs must exist before it can be constructed,
// registration order is a valid topological order, and the runner calls
// producers before their consumers on every bar.
type Runner struct {
	Feed BarFeed
	Mode Mode
	Log  *zerolog.Logger

	evals []Evaluator
}

// Add registers evaluators in wiring order.
func (r *Runner) Add(evs ...Evaluator) { r.evals = append(r.evals, evs...) }

// Evaluators returns the registered evaluators in wiring order.
func (r *Runner) Evaluators() []Evaluator { return r.evals }

// Run replays the feed to the end under the configured mode. The first
// evaluator error aborts the replay; desyncs are never stepped past.
func (r *Runner) Run() (Result, error) {
	if r.Feed == nil {
		return Result{}, fmt.Errorf("engine: runner requires a feed")
	}
	log := r.Log
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	res := Result{Start: time.Now()}

	switch r.Mode {
	case ModeNext:
		for {
			ok, err := r.Feed.Next()
			if err != nil {
				return res, fmt.Errorf("engine: feed %s: %w", r.Feed.Name(), err)
			}
			if !ok {
				break
			}
			for _, ev := range r.evals {
				if err := ev.Calculate(); err != nil {
					log.Error().Str("indicator", ev.Name()).Int("bar", r.Feed.Size()).Err(err).
						Msg("replay aborted")
					return res, fmt.Errorf("engine: bar %d: %w", r.Feed.Size(), err)
				}
			}
		}

	case ModeOnce:
		for {
			ok, err := r.Feed.Next()
			if err != nil {
				return res, fmt.Errorf("engine: feed %s: %w", r.Feed.Name(), err)
			}
			if !ok {
				break
			}
		}
		for _, ev := range r.evals {
			if err := ev.RunOnce(); err != nil {
				log.Error().Str("indicator", ev.Name()).Err(err).Msg("batch evaluation aborted")
				return res, fmt.Errorf("engine: %s: %w", ev.Name(), err)
			}
		}

	default:
		return res, fmt.Errorf("%w: %s", ErrInvalidConfig, r.Mode)
	}

	res.Bars = r.Feed.Size()
	res.Indicators = len(r.evals)
	res.Finish = time.Now()
	log.Info().
		Str("feed", r.Feed.Name()).
		Str("mode", r.Mode.String()).
		Int("bars", res.Bars).
		Int("indicators", res.Indicators).
		Dur("elapsed", res.Elapsed()).
		Msg("replay finished")
	return res, nil
}

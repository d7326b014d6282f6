package indicators

import (
	"fmt"

	"github.com/rustyeddy/lineflow/engine"
	"github.com/rustyeddy/lineflow/lines"
)

// SMA is a simple moving average over a fixed window.
type SMA struct {
	engine.Indicator
	period int
	src    *lines.Line
	out    *lines.Line

	live  winsum // incremental path
	batch winsum // batch path, reset by every PreOnce
}

// NewSMA builds an SMA of the given window over the source's value line.
func NewSMA(src engine.Source, period int) (*SMA, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: sma window must be positive, got %d", engine.ErrInvalidConfig, period)
	}
	s := &SMA{period: period}
	if err := s.Init(fmt.Sprintf("SMA(%d)", period), s, src); err != nil {
		return nil, err
	}
	s.src = engine.ValueLine(src)
	if s.src == nil {
		return nil, fmt.Errorf("%w: sma source exposes no lines", engine.ErrInvalidConfig)
	}
	s.out = s.AddLine("sma")
	s.SetWarmup(period)
	return s, nil
}

// slide admits the newest value and retires the one falling out of the
// window, once the input is long enough to have one.
func (s *SMA) slide() {
	s.live.admit(s.src.Get(0))
	if s.src.Len() > s.period {
		s.live.retire(s.src.Get(s.period))
	}
}

func (s *SMA) PreNext() { s.slide() }

func (s *SMA) NextStart() { s.Next() }

func (s *SMA) Next() {
	s.slide()
	s.out.Set(0, s.live.value()/float64(s.period))
}

func (s *SMA) slideAt(i int) {
	s.batch.admit(s.src.At(i))
	if j := i - s.period; j >= 0 {
		s.batch.retire(s.src.At(j))
	}
}

func (s *SMA) PreOnce(start, end int) {
	s.batch.reset()
	for i := start; i < end; i++ {
		s.slideAt(i)
	}
}

func (s *SMA) OnceStart(start, end int) { s.Once(start, end) }

func (s *SMA) Once(start, end int) {
	for i := start; i < end; i++ {
		s.slideAt(i)
		s.out.SetAt(i, s.batch.value()/float64(s.period))
	}
}

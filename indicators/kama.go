package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/lineflow/engine"
	"github.com/rustyeddy/lineflow/lines"
)

// KAMA is Kaufman's adaptive moving average: an exponential smoother whose
// constant is scaled each bar by the efficiency ratio of the last period
// bars. A zero-volatility window drives the ratio to 0 (slowest smoothing)
// rather than failing the division.
type KAMA struct {
	engine.Indicator
	period  int
	fastest float64
	slowest float64
	src     *lines.Line
	out     *lines.Line

	seedSum float64
	seedN   int
	vol     winsum
	prev    float64

	bseedSum float64
	bseedN   int
	bvol     winsum
	bprev    float64
}

// NewKAMA builds a KAMA with the given efficiency window and fast/slow
// smoothing bounds (2 and 30 are the conventional defaults).
func NewKAMA(src engine.Source, period, fast, slow int) (*KAMA, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: kama window must be positive, got %d", engine.ErrInvalidConfig, period)
	}
	if fast <= 0 || slow <= fast {
		return nil, fmt.Errorf("%w: kama needs 0 < fast < slow, got fast=%d slow=%d",
			engine.ErrInvalidConfig, fast, slow)
	}
	k := &KAMA{
		period:  period,
		fastest: 2.0 / float64(fast+1),
		slowest: 2.0 / float64(slow+1),
	}
	if err := k.Init(fmt.Sprintf("KAMA(%d)", period), k, src); err != nil {
		return nil, err
	}
	k.src = engine.ValueLine(src)
	if k.src == nil {
		return nil, fmt.Errorf("%w: kama source exposes no lines", engine.ErrInvalidConfig)
	}
	k.out = k.AddLine("kama")
	// One extra bar: the efficiency ratio needs a full window of diffs.
	k.SetWarmup(period + 1)
	return k, nil
}

// slideVol slides the volatility window of absolute one-bar differences.
func (k *KAMA) slideVol() {
	n := k.src.Len()
	if n < 2 {
		return
	}
	k.vol.admit(math.Abs(k.src.Get(0) - k.src.Get(1)))
	if n >= k.period+2 {
		k.vol.retire(math.Abs(k.src.Get(k.period) - k.src.Get(k.period+1)))
	}
}

func (k *KAMA) PreNext() {
	if v := k.src.Get(0); !math.IsNaN(v) {
		k.seedSum += v
		k.seedN++
	}
	k.slideVol()
}

// NextStart seeds the recursion with the average of the warm-up window;
// the warm-up is period+1 bars, so the seed terms were all collected
// during PreNext.
func (k *KAMA) NextStart() {
	k.slideVol()
	if k.seedN == k.period {
		k.prev = k.seedSum / float64(k.period)
	} else {
		k.prev = math.NaN()
	}
	k.out.Set(0, k.prev)
}

func (k *KAMA) step(v, direction, vol float64) float64 {
	var er float64
	if vol == 0 {
		er = 0
	} else {
		er = direction / vol
	}
	sc := er*(k.fastest-k.slowest) + k.slowest
	sc = sc * sc
	return k.prev + sc*(v-k.prev)
}

func (k *KAMA) Next() {
	k.slideVol()
	v := k.src.Get(0)
	direction := math.Abs(v - k.src.Get(k.period))
	k.prev = k.step(v, direction, k.vol.value())
	k.out.Set(0, k.prev)
}

func (k *KAMA) slideVolAt(i int) {
	if i < 1 {
		return
	}
	k.bvol.admit(math.Abs(k.src.At(i) - k.src.At(i-1)))
	if j := i - k.period; j >= 1 {
		k.bvol.retire(math.Abs(k.src.At(j) - k.src.At(j-1)))
	}
}

func (k *KAMA) PreOnce(start, end int) {
	k.bseedSum, k.bseedN = 0, 0
	k.bvol.reset()
	for i := start; i < end; i++ {
		if v := k.src.At(i); !math.IsNaN(v) {
			k.bseedSum += v
			k.bseedN++
		}
		k.slideVolAt(i)
	}
}

func (k *KAMA) OnceStart(start, end int) {
	for i := start; i < end; i++ {
		k.slideVolAt(i)
		if k.bseedN == k.period {
			k.bprev = k.bseedSum / float64(k.period)
		} else {
			k.bprev = math.NaN()
		}
		k.out.SetAt(i, k.bprev)
	}
}

func (k *KAMA) stepOnce(v, direction, vol float64) float64 {
	var er float64
	if vol == 0 {
		er = 0
	} else {
		er = direction / vol
	}
	sc := er*(k.fastest-k.slowest) + k.slowest
	sc = sc * sc
	return k.bprev + sc*(v-k.bprev)
}

func (k *KAMA) Once(start, end int) {
	for i := start; i < end; i++ {
		k.slideVolAt(i)
		v := k.src.At(i)
		direction := math.Abs(v - k.src.At(i-k.period))
		k.bprev = k.stepOnce(v, direction, k.bvol.value())
		k.out.SetAt(i, k.bprev)
	}
}

// Package indicators provides the formula clients of the evaluation
// engine. Every indicator implements both the incremental hooks
// (PreNext/NextStart/Next) and the batch hooks (PreOnce/OnceStart/Once),
// with the same arithmetic in the same order on both paths so the two
// strategies agree bit for bit.
package indicators

import "math"

// winsum is a sliding-window sum that tolerates NaN values: a NaN is
// counted instead of accumulated, so the sum stays clean and the window
// recovers as soon as the NaN retires. Both evaluation paths use the same
// admit/retire sequence, which keeps their floating-point results
// identical.
type winsum struct {
	sum  float64
	nans int
}

func (w *winsum) reset() { w.sum, w.nans = 0, 0 }

func (w *winsum) admit(v float64) {
	if math.IsNaN(v) {
		w.nans++
	} else {
		w.sum += v
	}
}

func (w *winsum) retire(v float64) {
	if math.IsNaN(v) {
		w.nans--
	} else {
		w.sum -= v
	}
}

// value returns the window sum, NaN while any NaN remains inside the
// window.
func (w *winsum) value() float64 {
	if w.nans > 0 {
		return math.NaN()
	}
	return w.sum
}
